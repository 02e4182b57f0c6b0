// Package discount resuelve el descuento automático de una venta a partir del
// grupo del cliente y la forma de pago.
package discount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// NoDiscount descripción cuando ninguna regla aplica.
const NoDiscount = "Sin descuento"

// Resolution resultado de Resolve. RuleID vacío = sin descuento.
type Resolution struct {
	Percentage  decimal.Decimal
	Description string
	RuleID      string
}

// Found indica si alguna regla aplicó.
func (r Resolution) Found() bool { return r.RuleID != "" || !r.Percentage.IsZero() }

// Resolve recorre las reglas en tres pasadas, de la más específica a la más
// general; gana la primera coincidencia en el orden de rules:
//  1. grupo y método definidos, ambos iguales a la consulta
//  2. solo grupo definido e igual
//  3. solo método definido e igual
//
// La comparación ignora espacios y mayúsculas, pero no acentos.
func Resolve(rules []entity.DiscountRule, group, method string) Resolution {
	g := key(group)
	m := key(method)

	for _, r := range rules {
		rg, rm := key(r.Group), key(r.Method)
		if rg != "" && rm != "" && rg == g && rm == m {
			return Resolution{Percentage: r.Percentage, Description: r.Group + " + " + r.Method, RuleID: r.ID}
		}
	}
	for _, r := range rules {
		rg, rm := key(r.Group), key(r.Method)
		if rg != "" && rm == "" && rg == g {
			return Resolution{Percentage: r.Percentage, Description: "Grupo: " + r.Group, RuleID: r.ID}
		}
	}
	for _, r := range rules {
		rg, rm := key(r.Group), key(r.Method)
		if rg == "" && rm != "" && rm == m {
			return Resolution{Percentage: r.Percentage, Description: "Método: " + r.Method, RuleID: r.ID}
		}
	}
	return Resolution{Percentage: decimal.Zero, Description: NoDiscount}
}

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Label etiqueta que ve el cajero en la lista de descuentos.
func Label(r entity.DiscountRule) string {
	pct := r.Percentage.String()
	switch {
	case r.Group != "" && r.Method != "":
		return fmt.Sprintf("%s + %s (%s%%)", r.Group, r.Method, pct)
	case r.Group != "":
		return fmt.Sprintf("Grupo: %s (%s%%)", r.Group, pct)
	case r.Method != "":
		return fmt.Sprintf("Método: %s (%s%%)", r.Method, pct)
	case r.Name != "":
		return fmt.Sprintf("%s (%s%%)", r.Name, pct)
	default:
		return fmt.Sprintf("Descuento (%s%%)", pct)
	}
}
