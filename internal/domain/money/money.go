// Package money agrupa las utilidades monetarias del punto de venta: conversión
// de divisas a pesos, conteo de denominaciones y lectura tolerante de montos.
package money

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Divisas aceptadas en caja. MXN es la moneda base.
const (
	MXN = "MXN"
	USD = "USD"
	CAD = "CAD"
	EUR = "EUR"
)

var hundred = decimal.NewFromInt(100)

// ToBase convierte amount a MXN. Para MXN es la identidad; una tasa cero o
// negativa se toma como 1.
func ToBase(amount decimal.Decimal, currency string, rate decimal.Decimal) decimal.Decimal {
	if NormalizeCurrency(currency) == MXN {
		return amount
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		rate = decimal.NewFromInt(1)
	}
	return amount.Mul(rate)
}

// NormalizeCurrency devuelve el código ISO en mayúsculas; vacío se interpreta como MXN.
func NormalizeCurrency(currency string) string {
	c := strings.ToUpper(strings.TrimSpace(currency))
	if c == "" {
		return MXN
	}
	return c
}

// Parse lee un monto capturado como texto ("$1,650.50", " 20 ", "1650").
// Cualquier valor no numérico vale cero.
func Parse(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	s = strings.TrimSuffix(strings.TrimSpace(s), MXN)
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// PercentNormalize interpreta un porcentaje capturado como "15", "15%", "0,15" o "0.15".
// Valores en (0, 1] se consideran fracción y se multiplican por 100.
func PercentNormalize(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	s = strings.Replace(s, ",", ".", 1)
	if s == "" {
		return decimal.Zero
	}
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if p.GreaterThan(decimal.Zero) && p.LessThanOrEqual(decimal.NewFromInt(1)) {
		p = p.Mul(hundred)
	}
	return p
}

// Format presenta amount con separador de miles y dos decimales: "$1,650.00 MXN".
func Format(amount decimal.Decimal, currency string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac + " " + NormalizeCurrency(currency)
}

// Lenient es un número que acepta en JSON números, cadenas numéricas o basura
// (que vale cero). Los formularios de caja envían los conteos de las tres formas.
type Lenient struct {
	decimal.Decimal
}

// UnmarshalJSON nunca falla: lo que no es número se queda en cero.
func (l *Lenient) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		l.Decimal = decimal.Zero
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		l.Decimal = Parse(str)
		return nil
	}
	l.Decimal = Parse(s)
	return nil
}

// NewLenient envuelve d.
func NewLenient(d decimal.Decimal) Lenient { return Lenient{Decimal: d} }

// Value devuelve el decimal envuelto.
func (l Lenient) Value() decimal.Decimal { return l.Decimal }
