package appsheet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/pkg/textfold"
)

// Row fila del almacén tal como viaja en JSON.
//
// Los encabezados se capturaron a mano y varían entre tablas y versiones de la
// app ("Nombre", "NOMBRE", "Método de pago", "Metodo de pago"). Las lecturas
// buscan primero la llave exacta y después una comparación sin mayúsculas ni
// acentos, así que cada mapeo declara el nombre canónico una sola vez.
type Row map[string]any

func (r Row) lookup(key string) (any, bool) {
	if v, ok := r[key]; ok {
		return v, true
	}
	want := textfold.Fold(key)
	for k, v := range r {
		if textfold.Fold(k) == want {
			return v, true
		}
	}
	return nil, false
}

// Str primer valor no vacío entre keys, sin espacios laterales.
func (r Row) Str(keys ...string) string {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if !ok {
			continue
		}
		if s := strings.TrimSpace(stringify(v)); s != "" {
			return s
		}
	}
	return ""
}

// StrOr Str con valor por defecto.
func (r Row) StrOr(def string, keys ...string) string {
	if s := r.Str(keys...); s != "" {
		return s
	}
	return def
}

// Has indica si alguna de keys viene en la fila (aunque esté vacía).
func (r Row) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r.lookup(k); ok {
			return true
		}
	}
	return false
}

// Dec monto tolerante; basura = 0.
func (r Row) Dec(keys ...string) decimal.Decimal {
	return money.Parse(r.Str(keys...))
}

// Int parte entera del valor.
func (r Row) Int(keys ...string) int {
	return int(r.Dec(keys...).IntPart())
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// num escribe un decimal como número JSON sin comillas.
func num(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
