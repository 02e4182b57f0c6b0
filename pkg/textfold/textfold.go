// Package textfold normaliza texto capturado a mano en el almacén tabular
// (mayúsculas, acentos, espacios) para compararlo sin sorpresas.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s sin espacios laterales, sin diacríticos y en minúsculas.
// "  Método de Pago " -> "metodo de pago".
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// transform.Chain guarda estado: se construye por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Equal compara a y b después de Fold.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Contains indica si sub aparece en s después de Fold.
func Contains(s, sub string) bool {
	return strings.Contains(Fold(s), Fold(sub))
}

// ContainsAny indica si alguno de subs aparece en s.
func ContainsAny(s string, subs ...string) bool {
	f := Fold(s)
	for _, sub := range subs {
		if sub != "" && strings.Contains(f, Fold(sub)) {
			return true
		}
	}
	return false
}
