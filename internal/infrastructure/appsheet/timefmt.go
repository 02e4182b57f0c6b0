package appsheet

import (
	"strings"
	"time"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// Formatos que espera AppSheet con Locale es-MX en columnas Date y Time.
const (
	DateLayout = entity.DateLayout
	TimeLayout = entity.TimeLayout
)

// FormatDate 10/16/2026.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatTime 9:05 AM.
func FormatTime(t time.Time) string { return t.Format(TimeLayout) }

// NormalizeDate lleva una fecha leída del almacén a MM/DD/YYYY.
// Acepta "10/16/2026", "10/16/2026 00:00:00", "2026-10-16" y "1/6/2026".
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}
	for _, layout := range []string{DateLayout, "1/2/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}
