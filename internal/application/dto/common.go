package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// MessageResponse respuesta sin datos.
type MessageResponse struct {
	Success bool   `json:"success"`
	Mensaje string `json:"mensaje,omitempty"`
}

// ServiceInfoResponse respuesta de GET /.
type ServiceInfoResponse struct {
	Status   string `json:"status"`
	Servicio string `json:"servicio"`
	Version  string `json:"version"`
	CORS     string `json:"cors"`
}

// HealthResponse respuesta de GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Text cadena que también acepta números en JSON. El punto de venta manda IDs
// de empleado y PINs a veces como número.
type Text string

// UnmarshalJSON acepta "123", 123 y null.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// String valor sin espacios.
func (t Text) String() string { return strings.TrimSpace(string(t)) }
