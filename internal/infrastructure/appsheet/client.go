// Package appsheet es el adaptador del almacén tabular (AppSheet API v2).
// Expone una sola operación, Invoke, y los repositorios que traducen filas a
// entidades del dominio.
package appsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
)

// Action operación sobre una tabla.
type Action string

const (
	ActionFind Action = "Find"
	ActionAdd  Action = "Add"
	ActionEdit Action = "Edit"
)

const maxResponseBytes = 16 << 20 // tablas completas de productos pueden pesar varios MB

// Config conexión al almacén.
type Config struct {
	APIBase   string
	AppID     string
	AccessKey string
	Locale    string
	Timezone  string
	Timeout   time.Duration
}

// Client cliente HTTP del almacén. Seguro para uso concurrente.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. Timeout cero = 30 s.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Locale == "" {
		cfg.Locale = "es-MX"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Mexico_City"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.Component("appsheet"),
	}
}

// ── Protocolo ────────────────────────────────────────────────────────────────

type requestBody struct {
	Action     Action     `json:"Action"`
	Properties properties `json:"Properties"`
	Rows       []Row      `json:"Rows"`
}

type properties struct {
	Locale   string `json:"Locale"`
	Timezone string `json:"Timezone"`
	Selector string `json:"Selector,omitempty"`
}

// Result respuesta del almacén.
// List = la respuesta traía filas (arreglo o {"Rows": [...]}); Raw = cuerpo que no era JSON.
type Result struct {
	Rows []Row
	List bool
	Raw  string
}

// FirstID ID de la primera fila devuelta (Add devuelve las filas creadas).
func (r *Result) FirstID(keys ...string) string {
	if r == nil || len(r.Rows) == 0 {
		return ""
	}
	return r.Rows[0].Str(keys...)
}

// Invoke ejecuta action sobre table. where es opcional y solo tiene sentido en Find.
func (c *Client) Invoke(ctx context.Context, table string, action Action, rows []Row, where Expr) (*Result, error) {
	if rows == nil {
		rows = []Row{}
	}
	payload := requestBody{
		Action: action,
		Properties: properties{
			Locale:   c.cfg.Locale,
			Timezone: c.cfg.Timezone,
		},
		Rows: rows,
	}
	if where != nil {
		payload.Properties.Selector = Selector(table, where)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("appsheet: serializar %s %s: %w", table, action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.actionURL(table), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("appsheet: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("appsheet: %s %s: timeout o cancelación: %w", table, action, errors.Join(domain.ErrUpstream, ctx.Err()))
		}
		return nil, fmt.Errorf("appsheet: %s %s: llamada HTTP fallida: %w", table, action, errors.Join(domain.ErrUpstream, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("appsheet: %s %s: leer respuesta: %w", table, action, errors.Join(domain.ErrUpstream, err))
	}

	c.log.Debug().
		Str("table", table).
		Str("action", string(action)).
		Int("rows", len(rows)).
		Str("selector", payload.Properties.Selector).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("appsheet request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("appsheet: %s %s: HTTP %d: %s: %w",
			table, action, resp.StatusCode, snippet(raw), domain.ErrUpstream)
	}
	return decodeResult(raw), nil
}

// Find lee filas de table. Una respuesta que no es lista es ErrMalformedResponse.
func (c *Client) Find(ctx context.Context, table string, where Expr) ([]Row, error) {
	res, err := c.Invoke(ctx, table, ActionFind, nil, where)
	if err != nil {
		return nil, err
	}
	if !res.List {
		return nil, fmt.Errorf("appsheet: %s Find: %s: %w", table, snippet([]byte(res.Raw)), domain.ErrMalformedResponse)
	}
	return res.Rows, nil
}

// Add agrega filas y devuelve la respuesta (puede traer las filas creadas).
func (c *Client) Add(ctx context.Context, table string, rows ...Row) (*Result, error) {
	return c.Invoke(ctx, table, ActionAdd, rows, nil)
}

// Edit actualiza filas identificadas por su columna llave.
func (c *Client) Edit(ctx context.Context, table string, rows ...Row) (*Result, error) {
	return c.Invoke(ctx, table, ActionEdit, rows, nil)
}

func (c *Client) actionURL(table string) string {
	return fmt.Sprintf("%s/%s/tables/%s/Action?applicationAccessKey=%s",
		strings.TrimRight(c.cfg.APIBase, "/"),
		url.PathEscape(c.cfg.AppID),
		url.PathEscape(table),
		url.QueryEscape(c.cfg.AccessKey),
	)
}

// decodeResult vacío = acuse; JSON no válido = acuse con el texto crudo.
func decodeResult(raw []byte) *Result {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &Result{}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return &Result{Raw: string(trimmed)}
	}

	switch t := v.(type) {
	case []any:
		return &Result{Rows: toRows(t), List: true, Raw: string(trimmed)}
	case map[string]any:
		if list, ok := t["Rows"].([]any); ok {
			return &Result{Rows: toRows(list), List: true, Raw: string(trimmed)}
		}
	}
	return &Result{Raw: string(trimmed)}
}

func toRows(list []any) []Row {
	rows := make([]Row, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			rows = append(rows, Row(m))
		}
	}
	return rows
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 300 {
		return s[:300] + "..."
	}
	return s
}
