package appsheet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeStore simula la API de AppSheet en memoria. Entiende los términos
// [Campo] = "valor" del Selector como un OR, que es lo que generan Eq e In.
type fakeStore struct {
	mu       sync.Mutex
	tables   map[string][]Row
	calls    []fakeCall
	failWith map[string]int // tabla -> status HTTP forzado
	rawReply map[string]string
	srv      *httptest.Server
}

type fakeCall struct {
	Table    string
	Action   Action
	Selector string
	Rows     []Row
	Key      string
}

var termRe = regexp.MustCompile(`\[([^\]]+)\] = "((?:[^"]|"")*)"`)

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	f := &fakeStore{
		tables:   map[string][]Row{},
		failWith: map[string]int{},
		rawReply: map[string]string{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeStore) client() *Client {
	return NewClient(Config{
		APIBase:   f.srv.URL + "/api/v2/apps",
		AppID:     "app-123",
		AccessKey: "k3y",
		Timeout:   5 * time.Second,
	}, nil)
}

func (f *fakeStore) seed(table string, rows ...Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = append(f.tables[table], rows...)
}

func (f *fakeStore) rows(table string) []Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Row(nil), f.tables[table]...)
}

func (f *fakeStore) callsTo(table string, action Action) []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeCall
	for _, c := range f.calls {
		if c.Table == table && c.Action == action {
			out = append(out, c)
		}
	}
	return out
}

func keyColumn(table string) string {
	switch table {
	case TableSales:
		return "IdVenta"
	case TablePayments:
		return "Id"
	case TableClients:
		return "Codigo"
	default:
		return "ID"
	}
}

func (f *fakeStore) handle(w http.ResponseWriter, r *http.Request) {
	// /api/v2/apps/{app}/tables/{table}/Action
	parts := strings.Split(strings.TrimPrefix(r.URL.EscapedPath(), "/api/v2/apps/"), "/")
	if len(parts) != 4 || parts[1] != "tables" || parts[3] != "Action" {
		http.Error(w, "bad path", http.StatusNotFound)
		return
	}
	table, _ := url.PathUnescape(parts[2])

	var body struct {
		Action     Action
		Properties struct{ Selector string }
		Rows       []Row
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{
		Table: table, Action: body.Action, Selector: body.Properties.Selector,
		Rows: body.Rows, Key: r.URL.Query().Get("applicationAccessKey"),
	})

	if code := f.failWith[table]; code != 0 {
		http.Error(w, "boom", code)
		return
	}
	if raw, ok := f.rawReply[table]; ok {
		_, _ = w.Write([]byte(raw))
		return
	}

	switch body.Action {
	case ActionFind:
		_ = json.NewEncoder(w).Encode(f.match(table, body.Properties.Selector))
	case ActionAdd:
		f.tables[table] = append(f.tables[table], body.Rows...)
		_ = json.NewEncoder(w).Encode(map[string]any{"Rows": body.Rows})
	case ActionEdit:
		key := keyColumn(table)
		for _, in := range body.Rows {
			for _, existing := range f.tables[table] {
				if existing.Str(key) == in.Str(key) {
					for k, v := range in {
						existing[k] = v
					}
				}
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"Rows": body.Rows})
	}
}

func (f *fakeStore) match(table, selector string) []Row {
	terms := termRe.FindAllStringSubmatch(selector, -1)
	out := []Row{}
	for _, row := range f.tables[table] {
		if len(terms) == 0 && !strings.Contains(selector, "FALSE") {
			out = append(out, row)
			continue
		}
		for _, t := range terms {
			if row.Str(t[1]) == strings.ReplaceAll(t[2], `""`, `"`) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func requireCalls(t *testing.T, f *fakeStore, table string, action Action, n int) []fakeCall {
	t.Helper()
	calls := f.callsTo(table, action)
	require.Len(t, calls, n, "%s %s", table, action)
	return calls
}
