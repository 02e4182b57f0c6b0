package appsheet

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
)

func TestClient_FindSendsSelectorAndKey(t *testing.T) {
	f := newFakeStore(t)
	f.seed(TableSales, Row{"IdVenta": "V-1", "TurnoId": "T-1"}, Row{"IdVenta": "V-2", "TurnoId": "T-2"})

	rows, err := f.client().Find(context.Background(), TableSales, Eq("TurnoId", "T-1"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "V-1", rows[0].Str("IdVenta"))

	call := requireCalls(t, f, TableSales, ActionFind, 1)[0]
	assert.Equal(t, "k3y", call.Key)
	assert.Equal(t, `Filter("Ventas", [TurnoId] = "T-1")`, call.Selector)
}

func TestClient_TableNameWithSpacesIsEscaped(t *testing.T) {
	f := newFakeStore(t)
	f.seed(TablePaymentMethods, Row{"Metodo de pago": "Efectivo"})

	rows, err := f.client().Find(context.Background(), TablePaymentMethods, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	requireCalls(t, f, TablePaymentMethods, ActionFind, 1)
}

func TestClient_Non2xxIsUpstreamError(t *testing.T) {
	f := newFakeStore(t)
	f.failWith[TableSales] = http.StatusBadGateway

	_, err := f.client().Find(context.Background(), TableSales, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_NonListFindIsMalformed(t *testing.T) {
	f := newFakeStore(t)
	f.rawReply[TableProducts] = `{"error":"table not found"}`

	_, err := f.client().Find(context.Background(), TableProducts, nil)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_AddAcceptsEmptyAndTextReplies(t *testing.T) {
	f := newFakeStore(t)
	f.rawReply[TableClients] = ""
	res, err := f.client().Add(context.Background(), TableClients, Row{"Codigo": "CLI-1"})
	require.NoError(t, err)
	assert.False(t, res.List)
	assert.Equal(t, "", res.FirstID("Codigo"))

	f.rawReply[TableClients] = "OK"
	res, err = f.client().Add(context.Background(), TableClients, Row{"Codigo": "CLI-2"})
	require.NoError(t, err)
	assert.Equal(t, "OK", res.Raw)
}

func TestClient_ContextCancelled(t *testing.T) {
	f := newFakeStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.client().Find(ctx, TableSales, nil)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDecodeResult(t *testing.T) {
	res := decodeResult([]byte(`[{"ID":"A","Monto":12.5}]`))
	require.True(t, res.List)
	assert.Equal(t, "12.5", res.Rows[0].Str("Monto"))

	res = decodeResult([]byte(`{"Rows":[{"ID":"B"}]}`))
	require.True(t, res.List)
	assert.Equal(t, "B", res.FirstID("ID"))

	res = decodeResult([]byte(`{"Rows":"nope"}`))
	assert.False(t, res.List)

	res = decodeResult([]byte("  "))
	assert.False(t, res.List)
	assert.Empty(t, res.Raw)
}

func TestRow_FoldedLookup(t *testing.T) {
	r := Row{"MÉTODO DE PAGO": " Tarjeta ", "Precio": "$1,200.50", "Cantidad": float64(3)}

	assert.Equal(t, "Tarjeta", r.Str("Metodo de pago"))
	assert.Equal(t, "1200.5", r.Dec("precio").String())
	assert.Equal(t, 3, r.Int("Cantidad"))
	assert.Equal(t, "def", r.StrOr("def", "Nada"))
	assert.True(t, r.Has("metodo de pago"))
	assert.False(t, r.Has("Nada"))
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"10/16/2026":          "10/16/2026",
		"10/16/2026 00:00:00": "10/16/2026",
		"2026-10-16":          "10/16/2026",
		"2026-10-16T08:00:00": "10/16/2026",
		"1/6/2026":            "01/06/2026",
		"":                    "",
		"mañana":              "mañana",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDate(in), in)
	}
}
