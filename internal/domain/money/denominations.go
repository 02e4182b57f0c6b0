package money

import "github.com/shopspring/decimal"

// Denomination describe una moneda o billete en pesos.
// Key es el nombre que envía el punto de venta; Column el encabezado en AbrirTurno.
type Denomination struct {
	Key    string
	Column string
	Face   int64
}

// MXNDenominations monedas de 1, 2, 5, 10, 20 y billetes de 20 a 1000.
var MXNDenominations = []Denomination{
	{Key: "monedas1", Column: "Monedas de $1 MXN", Face: 1},
	{Key: "monedas2", Column: "Monedas de $2 MXN", Face: 2},
	{Key: "monedas5", Column: "Monedas de $5 MXN", Face: 5},
	{Key: "monedas10", Column: "Monedas de $10 MXN", Face: 10},
	{Key: "monedas20", Column: "Monedas de $20 MXN", Face: 20},
	{Key: "billetes20", Column: "Billetes de $20 MXN", Face: 20},
	{Key: "billetes50", Column: "Billetes de $50 MXN", Face: 50},
	{Key: "billetes100", Column: "Billetes de $100 MXN", Face: 100},
	{Key: "billetes200", Column: "Billetes de $200 MXN", Face: 200},
	{Key: "billetes500", Column: "Billetes de $500 MXN", Face: 500},
	{Key: "billetes1000", Column: "Billetes de $1000 MXN", Face: 1000},
}

// Counts conteo físico por denominación, indexado por Denomination.Key.
type Counts map[string]decimal.Decimal

// TotalMXN Σ conteo × valor nominal. Claves ausentes cuentan como cero.
func TotalMXN(counts Counts) decimal.Decimal {
	total := decimal.Zero
	for _, d := range MXNDenominations {
		c, ok := counts[d.Key]
		if !ok {
			continue
		}
		total = total.Add(c.Mul(decimal.NewFromInt(d.Face)))
	}
	return total
}

// IsZero indica si no hay ninguna pieza contada.
func (c Counts) IsZero() bool {
	for _, v := range c {
		if !v.IsZero() {
			return false
		}
	}
	return true
}

// Scale multiplica cada conteo por k.
func (c Counts) Scale(k decimal.Decimal) Counts {
	out := make(Counts, len(c))
	for key, v := range c {
		out[key] = v.Mul(k)
	}
	return out
}
