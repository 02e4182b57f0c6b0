package reconciliation

import (
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
)

// Count conteo físico capturado al cerrar.
type Count struct {
	Denominations money.Counts
	Foreign       entity.ForeignCounts
	Channels      entity.ChannelTotals
	Notes         string
}

// Balances saldos contados: pesos a partir de denominaciones, divisas tal cual.
func (c Count) Balances() entity.Balances {
	return entity.Balances{
		CashMXN: money.TotalMXN(c.Denominations),
		USD:     c.Foreign.USD,
		CAD:     c.Foreign.CAD,
		EUR:     c.Foreign.EUR,
	}
}

// Line contado contra esperado de una divisa. Variance = Counted - Expected.
type Line struct {
	Counted  decimal.Decimal
	Expected decimal.Decimal
	Variance decimal.Decimal
}

// Comparison resultado por divisa.
type Comparison struct {
	MXN Line
	USD Line
	CAD Line
	EUR Line
}

// Compare calcula la diferencia con signo de cada divisa por separado.
func Compare(counted, expected entity.Balances) Comparison {
	line := func(c, e decimal.Decimal) Line {
		return Line{Counted: c, Expected: e, Variance: c.Sub(e)}
	}
	return Comparison{
		MXN: line(counted.CashMXN, expected.CashMXN),
		USD: line(counted.USD, expected.USD),
		CAD: line(counted.CAD, expected.CAD),
		EUR: line(counted.EUR, expected.EUR),
	}
}

// Variances diferencias como Balances, para guardarlas en el turno.
func (c Comparison) Variances() entity.Balances {
	return entity.Balances{
		CashMXN: c.MXN.Variance,
		USD:     c.USD.Variance,
		CAD:     c.CAD.Variance,
		EUR:     c.EUR.Variance,
	}
}

// Balanced indica que ninguna divisa tiene diferencia.
func (c Comparison) Balanced() bool {
	return c.MXN.Variance.IsZero() && c.USD.Variance.IsZero() &&
		c.CAD.Variance.IsZero() && c.EUR.Variance.IsZero()
}
