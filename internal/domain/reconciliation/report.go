// Package reconciliation calcula el corte de caja de un turno: agrega ventas,
// pagos y movimientos, obtiene los saldos esperados y los compara contra el
// conteo físico.
package reconciliation

import (
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
)

// Inputs todo lo leído del almacén para un turno.
type Inputs struct {
	Shift     *entity.Shift
	Sales     []*entity.Sale
	Payments  []*entity.Payment
	Items     []*entity.SaleItem
	Movements []*entity.CashMovement
}

// SalesSummary resumen de ventas del turno.
type SalesSummary struct {
	Gross         decimal.Decimal
	Discounts     decimal.Decimal
	Cancellations decimal.Decimal
	Net           decimal.Decimal
	NumSales      int
	NumCancelled  int
	NumClosed     int
	NumOpen       int
	ClosedTotal   decimal.Decimal
	OpenTotal     decimal.Decimal
	AverageTicket decimal.Decimal
}

// MovementSummary movimientos de efectivo del día en la sucursal.
type MovementSummary struct {
	Income       decimal.Decimal
	Outcome      decimal.Decimal
	Expense      decimal.Decimal
	Net          decimal.Decimal
	Unclassified int
	Movements    []*entity.CashMovement
}

// Report corte de caja calculado. No modifica el turno.
type Report struct {
	Shift     *entity.Shift
	Opening   entity.Balances
	Rates     entity.ExchangeRates
	Sales     SalesSummary
	Payments  PaymentBreakdown
	Movements MovementSummary
	Expected  entity.Balances
	SaleList  []*entity.Sale
}

// Build arma el reporte. Los pagos y renglones de ventas canceladas o ajenas al
// turno se descartan, igual que los pagos y renglones cancelados por sí mismos.
func Build(in Inputs) Report {
	r := Report{
		Shift:    in.Shift,
		Opening:  in.Shift.Opening,
		Rates:    in.Shift.Rates,
		SaleList: in.Sales,
	}

	live := make(map[string]bool, len(in.Sales))
	for _, s := range in.Sales {
		if s.IsCancelled() {
			r.Sales.Cancellations = r.Sales.Cancellations.Add(s.Total)
			r.Sales.NumCancelled++
			live[s.ID] = false
			continue
		}
		live[s.ID] = true
		r.Sales.Gross = r.Sales.Gross.Add(s.Total)
		r.Sales.NumSales++
		if s.State == entity.SaleOpen {
			r.Sales.NumOpen++
			r.Sales.OpenTotal = r.Sales.OpenTotal.Add(s.Total)
		} else {
			r.Sales.NumClosed++
			r.Sales.ClosedTotal = r.Sales.ClosedTotal.Add(s.Total)
		}
	}
	r.Sales.Net = r.Sales.Gross
	if r.Sales.NumSales > 0 {
		r.Sales.AverageTicket = r.Sales.Net.Div(decimal.NewFromInt(int64(r.Sales.NumSales))).Round(2)
	}

	for _, p := range in.Payments {
		if !live[p.SaleID] || !p.IsActive() {
			continue
		}
		b := ClassifyPayment(p.Method, p.Currency)
		r.Payments.add(b, p.Amount, money.ToBase(p.Amount, p.Currency, p.Rate))
	}

	for _, it := range in.Items {
		if !live[it.SaleID] || !it.IsActive() {
			continue
		}
		r.Sales.Discounts = r.Sales.Discounts.Add(it.Discount)
	}

	r.Movements = SummarizeMovements(in.Movements)

	r.Expected = entity.Balances{
		CashMXN: r.Opening.CashMXN.Add(r.Payments.CashMXN).Add(r.Movements.Net),
		USD:     r.Opening.USD.Add(r.Payments.CashUSD),
		CAD:     r.Opening.CAD.Add(r.Payments.CashCAD),
		EUR:     r.Opening.EUR.Add(r.Payments.CashEUR),
	}
	return r
}

// SummarizeMovements suma ingresos, egresos y gastos. Los tipos que no se
// reconocen se cuentan pero no afectan el efectivo esperado.
func SummarizeMovements(ms []*entity.CashMovement) MovementSummary {
	sum := MovementSummary{Movements: ms}
	for _, m := range ms {
		switch m.Kind() {
		case entity.MovementIncome:
			sum.Income = sum.Income.Add(m.Amount)
		case entity.MovementOutcome:
			sum.Outcome = sum.Outcome.Add(m.Amount)
		case entity.MovementExpense:
			sum.Expense = sum.Expense.Add(m.Amount)
		default:
			sum.Unclassified++
		}
	}
	sum.Net = sum.Income.Sub(sum.Outcome).Sub(sum.Expense)
	return sum
}

// Figures agregados del reporte que se guardan al cerrar (sin diferencias).
func (r Report) Figures() entity.ReconciliationFigures {
	return entity.ReconciliationFigures{
		GrossSales:    r.Sales.Gross,
		Discounts:     r.Sales.Discounts,
		Cancellations: r.Sales.Cancellations,
		NetSales:      r.Sales.Net,
		NumSales:      r.Sales.NumSales,
		AverageTicket: r.Sales.AverageTicket,
		Income:        r.Movements.Income,
		Outcome:       r.Movements.Outcome,
		Expense:       r.Movements.Expense,
		Expected:      r.Expected,
	}
}
