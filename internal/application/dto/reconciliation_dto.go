package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/reconciliation"
)

// BalancesDTO saldos por divisa; efectivoMXN es efectivo físico.
type BalancesDTO struct {
	EfectivoMXN decimal.Decimal `json:"efectivoMXN"`
	USD         decimal.Decimal `json:"usd"`
	CAD         decimal.Decimal `json:"cad"`
	EUR         decimal.Decimal `json:"eur"`
}

func NewBalancesDTO(b entity.Balances) BalancesDTO {
	return BalancesDTO{EfectivoMXN: b.CashMXN, USD: b.USD, CAD: b.CAD, EUR: b.EUR}
}

// Balances el mismo objeto de vuelta como entidad.
func (b BalancesDTO) Balances() entity.Balances {
	return entity.Balances{CashMXN: b.EfectivoMXN, USD: b.USD, CAD: b.CAD, EUR: b.EUR}
}

// RatesDTO tasas del turno.
type RatesDTO struct {
	USD decimal.Decimal `json:"usd"`
	CAD decimal.Decimal `json:"cad"`
	EUR decimal.Decimal `json:"eur"`
}

// SalesSummaryDTO resumen de ventas del corte.
type SalesSummaryDTO struct {
	VentasBrutas   decimal.Decimal `json:"ventasBrutas"`
	Descuentos     decimal.Decimal `json:"descuentos"`
	Cancelaciones  decimal.Decimal `json:"cancelaciones"`
	VentasNetas    decimal.Decimal `json:"ventasNetas"`
	NumVentas      int             `json:"numVentas"`
	NumCanceladas  int             `json:"numCanceladas"`
	NumCerradas    int             `json:"numCerradas"`
	NumAbiertas    int             `json:"numAbiertas"`
	TotalCerradas  decimal.Decimal `json:"totalCerradas"`
	TotalAbiertas  decimal.Decimal `json:"totalAbiertas"`
	TicketPromedio decimal.Decimal `json:"ticketPromedio"`
}

// PaymentBreakdownDTO pagos por cubo. Los de efectivo van en su divisa; el resto en pesos.
type PaymentBreakdownDTO struct {
	EfectivoMXN       decimal.Decimal `json:"efectivoMXN"`
	EfectivoUSD       decimal.Decimal `json:"efectivoUSD"`
	EfectivoCAD       decimal.Decimal `json:"efectivoCAD"`
	EfectivoEUR       decimal.Decimal `json:"efectivoEUR"`
	BBVANacional      decimal.Decimal `json:"bbvaNacional"`
	BBVAInternacional decimal.Decimal `json:"bbvaInternacional"`
	ClipNacional      decimal.Decimal `json:"clipNacional"`
	ClipInternacional decimal.Decimal `json:"clipInternacional"`
	Transferencia     decimal.Decimal `json:"transferencia"`
	OtrasTarjetas     decimal.Decimal `json:"otrasTarjetas"`
	TotalMXN          decimal.Decimal `json:"totalMXN"`
	NumPagos          int             `json:"numPagos"`
}

// MovementDTO movimiento de caja.
type MovementDTO struct {
	ID            string          `json:"id"`
	Tipo          string          `json:"tipo"`
	Fecha         string          `json:"fecha"`
	Hora          string          `json:"hora"`
	Monto         decimal.Decimal `json:"monto"`
	CuentaOrigen  string          `json:"cuentaOrigen"`
	CuentaDestino string          `json:"cuentaDestino"`
	Sucursal      string          `json:"sucursal"`
	Categoria     string          `json:"categoria"`
	Concepto      string          `json:"concepto"`
	Usuario       string          `json:"usuario"`
	Observaciones string          `json:"observaciones"`
	TurnoID       string          `json:"turnoId"`
}

func NewMovementDTO(m *entity.CashMovement) MovementDTO {
	return MovementDTO{
		ID:            m.ID,
		Tipo:          m.Type,
		Fecha:         m.Date,
		Hora:          m.Time,
		Monto:         m.Amount,
		CuentaOrigen:  m.FromAccount,
		CuentaDestino: m.ToAccount,
		Sucursal:      m.Branch,
		Categoria:     m.Category,
		Concepto:      m.Concept,
		Usuario:       m.Operator,
		Observaciones: m.Notes,
		TurnoID:       m.ShiftID,
	}
}

// MovementSummaryDTO totales de movimientos; neto = ingresos - egresos - gastos.
type MovementSummaryDTO struct {
	Ingresos       decimal.Decimal `json:"ingresos"`
	Egresos        decimal.Decimal `json:"egresos"`
	Gastos         decimal.Decimal `json:"gastos"`
	Neto           decimal.Decimal `json:"neto"`
	SinClasificar  int             `json:"sinClasificar"`
	NumMovimientos int             `json:"numMovimientos"`
}

func NewMovementSummaryDTO(s reconciliation.MovementSummary) MovementSummaryDTO {
	return MovementSummaryDTO{
		Ingresos:       s.Income,
		Egresos:        s.Outcome,
		Gastos:         s.Expense,
		Neto:           s.Net,
		SinClasificar:  s.Unclassified,
		NumMovimientos: len(s.Movements),
	}
}

func NewMovementList(ms []*entity.CashMovement) []MovementDTO {
	out := make([]MovementDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMovementDTO(m))
	}
	return out
}

// ReportDTO corte de caja completo.
type ReportDTO struct {
	Turno            *ShiftDTO           `json:"turno"`
	Apertura         BalancesDTO         `json:"apertura"`
	Tasas            RatesDTO            `json:"tasas"`
	Ventas           SalesSummaryDTO     `json:"ventas"`
	Pagos            PaymentBreakdownDTO `json:"pagos"`
	Movimientos      MovementSummaryDTO  `json:"movimientos"`
	ListaMovimientos []MovementDTO       `json:"listaMovimientos"`
	Esperado         BalancesDTO         `json:"esperado"`
	ListaVentas      []SaleSummaryDTO    `json:"listaVentas"`
	Calculado        FiguresDTO          `json:"calculado"`
}

// ReportResponse respuesta de GET /api/turnos/:id/corte.
type ReportResponse struct {
	Success bool      `json:"success"`
	Corte   ReportDTO `json:"corte"`
}

func NewReportDTO(r *reconciliation.Report) ReportDTO {
	return ReportDTO{
		Turno:    NewShiftDTO(r.Shift),
		Apertura: NewBalancesDTO(r.Opening),
		Tasas:    RatesDTO{USD: r.Rates.USD, CAD: r.Rates.CAD, EUR: r.Rates.EUR},
		Ventas: SalesSummaryDTO{
			VentasBrutas:   r.Sales.Gross,
			Descuentos:     r.Sales.Discounts,
			Cancelaciones:  r.Sales.Cancellations,
			VentasNetas:    r.Sales.Net,
			NumVentas:      r.Sales.NumSales,
			NumCanceladas:  r.Sales.NumCancelled,
			NumCerradas:    r.Sales.NumClosed,
			NumAbiertas:    r.Sales.NumOpen,
			TotalCerradas:  r.Sales.ClosedTotal,
			TotalAbiertas:  r.Sales.OpenTotal,
			TicketPromedio: r.Sales.AverageTicket,
		},
		Pagos: PaymentBreakdownDTO{
			EfectivoMXN:       r.Payments.CashMXN,
			EfectivoUSD:       r.Payments.CashUSD,
			EfectivoCAD:       r.Payments.CashCAD,
			EfectivoEUR:       r.Payments.CashEUR,
			BBVANacional:      r.Payments.BBVANacional,
			BBVAInternacional: r.Payments.BBVAInternacional,
			ClipNacional:      r.Payments.ClipNacional,
			ClipInternacional: r.Payments.ClipInternacional,
			Transferencia:     r.Payments.Transfer,
			OtrasTarjetas:     r.Payments.OtherCard,
			TotalMXN:          r.Payments.TotalMXN,
			NumPagos:          r.Payments.Count,
		},
		Movimientos:      NewMovementSummaryDTO(r.Movements),
		ListaMovimientos: NewMovementList(r.Movements.Movements),
		Esperado:         NewBalancesDTO(r.Expected),
		ListaVentas:      NewSaleSummaryList(r.SaleList),
		Calculado:        NewFiguresDTO(r.Figures()),
	}
}

// FiguresDTO agregados calculados que el punto de venta devuelve al cerrar el corte.
type FiguresDTO struct {
	VentasBrutas   money.Lenient `json:"ventasBrutas"`
	Descuentos     money.Lenient `json:"descuentos"`
	Cancelaciones  money.Lenient `json:"cancelaciones"`
	VentasNetas    money.Lenient `json:"ventasNetas"`
	NumVentas      int           `json:"numVentas"`
	TicketPromedio money.Lenient `json:"ticketPromedio"`
	Ingresos       money.Lenient `json:"ingresos"`
	Egresos        money.Lenient `json:"egresos"`
	Gastos         money.Lenient `json:"gastos"`
	Esperado       BalancesDTO   `json:"esperado"`
}

func NewFiguresDTO(f entity.ReconciliationFigures) FiguresDTO {
	return FiguresDTO{
		VentasBrutas:   money.NewLenient(f.GrossSales),
		Descuentos:     money.NewLenient(f.Discounts),
		Cancelaciones:  money.NewLenient(f.Cancellations),
		VentasNetas:    money.NewLenient(f.NetSales),
		NumVentas:      f.NumSales,
		TicketPromedio: money.NewLenient(f.AverageTicket),
		Ingresos:       money.NewLenient(f.Income),
		Egresos:        money.NewLenient(f.Outcome),
		Gastos:         money.NewLenient(f.Expense),
		Esperado:       NewBalancesDTO(f.Expected),
	}
}

// Figures convierte a entidad (sin diferencias ni autorización).
func (f *FiguresDTO) Figures() *entity.ReconciliationFigures {
	if f == nil {
		return nil
	}
	return &entity.ReconciliationFigures{
		GrossSales:    f.VentasBrutas.Value(),
		Discounts:     f.Descuentos.Value(),
		Cancellations: f.Cancelaciones.Value(),
		NetSales:      f.VentasNetas.Value(),
		NumSales:      f.NumVentas,
		AverageTicket: f.TicketPromedio.Value(),
		Income:        f.Ingresos.Value(),
		Outcome:       f.Egresos.Value(),
		Expense:       f.Gastos.Value(),
		Expected:      f.Esperado.Balances(),
	}
}

// CloseReconciliationRequest body para POST /api/turnos/:id/cerrar-corte.
// Sin calculado el corte se recalcula al momento de cerrar.
type CloseReconciliationRequest struct {
	ClosingCount
	Calculado    *FiguresDTO        `json:"calculado,omitempty"`
	Autorizacion *CredentialRequest `json:"autorizacion,omitempty"`
}

// Count conteo físico como entidad de dominio.
func (r CloseReconciliationRequest) Count() reconciliation.Count {
	return reconciliation.Count{
		Denominations: r.Counts(),
		Foreign:       r.Foreign(),
		Channels:      r.Channels(),
		Notes:         r.Observaciones,
	}
}

// LineDTO contado contra esperado de una divisa.
type LineDTO struct {
	Contado    decimal.Decimal `json:"contado"`
	Esperado   decimal.Decimal `json:"esperado"`
	Diferencia decimal.Decimal `json:"diferencia"`
}

func newLineDTO(l reconciliation.Line) LineDTO {
	return LineDTO{Contado: l.Counted, Esperado: l.Expected, Diferencia: l.Variance}
}

// ClosureResultDTO resultado del cierre por divisa.
type ClosureResultDTO struct {
	TurnoID       string  `json:"turnoId"`
	MXN           LineDTO `json:"mxn"`
	USD           LineDTO `json:"usd"`
	CAD           LineDTO `json:"cad"`
	EUR           LineDTO `json:"eur"`
	Cuadrado      bool    `json:"cuadrado"`
	AutorizadoPor string  `json:"autorizadoPor,omitempty"`
}

// ClosureResultResponse respuesta de POST /api/turnos/:id/cerrar-corte.
type ClosureResultResponse struct {
	Success   bool             `json:"success"`
	Resultado ClosureResultDTO `json:"resultado"`
}

func NewClosureResultDTO(shiftID string, cmp reconciliation.Comparison, authorizedBy string) ClosureResultDTO {
	return ClosureResultDTO{
		TurnoID:       shiftID,
		MXN:           newLineDTO(cmp.MXN),
		USD:           newLineDTO(cmp.USD),
		CAD:           newLineDTO(cmp.CAD),
		EUR:           newLineDTO(cmp.EUR),
		Cuadrado:      cmp.Balanced(),
		AutorizadoPor: authorizedBy,
	}
}

// ClosureRecordDTO entrada del historial de cortes.
type ClosureRecordDTO struct {
	Evento     string       `json:"evento"`
	Sucursal   string       `json:"sucursal,omitempty"`
	Usuario    string       `json:"usuario,omitempty"`
	Fecha      string       `json:"fecha,omitempty"`
	Contado    *BalancesDTO `json:"contado,omitempty"`
	Esperado   *BalancesDTO `json:"esperado,omitempty"`
	Diferencia *BalancesDTO `json:"diferencia,omitempty"`
	Por        string       `json:"por,omitempty"`
	Registrado time.Time    `json:"registrado"`
}

// HistoryResponse respuesta de GET /api/turnos/:id/historial.
type HistoryResponse struct {
	Success   bool               `json:"success"`
	Historial []ClosureRecordDTO `json:"historial"`
}

func NewHistory(recs []ports.ClosureRecord) HistoryResponse {
	out := make([]ClosureRecordDTO, 0, len(recs))
	for _, r := range recs {
		d := ClosureRecordDTO{
			Evento:     string(r.Event),
			Sucursal:   r.Branch,
			Usuario:    r.Operator,
			Fecha:      r.Date,
			Por:        r.By,
			Registrado: r.At,
		}
		if r.Event == ports.EventClosed {
			counted := NewBalancesDTO(r.Counted)
			expected := NewBalancesDTO(r.Figures.Expected)
			variance := NewBalancesDTO(r.Figures.Variance)
			d.Contado, d.Esperado, d.Diferencia = &counted, &expected, &variance
		}
		out = append(out, d)
	}
	return HistoryResponse{Success: true, Historial: out}
}
