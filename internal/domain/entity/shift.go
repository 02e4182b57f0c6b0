package entity

import (
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/pkg/textfold"
)

// Formatos de fecha y hora con que se guardan turnos, ventas y movimientos.
const (
	DateLayout = "01/02/2006"
	TimeLayout = "3:04 PM"
)

// ShiftState estado de un turno de caja.
type ShiftState string

const (
	ShiftOpen   ShiftState = "Abierto"
	ShiftClosed ShiftState = "Cerrado"
)

// ParseShiftState solo "abierto" (sin importar mayúsculas) es un turno abierto.
func ParseShiftState(raw string) ShiftState {
	if textfold.Fold(raw) == "abierto" {
		return ShiftOpen
	}
	return ShiftClosed
}

// Balances montos por divisa. CashMXN es efectivo físico en pesos.
type Balances struct {
	CashMXN decimal.Decimal
	USD     decimal.Decimal
	CAD     decimal.Decimal
	EUR     decimal.Decimal
}

// ExchangeRates pesos por unidad de divisa extranjera.
type ExchangeRates struct {
	USD decimal.Decimal
	CAD decimal.Decimal
	EUR decimal.Decimal
}

// ForeignCounts conteo físico de divisas al cierre.
type ForeignCounts struct {
	USD decimal.Decimal
	CAD decimal.Decimal
	EUR decimal.Decimal
}

// ChannelTotals totales de terminal y transferencias declarados al cierre.
type ChannelTotals struct {
	BBVANacional      decimal.Decimal
	BBVAInternacional decimal.Decimal
	ClipNacional      decimal.Decimal
	ClipInternacional decimal.Decimal
	Transferencia     decimal.Decimal
}

// ShiftClosing datos capturados al cerrar la caja.
type ShiftClosing struct {
	ClosedAt      string // h:mm AM/PM
	Denominations money.Counts
	TotalMXN      decimal.Decimal
	Foreign       ForeignCounts
	Channels      ChannelTotals
	Notes         string
}

// ReconciliationFigures agregados del corte que se guardan junto con el conteo.
type ReconciliationFigures struct {
	GrossSales    decimal.Decimal
	Discounts     decimal.Decimal
	Cancellations decimal.Decimal
	NetSales      decimal.Decimal
	NumSales      int
	AverageTicket decimal.Decimal
	Income        decimal.Decimal
	Outcome       decimal.Decimal
	Expense       decimal.Decimal
	Expected      Balances
	Variance      Balances
	AuthorizedBy  string
}

// Shift turno (sesión de caja) de un operador en una sucursal.
type Shift struct {
	ID         string
	Date       string // MM/DD/YYYY
	OpenedAt   string // h:mm AM/PM
	ClosedAt   string
	Operator   string // ID o nombre, según quién lo abrió
	OperatorID string
	Branch     string
	State      ShiftState
	Opening    Balances
	Rates      ExchangeRates
	Closing    ShiftClosing
	Figures    ReconciliationFigures
}

// IsOpen indica si el turno admite ventas.
func (s *Shift) IsOpen() bool { return s.State == ShiftOpen }
