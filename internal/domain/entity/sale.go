package entity

import (
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/pkg/textfold"
)

// SaleState estado de una venta.
type SaleState string

const (
	SaleOpen      SaleState = "Abierta"
	SaleClosed    SaleState = "Cerrada"
	SaleCancelled SaleState = "Cancelada"
)

// ParseSaleState clasifica el texto libre de "Estado Venta".
// Vacío o cualquier otro valor ("Completada", "Pagada") es una venta cerrada.
func ParseSaleState(raw string) SaleState {
	switch {
	case textfold.ContainsAny(raw, "cancel"):
		return SaleCancelled
	case textfold.ContainsAny(raw, "abiert", "pendiente", "apartad"):
		return SaleOpen
	default:
		return SaleClosed
	}
}

// DefaultClient cliente mostrado cuando la venta no tiene uno.
const DefaultClient = "Público General"

// Sale encabezado de venta.
type Sale struct {
	ID            string
	Date          string
	Time          string
	Branch        string
	Seller        string
	Client        string
	ClientGroup   string
	DiscountType  string
	ExtraDiscount decimal.Decimal
	Notes         string
	ShiftID       string
	State         SaleState
	StateLabel    string // texto tal como está en el almacén
	CancelReason  string
	Total         decimal.Decimal
	AddedBy       string
}

// IsCancelled indica si la venta fue cancelada completa.
func (s *Sale) IsCancelled() bool { return s.State == SaleCancelled }

// LineStatus estado de un renglón o de un pago.
type LineStatus string

const (
	LineActive    LineStatus = "Activo"
	LineCancelled LineStatus = "Cancelado"
)

// ParseLineStatus cualquier texto con "cancel" es cancelado; el resto, activo.
func ParseLineStatus(raw string) LineStatus {
	if textfold.ContainsAny(raw, "cancel") {
		return LineCancelled
	}
	return LineActive
}

// SaleItem renglón de venta.
type SaleItem struct {
	ID           string
	SaleID       string
	Product      string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	Branch       string
	Status       LineStatus
	CancelReason string
}

// IsActive indica si el renglón cuenta para el total.
func (i *SaleItem) IsActive() bool { return i.Status != LineCancelled }

// Payment pago aplicado a una venta.
type Payment struct {
	ID          string
	SaleID      string
	Amount      decimal.Decimal
	Currency    string
	Method      string
	Rate        decimal.Decimal
	Branch      string
	ClientGroup string
	Client      string
	Seller      string
	Status      LineStatus
	StateLabel  string
}

// IsActive indica si el pago sigue vigente.
func (p *Payment) IsActive() bool { return p.Status != LineCancelled }
