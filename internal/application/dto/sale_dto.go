package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
)

// SaleHeaderRequest encabezado tal como lo arma el punto de venta.
type SaleHeaderRequest struct {
	IDVenta        Text          `json:"IdVenta" validate:"required"`
	Sucursal       string        `json:"Sucursal" validate:"required"`
	Vendedor       Text          `json:"Vendedor"`
	Cliente        Text          `json:"Cliente"`
	GrupoCliente   string        `json:"GrupoCliente"`
	TipoDescuento  string        `json:"TipoDescuento"`
	Observaciones  string        `json:"Observaciones"`
	DescuentoExtra money.Lenient `json:"DescuentoExtra"`
	TurnoID        Text          `json:"TurnoId"`
}

// SaleItemRequest renglón de venta.
type SaleItemRequest struct {
	ID        Text          `json:"ID"`
	Producto  string        `json:"Producto" validate:"required"`
	Cantidad  money.Lenient `json:"Cantidad"`
	Precio    money.Lenient `json:"Precio"`
	SubTotal  money.Lenient `json:"SubTotal"`
	Descuento money.Lenient `json:"Descuento"`
	Total     money.Lenient `json:"Total"`
}

// PaymentRequest pago de la venta.
type PaymentRequest struct {
	ID     Text          `json:"Id"`
	Monto  money.Lenient `json:"Monto"`
	Moneda string        `json:"Moneda"`
	Metodo string        `json:"Metodo"`
	Tasa   money.Lenient `json:"Tasa de Cambio"`
}

// RecordSaleRequest body para POST /api/ventas.
type RecordSaleRequest struct {
	Venta    SaleHeaderRequest `json:"venta"`
	Detalles []SaleItemRequest `json:"detalles" validate:"dive"`
	Pagos    []PaymentRequest  `json:"pagos"`
}

// ToEntities separa encabezado, renglones y pagos.
func (r RecordSaleRequest) ToEntities() (*entity.Sale, []*entity.SaleItem, []*entity.Payment) {
	v := r.Venta
	sale := &entity.Sale{
		ID:            v.IDVenta.String(),
		Branch:        strings.TrimSpace(v.Sucursal),
		Seller:        v.Vendedor.String(),
		Client:        v.Cliente.String(),
		ClientGroup:   strings.TrimSpace(v.GrupoCliente),
		DiscountType:  strings.TrimSpace(v.TipoDescuento),
		ExtraDiscount: v.DescuentoExtra.Value(),
		Notes:         v.Observaciones,
		ShiftID:       v.TurnoID.String(),
	}

	items := make([]*entity.SaleItem, 0, len(r.Detalles))
	for _, d := range r.Detalles {
		qty := d.Cantidad.Value()
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		items = append(items, &entity.SaleItem{
			ID:        d.ID.String(),
			Product:   d.Producto,
			Quantity:  qty,
			UnitPrice: d.Precio.Value(),
			Subtotal:  d.SubTotal.Value(),
			Discount:  d.Descuento.Value(),
			Total:     d.Total.Value(),
		})
	}

	payments := make([]*entity.Payment, 0, len(r.Pagos))
	for _, p := range r.Pagos {
		payments = append(payments, &entity.Payment{
			ID:       p.ID.String(),
			Amount:   p.Monto.Value(),
			Currency: p.Moneda,
			Method:   p.Metodo,
			Rate:     p.Tasa.Value(),
		})
	}
	return sale, items, payments
}

// RecordSaleResponse venta registrada.
type RecordSaleResponse struct {
	Success bool   `json:"success"`
	VentaID string `json:"ventaId"`
	Mensaje string `json:"mensaje"`
}

// SaleSummaryDTO venta en listados.
type SaleSummaryDTO struct {
	IDVenta   string          `json:"idVenta"`
	Fecha     string          `json:"fecha"`
	Hora      string          `json:"hora"`
	Cliente   string          `json:"cliente"`
	Vendedor  string          `json:"vendedor"`
	Total     decimal.Decimal `json:"total"`
	Estado    string          `json:"estado"`
	Descuento string          `json:"descuento"`
}

func saleLabel(s *entity.Sale) string {
	if s.StateLabel != "" {
		return s.StateLabel
	}
	if s.IsCancelled() {
		return string(entity.SaleCancelled)
	}
	return "Completada"
}

func clientOrDefault(c string) string {
	if c == "" {
		return entity.DefaultClient
	}
	return c
}

func NewSaleSummaryList(sales []*entity.Sale) []SaleSummaryDTO {
	out := make([]SaleSummaryDTO, 0, len(sales))
	for _, s := range sales {
		out = append(out, SaleSummaryDTO{
			IDVenta:   s.ID,
			Fecha:     s.Date,
			Hora:      s.Time,
			Cliente:   clientOrDefault(s.Client),
			Vendedor:  s.Seller,
			Total:     s.Total,
			Estado:    saleLabel(s),
			Descuento: s.DiscountType,
		})
	}
	return out
}

// SaleListResponse respuesta de GET /api/ventas/turno/:turnoId.
type SaleListResponse struct {
	Success bool             `json:"success"`
	Ventas  []SaleSummaryDTO `json:"ventas"`
}

// SaleHeaderDTO encabezado en el detalle.
type SaleHeaderDTO struct {
	IDVenta           string          `json:"idVenta"`
	Fecha             string          `json:"fecha"`
	Hora              string          `json:"hora"`
	Cliente           string          `json:"cliente"`
	Vendedor          string          `json:"vendedor"`
	Sucursal          string          `json:"sucursal"`
	Estado            string          `json:"estado"`
	TipoDescuento     string          `json:"tipoDescuento"`
	Observaciones     string          `json:"observaciones"`
	Total             decimal.Decimal `json:"total"`
	MotivoCancelacion string          `json:"motivoCancelacion,omitempty"`
}

// SaleItemDTO renglón en el detalle.
type SaleItemDTO struct {
	ID        string          `json:"id"`
	Producto  string          `json:"producto"`
	Cantidad  decimal.Decimal `json:"cantidad"`
	Precio    decimal.Decimal `json:"precio"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Descuento decimal.Decimal `json:"descuento"`
	Total     decimal.Decimal `json:"total"`
	Estado    string          `json:"estado"`
}

// PaymentDTO pago en el detalle.
type PaymentDTO struct {
	ID     string          `json:"id"`
	Monto  decimal.Decimal `json:"monto"`
	Moneda string          `json:"moneda"`
	Metodo string          `json:"metodo"`
	Tasa   decimal.Decimal `json:"tasa"`
	Estado string          `json:"estado"`
}

// SaleDetailResponse respuesta de GET /api/ventas/:id/detalle.
type SaleDetailResponse struct {
	Success bool          `json:"success"`
	Venta   SaleHeaderDTO `json:"venta"`
	Items   []SaleItemDTO `json:"items"`
	Pagos   []PaymentDTO  `json:"pagos"`
}

func NewSaleDetailResponse(s *entity.Sale, items []*entity.SaleItem, payments []*entity.Payment) SaleDetailResponse {
	out := SaleDetailResponse{
		Success: true,
		Venta: SaleHeaderDTO{
			IDVenta:           s.ID,
			Fecha:             s.Date,
			Hora:              s.Time,
			Cliente:           clientOrDefault(s.Client),
			Vendedor:          s.Seller,
			Sucursal:          s.Branch,
			Estado:            saleLabel(s),
			TipoDescuento:     s.DiscountType,
			Observaciones:     s.Notes,
			Total:             s.Total,
			MotivoCancelacion: s.CancelReason,
		},
		Items: make([]SaleItemDTO, 0, len(items)),
		Pagos: make([]PaymentDTO, 0, len(payments)),
	}
	for _, it := range items {
		out.Items = append(out.Items, SaleItemDTO{
			ID:        it.ID,
			Producto:  it.Product,
			Cantidad:  it.Quantity,
			Precio:    it.UnitPrice,
			Subtotal:  it.Subtotal,
			Descuento: it.Discount,
			Total:     it.Total,
			Estado:    string(it.Status),
		})
	}
	for _, p := range payments {
		out.Pagos = append(out.Pagos, PaymentDTO{
			ID:     p.ID,
			Monto:  p.Amount,
			Moneda: p.Currency,
			Metodo: p.Method,
			Tasa:   p.Rate,
			Estado: string(p.Status),
		})
	}
	return out
}

// CancelSaleRequest body para POST /api/ventas/:id/cancelar.
type CancelSaleRequest struct {
	Motivo  string `json:"motivo"`
	Usuario Text   `json:"usuario"`
}

// CancelSaleResponse registros marcados.
type CancelSaleResponse struct {
	Success         bool   `json:"success"`
	Mensaje         string `json:"mensaje"`
	ItemsCancelados int    `json:"itemsCancelados"`
	PagosCancelados int    `json:"pagosCancelados"`
}

// CancelItemRequest body para POST /api/ventas/:id/cancelar-item.
type CancelItemRequest struct {
	ItemID  Text   `json:"itemId" validate:"required"`
	Motivo  string `json:"motivo"`
	Usuario Text   `json:"usuario"`
}

// CancelItemResponse producto cancelado y nuevo total.
type CancelItemResponse struct {
	Success       bool            `json:"success"`
	Mensaje       string          `json:"mensaje"`
	ItemCancelado string          `json:"itemCancelado"`
	NuevoTotal    decimal.Decimal `json:"nuevoTotal"`
}
