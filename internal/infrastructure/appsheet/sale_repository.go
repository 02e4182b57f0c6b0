package appsheet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepository)(nil)
	_ repository.SaleItemRepository = (*SaleItemRepository)(nil)
	_ repository.PaymentRepository  = (*PaymentRepository)(nil)
)

const (
	colSaleID           = "IdVenta"
	colSaleState        = "Estado Venta"
	colSaleTotal        = "Total Venta"
	colSaleReason       = "Motivo Cancelacion"
	colSaleRegistration = "Estado Registro"
	colSaleFK           = "Ventas" // llave foránea en Detalle Venta y Pagos
	colItemID           = "ID"
	colItemStatus       = "Status"
	colPaymentID        = "Id"
	colPaymentState     = "Estado"
)

// ── Ventas ───────────────────────────────────────────────────────────────────

// SaleRepository implementa repository.SaleRepository sobre Ventas.
type SaleRepository struct {
	c *Client
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(c *Client) *SaleRepository { return &SaleRepository{c: c} }

// Create agrega el encabezado. registration vacío omite la columna de seguimiento.
func (r *SaleRepository) Create(ctx context.Context, s *entity.Sale, registration string) error {
	row := Row{
		colSaleID:         s.ID,
		"Sucursal":        s.Branch,
		"Vendedor":        s.Seller,
		"Cliente":         s.Client,
		"TipoDescuento":   s.DiscountType,
		"Observaciones":   s.Notes,
		"Descuento Extra": num(s.ExtraDiscount),
		"Agregado por":    s.AddedBy,
		"TurnoId":         s.ShiftID,
		colSaleTotal:      num(s.Total),
	}
	if s.StateLabel != "" {
		row[colSaleState] = s.StateLabel
	}
	if registration != "" {
		row[colSaleRegistration] = registration
	}
	if _, err := r.c.Add(ctx, TableSales, row); err != nil {
		return fmt.Errorf("ventas: registrar %s: %w", s.ID, err)
	}
	return nil
}

// GetByID busca la venta por IdVenta.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	rows, err := r.c.Find(ctx, TableSales, Eq(colSaleID, id))
	if err != nil {
		return nil, fmt.Errorf("ventas: buscar %s: %w", id, err)
	}
	for _, row := range rows {
		if row.Str(colSaleID, "ID") == id {
			return toSale(row), nil
		}
	}
	return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
}

// ListByShift ventas con TurnoId = shiftID.
func (r *SaleRepository) ListByShift(ctx context.Context, shiftID string) ([]*entity.Sale, error) {
	rows, err := r.c.Find(ctx, TableSales, Eq("TurnoId", shiftID))
	if err != nil {
		return nil, fmt.Errorf("ventas: listar turno %s: %w", shiftID, err)
	}
	out := make([]*entity.Sale, 0, len(rows))
	for _, row := range rows {
		if row.Str("TurnoId") != shiftID {
			continue
		}
		out = append(out, toSale(row))
	}
	return out, nil
}

// MarkCancelled Estado Venta = Cancelada con el motivo de auditoría.
func (r *SaleRepository) MarkCancelled(ctx context.Context, id, reason string) error {
	row := Row{colSaleID: id, colSaleState: string(entity.SaleCancelled), colSaleReason: reason}
	if _, err := r.c.Edit(ctx, TableSales, row); err != nil {
		return fmt.Errorf("ventas: cancelar %s: %w", id, err)
	}
	return nil
}

// UpdateTotal escribe el total recalculado.
func (r *SaleRepository) UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error {
	if _, err := r.c.Edit(ctx, TableSales, Row{colSaleID: id, colSaleTotal: num(total)}); err != nil {
		return fmt.Errorf("ventas: actualizar total %s: %w", id, err)
	}
	return nil
}

// SetRegistration marca el avance del registro (Pendiente, Confirmada, Fallida).
func (r *SaleRepository) SetRegistration(ctx context.Context, id, registration string) error {
	if _, err := r.c.Edit(ctx, TableSales, Row{colSaleID: id, colSaleRegistration: registration}); err != nil {
		return fmt.Errorf("ventas: estado de registro %s: %w", id, err)
	}
	return nil
}

func toSale(row Row) *entity.Sale {
	label := row.Str(colSaleState, "Estado")
	return &entity.Sale{
		ID:            row.Str(colSaleID, "ID"),
		Date:          NormalizeDate(row.Str("Fecha")),
		Time:          row.Str("Hora", "Hora de Venta"),
		Branch:        row.Str("Sucursal"),
		Seller:        row.Str("Vendedor"),
		Client:        row.StrOr(entity.DefaultClient, "Cliente"),
		ClientGroup:   row.Str("Grupo Cliente"),
		DiscountType:  row.Str("TipoDescuento"),
		ExtraDiscount: row.Dec("Descuento Extra"),
		Notes:         row.Str("Observaciones"),
		ShiftID:       row.Str("TurnoId"),
		State:         entity.ParseSaleState(label),
		StateLabel:    label,
		CancelReason:  row.Str(colSaleReason),
		Total:         row.Dec(colSaleTotal, "Total"),
		AddedBy:       row.Str("Agregado por"),
	}
}

// ── Detalle Venta ────────────────────────────────────────────────────────────

// SaleItemRepository implementa repository.SaleItemRepository sobre Detalle Venta.
type SaleItemRepository struct {
	c *Client
}

// NewSaleItemRepository construye el repositorio.
func NewSaleItemRepository(c *Client) *SaleItemRepository { return &SaleItemRepository{c: c} }

// CreateBatch agrega todos los renglones en una llamada.
func (r *SaleItemRepository) CreateBatch(ctx context.Context, items []*entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			colItemID:   it.ID,
			colSaleFK:   it.SaleID,
			"Producto":  it.Product,
			"Cantidad":  num(it.Quantity),
			"Precio":    num(it.UnitPrice),
			"SubTotal":  num(it.Subtotal),
			"Descuento": num(it.Discount),
			"Total":     num(it.Total),
			"Sucursal":  it.Branch,
		})
	}
	if _, err := r.c.Add(ctx, TableSaleItems, rows...); err != nil {
		return fmt.Errorf("detalle venta: registrar %d renglones: %w", len(rows), err)
	}
	return nil
}

// ListBySale renglones de una venta.
func (r *SaleItemRepository) ListBySale(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	return r.ListBySales(ctx, []string{saleID})
}

// ListBySales renglones de varias ventas, consultando en bloques.
func (r *SaleItemRepository) ListBySales(ctx context.Context, saleIDs []string) ([]*entity.SaleItem, error) {
	rows, err := findByForeignKey(ctx, r.c, TableSaleItems, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("detalle venta: %w", err)
	}
	out := make([]*entity.SaleItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSaleItem(row))
	}
	return out, nil
}

// MarkCancelled Status = Cancelado.
func (r *SaleItemRepository) MarkCancelled(ctx context.Context, itemID, reason string) error {
	row := Row{colItemID: itemID, colItemStatus: string(entity.LineCancelled), colSaleReason: reason}
	if _, err := r.c.Edit(ctx, TableSaleItems, row); err != nil {
		return fmt.Errorf("detalle venta: cancelar %s: %w", itemID, err)
	}
	return nil
}

func toSaleItem(row Row) *entity.SaleItem {
	qty := row.Dec("Cantidad")
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}
	return &entity.SaleItem{
		ID:           row.Str(colItemID),
		SaleID:       row.Str(colSaleFK),
		Product:      row.Str("Producto"),
		Quantity:     qty,
		UnitPrice:    row.Dec("Precio"),
		Subtotal:     row.Dec("SubTotal"),
		Discount:     row.Dec("Descuento"),
		Total:        row.Dec("Total"),
		Branch:       row.Str("Sucursal"),
		Status:       entity.ParseLineStatus(row.Str(colItemStatus, "Estado")),
		CancelReason: row.Str(colSaleReason),
	}
}

// ── Pagos ────────────────────────────────────────────────────────────────────

// PaymentRepository implementa repository.PaymentRepository sobre Pagos.
type PaymentRepository struct {
	c *Client
}

// NewPaymentRepository construye el repositorio.
func NewPaymentRepository(c *Client) *PaymentRepository { return &PaymentRepository{c: c} }

// CreateBatch agrega todos los pagos en una llamada.
func (r *PaymentRepository) CreateBatch(ctx context.Context, payments []*entity.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	rows := make([]Row, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, Row{
			colPaymentID:         p.ID,
			colSaleFK:            p.SaleID,
			"Monto":              num(p.Amount),
			"Moneda":             p.Currency,
			"Metodo":             p.Method,
			"Tasa de Cambio":     num(p.Rate),
			"SucursaldeRegistro": p.Branch,
			"Grupo Cliente":      p.ClientGroup,
			"Cliente":            p.Client,
			"Vendedor":           p.Seller,
			colPaymentState:      p.StateLabel,
		})
	}
	if _, err := r.c.Add(ctx, TablePayments, rows...); err != nil {
		return fmt.Errorf("pagos: registrar %d pagos: %w", len(rows), err)
	}
	return nil
}

// ListBySale pagos de una venta.
func (r *PaymentRepository) ListBySale(ctx context.Context, saleID string) ([]*entity.Payment, error) {
	return r.ListBySales(ctx, []string{saleID})
}

// ListBySales pagos de varias ventas, consultando en bloques.
func (r *PaymentRepository) ListBySales(ctx context.Context, saleIDs []string) ([]*entity.Payment, error) {
	rows, err := findByForeignKey(ctx, r.c, TablePayments, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("pagos: %w", err)
	}
	out := make([]*entity.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPayment(row))
	}
	return out, nil
}

// MarkCancelled Estado = Cancelado.
func (r *PaymentRepository) MarkCancelled(ctx context.Context, paymentID string) error {
	row := Row{colPaymentID: paymentID, colPaymentState: string(entity.LineCancelled)}
	if _, err := r.c.Edit(ctx, TablePayments, row); err != nil {
		return fmt.Errorf("pagos: cancelar %s: %w", paymentID, err)
	}
	return nil
}

func toPayment(row Row) *entity.Payment {
	rate := row.Dec("Tasa de Cambio")
	if rate.LessThanOrEqual(decimal.Zero) {
		rate = decimal.NewFromInt(1)
	}
	label := row.StrOr(string(entity.LineActive), colPaymentState)
	return &entity.Payment{
		ID:          row.Str(colPaymentID),
		SaleID:      row.Str(colSaleFK),
		Amount:      row.Dec("Monto"),
		Currency:    row.StrOr("MXN", "Moneda"),
		Method:      row.StrOr("Efectivo", "Metodo"),
		Rate:        rate,
		Branch:      row.Str("SucursaldeRegistro"),
		ClientGroup: row.Str("Grupo Cliente"),
		Client:      row.Str("Cliente"),
		Seller:      row.Str("Vendedor"),
		Status:      entity.ParseLineStatus(label),
		StateLabel:  label,
	}
}

// findByForeignKey filas de table cuya columna Ventas está en ids. El filtro del
// almacén se vuelve a comprobar localmente.
func findByForeignKey(ctx context.Context, c *Client, table string, ids []string) ([]Row, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	var out []Row
	for start := 0; start < len(unique); start += inChunk {
		chunk := unique[start:min(start+inChunk, len(unique))]
		want := make(map[string]bool, len(chunk))
		for _, id := range chunk {
			want[id] = true
		}
		rows, err := c.Find(ctx, table, In(colSaleFK, chunk))
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if want[row.Str(colSaleFK)] {
				out = append(out, row)
			}
		}
	}
	return out, nil
}
