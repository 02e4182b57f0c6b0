// Package sales registra, consulta y cancela ventas con su detalle y pagos.
package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
)

// Estados del seguimiento de registro de una venta.
const (
	RegistrationPending   = "Pendiente"
	RegistrationConfirmed = "Confirmada"
	RegistrationFailed    = "Fallida"
)

// cancelWorkers máximo de ediciones simultáneas al cancelar.
const cancelWorkers = 8

// SalesUseCase acceso al libro de ventas.
type SalesUseCase struct {
	sales    repository.SaleRepository
	items    repository.SaleItemRepository
	payments repository.PaymentRepository
	track    bool
	loc      *time.Location
	now      func() time.Time
	log      *logger.Logger
}

// NewSalesUseCase construye el caso de uso. track activa el seguimiento
// Pendiente/Confirmada/Fallida en el encabezado.
func NewSalesUseCase(sales repository.SaleRepository, items repository.SaleItemRepository,
	payments repository.PaymentRepository, track bool, loc *time.Location, log *logger.Logger) *SalesUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SalesUseCase{
		sales:    sales,
		items:    items,
		payments: payments,
		track:    track,
		loc:      loc,
		now:      time.Now,
		log:      log.Component("sales"),
	}
}

// RecordSale guarda encabezado, renglones y pagos. El encabezado va primero;
// renglones y pagos se escriben en paralelo y cada uno falla por su cuenta. Una
// falla parcial se devuelve tal cual, sin reintentos.
func (uc *SalesUseCase) RecordSale(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem, payments []*entity.Payment) (string, error) {
	sale.ID = strings.TrimSpace(sale.ID)
	if sale.ID == "" {
		return "", fmt.Errorf("IdVenta requerido: %w", domain.ErrInvalidInput)
	}
	_, err := uc.sales.GetByID(ctx, sale.ID)
	switch {
	case err == nil:
		return "", fmt.Errorf("venta %s: %w", sale.ID, domain.ErrDuplicate)
	case !errors.Is(err, domain.ErrNotFound):
		return "", err
	}

	uc.prepare(sale, items, payments)

	registration := ""
	if uc.track {
		registration = RegistrationPending
	}
	if err := uc.sales.Create(ctx, sale, registration); err != nil {
		return "", err
	}

	var g errgroup.Group
	g.Go(func() error { return uc.items.CreateBatch(ctx, items) })
	g.Go(func() error { return uc.payments.CreateBatch(ctx, payments) })
	writeErr := g.Wait()

	if uc.track {
		final := RegistrationConfirmed
		if writeErr != nil {
			final = RegistrationFailed
		}
		if err := uc.sales.SetRegistration(ctx, sale.ID, final); err != nil {
			uc.log.Error().Err(err).Str("sale_id", sale.ID).Str("registration", final).Msg("no se actualizó el estado de registro")
		}
	}
	if writeErr != nil {
		uc.log.Error().Err(writeErr).Str("sale_id", sale.ID).Msg("venta registrada parcialmente")
		return "", fmt.Errorf("venta %s registrada parcialmente: %w", sale.ID, writeErr)
	}
	uc.log.Info().Str("sale_id", sale.ID).Str("total", sale.Total.String()).Int("items", len(items)).Int("payments", len(payments)).Msg("venta registrada")
	return sale.ID, nil
}

// prepare completa valores por defecto y llaves foráneas.
func (uc *SalesUseCase) prepare(sale *entity.Sale, items []*entity.SaleItem, payments []*entity.Payment) {
	if strings.TrimSpace(sale.DiscountType) == "" {
		sale.DiscountType = "Ninguno"
	}
	if sale.AddedBy == "" {
		sale.AddedBy = sale.Seller
	}

	total := decimal.Zero
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.SaleID = sale.ID
		if it.Branch == "" {
			it.Branch = sale.Branch
		}
		if it.Status == "" {
			it.Status = entity.LineActive
		}
		if it.IsActive() {
			total = total.Add(it.Total)
		}
	}
	if len(items) > 0 {
		sale.Total = total
	}

	for _, p := range payments {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.SaleID = sale.ID
		p.Currency = money.NormalizeCurrency(p.Currency)
		if p.Rate.LessThanOrEqual(decimal.Zero) {
			p.Rate = decimal.NewFromInt(1)
		}
		if strings.TrimSpace(p.Method) == "" {
			p.Method = "Efectivo"
		}
		p.Branch = sale.Branch
		p.ClientGroup = sale.ClientGroup
		p.Client = sale.Client
		p.Seller = sale.Seller
		p.Status = entity.LineActive
		p.StateLabel = "Cerrado"
	}
}

// Detail venta con sus renglones y pagos.
type Detail struct {
	Sale     *entity.Sale
	Items    []*entity.SaleItem
	Payments []*entity.Payment
}

// SaleDetail lee encabezado, renglones y pagos en paralelo.
func (uc *SalesUseCase) SaleDetail(ctx context.Context, saleID string) (*Detail, error) {
	var d Detail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Sale, err = uc.sales.GetByID(gctx, saleID)
		return err
	})
	g.Go(func() (err error) {
		d.Items, err = uc.items.ListBySale(gctx, saleID)
		return err
	})
	g.Go(func() (err error) {
		d.Payments, err = uc.payments.ListBySale(gctx, saleID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.Items = ownedItems(d.Items, saleID)
	d.Payments = ownedPayments(d.Payments, saleID)
	return &d, nil
}

// CancelResult renglones y pagos marcados.
type CancelResult struct {
	Items    int
	Payments int
}

// CancelSale marca la venta Cancelada y después cada renglón y pago.
// Repetirla vuelve a marcar los mismos registros.
func (uc *SalesUseCase) CancelSale(ctx context.Context, saleID, reason, operator string) (*CancelResult, error) {
	if _, err := uc.sales.GetByID(ctx, saleID); err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loc)
	audit := fmt.Sprintf("%s - Por: %s - %s %s",
		orDefault(reason, "Sin motivo"), orDefault(operator, "Sistema"),
		now.Format(entity.DateLayout), now.Format(entity.TimeLayout))
	if err := uc.sales.MarkCancelled(ctx, saleID, audit); err != nil {
		return nil, err
	}

	var (
		items    []*entity.SaleItem
		payments []*entity.Payment
	)
	rg, rctx := errgroup.WithContext(ctx)
	rg.Go(func() (err error) {
		items, err = uc.items.ListBySale(rctx, saleID)
		return err
	})
	rg.Go(func() (err error) {
		payments, err = uc.payments.ListBySale(rctx, saleID)
		return err
	})
	if err := rg.Wait(); err != nil {
		return nil, err
	}
	items = ownedItems(items, saleID)
	payments = ownedPayments(payments, saleID)

	itemReason := orDefault(reason, "Venta cancelada")
	var g errgroup.Group
	g.SetLimit(cancelWorkers)
	for _, it := range items {
		g.Go(func() error { return uc.items.MarkCancelled(ctx, it.ID, itemReason) })
	}
	for _, p := range payments {
		g.Go(func() error { return uc.payments.MarkCancelled(ctx, p.ID) })
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("venta %s cancelada parcialmente: %w", saleID, err)
	}
	uc.log.Info().Str("sale_id", saleID).Int("items", len(items)).Int("payments", len(payments)).Msg("venta cancelada")
	return &CancelResult{Items: len(items), Payments: len(payments)}, nil
}

// CancelItemResult producto cancelado y total recalculado.
type CancelItemResult struct {
	Product  string
	NewTotal decimal.Decimal
}

// CancelItem cancela un renglón y recalcula el total con los demás renglones activos.
func (uc *SalesUseCase) CancelItem(ctx context.Context, saleID, itemID, reason, operator string) (*CancelItemResult, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, fmt.Errorf("itemId requerido: %w", domain.ErrInvalidInput)
	}
	items, err := uc.items.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	items = ownedItems(items, saleID)

	var target *entity.SaleItem
	total := decimal.Zero
	for _, it := range items {
		if it.ID == itemID {
			target = it
			continue
		}
		if it.IsActive() {
			total = total.Add(it.Total)
		}
	}
	if target == nil {
		return nil, fmt.Errorf("item %s en venta %s: %w", itemID, saleID, domain.ErrNotFound)
	}

	audit := fmt.Sprintf("%s - Por: %s", orDefault(reason, "Sin motivo"), orDefault(operator, "Sistema"))
	if err := uc.items.MarkCancelled(ctx, itemID, audit); err != nil {
		return nil, err
	}
	if err := uc.sales.UpdateTotal(ctx, saleID, total); err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", saleID).Str("item_id", itemID).Str("new_total", total.String()).Msg("renglón cancelado")
	return &CancelItemResult{Product: target.Product, NewTotal: total}, nil
}

// ListByShift ventas del turno, de la más reciente a la más antigua por ID.
func (uc *SalesUseCase) ListByShift(ctx context.Context, shiftID string) ([]*entity.Sale, error) {
	list, err := uc.sales.ListByShift(ctx, strings.TrimSpace(shiftID))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func ownedItems(items []*entity.SaleItem, saleID string) []*entity.SaleItem {
	out := items[:0:0]
	for _, it := range items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out
}

func ownedPayments(payments []*entity.Payment, saleID string) []*entity.Payment {
	out := payments[:0:0]
	for _, p := range payments {
		if p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
