// Package memory implementa los repositorios en memoria. Lo usan las pruebas de
// los casos de uso y del API; no se conecta en producción.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
)

var (
	_ repository.ShiftRepository        = (*ShiftRepo)(nil)
	_ repository.SaleRepository         = (*SaleRepo)(nil)
	_ repository.SaleItemRepository     = (*SaleItemRepo)(nil)
	_ repository.PaymentRepository      = (*PaymentRepo)(nil)
	_ repository.CashMovementRepository = (*CashMovementRepo)(nil)
)

// Store estado compartido por los repositorios en memoria. Fail fuerza un error
// por operación ("ventas.Create", "pagos.CreateBatch", ...).
type Store struct {
	mu           sync.Mutex
	shifts       []*entity.Shift
	sales        []*entity.Sale
	registration map[string]string
	items        []*entity.SaleItem
	payments     []*entity.Payment
	movements    []*entity.CashMovement
	seq          int
	fail         map[string]error
	calls        map[string]int
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{registration: map[string]string{}, fail: map[string]error{}, calls: map[string]int{}}
}

// FailOn hace que op devuelva err (nil limpia).
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

// Calls veces que se invocó op.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Registration último estado de registro escrito para la venta.
func (s *Store) Registration(saleID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registration[saleID]
}

// enter cuenta la llamada y devuelve la falla configurada. Requiere s.mu tomado.
func (s *Store) enter(op string) error {
	s.calls[op]++
	return s.fail[op]
}

func (s *Store) Shifts() *ShiftRepo           { return &ShiftRepo{s} }
func (s *Store) Sales() *SaleRepo             { return &SaleRepo{s} }
func (s *Store) Items() *SaleItemRepo         { return &SaleItemRepo{s} }
func (s *Store) Payments() *PaymentRepo       { return &PaymentRepo{s} }
func (s *Store) Movements() *CashMovementRepo { return &CashMovementRepo{s} }

// ── Turnos ───────────────────────────────────────────────────────────────────

type ShiftRepo struct{ s *Store }

func (r *ShiftRepo) Create(_ context.Context, sh *entity.Shift) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("turnos.Create"); err != nil {
		return "", err
	}
	cp := *sh
	if cp.ID == "" {
		r.s.seq++
		cp.ID = "T-" + strconv.Itoa(r.s.seq)
	}
	r.s.shifts = append(r.s.shifts, &cp)
	return cp.ID, nil
}

func (r *ShiftRepo) GetByID(_ context.Context, id string) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("turnos.GetByID"); err != nil {
		return nil, err
	}
	for _, sh := range r.s.shifts {
		if sh.ID == id {
			cp := *sh
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("turno %s: %w", id, domain.ErrNotFound)
}

func (r *ShiftRepo) ListOpen(_ context.Context) ([]*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("turnos.ListOpen"); err != nil {
		return nil, err
	}
	var out []*entity.Shift
	for _, sh := range r.s.shifts {
		if sh.IsOpen() {
			cp := *sh
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ShiftRepo) Close(_ context.Context, id string, c entity.ShiftClosing) error {
	return r.update("turnos.Close", id, func(sh *entity.Shift) {
		sh.State = entity.ShiftClosed
		sh.ClosedAt = c.ClosedAt
		sh.Closing = c
	})
}

func (r *ShiftRepo) CloseWithFigures(_ context.Context, id string, c entity.ShiftClosing, f entity.ReconciliationFigures) error {
	return r.update("turnos.CloseWithFigures", id, func(sh *entity.Shift) {
		sh.State = entity.ShiftClosed
		sh.ClosedAt = c.ClosedAt
		sh.Closing = c
		sh.Figures = f
	})
}

func (r *ShiftRepo) Reopen(_ context.Context, id string) error {
	return r.update("turnos.Reopen", id, func(sh *entity.Shift) {
		sh.State = entity.ShiftOpen
		sh.ClosedAt = ""
		sh.Closing.ClosedAt = ""
	})
}

func (r *ShiftRepo) update(op, id string, fn func(*entity.Shift)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(op); err != nil {
		return err
	}
	for _, sh := range r.s.shifts {
		if sh.ID == id {
			fn(sh)
			return nil
		}
	}
	return fmt.Errorf("turno %s: %w", id, domain.ErrNotFound)
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type SaleRepo struct{ s *Store }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale, registration string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ventas.Create"); err != nil {
		return err
	}
	cp := *sale
	r.s.sales = append(r.s.sales, &cp)
	if registration != "" {
		r.s.registration[sale.ID] = registration
	}
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ventas.GetByID"); err != nil {
		return nil, err
	}
	for _, sale := range r.s.sales {
		if sale.ID == id {
			cp := *sale
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
}

func (r *SaleRepo) ListByShift(_ context.Context, shiftID string) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ventas.ListByShift"); err != nil {
		return nil, err
	}
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.ShiftID == shiftID {
			cp := *sale
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SaleRepo) MarkCancelled(_ context.Context, id, reason string) error {
	return r.update("ventas.MarkCancelled", id, func(sale *entity.Sale) {
		sale.State = entity.SaleCancelled
		sale.StateLabel = string(entity.SaleCancelled)
		sale.CancelReason = reason
	})
}

func (r *SaleRepo) UpdateTotal(_ context.Context, id string, total decimal.Decimal) error {
	return r.update("ventas.UpdateTotal", id, func(sale *entity.Sale) { sale.Total = total })
}

func (r *SaleRepo) SetRegistration(_ context.Context, id, registration string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ventas.SetRegistration"); err != nil {
		return err
	}
	r.s.registration[id] = registration
	return nil
}

func (r *SaleRepo) update(op, id string, fn func(*entity.Sale)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(op); err != nil {
		return err
	}
	for _, sale := range r.s.sales {
		if sale.ID == id {
			fn(sale)
			return nil
		}
	}
	return nil // Edit sobre una llave inexistente no falla en el almacén
}

// ── Detalle ──────────────────────────────────────────────────────────────────

type SaleItemRepo struct{ s *Store }

func (r *SaleItemRepo) CreateBatch(_ context.Context, items []*entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("detalle.CreateBatch"); err != nil {
		return err
	}
	for _, it := range items {
		cp := *it
		r.s.items = append(r.s.items, &cp)
	}
	return nil
}

func (r *SaleItemRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	return r.ListBySales(ctx, []string{saleID})
}

func (r *SaleItemRepo) ListBySales(_ context.Context, saleIDs []string) ([]*entity.SaleItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("detalle.List"); err != nil {
		return nil, err
	}
	var out []*entity.SaleItem
	for _, it := range r.s.items {
		if slices.Contains(saleIDs, it.SaleID) {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SaleItemRepo) MarkCancelled(_ context.Context, itemID, reason string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("detalle.MarkCancelled"); err != nil {
		return err
	}
	for _, it := range r.s.items {
		if it.ID == itemID {
			it.Status = entity.LineCancelled
			it.CancelReason = reason
		}
	}
	return nil
}

// ── Pagos ────────────────────────────────────────────────────────────────────

type PaymentRepo struct{ s *Store }

func (r *PaymentRepo) CreateBatch(_ context.Context, payments []*entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("pagos.CreateBatch"); err != nil {
		return err
	}
	for _, p := range payments {
		cp := *p
		r.s.payments = append(r.s.payments, &cp)
	}
	return nil
}

func (r *PaymentRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.Payment, error) {
	return r.ListBySales(ctx, []string{saleID})
}

func (r *PaymentRepo) ListBySales(_ context.Context, saleIDs []string) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("pagos.List"); err != nil {
		return nil, err
	}
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if slices.Contains(saleIDs, p.SaleID) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *PaymentRepo) MarkCancelled(_ context.Context, paymentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("pagos.MarkCancelled"); err != nil {
		return err
	}
	for _, p := range r.s.payments {
		if p.ID == paymentID {
			p.Status = entity.LineCancelled
			p.StateLabel = string(entity.LineCancelled)
		}
	}
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type CashMovementRepo struct{ s *Store }

func (r *CashMovementRepo) Create(_ context.Context, m *entity.CashMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("movimientos.Create"); err != nil {
		return err
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *CashMovementRepo) ListByBranchAndDate(_ context.Context, branch, date string) ([]*entity.CashMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("movimientos.List"); err != nil {
		return nil, err
	}
	var out []*entity.CashMovement
	for _, m := range r.s.movements {
		if m.Branch == branch && m.Date == date {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}
