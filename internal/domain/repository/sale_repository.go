package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// SaleRepository encabezados de venta (tabla Ventas).
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale, registration string) error
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListByShift(ctx context.Context, shiftID string) ([]*entity.Sale, error)
	MarkCancelled(ctx context.Context, id, reason string) error
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error
	SetRegistration(ctx context.Context, id, registration string) error
}

// SaleItemRepository renglones de venta (tabla Detalle Venta).
type SaleItemRepository interface {
	CreateBatch(ctx context.Context, items []*entity.SaleItem) error
	ListBySale(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	ListBySales(ctx context.Context, saleIDs []string) ([]*entity.SaleItem, error)
	MarkCancelled(ctx context.Context, itemID, reason string) error
}

// PaymentRepository pagos (tabla Pagos).
type PaymentRepository interface {
	CreateBatch(ctx context.Context, payments []*entity.Payment) error
	ListBySale(ctx context.Context, saleID string) ([]*entity.Payment, error)
	ListBySales(ctx context.Context, saleIDs []string) ([]*entity.Payment, error)
	MarkCancelled(ctx context.Context, paymentID string) error
}
