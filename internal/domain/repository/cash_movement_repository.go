package repository

import (
	"context"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// CashMovementRepository movimientos manuales de efectivo.
type CashMovementRepository interface {
	Create(ctx context.Context, m *entity.CashMovement) error
	// ListByBranchAndDate movimientos de la sucursal en la fecha MM/DD/YYYY.
	ListByBranchAndDate(ctx context.Context, branch, date string) ([]*entity.CashMovement, error)
}
