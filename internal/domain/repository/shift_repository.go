package repository

import (
	"context"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// ShiftRepository turnos de caja (tabla AbrirTurno).
type ShiftRepository interface {
	// Create guarda un turno abierto y devuelve el ID asignado por el almacén ("" si no asignó).
	Create(ctx context.Context, s *entity.Shift) (string, error)
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.Shift, error)
	ListOpen(ctx context.Context) ([]*entity.Shift, error)
	Close(ctx context.Context, id string, closing entity.ShiftClosing) error
	// CloseWithFigures guarda conteo, agregados y diferencias en una sola edición.
	CloseWithFigures(ctx context.Context, id string, closing entity.ShiftClosing, figures entity.ReconciliationFigures) error
	// Reopen vuelve el turno a Abierto y borra solo la hora de cierre.
	Reopen(ctx context.Context, id string) error
}
