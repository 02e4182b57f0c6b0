// Package movements registra entradas y salidas manuales de efectivo.
package movements

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/reconciliation"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
)

// ShiftReader lectura de turnos.
type ShiftReader interface {
	Get(ctx context.Context, shiftID string) (*entity.Shift, error)
}

// MovementsUseCase movimientos de caja.
type MovementsUseCase struct {
	repo   repository.CashMovementRepository
	shifts ShiftReader
	loc    *time.Location
	now    func() time.Time
	log    *logger.Logger
}

func NewMovementsUseCase(repo repository.CashMovementRepository, shifts ShiftReader, loc *time.Location, log *logger.Logger) *MovementsUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MovementsUseCase{repo: repo, shifts: shifts, loc: loc, now: time.Now, log: log.Component("movements")}
}

// Create guarda el movimiento. Con TurnoId la sucursal sale del turno si no
// viene; fecha y hora son las actuales salvo que se envíen.
func (uc *MovementsUseCase) Create(ctx context.Context, m *entity.CashMovement) (string, error) {
	m.Type = strings.TrimSpace(m.Type)
	if m.Type == "" {
		return "", fmt.Errorf("tipo requerido: %w", domain.ErrInvalidInput)
	}
	if !m.Amount.GreaterThan(decimal.Zero) {
		return "", fmt.Errorf("monto debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	if m.Kind() == entity.MovementOther {
		uc.log.Warn().Str("type", m.Type).Msg("tipo de movimiento no reconocido; no afecta el corte")
	}

	m.ShiftID = strings.TrimSpace(m.ShiftID)
	if m.ShiftID != "" && strings.TrimSpace(m.Branch) == "" {
		sh, err := uc.shifts.Get(ctx, m.ShiftID)
		if err != nil {
			return "", err
		}
		m.Branch = sh.Branch
	}
	m.Branch = strings.TrimSpace(m.Branch)
	if m.Branch == "" {
		return "", fmt.Errorf("sucursal o turnoId requerido: %w", domain.ErrInvalidInput)
	}

	now := uc.now().In(uc.loc)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Date == "" {
		m.Date = now.Format(entity.DateLayout)
	}
	if m.Time == "" {
		m.Time = now.Format(entity.TimeLayout)
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return "", err
	}
	uc.log.Info().Str("movement_id", m.ID).Str("type", m.Type).Str("amount", m.Amount.String()).Str("branch", m.Branch).Msg("movimiento registrado")
	return m.ID, nil
}

// ListForShift movimientos del día y sucursal del turno, los mismos que usa el corte.
func (uc *MovementsUseCase) ListForShift(ctx context.Context, shiftID string) (reconciliation.MovementSummary, error) {
	sh, err := uc.shifts.Get(ctx, shiftID)
	if err != nil {
		return reconciliation.MovementSummary{}, err
	}
	list, err := uc.repo.ListByBranchAndDate(ctx, sh.Branch, sh.Date)
	if err != nil {
		return reconciliation.MovementSummary{}, err
	}
	if list == nil {
		list = []*entity.CashMovement{}
	}
	return reconciliation.SummarizeMovements(list), nil
}
