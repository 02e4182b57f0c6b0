// Package shift abre, cierra y reabre turnos de caja.
package shift

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
	"github.com/diegoleonuniline/umo-pos-api/pkg/textfold"
)

// Authorizer valida credenciales de supervisor.
type Authorizer interface {
	Authorize(ctx context.Context, cred *entity.Credential) (*entity.User, error)
	DisplayName(ctx context.Context, employeeID string) string
}

// ShiftUseCase ciclo de vida del turno: Abierto -> Cerrado -> Abierto.
type ShiftUseCase struct {
	repo    repository.ShiftRepository
	auth    Authorizer
	archive ports.ClosureArchive // opcional
	rates   entity.ExchangeRates
	loc     *time.Location
	now     func() time.Time
	log     *logger.Logger
}

// NewShiftUseCase construye el caso de uso. rates son las tasas por defecto al abrir.
func NewShiftUseCase(repo repository.ShiftRepository, auth Authorizer, archive ports.ClosureArchive,
	rates entity.ExchangeRates, loc *time.Location, log *logger.Logger) *ShiftUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ShiftUseCase{
		repo:    repo,
		auth:    auth,
		archive: archive,
		rates:   rates,
		loc:     loc,
		now:     time.Now,
		log:     log.Component("shift"),
	}
}

// OpenInput datos de apertura. Con Denominations el efectivo inicial es su total.
type OpenInput struct {
	Operator      string
	OperatorID    string
	Branch        string
	Opening       entity.Balances
	Denominations money.Counts
	Rates         entity.ExchangeRates
}

// Open crea un turno Abierto. Devuelve el ID asignado por el almacén o TRN-<milisegundos>.
func (uc *ShiftUseCase) Open(ctx context.Context, in OpenInput) (string, error) {
	if strings.TrimSpace(in.Operator) == "" || strings.TrimSpace(in.Branch) == "" {
		return "", fmt.Errorf("usuario y sucursal son requeridos: %w", domain.ErrInvalidInput)
	}
	now := uc.now().In(uc.loc)
	opening := in.Opening
	if !in.Denominations.IsZero() {
		opening.CashMXN = money.TotalMXN(in.Denominations)
	}

	s := &entity.Shift{
		ID:         "TRN-" + strconv.FormatInt(now.UnixMilli(), 10),
		Date:       now.Format(entity.DateLayout),
		OpenedAt:   now.Format(entity.TimeLayout),
		Operator:   strings.TrimSpace(in.Operator),
		OperatorID: strings.TrimSpace(in.OperatorID),
		Branch:     strings.TrimSpace(in.Branch),
		State:      entity.ShiftOpen,
		Opening:    opening,
		Rates: entity.ExchangeRates{
			USD: orDefault(in.Rates.USD, uc.rates.USD),
			CAD: orDefault(in.Rates.CAD, uc.rates.CAD),
			EUR: orDefault(in.Rates.EUR, uc.rates.EUR),
		},
	}
	assigned, err := uc.repo.Create(ctx, s)
	if err != nil {
		return "", err
	}
	if assigned != "" {
		s.ID = assigned
	}
	uc.log.Info().Str("shift_id", s.ID).Str("branch", s.Branch).Str("operator", s.Operator).Msg("turno abierto")
	return s.ID, nil
}

func orDefault(v, def decimal.Decimal) decimal.Decimal {
	if v.GreaterThan(decimal.Zero) {
		return v
	}
	return def
}

// CloseInput conteo físico al cierre.
type CloseInput struct {
	ShiftID       string
	Denominations money.Counts
	Foreign       entity.ForeignCounts
	Channels      entity.ChannelTotals
	Notes         string
}

// Close pasa un turno Abierto a Cerrado y devuelve el total en pesos contado.
func (uc *ShiftUseCase) Close(ctx context.Context, in CloseInput) (decimal.Decimal, error) {
	s, err := uc.get(ctx, in.ShiftID)
	if err != nil {
		return decimal.Zero, err
	}
	if !s.IsOpen() {
		return decimal.Zero, fmt.Errorf("turno %s ya está cerrado: %w", s.ID, domain.ErrConflict)
	}
	closing := uc.closing(in.Denominations, in.Foreign, in.Channels, in.Notes)
	if err := uc.repo.Close(ctx, s.ID, closing); err != nil {
		return decimal.Zero, err
	}
	uc.log.Info().Str("shift_id", s.ID).Str("total_mxn", closing.TotalMXN.String()).Msg("turno cerrado")
	return closing.TotalMXN, nil
}

// CloseWithReconciliation guarda conteo, agregados y diferencias en una sola
// edición. Acepta turnos abiertos o cerrados (un corte se puede repetir tras
// reabrir). Si viene credencial debe ser de supervisor; devuelve su ID.
func (uc *ShiftUseCase) CloseWithReconciliation(ctx context.Context, shiftID string, closing entity.ShiftClosing,
	figures entity.ReconciliationFigures, cred *entity.Credential) (string, error) {
	s, err := uc.get(ctx, shiftID)
	if err != nil {
		return "", err
	}
	if !cred.Empty() {
		u, err := uc.auth.Authorize(ctx, cred)
		if err != nil {
			return "", err
		}
		figures.AuthorizedBy = u.ID
	}
	if closing.ClosedAt == "" {
		closing.ClosedAt = uc.now().In(uc.loc).Format(entity.TimeLayout)
	}
	closing.TotalMXN = money.TotalMXN(closing.Denominations)
	if err := uc.repo.CloseWithFigures(ctx, s.ID, closing, figures); err != nil {
		return "", err
	}
	uc.log.Info().
		Str("shift_id", s.ID).
		Str("variance_mxn", figures.Variance.CashMXN.String()).
		Str("authorized_by", figures.AuthorizedBy).
		Msg("corte guardado")
	return figures.AuthorizedBy, nil
}

// Reopen pasa un turno Cerrado a Abierto. La credencial de supervisor es
// obligatoria y se valida antes de tocar el turno. Solo se borra la hora de cierre.
func (uc *ShiftUseCase) Reopen(ctx context.Context, shiftID string, cred *entity.Credential) error {
	u, err := uc.auth.Authorize(ctx, cred)
	if err != nil {
		return err
	}
	s, err := uc.get(ctx, shiftID)
	if err != nil {
		return err
	}
	if s.IsOpen() {
		return fmt.Errorf("turno %s ya está abierto: %w", s.ID, domain.ErrConflict)
	}
	if err := uc.repo.Reopen(ctx, s.ID); err != nil {
		return err
	}
	if uc.archive != nil {
		if err := uc.archive.RecordReopen(ctx, s.ID, u.ID, uc.now()); err != nil {
			uc.log.Warn().Err(err).Str("shift_id", s.ID).Msg("no se registró la reapertura en el historial")
		}
	}
	uc.log.Info().Str("shift_id", s.ID).Str("authorized_by", u.ID).Msg("turno reabierto")
	return nil
}

// ActiveFor turno abierto de la sucursal cuyo operador coincide con el ID o con
// el nombre del empleado. nil si no hay.
func (uc *ShiftUseCase) ActiveFor(ctx context.Context, operator, branch string) (*entity.Shift, error) {
	open, err := uc.repo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	name := uc.auth.DisplayName(ctx, operator)
	for _, s := range open {
		if !s.IsOpen() || !textfold.Equal(s.Branch, branch) {
			continue
		}
		if textfold.Equal(s.Operator, operator) || (name != "" && textfold.Equal(s.Operator, name)) {
			return s, nil
		}
	}
	return nil, nil
}

// Get turno por ID.
func (uc *ShiftUseCase) Get(ctx context.Context, shiftID string) (*entity.Shift, error) {
	return uc.get(ctx, shiftID)
}

func (uc *ShiftUseCase) get(ctx context.Context, shiftID string) (*entity.Shift, error) {
	shiftID = strings.TrimSpace(shiftID)
	if shiftID == "" {
		return nil, fmt.Errorf("turnoId requerido: %w", domain.ErrInvalidInput)
	}
	s, err := uc.repo.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("turno %s: %w", shiftID, domain.ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (uc *ShiftUseCase) closing(d money.Counts, f entity.ForeignCounts, ch entity.ChannelTotals, notes string) entity.ShiftClosing {
	return entity.ShiftClosing{
		ClosedAt:      uc.now().In(uc.loc).Format(entity.TimeLayout),
		Denominations: d,
		TotalMXN:      money.TotalMXN(d),
		Foreign:       f,
		Channels:      ch,
		Notes:         strings.TrimSpace(notes),
	}
}
