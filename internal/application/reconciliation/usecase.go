// Package reconciliation arma el corte de caja de un turno leyendo del almacén
// y lo confirma guardando conteo, agregados y diferencias.
package reconciliation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/reconciliation"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
)

// ShiftCloser lectura y cierre de turnos.
type ShiftCloser interface {
	Get(ctx context.Context, shiftID string) (*entity.Shift, error)
	CloseWithReconciliation(ctx context.Context, shiftID string, closing entity.ShiftClosing,
		figures entity.ReconciliationFigures, cred *entity.Credential) (string, error)
}

// Overrides sustituyen datos del turno al armar el reporte. Sucursal y fecha
// cambian qué movimientos se leen; usuario solo cambia el encabezado.
type Overrides struct {
	Branch   string
	Operator string
	Date     string
}

// Deps dependencias del caso de uso. Archive y Renderer son opcionales.
type Deps struct {
	Shifts    ShiftCloser
	Sales     repository.SaleRepository
	Items     repository.SaleItemRepository
	Payments  repository.PaymentRepository
	Movements repository.CashMovementRepository
	Archive   ports.ClosureArchive
	Renderer  ports.ReportRenderer
}

// ReconciliationUseCase corte de caja.
type ReconciliationUseCase struct {
	Deps
	requireAuth bool
	now         func() time.Time
	log         *logger.Logger
}

// NewReconciliationUseCase construye el caso de uso. Con requireAuthOnVariance
// un corte con diferencias exige credencial de supervisor.
func NewReconciliationUseCase(deps Deps, requireAuthOnVariance bool, log *logger.Logger) *ReconciliationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReconciliationUseCase{
		Deps:        deps,
		requireAuth: requireAuthOnVariance,
		now:         time.Now,
		log:         log.Component("reconciliation"),
	}
}

// BuildReport arma el corte sin modificar el turno. Cualquier lectura fallida
// aborta el reporte completo.
func (uc *ReconciliationUseCase) BuildReport(ctx context.Context, shiftID string, ov Overrides) (*reconciliation.Report, error) {
	sh, err := uc.Shifts.Get(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	view := *sh
	if v := strings.TrimSpace(ov.Branch); v != "" {
		view.Branch = v
	}
	if v := strings.TrimSpace(ov.Date); v != "" {
		view.Date = v
	}
	if v := strings.TrimSpace(ov.Operator); v != "" {
		view.Operator = v
	}

	in := reconciliation.Inputs{Shift: &view}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Sales, err = uc.Sales.ListByShift(gctx, sh.ID)
		return err
	})
	g.Go(func() (err error) {
		in.Movements, err = uc.Movements.ListByBranchAndDate(gctx, view.Branch, view.Date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("corte %s: %w", sh.ID, err)
	}

	ids := make([]string, 0, len(in.Sales))
	for _, s := range in.Sales {
		if !s.IsCancelled() {
			ids = append(ids, s.ID)
		}
	}
	if len(ids) > 0 {
		g, gctx = errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			in.Payments, err = uc.Payments.ListBySales(gctx, ids)
			return err
		})
		g.Go(func() (err error) {
			in.Items, err = uc.Items.ListBySales(gctx, ids)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("corte %s: %w", sh.ID, err)
		}
	}

	r := reconciliation.Build(in)
	uc.log.Debug().
		Str("shift_id", sh.ID).
		Int("sales", r.Sales.NumSales).
		Int("payments", r.Payments.Count).
		Str("expected_mxn", r.Expected.CashMXN.String()).
		Msg("corte calculado")
	return &r, nil
}

// ClosureResult contado contra esperado por divisa.
type ClosureResult struct {
	ShiftID      string
	Comparison   reconciliation.Comparison
	Figures      entity.ReconciliationFigures
	AuthorizedBy string
	Balanced     bool
}

// CommitReport cierra el turno con el conteo físico. prior son los agregados
// que el cliente recibió del reporte; sin ellos se recalcula el reporte.
func (uc *ReconciliationUseCase) CommitReport(ctx context.Context, shiftID string, count reconciliation.Count,
	prior *entity.ReconciliationFigures, cred *entity.Credential) (*ClosureResult, error) {
	sh, err := uc.Shifts.Get(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	var figures entity.ReconciliationFigures
	if prior != nil {
		figures = *prior
	} else {
		r, err := uc.BuildReport(ctx, sh.ID, Overrides{})
		if err != nil {
			return nil, err
		}
		figures = r.Figures()
	}

	counted := count.Balances()
	cmp := reconciliation.Compare(counted, figures.Expected)
	figures.Variance = cmp.Variances()
	figures.AuthorizedBy = ""

	if uc.requireAuth && !cmp.Balanced() && cred.Empty() {
		return nil, fmt.Errorf("corte %s con diferencias requiere autorización: %w", sh.ID, domain.ErrForbidden)
	}

	closing := entity.ShiftClosing{
		Denominations: count.Denominations,
		Foreign:       count.Foreign,
		Channels:      count.Channels,
		Notes:         strings.TrimSpace(count.Notes),
	}
	by, err := uc.Shifts.CloseWithReconciliation(ctx, sh.ID, closing, figures, cred)
	if err != nil {
		return nil, err
	}
	figures.AuthorizedBy = by

	if uc.Archive != nil {
		rec := ports.ClosureRecord{
			ShiftID:  sh.ID,
			Event:    ports.EventClosed,
			Branch:   sh.Branch,
			Operator: sh.Operator,
			Date:     sh.Date,
			Counted:  counted,
			Figures:  figures,
			By:       by,
			At:       uc.now(),
		}
		if err := uc.Archive.SaveClosure(ctx, rec); err != nil {
			uc.log.Warn().Err(err).Str("shift_id", sh.ID).Msg("no se archivó el corte")
		}
	}

	return &ClosureResult{
		ShiftID:      sh.ID,
		Comparison:   cmp,
		Figures:      figures,
		AuthorizedBy: by,
		Balanced:     cmp.Balanced(),
	}, nil
}

// RenderPDF ticket imprimible del corte.
func (uc *ReconciliationUseCase) RenderPDF(ctx context.Context, shiftID string, ov Overrides) ([]byte, error) {
	if uc.Renderer == nil {
		return nil, fmt.Errorf("ticket de corte no disponible: %w", domain.ErrNotFound)
	}
	r, err := uc.BuildReport(ctx, shiftID, ov)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.Renderer.RenderReport(r)
	if err != nil {
		return nil, fmt.Errorf("pdf corte %s: %w", shiftID, err)
	}
	return pdf, nil
}

// History cierres y reaperturas archivados del turno. Sin archivo devuelve vacío.
func (uc *ReconciliationUseCase) History(ctx context.Context, shiftID string) ([]ports.ClosureRecord, error) {
	if _, err := uc.Shifts.Get(ctx, shiftID); err != nil {
		return nil, err
	}
	if uc.Archive == nil {
		return []ports.ClosureRecord{}, nil
	}
	recs, err := uc.Archive.ListClosures(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []ports.ClosureRecord{}
	}
	return recs, nil
}
