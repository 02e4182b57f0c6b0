package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
)

var _ ports.ClosureArchive = (*ClosureArchive)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS corte_historial (
	    id              BIGSERIAL PRIMARY KEY,
	    turno_id        TEXT        NOT NULL,
	    evento          TEXT        NOT NULL,
	    sucursal        TEXT        NOT NULL DEFAULT '',
	    usuario         TEXT        NOT NULL DEFAULT '',
	    fecha           TEXT        NOT NULL DEFAULT '',
	    contado_mxn     NUMERIC     NOT NULL DEFAULT 0,
	    contado_usd     NUMERIC     NOT NULL DEFAULT 0,
	    contado_cad     NUMERIC     NOT NULL DEFAULT 0,
	    contado_eur     NUMERIC     NOT NULL DEFAULT 0,
	    esperado_mxn    NUMERIC     NOT NULL DEFAULT 0,
	    esperado_usd    NUMERIC     NOT NULL DEFAULT 0,
	    esperado_cad    NUMERIC     NOT NULL DEFAULT 0,
	    esperado_eur    NUMERIC     NOT NULL DEFAULT 0,
	    diferencia_mxn  NUMERIC     NOT NULL DEFAULT 0,
	    diferencia_usd  NUMERIC     NOT NULL DEFAULT 0,
	    diferencia_cad  NUMERIC     NOT NULL DEFAULT 0,
	    diferencia_eur  NUMERIC     NOT NULL DEFAULT 0,
	    ventas_brutas   NUMERIC     NOT NULL DEFAULT 0,
	    descuentos      NUMERIC     NOT NULL DEFAULT 0,
	    cancelaciones   NUMERIC     NOT NULL DEFAULT 0,
	    ventas_netas    NUMERIC     NOT NULL DEFAULT 0,
	    num_ventas      INTEGER     NOT NULL DEFAULT 0,
	    ticket_promedio NUMERIC     NOT NULL DEFAULT 0,
	    ingresos        NUMERIC     NOT NULL DEFAULT 0,
	    egresos         NUMERIC     NOT NULL DEFAULT 0,
	    gastos          NUMERIC     NOT NULL DEFAULT 0,
	    autorizado_por  TEXT        NOT NULL DEFAULT '',
	    registrado      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS corte_historial_turno_idx ON corte_historial (turno_id, registrado)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS corte_historial_evento_uq ON corte_historial (turno_id, evento, registrado)`,
}

// ClosureArchive historial de cortes en PostgreSQL (tabla corte_historial).
type ClosureArchive struct {
	pool *pgxpool.Pool
}

// NewClosureArchive construye el archivo sobre el pool.
func NewClosureArchive(pool *pgxpool.Pool) *ClosureArchive {
	return &ClosureArchive{pool: pool}
}

// EnsureSchema crea la tabla y el índice si no existen.
func (a *ClosureArchive) EnsureSchema(ctx context.Context) error {
	return withTx(ctx, a.pool, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("corte_historial: esquema: %w", err)
			}
		}
		return nil
	})
}

// SaveClosure guarda un cierre con contado, esperado y diferencias. El mismo
// cierre (turno y momento) guardado dos veces devuelve domain.ErrDuplicate.
func (a *ClosureArchive) SaveClosure(ctx context.Context, rec ports.ClosureRecord) error {
	const q = `
	INSERT INTO corte_historial (
	    turno_id, evento, sucursal, usuario, fecha,
	    contado_mxn, contado_usd, contado_cad, contado_eur,
	    esperado_mxn, esperado_usd, esperado_cad, esperado_eur,
	    diferencia_mxn, diferencia_usd, diferencia_cad, diferencia_eur,
	    ventas_brutas, descuentos, cancelaciones, ventas_netas, num_ventas, ticket_promedio,
	    ingresos, egresos, gastos, autorizado_por, registrado
	) VALUES (
	    $1, $2, $3, $4, $5,
	    $6, $7, $8, $9,
	    $10, $11, $12, $13,
	    $14, $15, $16, $17,
	    $18, $19, $20, $21, $22, $23,
	    $24, $25, $26, $27, $28
	)`
	f := rec.Figures
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := a.pool.Exec(ctx, q,
		rec.ShiftID, string(ports.EventClosed), rec.Branch, rec.Operator, rec.Date,
		rec.Counted.CashMXN, rec.Counted.USD, rec.Counted.CAD, rec.Counted.EUR,
		f.Expected.CashMXN, f.Expected.USD, f.Expected.CAD, f.Expected.EUR,
		f.Variance.CashMXN, f.Variance.USD, f.Variance.CAD, f.Variance.EUR,
		f.GrossSales, f.Discounts, f.Cancellations, f.NetSales, f.NumSales, f.AverageTicket,
		f.Income, f.Outcome, f.Expense, rec.By, at,
	)
	if err != nil {
		return archiveErr("SaveClosure", rec.ShiftID, err)
	}
	return nil
}

// RecordReopen guarda quién reabrió el turno.
func (a *ClosureArchive) RecordReopen(ctx context.Context, shiftID, by string, at time.Time) error {
	const q = `INSERT INTO corte_historial (turno_id, evento, autorizado_por, registrado) VALUES ($1, $2, $3, $4)`
	if _, err := a.pool.Exec(ctx, q, shiftID, string(ports.EventReopened), by, at); err != nil {
		return archiveErr("RecordReopen", shiftID, err)
	}
	return nil
}

// ListClosures historial del turno en orden cronológico.
func (a *ClosureArchive) ListClosures(ctx context.Context, shiftID string) ([]ports.ClosureRecord, error) {
	const q = `
	SELECT turno_id, evento, sucursal, usuario, fecha,
	       contado_mxn, contado_usd, contado_cad, contado_eur,
	       esperado_mxn, esperado_usd, esperado_cad, esperado_eur,
	       diferencia_mxn, diferencia_usd, diferencia_cad, diferencia_eur,
	       ventas_brutas, descuentos, cancelaciones, ventas_netas, num_ventas, ticket_promedio,
	       ingresos, egresos, gastos, autorizado_por, registrado
	FROM corte_historial
	WHERE turno_id = $1
	ORDER BY registrado, id`

	rows, err := a.pool.Query(ctx, q, shiftID)
	if err != nil {
		return nil, fmt.Errorf("corte_historial.ListClosures: %w", err)
	}
	defer rows.Close()

	var out []ports.ClosureRecord
	for rows.Next() {
		var (
			rec   ports.ClosureRecord
			event string
		)
		f := &rec.Figures
		if err := rows.Scan(
			&rec.ShiftID, &event, &rec.Branch, &rec.Operator, &rec.Date,
			&rec.Counted.CashMXN, &rec.Counted.USD, &rec.Counted.CAD, &rec.Counted.EUR,
			&f.Expected.CashMXN, &f.Expected.USD, &f.Expected.CAD, &f.Expected.EUR,
			&f.Variance.CashMXN, &f.Variance.USD, &f.Variance.CAD, &f.Variance.EUR,
			&f.GrossSales, &f.Discounts, &f.Cancellations, &f.NetSales, &f.NumSales, &f.AverageTicket,
			&f.Income, &f.Outcome, &f.Expense, &rec.By, &rec.At,
		); err != nil {
			return nil, fmt.Errorf("corte_historial.ListClosures scan: %w", err)
		}
		rec.Event = ports.ClosureEvent(event)
		f.AuthorizedBy = rec.By
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("corte_historial.ListClosures rows: %w", err)
	}
	return out, nil
}
