package appsheet

import (
	"context"
	"fmt"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
	"github.com/diegoleonuniline/umo-pos-api/pkg/textfold"
)

var _ repository.CashMovementRepository = (*CashMovementRepository)(nil)

// CashMovementRepository implementa repository.CashMovementRepository sobre Movimientos de Caja.
type CashMovementRepository struct {
	c *Client
}

// NewCashMovementRepository construye el repositorio.
func NewCashMovementRepository(c *Client) *CashMovementRepository {
	return &CashMovementRepository{c: c}
}

// Create agrega un movimiento.
func (r *CashMovementRepository) Create(ctx context.Context, m *entity.CashMovement) error {
	row := Row{
		"ID":             m.ID,
		"Tipo":           m.Type,
		"Fecha":          m.Date,
		"Hora":           m.Time,
		"Monto":          num(m.Amount),
		"Cuenta Origen":  m.FromAccount,
		"Cuenta Destino": m.ToAccount,
		"Sucursal":       m.Branch,
		"Categoria":      m.Category,
		"Concepto":       m.Concept,
		"Usuario":        m.Operator,
		"Observaciones":  m.Notes,
		"TurnoId":        m.ShiftID,
	}
	if _, err := r.c.Add(ctx, TableCashMovements, row); err != nil {
		return fmt.Errorf("movimientos: registrar %s: %w", m.ID, err)
	}
	return nil
}

// ListByBranchAndDate filtra por sucursal en el almacén y por fecha localmente:
// la columna Fecha llega en varios formatos y no se puede comparar como texto.
func (r *CashMovementRepository) ListByBranchAndDate(ctx context.Context, branch, date string) ([]*entity.CashMovement, error) {
	rows, err := r.c.Find(ctx, TableCashMovements, Eq("Sucursal", branch))
	if err != nil {
		return nil, fmt.Errorf("movimientos: listar %s %s: %w", branch, date, err)
	}
	want := NormalizeDate(date)
	out := make([]*entity.CashMovement, 0, len(rows))
	for _, row := range rows {
		m := toCashMovement(row)
		if !textfold.Equal(m.Branch, branch) || m.Date != want {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func toCashMovement(row Row) *entity.CashMovement {
	return &entity.CashMovement{
		ID:          row.Str("ID", "Id"),
		Type:        row.Str("Tipo", "Tipo de Movimiento"),
		Date:        NormalizeDate(row.Str("Fecha")),
		Time:        row.Str("Hora"),
		Amount:      row.Dec("Monto"),
		FromAccount: row.Str("Cuenta Origen"),
		ToAccount:   row.Str("Cuenta Destino"),
		Branch:      row.Str("Sucursal"),
		Category:    row.Str("Categoria"),
		Concept:     row.Str("Concepto"),
		Operator:    row.Str("Usuario"),
		Notes:       row.Str("Observaciones"),
		ShiftID:     row.Str("TurnoId"),
	}
}
