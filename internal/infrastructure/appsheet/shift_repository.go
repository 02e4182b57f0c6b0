package appsheet

import (
	"context"
	"fmt"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepository)(nil)

// ShiftRepository implementa repository.ShiftRepository sobre AbrirTurno.
type ShiftRepository struct {
	c *Client
}

// NewShiftRepository construye el repositorio.
func NewShiftRepository(c *Client) *ShiftRepository {
	return &ShiftRepository{c: c}
}

// Create agrega el turno; devuelve el ID si el almacén lo asignó.
func (r *ShiftRepository) Create(ctx context.Context, s *entity.Shift) (string, error) {
	row := Row{
		"Fecha":         s.Date,
		"Hora Apertura": s.OpenedAt,
		"Usuario":       s.Operator,
		"ID Empleado":   s.OperatorID,
		"Sucursal":      s.Branch,
		colShiftState:   string(entity.ShiftOpen),
		"Efectivo":      num(s.Opening.CashMXN),
		"USD":           num(s.Opening.USD),
		"CAD":           num(s.Opening.CAD),
		"EUR":           num(s.Opening.EUR),
		"USD a MXN":     num(s.Rates.USD),
		"CAD a MXN":     num(s.Rates.CAD),
		"EUR a MXN":     num(s.Rates.EUR),
	}
	if s.ID != "" {
		row[colShiftID] = s.ID
	}
	res, err := r.c.Add(ctx, TableShifts, row)
	if err != nil {
		return "", fmt.Errorf("turnos: abrir: %w", err)
	}
	return res.FirstID(colShiftID), nil
}

// GetByID busca el turno por su llave.
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	rows, err := r.c.Find(ctx, TableShifts, Eq(colShiftID, id))
	if err != nil {
		return nil, fmt.Errorf("turnos: buscar %s: %w", id, err)
	}
	for _, row := range rows {
		if row.Str(colShiftID) == id {
			return toShift(row), nil
		}
	}
	return nil, fmt.Errorf("turno %s: %w", id, domain.ErrNotFound)
}

// ListOpen turnos con Estado = Abierto.
func (r *ShiftRepository) ListOpen(ctx context.Context) ([]*entity.Shift, error) {
	rows, err := r.c.Find(ctx, TableShifts, Eq(colShiftState, string(entity.ShiftOpen)))
	if err != nil {
		return nil, fmt.Errorf("turnos: listar abiertos: %w", err)
	}
	out := make([]*entity.Shift, 0, len(rows))
	for _, row := range rows {
		s := toShift(row)
		if s.IsOpen() {
			out = append(out, s)
		}
	}
	return out, nil
}

// Close guarda el conteo y marca el turno Cerrado.
func (r *ShiftRepository) Close(ctx context.Context, id string, closing entity.ShiftClosing) error {
	row := closingRow(id, closing)
	if _, err := r.c.Edit(ctx, TableShifts, row); err != nil {
		return fmt.Errorf("turnos: cerrar %s: %w", id, err)
	}
	return nil
}

// CloseWithFigures conteo + agregados + diferencias en una sola edición.
func (r *ShiftRepository) CloseWithFigures(ctx context.Context, id string, closing entity.ShiftClosing, f entity.ReconciliationFigures) error {
	row := closingRow(id, closing)
	row["Ventas Brutas"] = num(f.GrossSales)
	row["Descuentos Aplicados"] = num(f.Discounts)
	row["Cancelaciones"] = num(f.Cancellations)
	row["Ventas Netas"] = num(f.NetSales)
	row["Numero de Ventas"] = f.NumSales
	row["Ticket Promedio"] = num(f.AverageTicket)
	row["Ingresos"] = num(f.Income)
	row["Egresos"] = num(f.Outcome)
	row["Gastos"] = num(f.Expense)
	row["Efectivo Esperado"] = num(f.Expected.CashMXN)
	row["USD Esperado"] = num(f.Expected.USD)
	row["CAD Esperado"] = num(f.Expected.CAD)
	row["EUR Esperado"] = num(f.Expected.EUR)
	row["Diferencia MXN"] = num(f.Variance.CashMXN)
	row["Diferencia USD"] = num(f.Variance.USD)
	row["Diferencia CAD"] = num(f.Variance.CAD)
	row["Diferencia EUR"] = num(f.Variance.EUR)
	row["Autorizado Por"] = f.AuthorizedBy

	if _, err := r.c.Edit(ctx, TableShifts, row); err != nil {
		return fmt.Errorf("turnos: cerrar corte %s: %w", id, err)
	}
	return nil
}

// Reopen Estado = Abierto y hora de cierre vacía; el resto del cierre se conserva.
func (r *ShiftRepository) Reopen(ctx context.Context, id string) error {
	row := Row{
		colShiftID:       id,
		colShiftState:    string(entity.ShiftOpen),
		colShiftClosedAt: "",
	}
	if _, err := r.c.Edit(ctx, TableShifts, row); err != nil {
		return fmt.Errorf("turnos: reabrir %s: %w", id, err)
	}
	return nil
}

func closingRow(id string, c entity.ShiftClosing) Row {
	row := Row{
		colShiftID:       id,
		colShiftClosedAt: c.ClosedAt,
		colShiftState:    string(entity.ShiftClosed),
		colShiftTotalMXN: num(c.TotalMXN),
		colShiftUSD:      num(c.Foreign.USD),
		colShiftCAD:      num(c.Foreign.CAD),
		colShiftEUR:      num(c.Foreign.EUR),
		colShiftNotes:    c.Notes,
	}
	row["BBVA Nacional"] = num(c.Channels.BBVANacional)
	row["BBVA Internacional"] = num(c.Channels.BBVAInternacional)
	row["Clip Nacional"] = num(c.Channels.ClipNacional)
	row["Clip Internacional"] = num(c.Channels.ClipInternacional)
	row["Transferencia electrónica de fondos"] = num(c.Channels.Transferencia)
	for _, d := range money.MXNDenominations {
		row[d.Column] = num(c.Denominations[d.Key])
	}
	return row
}

func toShift(row Row) *entity.Shift {
	s := &entity.Shift{
		ID:         row.Str(colShiftID),
		Date:       NormalizeDate(row.Str("Fecha")),
		OpenedAt:   row.Str("Hora Apertura"),
		ClosedAt:   row.Str(colShiftClosedAt),
		Operator:   row.Str("Usuario"),
		OperatorID: row.Str("ID Empleado"),
		Branch:     row.Str("Sucursal"),
		State:      entity.ParseShiftState(row.Str(colShiftState)),
		Opening: entity.Balances{
			CashMXN: row.Dec("Efectivo"),
			USD:     row.Dec("USD"),
			CAD:     row.Dec("CAD"),
			EUR:     row.Dec("EUR"),
		},
		Rates: entity.ExchangeRates{
			USD: row.Dec("USD a MXN"),
			CAD: row.Dec("CAD a MXN"),
			EUR: row.Dec("EUR a MXN"),
		},
	}

	counts := make(money.Counts, len(money.MXNDenominations))
	for _, d := range money.MXNDenominations {
		counts[d.Key] = row.Dec(d.Column)
	}
	s.Closing = entity.ShiftClosing{
		ClosedAt:      s.ClosedAt,
		Denominations: counts,
		TotalMXN:      row.Dec(colShiftTotalMXN),
		Foreign: entity.ForeignCounts{
			USD: row.Dec(colShiftUSD),
			CAD: row.Dec(colShiftCAD),
			EUR: row.Dec(colShiftEUR),
		},
		Channels: entity.ChannelTotals{
			BBVANacional:      row.Dec("BBVA Nacional"),
			BBVAInternacional: row.Dec("BBVA Internacional"),
			ClipNacional:      row.Dec("Clip Nacional"),
			ClipInternacional: row.Dec("Clip Internacional"),
			Transferencia:     row.Dec("Transferencia electrónica de fondos"),
		},
		Notes: row.Str(colShiftNotes),
	}
	s.Figures = entity.ReconciliationFigures{
		GrossSales:    row.Dec("Ventas Brutas"),
		Discounts:     row.Dec("Descuentos Aplicados"),
		Cancellations: row.Dec("Cancelaciones"),
		NetSales:      row.Dec("Ventas Netas"),
		NumSales:      row.Int("Numero de Ventas"),
		AverageTicket: row.Dec("Ticket Promedio"),
		Income:        row.Dec("Ingresos"),
		Outcome:       row.Dec("Egresos"),
		Expense:       row.Dec("Gastos"),
		Expected: entity.Balances{
			CashMXN: row.Dec("Efectivo Esperado"),
			USD:     row.Dec("USD Esperado"),
			CAD:     row.Dec("CAD Esperado"),
			EUR:     row.Dec("EUR Esperado"),
		},
		Variance: entity.Balances{
			CashMXN: row.Dec("Diferencia MXN"),
			USD:     row.Dec("Diferencia USD"),
			CAD:     row.Dec("Diferencia CAD"),
			EUR:     row.Dec("Diferencia EUR"),
		},
		AuthorizedBy: row.Str("Autorizado Por"),
	}
	return s
}
