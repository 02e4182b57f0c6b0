package dto

import (
	"strings"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/reconciliation"
)

// CreateMovementRequest body para POST /api/movimientos-caja.
// Sin sucursal se toma la del turno; sin fecha ni hora, las actuales.
type CreateMovementRequest struct {
	Tipo          string        `json:"tipo" validate:"required"`
	Monto         money.Lenient `json:"monto"`
	CuentaOrigen  string        `json:"cuentaOrigen"`
	CuentaDestino string        `json:"cuentaDestino"`
	Sucursal      string        `json:"sucursal"`
	Categoria     string        `json:"categoria"`
	Concepto      string        `json:"concepto"`
	Usuario       Text          `json:"usuario"`
	Observaciones string        `json:"observaciones"`
	TurnoID       Text          `json:"turnoId"`
	Fecha         string        `json:"fecha"`
	Hora          string        `json:"hora"`
}

func (r CreateMovementRequest) ToEntity() *entity.CashMovement {
	return &entity.CashMovement{
		Type:        strings.TrimSpace(r.Tipo),
		Date:        strings.TrimSpace(r.Fecha),
		Time:        strings.TrimSpace(r.Hora),
		Amount:      r.Monto.Value(),
		FromAccount: r.CuentaOrigen,
		ToAccount:   r.CuentaDestino,
		Branch:      strings.TrimSpace(r.Sucursal),
		Category:    r.Categoria,
		Concept:     r.Concepto,
		Operator:    r.Usuario.String(),
		Notes:       r.Observaciones,
		ShiftID:     r.TurnoID.String(),
	}
}

// CreateMovementResponse ID del movimiento.
type CreateMovementResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Mensaje string `json:"mensaje"`
}

// MovementListResponse respuesta de GET /api/movimientos-caja/turno/:id.
type MovementListResponse struct {
	Success     bool               `json:"success"`
	Movimientos []MovementDTO      `json:"movimientos"`
	Resumen     MovementSummaryDTO `json:"resumen"`
}

func NewMovementListResponse(s reconciliation.MovementSummary) MovementListResponse {
	return MovementListResponse{Success: true, Movimientos: NewMovementList(s.Movements), Resumen: NewMovementSummaryDTO(s)}
}
