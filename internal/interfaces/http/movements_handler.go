package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/dto"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/movements"
)

// MovementsHandler ingresos, retiros y gastos de efectivo.
type MovementsHandler struct {
	uc *movements.MovementsUseCase
}

// NewMovementsHandler construye el handler.
func NewMovementsHandler(uc *movements.MovementsUseCase) *MovementsHandler {
	return &MovementsHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento de caja
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "tipo, monto, sucursal o turnoId"
// @Success      200   {object}  dto.CreateMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movimientos-caja [post]
func (h *MovementsHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.Create(c.UserContext(), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CreateMovementResponse{Success: true, ID: id, Mensaje: "Movimiento registrado"})
}

// ListByShift godoc
// @Summary      Movimientos del día y sucursal del turno, con resumen
// @Tags         movimientos
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos-caja/turno/{id} [get]
func (h *MovementsHandler) ListByShift(c *fiber.Ctx) error {
	sum, err := h.uc.ListForShift(c.UserContext(), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMovementListResponse(sum))
}
