package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/dto"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/shift"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// ShiftHandler apertura, cierre simple y reapertura de turnos.
type ShiftHandler struct {
	uc *shift.ShiftUseCase
}

// NewShiftHandler construye el handler.
func NewShiftHandler(uc *shift.ShiftUseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Active godoc
// @Summary      Turno abierto del usuario en la sucursal
// @Tags         turnos
// @Produce      json
// @Param        usuario   path  string  true  "ID o nombre del empleado"
// @Param        sucursal  path  string  true  "Sucursal"
// @Success      200  {object}  dto.ActiveShiftResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/turnos/activo/{usuario}/{sucursal} [get]
func (h *ShiftHandler) Active(c *fiber.Ctx) error {
	s, err := h.uc.ActiveFor(c.UserContext(), param(c, "usuario"), param(c, "sucursal"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ActiveShiftResponse{Success: true, TurnoActivo: dto.NewShiftDTO(s)})
}

// Open godoc
// @Summary      Abrir turno
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenShiftRequest  true  "usuario, sucursal, fondo inicial"
// @Success      200   {object}  dto.OpenShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/turnos/abrir [post]
func (h *ShiftHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenShiftRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	open := shift.OpenInput{
		Operator:   in.Usuario.String(),
		OperatorID: in.EmpleadoID.String(),
		Branch:     in.Sucursal,
		Opening: entity.Balances{
			CashMXN: in.EfectivoInicial.Value(),
			USD:     in.USDInicial.Value(),
			CAD:     in.CADInicial.Value(),
			EUR:     in.EURInicial.Value(),
		},
		Rates: entity.ExchangeRates{USD: in.TasaUSD.Value(), CAD: in.TasaCAD.Value(), EUR: in.TasaEUR.Value()},
	}
	if in.Denominaciones != nil {
		open.Denominations = in.Denominaciones.Counts()
	}
	id, err := h.uc.Open(c.UserContext(), open)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OpenShiftResponse{Success: true, TurnoID: id, Mensaje: "Turno abierto"})
}

// Close godoc
// @Summary      Cerrar turno con el conteo de caja
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseShiftRequest  true  "turnoId y conteo"
// @Success      200   {object}  dto.CloseShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/turnos/cerrar [post]
func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseShiftRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	total, err := h.uc.Close(c.UserContext(), shift.CloseInput{
		ShiftID:       in.TurnoID.String(),
		Denominations: in.Counts(),
		Foreign:       in.Foreign(),
		Channels:      in.Channels(),
		Notes:         in.Observaciones,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CloseShiftResponse{Success: true, TotalMXN: total, Mensaje: "Turno cerrado"})
}

// Reopen godoc
// @Summary      Reabrir un turno cerrado para recalcular el corte
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del turno"
// @Param        body  body  dto.CredentialRequest  true  "credencial de supervisor"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/turnos/{id}/recalcular [post]
func (h *ShiftHandler) Reopen(c *fiber.Ctx) error {
	var in dto.CredentialRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Reopen(c.UserContext(), param(c, "id"), in.Credential()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Mensaje: "Turno reabierto"})
}
