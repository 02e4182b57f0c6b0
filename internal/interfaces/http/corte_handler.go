package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/dto"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/reconciliation"
)

// CorteHandler reporte, cierre con conciliación, ticket PDF e historial del corte.
type CorteHandler struct {
	uc *reconciliation.ReconciliationUseCase
}

// NewCorteHandler construye el handler.
func NewCorteHandler(uc *reconciliation.ReconciliationUseCase) *CorteHandler {
	return &CorteHandler{uc: uc}
}

func overrides(c *fiber.Ctx) reconciliation.Overrides {
	return reconciliation.Overrides{
		Branch:   c.Query("sucursal"),
		Operator: c.Query("usuario"),
		Date:     c.Query("fecha"),
	}
}

// Report godoc
// @Summary      Corte de caja del turno (solo lectura)
// @Tags         corte
// @Produce      json
// @Param        id        path   string  true   "ID del turno"
// @Param        sucursal  query  string  false  "Sucursal de los movimientos"
// @Param        usuario   query  string  false  "Operador mostrado"
// @Param        fecha     query  string  false  "Fecha MM/DD/YYYY de los movimientos"
// @Success      200  {object}  dto.ReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/turnos/{id}/corte [get]
func (h *CorteHandler) Report(c *fiber.Ctx) error {
	r, err := h.uc.BuildReport(c.UserContext(), param(c, "id"), overrides(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReportResponse{Success: true, Corte: dto.NewReportDTO(r)})
}

// PDF godoc
// @Summary      Ticket imprimible del corte
// @Tags         corte
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/turnos/{id}/corte/pdf [get]
func (h *CorteHandler) PDF(c *fiber.Ctx) error {
	id := param(c, "id")
	out, err := h.uc.RenderPDF(c.UserContext(), id, overrides(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="corte-`+id+`.pdf"`)
	return c.Send(out)
}

// Commit godoc
// @Summary      Cerrar el turno con el conteo físico y obtener diferencias
// @Tags         corte
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del turno"
// @Param        body  body  dto.CloseReconciliationRequest  true  "conteo, agregados del reporte y autorización opcional"
// @Success      200   {object}  dto.ClosureResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/turnos/{id}/cerrar-corte [post]
func (h *CorteHandler) Commit(c *fiber.Ctx) error {
	var in dto.CloseReconciliationRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.CommitReport(c.UserContext(), param(c, "id"), in.Count(), in.Calculado.Figures(), in.Autorizacion.Credential())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ClosureResultResponse{
		Success:   true,
		Resultado: dto.NewClosureResultDTO(res.ShiftID, res.Comparison, res.AuthorizedBy),
	})
}

// History godoc
// @Summary      Historial de cierres y reaperturas del turno
// @Tags         corte
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/turnos/{id}/historial [get]
func (h *CorteHandler) History(c *fiber.Ctx) error {
	recs, err := h.uc.History(c.UserContext(), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewHistory(recs))
}
