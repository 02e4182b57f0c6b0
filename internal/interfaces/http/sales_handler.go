package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/dto"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/sales"
)

// SalesHandler registro, consulta y cancelación de ventas.
type SalesHandler struct {
	uc *sales.SalesUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar venta con renglones y pagos
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "venta, detalles, pagos"
// @Success      200   {object}  dto.RecordSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SalesHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	sale, items, payments := in.ToEntities()
	id, err := h.uc.RecordSale(c.UserContext(), sale, items, payments)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RecordSaleResponse{Success: true, VentaID: id, Mensaje: "Venta registrada"})
}

// ListByShift godoc
// @Summary      Ventas del turno, más recientes primero
// @Tags         ventas
// @Produce      json
// @Param        turnoId  path  string  true  "ID del turno"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ventas/turno/{turnoId} [get]
func (h *SalesHandler) ListByShift(c *fiber.Ctx) error {
	list, err := h.uc.ListByShift(c.UserContext(), param(c, "turnoId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SaleListResponse{Success: true, Ventas: dto.NewSaleSummaryList(list)})
}

// Detail godoc
// @Summary      Venta con renglones y pagos
// @Tags         ventas
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/detalle [get]
func (h *SalesHandler) Detail(c *fiber.Ctx) error {
	d, err := h.uc.SaleDetail(c.UserContext(), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSaleDetailResponse(d.Sale, d.Items, d.Payments))
}

// Cancel godoc
// @Summary      Cancelar venta completa
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.CancelSaleRequest  false  "motivo, usuario"
// @Success      200   {object}  dto.CancelSaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/cancelar [post]
func (h *SalesHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelSaleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.CancelSale(c.UserContext(), param(c, "id"), in.Motivo, in.Usuario.String())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CancelSaleResponse{
		Success:         true,
		Mensaje:         "Venta cancelada",
		ItemsCancelados: res.Items,
		PagosCancelados: res.Payments,
	})
}

// CancelItem godoc
// @Summary      Cancelar un renglón y recalcular el total
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.CancelItemRequest  true  "itemId, motivo, usuario"
// @Success      200   {object}  dto.CancelItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/cancelar-item [post]
func (h *SalesHandler) CancelItem(c *fiber.Ctx) error {
	var in dto.CancelItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.CancelItem(c.UserContext(), param(c, "id"), in.ItemID.String(), in.Motivo, in.Usuario.String())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CancelItemResponse{
		Success:       true,
		Mensaje:       fmt.Sprintf("%s cancelado", res.Product),
		ItemCancelado: res.Product,
		NuevoTotal:    res.NewTotal,
	})
}
