package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/catalog"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/dto"
)

// CatalogHandler tablas de referencia servidas desde la caché.
type CatalogHandler struct {
	cache *catalog.Cache
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(cache *catalog.Cache) *CatalogHandler {
	return &CatalogHandler{cache: cache}
}

// Products godoc
// @Summary      Productos vendibles
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/productos [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	ps, err := h.cache.Products(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductList(ps))
}

// Clients godoc
// @Summary      Clientes
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.ClientListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/clientes [get]
func (h *CatalogHandler) Clients(c *fiber.Ctx) error {
	cs, err := h.cache.Clients(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewClientList(cs))
}

// CreateClient godoc
// @Summary      Registrar cliente
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.CreateClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *CatalogHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	cl, err := h.cache.CreateClient(c.UserContext(), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CreateClientResponse{Success: true, Codigo: cl.Code})
}

// PaymentMethods godoc
// @Summary      Métodos de pago (con lista por defecto si el almacén no responde)
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.PaymentMethodListResponse
// @Router       /api/metodos-pago [get]
func (h *CatalogHandler) PaymentMethods(c *fiber.Ctx) error {
	return c.JSON(dto.PaymentMethodListResponse{Success: true, Metodos: h.cache.PaymentMethods(c.UserContext())})
}

// Discounts godoc
// @Summary      Reglas de descuento
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.DiscountListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/descuentos [get]
func (h *CatalogHandler) Discounts(c *fiber.Ctx) error {
	rules, err := h.cache.Discounts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewDiscountList(rules))
}

// CalculateDiscount godoc
// @Summary      Descuento aplicable a un grupo de cliente y método de pago
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateDiscountRequest  true  "grupoCliente, metodoPago"
// @Success      200   {object}  dto.CalculateDiscountResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/descuentos/calcular [post]
func (h *CatalogHandler) CalculateDiscount(c *fiber.Ctx) error {
	var in dto.CalculateDiscountRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.cache.ResolveDiscount(c.UserContext(), in.GrupoCliente, in.MetodoPago)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewCalculateDiscountResponse(res))
}

// Promotions godoc
// @Summary      Promociones activas
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.PromotionListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/promociones [get]
func (h *CatalogHandler) Promotions(c *fiber.Ctx) error {
	ps, err := h.cache.Promotions(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPromotionList(ps))
}

// Categories godoc
// @Summary      Categorías de producto
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categorias [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cs, err := h.cache.Categories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewCategoryList(cs))
}

// Concepts godoc
// @Summary      Conceptos de movimientos de caja
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.ConceptListResponse
// @Router       /api/conceptos [get]
func (h *CatalogHandler) Concepts(c *fiber.Ctx) error {
	cs, err := h.cache.Concepts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewConceptList(cs))
}

// Banks godoc
// @Summary      Cuentas bancarias
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.BankListResponse
// @Router       /api/bancos [get]
func (h *CatalogHandler) Banks(c *fiber.Ctx) error {
	bs, err := h.cache.Banks(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewBankList(bs))
}

// Sync godoc
// @Summary      Recargar todas las tablas de referencia
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.SyncResponse
// @Router       /api/sync [post]
func (h *CatalogHandler) Sync(c *fiber.Ctx) error {
	return c.JSON(dto.SyncResponse{Success: true, Tablas: h.cache.RefreshAll(c.UserContext())})
}

// SyncStatus godoc
// @Summary      Estado de carga de cada tabla
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.SyncResponse
// @Router       /api/sync/status [get]
func (h *CatalogHandler) SyncStatus(c *fiber.Ctx) error {
	return c.JSON(dto.SyncResponse{Success: true, Tablas: h.cache.Status()})
}
