package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/auth"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/catalog"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/movements"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/reconciliation"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/sales"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/shift"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ShiftUC     *shift.ShiftUseCase
	CorteUC     *reconciliation.ReconciliationUseCase
	SalesUC     *sales.SalesUseCase
	MovementsUC *movements.MovementsUseCase
	Catalog     *catalog.Cache
	Info        ServiceInfo
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", Info(deps.Info))
	app.Get("/health", Health)

	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Turnos y corte
	turnos := api.Group("/turnos")
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	corteHandler := NewCorteHandler(deps.CorteUC)
	turnos.Get("/activo/:usuario/:sucursal", shiftHandler.Active)
	turnos.Post("/abrir", shiftHandler.Open)
	turnos.Post("/cerrar", shiftHandler.Close)
	turnos.Get("/:id/corte", corteHandler.Report)
	turnos.Get("/:id/corte/pdf", corteHandler.PDF)
	turnos.Post("/:id/cerrar-corte", corteHandler.Commit)
	turnos.Post("/:id/recalcular", shiftHandler.Reopen)
	turnos.Get("/:id/historial", corteHandler.History)

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.Catalog)
	api.Get("/productos", catalogHandler.Products)
	api.Get("/clientes", catalogHandler.Clients)
	api.Post("/clientes", catalogHandler.CreateClient)
	api.Get("/metodos-pago", catalogHandler.PaymentMethods)
	api.Get("/descuentos", catalogHandler.Discounts)
	api.Post("/descuentos/calcular", catalogHandler.CalculateDiscount)
	api.Get("/promociones", catalogHandler.Promotions)
	api.Get("/categorias", catalogHandler.Categories)
	api.Get("/conceptos", catalogHandler.Concepts)
	api.Get("/bancos", catalogHandler.Banks)
	api.Post("/sync", catalogHandler.Sync)
	api.Get("/sync/status", catalogHandler.SyncStatus)

	// Ventas
	ventas := api.Group("/ventas")
	salesHandler := NewSalesHandler(deps.SalesUC)
	ventas.Post("/", salesHandler.Record)
	ventas.Get("/turno/:turnoId", salesHandler.ListByShift)
	ventas.Get("/:id/detalle", salesHandler.Detail)
	ventas.Post("/:id/cancelar", salesHandler.Cancel)
	ventas.Post("/:id/cancelar-item", salesHandler.CancelItem)

	// Movimientos de caja
	movs := api.Group("/movimientos-caja")
	movementsHandler := NewMovementsHandler(deps.MovementsUC)
	movs.Post("/", movementsHandler.Create)
	movs.Get("/turno/:id", movementsHandler.ListByShift)
}

// param valor de la ruta ya decodificado ("Ana%20Lopez" -> "Ana Lopez").
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
