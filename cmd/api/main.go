package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/auth"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/catalog"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/movements"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/reconciliation"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/sales"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/shift"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/infrastructure/appsheet"
	infracache "github.com/diegoleonuniline/umo-pos-api/internal/infrastructure/cache"
	infrapdf "github.com/diegoleonuniline/umo-pos-api/internal/infrastructure/pdf"
	"github.com/diegoleonuniline/umo-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/diegoleonuniline/umo-pos-api/internal/interfaces/http"
	"github.com/diegoleonuniline/umo-pos-api/pkg/config"
	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Msg("iniciando aplicación")

	// Montos como números en JSON, no como cadenas.
	decimal.MarshalJSONWithoutQuotes = true

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida, se usa UTC")
		loc = time.UTC
	}

	ctx := context.Background()

	// Almacén tabular
	client := appsheet.NewClient(appsheet.Config{
		APIBase:   cfg.AppSheet.APIBase,
		AppID:     cfg.AppSheet.AppID,
		AccessKey: cfg.AppSheet.AccessKey,
		Locale:    cfg.AppSheet.Locale,
		Timezone:  cfg.AppSheet.Timezone,
		Timeout:   time.Duration(cfg.AppSheet.TimeoutSeconds) * time.Second,
	}, log)
	shiftRepo := appsheet.NewShiftRepository(client)
	saleRepo := appsheet.NewSaleRepository(client)
	itemRepo := appsheet.NewSaleItemRepository(client)
	paymentRepo := appsheet.NewPaymentRepository(client)
	movementRepo := appsheet.NewCashMovementRepository(client)
	catalogRepo := appsheet.NewCatalogRepository(client)

	// Copias del catálogo en Redis (opcional)
	var snaps ports.SnapshotStore = infracache.NoopSnapshotStore{}
	if cfg.Redis.Enabled() {
		rs := infracache.NewRedisSnapshotStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLHours)*time.Hour)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rs.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, el catálogo funciona sin copias")
		}
		cancel()
		defer rs.Close()
		snaps = rs
	}

	// Historial de cortes en PostgreSQL (opcional)
	var archive ports.ClosureArchive
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pgArchive := postgres.NewClosureArchive(pool)
		if err := pgArchive.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema del historial de cortes")
		}
		archive = pgArchive
	}

	cache := catalog.New(catalogRepo, snaps, log)
	authUC := auth.NewAuthUseCase(cache)
	shiftUC := shift.NewShiftUseCase(shiftRepo, authUC, archive, entity.ExchangeRates{
		USD: decimal.NewFromFloat(cfg.Rates.USD),
		CAD: decimal.NewFromFloat(cfg.Rates.CAD),
		EUR: decimal.NewFromFloat(cfg.Rates.EUR),
	}, loc, log)
	salesUC := sales.NewSalesUseCase(saleRepo, itemRepo, paymentRepo, cfg.Policy.TrackSaleRegistration, loc, log)
	movementsUC := movements.NewMovementsUseCase(movementRepo, shiftUC, loc, log)
	corteUC := reconciliation.NewReconciliationUseCase(reconciliation.Deps{
		Shifts:    shiftUC,
		Sales:     saleRepo,
		Items:     itemRepo,
		Payments:  paymentRepo,
		Movements: movementRepo,
		Archive:   archive,
		Renderer:  infrapdf.NewMarotoReportRenderer("Corte de caja"),
	}, cfg.Policy.RequireAuthOnVariance, log)

	serverCfg := httpRouter.ServerConfig{Name: cfg.App.Name, CORSOrigins: cfg.HTTP.CORSOrigins}
	if _, err := os.Stat(swaggerFile); err == nil {
		serverCfg.SwaggerFile = swaggerFile
	}
	app := httpRouter.NewApp(serverCfg, log)
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ShiftUC:     shiftUC,
		CorteUC:     corteUC,
		SalesUC:     salesUC,
		MovementsUC: movementsUC,
		Catalog:     cache,
		Info: httpRouter.ServiceInfo{
			Name:    cfg.App.Name,
			Version: cfg.App.Version,
			CORS:    cfg.HTTP.CORSOrigins,
		},
	})

	// Precarga del catálogo sin bloquear el arranque.
	warmCtx, cancelWarm := context.WithCancel(ctx)
	defer cancelWarm()
	go func() {
		for _, st := range cache.RefreshAll(warmCtx) {
			log.Info().Str("table", st.Name).Bool("loaded", st.Loaded).Int("count", st.Count).Msg("catálogo precargado")
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
