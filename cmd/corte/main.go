// corte arma el corte de caja de un turno desde la línea de comandos.
//
// Uso: go run ./cmd/corte -turno TRN-123 [-pdf corte.pdf] [-sucursal Centro] [-usuario Ana] [-fecha 10/16/2026]
// Sin -pdf imprime el reporte en JSON por la salida estándar.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/auth"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/catalog"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/dto"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/reconciliation"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/shift"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/infrastructure/appsheet"
	infrapdf "github.com/diegoleonuniline/umo-pos-api/internal/infrastructure/pdf"
	"github.com/diegoleonuniline/umo-pos-api/pkg/config"
	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
)

func main() {
	shiftID := flag.String("turno", "", "ID del turno")
	pdfPath := flag.String("pdf", "", "ruta del PDF a escribir")
	branch := flag.String("sucursal", "", "sucursal para filtrar movimientos")
	operator := flag.String("usuario", "", "usuario para el encabezado")
	date := flag.String("fecha", "", "fecha MM/DD/YYYY para filtrar movimientos")
	flag.Parse()

	if *shiftID == "" {
		fmt.Fprintln(os.Stderr, "Falta -turno")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
	decimal.MarshalJSONWithoutQuotes = true

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		loc = time.UTC
	}

	client := appsheet.NewClient(appsheet.Config{
		APIBase:   cfg.AppSheet.APIBase,
		AppID:     cfg.AppSheet.AppID,
		AccessKey: cfg.AppSheet.AccessKey,
		Locale:    cfg.AppSheet.Locale,
		Timezone:  cfg.AppSheet.Timezone,
		Timeout:   time.Duration(cfg.AppSheet.TimeoutSeconds) * time.Second,
	}, log)

	cache := catalog.New(appsheet.NewCatalogRepository(client), nil, log)
	shiftUC := shift.NewShiftUseCase(appsheet.NewShiftRepository(client), auth.NewAuthUseCase(cache), nil,
		entity.ExchangeRates{}, loc, log)
	corteUC := reconciliation.NewReconciliationUseCase(reconciliation.Deps{
		Shifts:    shiftUC,
		Sales:     appsheet.NewSaleRepository(client),
		Items:     appsheet.NewSaleItemRepository(client),
		Payments:  appsheet.NewPaymentRepository(client),
		Movements: appsheet.NewCashMovementRepository(client),
		Renderer:  infrapdf.NewMarotoReportRenderer("Corte de caja"),
	}, false, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ov := reconciliation.Overrides{Branch: *branch, Operator: *operator, Date: *date}

	if *pdfPath != "" {
		out, err := corteUC.RenderPDF(ctx, *shiftID, ov)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Generar PDF: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfPath, out, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", *pdfPath, err)
			os.Exit(1)
		}
		fmt.Printf("Escrito: %s (%d bytes)\n", *pdfPath, len(out))
		return
	}

	r, err := corteUC.BuildReport(ctx, *shiftID, ov)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Armar corte: %v\n", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.NewReportDTO(r)); err != nil {
		fmt.Fprintf(os.Stderr, "Codificar JSON: %v\n", err)
		os.Exit(1)
	}
}
