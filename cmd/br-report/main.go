package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wuasibox/box-register/internal/audit"
	"github.com/wuasibox/box-register/internal/catalog"
	"github.com/wuasibox/box-register/internal/config"
	"github.com/wuasibox/box-register/internal/log"
	"github.com/wuasibox/box-register/internal/metrics"
	"github.com/wuasibox/box-register/internal/report"
	"github.com/wuasibox/box-register/internal/repository"
	"github.com/wuasibox/box-register/internal/service"
	"github.com/wuasibox/box-register/internal/telemetry"
	"github.com/wuasibox/box-register/pkg/correlationid"
	"github.com/wuasibox/box-register/pkg/validator"
)

// br-report exports the inventory CSV and refreshes the metrics textfile
// without an interactive session, for scheduled runs.
func main() {
	if err := run(); err != nil {
		fmt.Printf("error running report: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type Config struct {
		Log     config.Log
		Catalog config.Catalog
		Metrics config.Metrics
		Otel    config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logOutput, err := log.OpenOutput(cfg.Log)
	if err != nil {
		return fmt.Errorf("error opening log output: %w", err)
	}
	defer logOutput.Close()

	logger := log.NewSlogLogger(cfg.Log, logOutput)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	ctx = correlationid.NewContext(ctx, correlationid.New())

	v, err := validator.NewDefaultValidator(catalog.IsValidCode)
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	productRepository := repository.NewProductRepository(cfg.Catalog.DataFile, logger)
	productRepository.Load(ctx)

	inventoryMetrics := metrics.NewInventoryMetrics(prometheus.NewRegistry())
	productService := service.NewProductService(
		productRepository,
		audit.NewActionLog(cfg.Catalog.ActionLogFile, time.Now, logger),
		report.NewExporter(cfg.Catalog.ExportDir, logger),
		inventoryMetrics,
		v,
		cfg.Catalog.Actor,
		time.Now,
	)

	summary := productService.Statistics(ctx)
	logger.InfoContext(ctx, "inventory summarized",
		slog.Int("products", summary.ProductCount),
		slog.String("inventory_value", summary.TotalInventoryValue.StringFixed(2)),
		slog.Int("low_stock", summary.LowStockCount),
	)

	path, err := productService.ExportReport(ctx)
	if err != nil {
		return fmt.Errorf("error exporting report: %w", err)
	}
	fmt.Println(path)

	if err := inventoryMetrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("error writing metrics textfile: %w", err)
	}

	return nil
}
