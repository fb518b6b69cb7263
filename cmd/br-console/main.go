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
	"github.com/wuasibox/box-register/internal/console"
	"github.com/wuasibox/box-register/internal/log"
	"github.com/wuasibox/box-register/internal/metrics"
	"github.com/wuasibox/box-register/internal/report"
	"github.com/wuasibox/box-register/internal/repository"
	"github.com/wuasibox/box-register/internal/service"
	"github.com/wuasibox/box-register/internal/telemetry"
	"github.com/wuasibox/box-register/pkg/correlationid"
	"github.com/wuasibox/box-register/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running console application: %v\n", err)
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
	defer func() {
		if err := inventoryMetrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.ErrorContext(ctx, "error writing metrics textfile", slog.Any("error", err))
		}
	}()

	productService := service.NewProductService(
		productRepository,
		audit.NewActionLog(cfg.Catalog.ActionLogFile, time.Now, logger),
		report.NewExporter(cfg.Catalog.ExportDir, logger),
		inventoryMetrics,
		v,
		cfg.Catalog.Actor,
		time.Now,
	)

	if cfg.Catalog.SeedSamples {
		seeded, err := productService.SeedSamples(ctx)
		if err != nil {
			return fmt.Errorf("error loading sample products: %w", err)
		}
		if seeded {
			fmt.Println("Sample products loaded.")
		}
	}
	productService.Statistics(ctx)

	logger.InfoContext(ctx, "console session started",
		slog.String("data_file", cfg.Catalog.DataFile),
		slog.Int("products", productRepository.Len()),
	)

	if err := console.New(productService, os.Stdin, os.Stdout, logger).Run(ctx); err != nil {
		return fmt.Errorf("error running console: %w", err)
	}

	logger.InfoContext(ctx, "console session ended")
	return nil
}
