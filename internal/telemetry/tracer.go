// Package telemetry installs the process tracer provider. Spans are kept in
// process: their ids end up on log records through the enriched log
// handler, and nothing is exported.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/wuasibox/box-register/internal/config"
)

// InitTracer sets the global tracer provider and returns its shutdown func.
func InitTracer(_ context.Context, cfg config.Otel) (func(context.Context) error, error) {
	if cfg.TraceIDRatio < 0 || cfg.TraceIDRatio > 1 {
		return nil, fmt.Errorf("trace id ratio out of range: %v", cfg.TraceIDRatio)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TraceIDRatio))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
