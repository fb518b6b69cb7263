package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wuasibox/box-register/internal/analytics"
	"github.com/wuasibox/box-register/internal/audit"
)

func (s *productService) Statistics(ctx context.Context) analytics.Summary {
	ctx, span := tracer.Start(ctx, "ProductService.Statistics")
	defer span.End()

	summary := analytics.Summarize(s.productRepo.List(ctx))
	if s.metrics != nil {
		s.metrics.Observe(summary)
	}
	return summary
}

// ExportReport writes the inventory report and returns its path. The action
// is recorded as the system actor.
func (s *productService) ExportReport(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "ProductService.ExportReport")
	defer span.End()

	path, err := s.exporter.Export(ctx, s.productRepo.List(ctx), s.now())
	if err != nil {
		return "", spanError(span, fmt.Errorf("report exporter export: %w", err))
	}
	span.SetAttributes(attribute.String("path", path))

	s.record(ctx, audit.SystemActor, actionExported, "Report exported: "+path)
	span.SetStatus(codes.Ok, "")

	return path, nil
}

// RecentActions returns the last n action log lines and the total count.
func (s *productService) RecentActions(ctx context.Context, n int) ([]string, int, error) {
	_, span := tracer.Start(ctx, "ProductService.RecentActions")
	defer span.End()

	lines, total, err := s.actionLog.Tail(n)
	if err != nil {
		return nil, 0, spanError(span, fmt.Errorf("action log tail: %w", err))
	}
	return lines, total, nil
}
