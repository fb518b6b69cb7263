package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/codes"

	"github.com/wuasibox/box-register/internal/model"
)

func sampleProducts() []model.Product {
	return []model.Product{
		{
			Code:            "BOX-100-0001",
			Name:            "Cinta Transparente 48mm x 50m",
			Category:        model.CategoryClearTape,
			Description:     "Cinta adhesiva transparente para embalaje",
			Brand:           "3M",
			UnitOfMeasure:   model.UnitRolls,
			PurchasePrice:   decimal.RequireFromString("2.50"),
			SalePrice:       decimal.RequireFromString("4.99"),
			Stock:           150,
			MinimumStock:    20,
			Supplier:        "Distribuidora Central",
			SupplierContact: "Juan Pérez - 555-1234",
			Width:           "48mm",
			Length:          "50m",
			Color:           "Transparente",
			Material:        "Polipropileno",
			Location:        "A-01-01",
		},
		{
			Code:            "BOX-200-0001",
			Name:            "Envoplast Industrial 20 micras",
			Category:        model.CategoryEnvoplast,
			Description:     "Película estirable para pallets",
			Brand:           "StretchPro",
			UnitOfMeasure:   model.UnitRolls,
			PurchasePrice:   decimal.RequireFromString("45.00"),
			SalePrice:       decimal.RequireFromString("89.99"),
			Stock:           25,
			MinimumStock:    5,
			Supplier:        "Plásticos Industriales SA",
			SupplierContact: "María García - 555-5678",
			Width:           "500mm",
			Length:          "1500m",
			Color:           "Transparente",
			Material:        "Polietileno",
			Location:        "B-02-03",
		},
	}
}

// SeedSamples stores the demonstration products when the catalog is empty.
// It reports whether anything was added.
func (s *productService) SeedSamples(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "ProductService.SeedSamples")
	defer span.End()

	if s.productRepo.Len() > 0 {
		return false, nil
	}

	now := s.now()
	samples := sampleProducts()
	for i := range samples {
		samples[i].RegisteredAt = now
		samples[i].Status = model.StatusActive
	}

	s.productRepo.Replace(ctx, samples)
	if err := s.productRepo.Save(ctx); err != nil {
		s.productRepo.Replace(ctx, nil)
		return false, spanError(span, fmt.Errorf("product repository save: %w", err))
	}

	slog.InfoContext(ctx, "sample products loaded", slog.Int("count", len(samples)))
	s.Statistics(ctx)
	span.SetStatus(codes.Ok, "")

	return true, nil
}
