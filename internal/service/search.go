package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/cases"

	"github.com/wuasibox/box-register/internal/analytics"
	"github.com/wuasibox/box-register/internal/model"
)

// StockLevel narrows a search to products in a stock band.
type StockLevel string

const (
	StockLevelAll StockLevel = "all"
	StockLevelLow StockLevel = "low"
	StockLevelOut StockLevel = "out"
)

func (l StockLevel) Validate() error {
	switch l {
	case "", StockLevelAll, StockLevelLow, StockLevelOut:
		return nil
	default:
		return fmt.Errorf("unknown stock level: %q", string(l))
	}
}

// SearchFilter combines optional criteria; zero values match everything.
type SearchFilter struct {
	// Text matches code, name, description or category ignoring case.
	Text         string
	Category     model.Category   `validate:"omitempty,enum"`
	StockLevel   StockLevel       `validate:"omitempty,enum"`
	MinSalePrice *decimal.Decimal `validate:"omitempty,gte=0"`
	MaxSalePrice *decimal.Decimal `validate:"omitempty,gte=0"`
}

func (s *productService) SearchProducts(ctx context.Context, filter SearchFilter) ([]model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.SearchProducts")
	defer span.End()

	if err := s.validate(filter); err != nil {
		return nil, spanError(span, err)
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(filter.Text))

	var matches []model.Product
	for _, p := range s.productRepo.List(ctx) {
		if needle != "" && !containsFolded(fold, needle, p.Code, p.Name, p.Description, p.Category.String()) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if !matchesStockLevel(p, filter.StockLevel) {
			continue
		}
		if filter.MinSalePrice != nil && p.SalePrice.LessThan(*filter.MinSalePrice) {
			continue
		}
		if filter.MaxSalePrice != nil && p.SalePrice.GreaterThan(*filter.MaxSalePrice) {
			continue
		}
		matches = append(matches, p)
	}

	span.SetStatus(codes.Ok, "")
	return matches, nil
}

func matchesStockLevel(p model.Product, level StockLevel) bool {
	switch level {
	case StockLevelLow:
		return analytics.IsLowStock(p)
	case StockLevelOut:
		return p.Stock == 0
	default:
		return true
	}
}

func containsFolded(fold cases.Caser, needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}
