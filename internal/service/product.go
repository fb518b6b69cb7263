package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wuasibox/box-register/internal/analytics"
	"github.com/wuasibox/box-register/internal/apperr"
	"github.com/wuasibox/box-register/internal/catalog"
	"github.com/wuasibox/box-register/internal/model"
	"github.com/wuasibox/box-register/internal/repository"
	"github.com/wuasibox/box-register/pkg/validator"
)

var tracer = otel.Tracer("internal/service")

const (
	actionRegistered = "product_registered"
	actionModified   = "product_modified"
	actionExported   = "report_exported"
)

type CreateProductParams struct {
	Category        model.Category  `validate:"enum"`
	Name            string
	Description     string
	Brand           string
	UnitOfMeasure   model.Unit      `validate:"enum"`
	PurchasePrice   decimal.Decimal `validate:"gte=0"`
	SalePrice       decimal.Decimal `validate:"gte=0"`
	Stock           int             `validate:"gte=0"`
	MinimumStock    int             `validate:"gte=0"`
	Supplier        string
	SupplierContact string
	Width           string
	Length          string
	Color           string
	Material        string
	Location        string
}

// UpdateProductParams is a partial edit. Nil fields keep their value.
type UpdateProductParams struct {
	Name            *string
	Description     *string
	Brand           *string
	PurchasePrice   *decimal.Decimal `validate:"omitempty,gte=0"`
	SalePrice       *decimal.Decimal `validate:"omitempty,gte=0"`
	Stock           *int             `validate:"omitempty,gte=0"`
	MinimumStock    *int             `validate:"omitempty,gte=0"`
	Supplier        *string
	SupplierContact *string
	Location        *string
}

// ActionLogger records operator actions.
type ActionLogger interface {
	Record(ctx context.Context, actor, action string)
	Tail(n int) ([]string, int, error)
}

type ReportExporter interface {
	Export(ctx context.Context, products []model.Product, at time.Time) (string, error)
}

// MetricsRecorder receives a fresh summary after every change.
type MetricsRecorder interface {
	Observe(s analytics.Summary)
	IncAction(action string)
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, code string, params UpdateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, code string) (model.Product, error)
	FindProductByName(ctx context.Context, text string) (model.Product, error)
	ListProducts(ctx context.Context) []model.Product
	LowStockProducts(ctx context.Context) []model.Product
	SearchProducts(ctx context.Context, filter SearchFilter) ([]model.Product, error)
	Statistics(ctx context.Context) analytics.Summary
	ExportReport(ctx context.Context) (string, error)
	RecentActions(ctx context.Context, n int) ([]string, int, error)
	SeedSamples(ctx context.Context) (bool, error)
}

// Clock returns the current time. Tests inject a fixed one.
type Clock func() time.Time

type productService struct {
	productRepo repository.ProductRepository
	actionLog   ActionLogger
	exporter    ReportExporter
	metrics     MetricsRecorder
	validator   validator.Validator
	actor       string
	now         Clock
}

func NewProductService(
	productRepo repository.ProductRepository,
	actionLog ActionLogger,
	exporter ReportExporter,
	metrics MetricsRecorder,
	validator validator.Validator,
	actor string,
	now Clock,
) ProductService {
	if now == nil {
		now = time.Now
	}
	return &productService{
		productRepo: productRepo,
		actionLog:   actionLog,
		exporter:    exporter,
		metrics:     metrics,
		validator:   validator,
		actor:       actor,
		now:         now,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.CreateProduct",
		trace.WithAttributes(attribute.String("category", params.Category.String())),
	)
	defer span.End()

	if err := s.validate(params); err != nil {
		return model.Product{}, spanError(span, err)
	}

	code, err := catalog.GenerateCode(params.Category, s.productRepo.Codes(ctx))
	if err != nil {
		return model.Product{}, spanError(span, fmt.Errorf("generate code: %w", err))
	}
	span.SetAttributes(attribute.String("code", code))

	product := model.Product{
		Code:            code,
		Category:        params.Category,
		Name:            params.Name,
		Description:     params.Description,
		Brand:           params.Brand,
		UnitOfMeasure:   params.UnitOfMeasure,
		PurchasePrice:   params.PurchasePrice,
		SalePrice:       params.SalePrice,
		Stock:           params.Stock,
		MinimumStock:    params.MinimumStock,
		Supplier:        params.Supplier,
		SupplierContact: params.SupplierContact,
		Width:           params.Width,
		Length:          params.Length,
		Color:           params.Color,
		Material:        params.Material,
		Location:        params.Location,
		RegisteredAt:    s.now(),
		Status:          model.StatusActive,
	}

	if err := s.productRepo.Append(ctx, product); err != nil {
		return model.Product{}, spanError(span, fmt.Errorf("product repository append: %w", err))
	}

	if err := s.productRepo.Save(ctx); err != nil {
		s.productRepo.Remove(ctx, code)
		return model.Product{}, spanError(span, fmt.Errorf("product repository save: %w", err))
	}

	s.record(ctx, s.actor, actionRegistered, "Product registered: "+code)
	span.SetStatus(codes.Ok, "")

	return product, nil
}

func (s *productService) UpdateProduct(
	ctx context.Context,
	code string,
	params UpdateProductParams,
) (model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.UpdateProduct",
		trace.WithAttributes(attribute.String("code", code)),
	)
	defer span.End()

	if err := s.validate(params); err != nil {
		return model.Product{}, spanError(span, err)
	}

	previous := s.productRepo.List(ctx)
	product, err := s.productRepo.UpdateFields(ctx, code, repository.UpdateFieldsParams{
		Name:            params.Name,
		Description:     params.Description,
		Brand:           params.Brand,
		PurchasePrice:   params.PurchasePrice,
		SalePrice:       params.SalePrice,
		Stock:           params.Stock,
		MinimumStock:    params.MinimumStock,
		Supplier:        params.Supplier,
		SupplierContact: params.SupplierContact,
		Location:        params.Location,
	}, s.actor, s.now())
	if err != nil {
		return model.Product{}, spanError(span, fmt.Errorf("product repository update fields: %w", err))
	}

	if err := s.productRepo.Save(ctx); err != nil {
		s.productRepo.Replace(ctx, previous)
		return model.Product{}, spanError(span, fmt.Errorf("product repository save: %w", err))
	}

	s.record(ctx, s.actor, actionModified, "Product modified: "+code)
	span.SetStatus(codes.Ok, "")

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, code string) (model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.GetProduct",
		trace.WithAttributes(attribute.String("code", code)),
	)
	defer span.End()

	product, ok := s.productRepo.FindByCode(ctx, code)
	if !ok {
		return model.Product{}, apperr.ProductNotFoundErr.WithMsg(fmt.Sprintf("product not found: %s", code))
	}
	return product, nil
}

func (s *productService) FindProductByName(ctx context.Context, text string) (model.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.FindProductByName")
	defer span.End()

	product, ok := s.productRepo.FindByName(ctx, text)
	if !ok {
		return model.Product{}, apperr.ProductNotFoundErr.WithMsg(fmt.Sprintf("no product name contains %q", text))
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) []model.Product {
	ctx, span := tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	return s.productRepo.List(ctx)
}

func (s *productService) LowStockProducts(ctx context.Context) []model.Product {
	ctx, span := tracer.Start(ctx, "ProductService.LowStockProducts")
	defer span.End()

	return analytics.LowStock(s.productRepo.List(ctx))
}

func (s *productService) validate(params any) error {
	if err := s.validator.Validate(params); err != nil {
		return apperr.ValidationErr.WithMsg(validator.Describe(err)).WrapParent(err)
	}
	return nil
}

// record writes the action log entry, counts the action and refreshes the
// inventory gauges.
func (s *productService) record(ctx context.Context, actor, metricAction, action string) {
	s.actionLog.Record(ctx, actor, action)
	if s.metrics != nil {
		s.metrics.IncAction(metricAction)
		s.metrics.Observe(analytics.Summarize(s.productRepo.List(ctx)))
	}
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
