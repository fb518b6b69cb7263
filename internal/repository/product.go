package repository

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/wuasibox/box-register/internal/apperr"
	"github.com/wuasibox/box-register/internal/catalog"
	"github.com/wuasibox/box-register/internal/model"
	"github.com/wuasibox/box-register/internal/storage/file"
	"github.com/wuasibox/box-register/pkg/ptr"
)

// UpdateFieldsParams holds a partial edit. Nil fields keep their value.
type UpdateFieldsParams struct {
	Name            *string
	Description     *string
	Brand           *string
	PurchasePrice   *decimal.Decimal
	SalePrice       *decimal.Decimal
	Stock           *int
	MinimumStock    *int
	Supplier        *string
	SupplierContact *string
	Location        *string
}

// ProductRepository is the catalog handle: the in-memory list of products
// and the JSON document it is loaded from and saved to. Mutations are not
// persisted until Save is called.
type ProductRepository interface {
	Load(ctx context.Context) []model.Product
	Save(ctx context.Context) error
	Replace(ctx context.Context, products []model.Product)
	Append(ctx context.Context, product model.Product) error
	Remove(ctx context.Context, code string) bool
	FindByCode(ctx context.Context, code string) (model.Product, bool)
	FindByName(ctx context.Context, text string) (model.Product, bool)
	UpdateFields(ctx context.Context, code string, params UpdateFieldsParams, actor string, at time.Time) (model.Product, error)
	List(ctx context.Context) []model.Product
	Codes(ctx context.Context) []string
	Len() int
}

type productRepository struct {
	path     string
	logger   *slog.Logger
	products []model.Product
}

func NewProductRepository(path string, logger *slog.Logger) ProductRepository {
	return &productRepository{
		path:   path,
		logger: logger.With(slog.String("component", "repository")),
	}
}

// Load replaces the in-memory catalog with the persisted one. A missing or
// unreadable document yields an empty catalog; the failure is logged and
// not returned.
func (r *productRepository) Load(ctx context.Context) []model.Product {
	var products []model.Product
	if err := file.ReadJSON(r.path, &products); err != nil {
		if file.IsNotExist(err) {
			r.logger.InfoContext(ctx, "no catalog file yet, starting empty", slog.String("path", r.path))
		} else {
			r.logger.WarnContext(ctx, "error loading catalog, starting empty",
				slog.String("path", r.path), slog.Any("error", err))
		}
		products = nil
	}

	for i := range products {
		if products[i].Status == "" {
			products[i].Status = model.StatusActive
		}
	}

	r.products = products
	r.logger.DebugContext(ctx, "catalog loaded", slog.Int("count", len(products)))

	return r.List(ctx)
}

func (r *productRepository) Save(ctx context.Context) error {
	products := r.products
	if products == nil {
		products = []model.Product{}
	}

	if err := file.WriteJSON(r.path, products); err != nil {
		return apperr.PersistenceErr.WrapParent(fmt.Errorf("save catalog %s: %w", r.path, err))
	}

	r.logger.DebugContext(ctx, "catalog saved", slog.Int("count", len(products)))
	return nil
}

func (r *productRepository) Replace(_ context.Context, products []model.Product) {
	r.products = slices.Clone(products)
}

func (r *productRepository) Append(_ context.Context, product model.Product) error {
	if !catalog.IsValidCode(product.Code) {
		return apperr.InvalidCodeErr.WithMsg(fmt.Sprintf("invalid product code: %q", product.Code))
	}
	if r.indexOf(product.Code) >= 0 {
		return apperr.DuplicateCodeErr.WithMsg(fmt.Sprintf("product code already exists: %s", product.Code))
	}

	r.products = append(r.products, product)
	return nil
}

// Remove drops the record with code. It only exists so a create whose save
// failed can be undone; the register itself offers no delete.
func (r *productRepository) Remove(_ context.Context, code string) bool {
	i := r.indexOf(code)
	if i < 0 {
		return false
	}
	r.products = slices.Delete(r.products, i, i+1)
	return true
}

func (r *productRepository) FindByCode(_ context.Context, code string) (model.Product, bool) {
	i := r.indexOf(code)
	if i < 0 {
		return model.Product{}, false
	}
	return r.products[i], true
}

// FindByName returns the first product, in catalog order, whose name
// contains text ignoring case.
func (r *productRepository) FindByName(_ context.Context, text string) (model.Product, bool) {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(text))
	if needle == "" {
		return model.Product{}, false
	}

	for _, p := range r.products {
		if strings.Contains(fold.String(p.Name), needle) {
			return p, true
		}
	}
	return model.Product{}, false
}

// UpdateFields applies the non-nil fields of params to the product with code
// and stamps ModifiedAt/ModifiedBy, also when params sets nothing.
func (r *productRepository) UpdateFields(
	_ context.Context,
	code string,
	params UpdateFieldsParams,
	actor string,
	at time.Time,
) (model.Product, error) {
	i := r.indexOf(code)
	if i < 0 {
		return model.Product{}, apperr.ProductNotFoundErr.WithMsg(fmt.Sprintf("product not found: %s", code))
	}

	p := r.products[i]
	p.Name = ptr.ValueOr(params.Name, p.Name)
	p.Description = ptr.ValueOr(params.Description, p.Description)
	p.Brand = ptr.ValueOr(params.Brand, p.Brand)
	p.PurchasePrice = ptr.ValueOr(params.PurchasePrice, p.PurchasePrice)
	p.SalePrice = ptr.ValueOr(params.SalePrice, p.SalePrice)
	p.Stock = ptr.ValueOr(params.Stock, p.Stock)
	p.MinimumStock = ptr.ValueOr(params.MinimumStock, p.MinimumStock)
	p.Supplier = ptr.ValueOr(params.Supplier, p.Supplier)
	p.SupplierContact = ptr.ValueOr(params.SupplierContact, p.SupplierContact)
	p.Location = ptr.ValueOr(params.Location, p.Location)
	p.ModifiedAt = ptr.New(at)
	p.ModifiedBy = actor

	r.products[i] = p
	return p, nil
}

func (r *productRepository) List(_ context.Context) []model.Product {
	return slices.Clone(r.products)
}

func (r *productRepository) Codes(_ context.Context) []string {
	codes := make([]string, 0, len(r.products))
	for _, p := range r.products {
		codes = append(codes, p.Code)
	}
	return codes
}

func (r *productRepository) Len() int {
	return len(r.products)
}

func (r *productRepository) indexOf(code string) int {
	return slices.IndexFunc(r.products, func(p model.Product) bool {
		return p.Code == code
	})
}
