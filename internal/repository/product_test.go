package repository_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuasibox/box-register/internal/apperr"
	"github.com/wuasibox/box-register/internal/model"
	"github.com/wuasibox/box-register/internal/repository"
	"github.com/wuasibox/box-register/pkg/ptr"
)

var registeredAt = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleProducts() []model.Product {
	return []model.Product{
		{
			Code:            "BOX-100-0001",
			Category:        model.CategoryClearTape,
			Name:            "Cinta Transparente 48mm x 50m",
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
			RegisteredAt:    registeredAt,
			Status:          model.StatusActive,
		},
		{
			Code:          "BOX-200-0002",
			Category:      model.CategoryEnvoplast,
			Name:          "Envoplast Industrial 20 micras",
			UnitOfMeasure: model.UnitRolls,
			PurchasePrice: decimal.RequireFromString("45.00"),
			SalePrice:     decimal.RequireFromString("89.99"),
			Stock:         25,
			MinimumStock:  5,
			Location:      "B-02-03",
			RegisteredAt:  registeredAt,
			ModifiedAt:    ptr.New(registeredAt.Add(time.Hour)),
			ModifiedBy:    "Usuario",
			Status:        model.StatusActive,
		},
	}
}

// assertSameProducts compares field by field; decimals and times are
// compared by value rather than by representation.
func assertSameProducts(t *testing.T, want, got []model.Product) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		w, g := want[i], got[i]
		assert.True(t, w.PurchasePrice.Equal(g.PurchasePrice), "purchase price of %s", w.Code)
		assert.True(t, w.SalePrice.Equal(g.SalePrice), "sale price of %s", w.Code)
		assert.True(t, w.RegisteredAt.Equal(g.RegisteredAt), "registered_at of %s", w.Code)
		if w.ModifiedAt == nil {
			assert.Nil(t, g.ModifiedAt)
		} else if assert.NotNil(t, g.ModifiedAt) {
			assert.True(t, w.ModifiedAt.Equal(*g.ModifiedAt), "modified_at of %s", w.Code)
		}

		w.PurchasePrice, g.PurchasePrice = decimal.Zero, decimal.Zero
		w.SalePrice, g.SalePrice = decimal.Zero, decimal.Zero
		w.RegisteredAt, g.RegisteredAt = time.Time{}, time.Time{}
		w.ModifiedAt, g.ModifiedAt = nil, nil
		assert.Equal(t, w, g)
	}
}

func TestProductRepository_LoadSave(t *testing.T) {
	ctx := context.Background()

	t.Run("Should round-trip the catalog field for field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "productos.json")
		repo := repository.NewProductRepository(path, discardLogger())
		repo.Replace(ctx, sampleProducts())
		require.NoError(t, repo.Save(ctx))

		loaded := repository.NewProductRepository(path, discardLogger()).Load(ctx)

		assertSameProducts(t, sampleProducts(), loaded)
	})

	t.Run("Should start empty when the file is missing", func(t *testing.T) {
		repo := repository.NewProductRepository(filepath.Join(t.TempDir(), "none.json"), discardLogger())

		assert.Empty(t, repo.Load(ctx))
		assert.Equal(t, 0, repo.Len())
	})

	t.Run("Should start empty when the file is corrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "productos.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"code": "BOX-100-0001",`), 0o644))

		repo := repository.NewProductRepository(path, discardLogger())

		assert.Empty(t, repo.Load(ctx))
	})

	t.Run("Should read prices stored as json numbers and default the status", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "productos.json")
		doc := `[{"code":"BOX-100-0001","category":"Cintas Transparentes","name":"Cinta",` +
			`"purchase_price":2.5,"sale_price":4.99,"stock":3,"minimum_stock":1,` +
			`"registered_at":"2024-03-14T09:30:00Z"}]`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		products := repository.NewProductRepository(path, discardLogger()).Load(ctx)

		require.Len(t, products, 1)
		assert.True(t, products[0].PurchasePrice.Equal(decimal.RequireFromString("2.5")))
		assert.Equal(t, model.StatusActive, products[0].Status)
	})

	t.Run("Should write an empty array for an empty catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "productos.json")
		repo := repository.NewProductRepository(path, discardLogger())
		require.NoError(t, repo.Save(ctx))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("Should report a persistence error when the path is unwritable", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		repo := repository.NewProductRepository(filepath.Join(blocker, "productos.json"), discardLogger())
		err := repo.Save(ctx)

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.PersistenceErr))
	})
}

func TestProductRepository_Append(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProductRepository(filepath.Join(t.TempDir(), "p.json"), discardLogger())
	repo.Replace(ctx, sampleProducts())

	t.Run("Should append a new product at the end", func(t *testing.T) {
		require.NoError(t, repo.Append(ctx, model.Product{Code: "BOX-300-0003", Name: "Cinta Aislante"}))

		codes := repo.Codes(ctx)
		assert.Equal(t, []string{"BOX-100-0001", "BOX-200-0002", "BOX-300-0003"}, codes)
	})

	t.Run("Should reject a duplicate code", func(t *testing.T) {
		err := repo.Append(ctx, model.Product{Code: "BOX-100-0001"})

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.DuplicateCodeErr))
		assert.Equal(t, 3, repo.Len())
	})

	t.Run("Should reject a malformed code", func(t *testing.T) {
		err := repo.Append(ctx, model.Product{Code: "BOX-1-1"})

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.InvalidCodeErr))
	})

	t.Run("Should remove a product by code", func(t *testing.T) {
		assert.True(t, repo.Remove(ctx, "BOX-300-0003"))
		assert.False(t, repo.Remove(ctx, "BOX-300-0003"))
		assert.Equal(t, 2, repo.Len())
	})
}

func TestProductRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProductRepository(filepath.Join(t.TempDir(), "p.json"), discardLogger())
	repo.Replace(ctx, sampleProducts())

	t.Run("Should find by exact code", func(t *testing.T) {
		p, ok := repo.FindByCode(ctx, "BOX-200-0002")

		require.True(t, ok)
		assert.Equal(t, "Envoplast Industrial 20 micras", p.Name)
	})

	t.Run("Should not find an unknown code", func(t *testing.T) {
		_, ok := repo.FindByCode(ctx, "BOX-200-0099")
		assert.False(t, ok)
	})

	t.Run("Should find the first case-insensitive name match", func(t *testing.T) {
		p, ok := repo.FindByName(ctx, "CINTA transparente")
		require.True(t, ok)
		assert.Equal(t, "BOX-100-0001", p.Code)

		p, ok = repo.FindByName(ctx, "in")
		require.True(t, ok)
		assert.Equal(t, "BOX-100-0001", p.Code, "first in catalog order")
	})

	t.Run("Should not match an empty search text", func(t *testing.T) {
		_, ok := repo.FindByName(ctx, "   ")
		assert.False(t, ok)
	})

	t.Run("Should not expose internal state through List", func(t *testing.T) {
		list := repo.List(ctx)
		list[0].Name = "changed"

		p, _ := repo.FindByCode(ctx, "BOX-100-0001")
		assert.Equal(t, "Cinta Transparente 48mm x 50m", p.Name)
	})
}

func TestProductRepository_UpdateFields(t *testing.T) {
	ctx := context.Background()
	editedAt := registeredAt.Add(48 * time.Hour)

	t.Run("Should replace only the given fields", func(t *testing.T) {
		repo := repository.NewProductRepository(filepath.Join(t.TempDir(), "p.json"), discardLogger())
		repo.Replace(ctx, sampleProducts())

		p, err := repo.UpdateFields(ctx, "BOX-100-0001", repository.UpdateFieldsParams{
			Stock:     ptr.New(0),
			SalePrice: ptr.New(decimal.RequireFromString("5.25")),
		}, "Usuario", editedAt)
		require.NoError(t, err)

		assert.Equal(t, 0, p.Stock)
		assert.True(t, p.SalePrice.Equal(decimal.RequireFromString("5.25")))
		assert.Equal(t, "Cinta Transparente 48mm x 50m", p.Name)
		assert.Equal(t, 20, p.MinimumStock)
		assert.Equal(t, "BOX-100-0001", p.Code)
		assert.True(t, p.RegisteredAt.Equal(registeredAt))
		require.NotNil(t, p.ModifiedAt)
		assert.True(t, p.ModifiedAt.Equal(editedAt))
		assert.Equal(t, "Usuario", p.ModifiedBy)

		stored, _ := repo.FindByCode(ctx, "BOX-100-0001")
		assert.Equal(t, 0, stored.Stock)
	})

	t.Run("Should stamp the modification even when nothing changes", func(t *testing.T) {
		repo := repository.NewProductRepository(filepath.Join(t.TempDir(), "p.json"), discardLogger())
		repo.Replace(ctx, sampleProducts())
		before, _ := repo.FindByCode(ctx, "BOX-100-0001")

		after, err := repo.UpdateFields(ctx, "BOX-100-0001", repository.UpdateFieldsParams{}, "Usuario", editedAt)
		require.NoError(t, err)

		require.NotNil(t, after.ModifiedAt)
		assert.True(t, after.ModifiedAt.Equal(editedAt))
		assert.Equal(t, "Usuario", after.ModifiedBy)

		after.ModifiedAt, after.ModifiedBy = nil, ""
		assert.Equal(t, before, after)
	})

	t.Run("Should fail for an unknown code", func(t *testing.T) {
		repo := repository.NewProductRepository(filepath.Join(t.TempDir(), "p.json"), discardLogger())

		_, err := repo.UpdateFields(ctx, "BOX-100-0404", repository.UpdateFieldsParams{}, "Usuario", editedAt)

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.ProductNotFoundErr))
	})
}
