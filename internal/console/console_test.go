package console_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuasibox/box-register/internal/audit"
	"github.com/wuasibox/box-register/internal/catalog"
	"github.com/wuasibox/box-register/internal/console"
	"github.com/wuasibox/box-register/internal/metrics"
	"github.com/wuasibox/box-register/internal/model"
	"github.com/wuasibox/box-register/internal/report"
	"github.com/wuasibox/box-register/internal/repository"
	"github.com/wuasibox/box-register/internal/service"
	"github.com/wuasibox/box-register/pkg/validator"
)

type session struct {
	svc  service.ProductService
	repo repository.ProductRepository
}

func newSession(t *testing.T, seed bool) session {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return time.Date(2024, 3, 14, 16, 5, 9, 0, time.UTC) }

	v, err := validator.NewDefaultValidator(catalog.IsValidCode)
	require.NoError(t, err)

	repo := repository.NewProductRepository(filepath.Join(dir, "productos.json"), logger)
	svc := service.NewProductService(
		repo,
		audit.NewActionLog(filepath.Join(dir, "sistema_log.txt"), clock, logger),
		report.NewExporter(dir, logger),
		metrics.NewInventoryMetrics(prometheus.NewRegistry()),
		v,
		"Usuario",
		clock,
	)
	if seed {
		_, err := svc.SeedSamples(context.Background())
		require.NoError(t, err)
	}
	return session{svc: svc, repo: repo}
}

func run(t *testing.T, s session, lines ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	c := console.New(s.svc, in, out, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestConsole_Register(t *testing.T) {
	t.Run("Should register a product and show its code", func(t *testing.T) {
		s := newSession(t, false)

		out := run(t, s,
			"1", "1", "Cinta 48mm", "Cinta adhesiva", "3M", "1",
			"2.50", "4.99", "150", "20",
			"Distribuidora Central", "Juan", "48mm", "50m", "Transparente", "Polipropileno", "A-01-01",
			"8",
		)

		assert.Contains(t, out, "Code assigned: BOX-100-0001")
		assert.Contains(t, out, "Thank you")
		require.Equal(t, 1, s.repo.Len())
		p, ok := s.repo.FindByCode(context.Background(), "BOX-100-0001")
		require.True(t, ok)
		assert.Equal(t, "Polipropileno", p.Material)
		assert.Equal(t, 150, p.Stock)
	})

	t.Run("Should re-ask invalid numbers and choices", func(t *testing.T) {
		s := newSession(t, false)

		out := run(t, s,
			"1", "9", "2", "Envoplast", "", "", "0", "1",
			"abc", "-3", "45", "89.99", "x", "25", "5",
			"", "", "", "", "", "", "",
			"8",
		)

		assert.Contains(t, out, "Select a number between 1 and 8.")
		assert.Contains(t, out, "Enter a valid amount (0 or more).")
		assert.Contains(t, out, "Enter a valid whole number (0 or more).")
		assert.Contains(t, out, "Code assigned: BOX-200-0001")
	})
}

func TestConsole_Modify(t *testing.T) {
	t.Run("Should keep the previous value on an invalid number", func(t *testing.T) {
		s := newSession(t, true)

		out := run(t, s,
			"2", "BOX-1000-1", "BOX-100-0001",
			"", "", "", "xyz", "", "7", "", "", "", "",
			"8",
		)

		assert.Contains(t, out, "Invalid code format.")
		assert.Contains(t, out, "Invalid value, keeping the previous one.")
		assert.Contains(t, out, "PRODUCT UPDATED SUCCESSFULLY")
		p, ok := s.repo.FindByCode(context.Background(), "BOX-100-0001")
		require.True(t, ok)
		assert.Equal(t, 7, p.Stock)
		assert.Equal(t, "2.50", p.PurchasePrice.StringFixed(2))
		assert.Equal(t, "Usuario", p.ModifiedBy)
	})

	t.Run("Should report an unknown code", func(t *testing.T) {
		s := newSession(t, true)

		out := run(t, s, "2", "BOX-100-0099", "8")

		assert.Contains(t, out, "product not found: BOX-100-0099")
	})
}

func TestConsole_Views(t *testing.T) {
	t.Run("Should show statistics with grouped currency", func(t *testing.T) {
		out := run(t, newSession(t, true), "5", "8")

		assert.Contains(t, out, "Registered products: 2")
		assert.Contains(t, out, "$1,500.00")
	})

	t.Run("Should alert low stock above the menu", func(t *testing.T) {
		s := newSession(t, true)

		out := run(t, s, "2", "BOX-200-0001", "", "", "", "", "", "3", "", "", "", "", "8")

		assert.Contains(t, out, "LOW STOCK ALERTS:")
	})

	t.Run("Should search by name", func(t *testing.T) {
		out := run(t, newSession(t, true), "4", "2", "envoplast", "8")

		assert.Contains(t, out, "Code:             BOX-200-0001")
	})

	t.Run("Should list low stock products", func(t *testing.T) {
		out := run(t, newSession(t, true), "4", "4", "8")

		assert.Contains(t, out, "No products found.")
	})

	t.Run("Should show the exported report in the action log", func(t *testing.T) {
		out := run(t, newSession(t, true), "6", "7", "8")

		assert.Contains(t, out, "Report exported to:")
		assert.Contains(t, out, "| System | Report exported:")
		assert.Contains(t, out, "Total entries: 1")
	})

	t.Run("Should print the inventory report without exporting", func(t *testing.T) {
		out := run(t, newSession(t, true), "3", "n", "8")

		assert.Contains(t, out, "EXECUTIVE SUMMARY:")
		assert.Contains(t, out, "Total products: 2")
		assert.NotContains(t, out, "Report exported to:")
	})

	t.Run("Should refuse to export an empty catalog", func(t *testing.T) {
		out := run(t, newSession(t, false), "6", "8")

		assert.Contains(t, out, "Error: there are no products registered")
	})
}

func TestConsole_Run(t *testing.T) {
	t.Run("Should stop cleanly when the input ends", func(t *testing.T) {
		c := console.New(newSession(t, false).svc, strings.NewReader(""), io.Discard,
			slog.New(slog.NewTextHandler(io.Discard, nil)))

		assert.NoError(t, c.Run(context.Background()))
	})

	t.Run("Should ignore an unknown option", func(t *testing.T) {
		out := run(t, newSession(t, false), "42", "8")

		assert.Contains(t, out, "Invalid option. Try again.")
	})
}

type panickingService struct {
	service.ProductService
}

func (panickingService) LowStockProducts(context.Context) []model.Product {
	return nil
}

func TestConsole_Recover(t *testing.T) {
	t.Run("Should survive a panicking action", func(t *testing.T) {
		out := &bytes.Buffer{}
		c := console.New(panickingService{}, strings.NewReader("5\n8\n"), out,
			slog.New(slog.NewTextHandler(io.Discard, nil)))

		require.NoError(t, c.Run(context.Background()))

		assert.Contains(t, out.String(), "Internal error. The action was not completed.")
		assert.Contains(t, out.String(), "Thank you")
	})
}
