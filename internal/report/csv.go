package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wuasibox/box-register/internal/analytics"
	"github.com/wuasibox/box-register/internal/model"
)

const (
	Title           = "INVENTORY REPORT - BOXPRO SOLUTIONS"
	GeneratedLayout = "02/01/2006 15:04:05"
	TotalLabel      = "TOTAL INVENTORY:"
)

var header = []string{
	"Code", "Name", "Category", "Unit", "Purchase Price",
	"Sale Price", "Stock", "Minimum Stock", "Inventory Value",
	"Supplier", "Location", "Status",
}

// Render writes the inventory report for products as CSV: a title block,
// one row per product and a trailing total row. The output depends only on
// its arguments.
func Render(w io.Writer, products []model.Product, generatedAt time.Time) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	rows := [][]string{
		{Title},
		{"Generated at: " + generatedAt.Format(GeneratedLayout)},
		{},
		header,
	}
	for _, p := range products {
		rows = append(rows, productRow(p))
	}

	totalRow := make([]string, len(header)-3)
	totalRow[7] = TotalLabel
	totalRow[8] = "$" + analytics.TotalInventoryValue(products).StringFixed(2)
	rows = append(rows, []string{}, totalRow)

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func productRow(p model.Product) []string {
	return []string{
		p.Code,
		p.Name,
		p.Category.String(),
		orNA(p.UnitOfMeasure.String()),
		formatAmount(p.PurchasePrice),
		formatAmount(p.SalePrice),
		strconv.Itoa(p.Stock),
		strconv.Itoa(p.MinimumStock),
		formatAmount(analytics.InventoryValue(p)),
		orNA(p.Supplier),
		orNA(p.Location),
		string(analytics.StockStatusOf(p)),
	}
}

func formatAmount(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
