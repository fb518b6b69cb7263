// Package analytics derives valuation, stock and margin figures from a set of
// products. Every function is a pure read; amounts are accumulated with
// exact decimal arithmetic and only rounded by callers for display.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/wuasibox/box-register/internal/model"
)

var hundred = decimal.NewFromInt(100)

// StockStatus is the stock level label shown in reports.
type StockStatus string

const (
	StockOut    StockStatus = "OUT_OF_STOCK"
	StockLow    StockStatus = "LOW"
	StockNormal StockStatus = "NORMAL"
)

// StockStatusOf labels p: out of stock at zero, low at or below its
// minimum, normal otherwise.
func StockStatusOf(p model.Product) StockStatus {
	switch {
	case p.Stock == 0:
		return StockOut
	case p.Stock <= p.MinimumStock:
		return StockLow
	default:
		return StockNormal
	}
}

// IsLowStock reports whether p is at or below its minimum stock. Out of
// stock products are low stock too.
func IsLowStock(p model.Product) bool {
	return p.Stock <= p.MinimumStock
}

// InventoryValue is the purchase cost of the units on hand.
func InventoryValue(p model.Product) decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}

func TotalInventoryValue(products []model.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(InventoryValue(p))
	}
	return total
}

// LowStock returns the products at or below their minimum, in catalog order.
func LowStock(products []model.Product) []model.Product {
	var low []model.Product
	for _, p := range products {
		if IsLowStock(p) {
			low = append(low, p)
		}
	}
	return low
}

// UnitMargin is sale price minus purchase price; it may be negative.
func UnitMargin(p model.Product) decimal.Decimal {
	return p.SalePrice.Sub(p.PurchasePrice)
}

// MarginPercent is the unit margin as a percentage of the purchase price.
// ok is false when the purchase price is zero and the ratio is undefined.
func MarginPercent(p model.Product) (pct decimal.Decimal, ok bool) {
	if !p.PurchasePrice.IsPositive() {
		return decimal.Zero, false
	}
	return UnitMargin(p).Mul(hundred).Div(p.PurchasePrice), true
}

// AverageMarginPercent averages MarginPercent over the products that have a
// purchase price. It is zero when none does, including for no products.
func AverageMarginPercent(products []model.Product) decimal.Decimal {
	sum := decimal.Zero
	n := int64(0)
	for _, p := range products {
		pct, ok := MarginPercent(p)
		if !ok {
			continue
		}
		sum = sum.Add(pct)
		n++
	}

	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(n))
}

// CategoryShare is one row of the category distribution.
type CategoryShare struct {
	Category model.Category
	Count    int
	Value    decimal.Decimal
	// Percent is Count as a percentage of all products.
	Percent decimal.Decimal
}

// CategoryDistribution groups products by category in order of first
// appearance.
func CategoryDistribution(products []model.Product) []CategoryShare {
	var shares []CategoryShare
	index := map[model.Category]int{}

	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(shares)
			index[p.Category] = i
			shares = append(shares, CategoryShare{Category: p.Category, Value: decimal.Zero})
		}
		shares[i].Count++
		shares[i].Value = shares[i].Value.Add(InventoryValue(p))
	}

	total := decimal.NewFromInt(int64(len(products)))
	for i := range shares {
		shares[i].Percent = decimal.NewFromInt(int64(shares[i].Count)).Mul(hundred).Div(total)
	}

	return shares
}

// Summary gathers the figures shown on the statistics and report screens.
type Summary struct {
	ProductCount         int
	TotalInventoryValue  decimal.Decimal
	LowStockCount        int
	OutOfStockCount      int
	AverageMarginPercent decimal.Decimal
	Categories           []CategoryShare
}

func Summarize(products []model.Product) Summary {
	s := Summary{
		ProductCount:         len(products),
		TotalInventoryValue:  TotalInventoryValue(products),
		AverageMarginPercent: AverageMarginPercent(products),
		Categories:           CategoryDistribution(products),
	}

	for _, p := range products {
		switch StockStatusOf(p) {
		case StockOut:
			s.OutOfStockCount++
			s.LowStockCount++
		case StockLow:
			s.LowStockCount++
		}
	}

	return s
}
