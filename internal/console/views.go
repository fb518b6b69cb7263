package console

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/wuasibox/box-register/internal/analytics"
	"github.com/wuasibox/box-register/internal/model"
	"github.com/wuasibox/box-register/internal/service"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	barWidth       = 50
)

func (c *Console) lowStockAlerts(ctx context.Context) {
	low := c.svc.LowStockProducts(ctx)
	if len(low) == 0 {
		return
	}

	c.println("\nLOW STOCK ALERTS:")
	c.println(strings.Repeat("-", 80))
	c.printf("%-12s %-25s %-12s %-12s %-12s\n", "Code", "Product", "Stock", "Minimum", "Difference")
	c.println(strings.Repeat("-", 80))
	for _, p := range low {
		c.printf("%-12s %-25s %-12d %-12d %-12d\n",
			p.Code, truncate(p.Name, 23), p.Stock, p.MinimumStock, p.Stock-p.MinimumStock)
	}
	c.println(strings.Repeat("-", 80))
}

func (c *Console) inventoryReport(ctx context.Context) error {
	c.header("INVENTORY REPORT")

	products := c.svc.ListProducts(ctx)
	if len(products) == 0 {
		c.println("\nThere are no products registered.")
		return nil
	}

	rule := strings.Repeat("=", 120)
	c.println("\n" + rule)
	c.printf("%-12s %-25s %-20s %-8s %-11s %-11s %-8s %-13s %-12s\n",
		"Code", "Product", "Category", "Unit", "Purchase", "Sale", "Stock", "Value", "Status")
	c.println(rule)
	for _, p := range products {
		c.printf("%-12s %-25s %-20s %-8s %-11s %-11s %-8d %-13s %-12s\n",
			p.Code,
			truncate(p.Name, 23),
			truncate(p.Category.String(), 18),
			orNA(p.UnitOfMeasure.String()),
			c.money(p.PurchasePrice),
			c.money(p.SalePrice),
			p.Stock,
			c.money(analytics.InventoryValue(p)),
			analytics.StockStatusOf(p),
		)
	}
	c.println(rule)

	summary := c.svc.Statistics(ctx)
	c.println("\nEXECUTIVE SUMMARY:")
	c.printf("   - Total products: %d\n", summary.ProductCount)
	c.printf("   - Total inventory value: %s\n", c.money(summary.TotalInventoryValue))
	c.printf("   - Products with low or no stock: %d\n", summary.LowStockCount)
	c.printf("   - Average profit margin: %s%%\n", summary.AverageMarginPercent.StringFixed(1))

	c.println("\nDISTRIBUTION BY CATEGORY:")
	for _, share := range summary.Categories {
		bars := int(share.Percent.Div(decimal.NewFromInt(2)).IntPart())
		c.printf("   %-15s [%-50s] %3d (%s%%)\n",
			truncate(share.Category.String(), 15),
			strings.Repeat("#", min(bars, barWidth)),
			share.Count,
			share.Percent.StringFixed(1),
		)
	}
	c.printf("\nReport date: %s\n", time.Now().Format("02/01/2006 15:04"))

	export, err := c.confirm("\nExport this report to CSV? (Y/N): ")
	if err != nil {
		return err
	}
	if export {
		c.exportReport(ctx)
	}
	return nil
}

func (c *Console) searchProducts(ctx context.Context) error {
	c.header("PRODUCT SEARCH")

	c.println("\nSEARCH METHODS:")
	c.println("   1. By product code")
	c.println("   2. By name")
	c.println("   3. By category")
	c.println("   4. Low stock")
	method, err := c.askChoice("\nSelect a search method (1-4): ", 4)
	if err != nil {
		return err
	}

	switch method {
	case 0:
		code, err := c.readLine("Enter code (BOX-XXX-XXXX): ")
		if err != nil {
			return err
		}
		product, err := c.svc.GetProduct(ctx, code)
		if err != nil {
			c.failure(ctx, "search product", err)
			return nil
		}
		c.productDetail(product)
	case 1:
		name, err := c.readLine("Enter the name or part of it: ")
		if err != nil {
			return err
		}
		product, err := c.svc.FindProductByName(ctx, name)
		if err != nil {
			c.failure(ctx, "search product", err)
			return nil
		}
		c.productDetail(product)
	case 2:
		for i, category := range model.Categories {
			c.printf("   %d. %s\n", i+1, category)
		}
		i, err := c.askChoice("\nSelect the category (1-8): ", len(model.Categories))
		if err != nil {
			return err
		}
		c.searchResults(ctx, service.SearchFilter{Category: model.Categories[i]})
	case 3:
		c.searchResults(ctx, service.SearchFilter{StockLevel: service.StockLevelLow})
	}
	return nil
}

func (c *Console) searchResults(ctx context.Context, filter service.SearchFilter) {
	products, err := c.svc.SearchProducts(ctx, filter)
	if err != nil {
		c.failure(ctx, "search products", err)
		return
	}
	if len(products) == 0 {
		c.println("\nNo products found.")
		return
	}

	c.printf("\n%d product(s) found:\n", len(products))
	for _, p := range products {
		c.printf("   %-12s %-25s %-8d %s\n", p.Code, truncate(p.Name, 23), p.Stock, c.money(p.SalePrice))
	}
}

func (c *Console) productDetail(p model.Product) {
	rule := strings.Repeat("=", 60)
	c.println("\nPRODUCT DETAIL:")
	c.println(rule)
	c.printf("Code:             %s\n", p.Code)
	c.printf("Name:             %s\n", p.Name)
	c.printf("Category:         %s\n", p.Category)
	c.printf("Description:      %s\n", orNA(p.Description))
	c.printf("Brand:            %s\n", orNA(p.Brand))
	c.printf("Unit of measure:  %s\n", orNA(p.UnitOfMeasure.String()))
	c.printf("Purchase price:   %s\n", c.money(p.PurchasePrice))
	c.printf("Sale price:       %s\n", c.money(p.SalePrice))
	c.printf("Stock:            %d\n", p.Stock)
	c.printf("Minimum stock:    %d\n", p.MinimumStock)
	c.printf("Supplier:         %s\n", orNA(p.Supplier))
	c.printf("Contact:          %s\n", orNA(p.SupplierContact))
	c.printf("Location:         %s\n", orNA(p.Location))
	c.printf("Registered at:    %s\n", p.RegisteredAt.Format(dateTimeLayout))
	if p.ModifiedAt != nil {
		c.printf("Modified at:      %s by %s\n", p.ModifiedAt.Format(dateTimeLayout), p.ModifiedBy)
	}
	c.printf("Unit margin:      %s\n", c.money(analytics.UnitMargin(p)))
	c.printf("Inventory value:  %s\n", c.money(analytics.InventoryValue(p)))
	c.println(rule)
}

func (c *Console) statistics(ctx context.Context) {
	c.header("SYSTEM STATISTICS")

	summary := c.svc.Statistics(ctx)
	if summary.ProductCount == 0 {
		c.println("\nThere is no data to show statistics.")
		return
	}

	c.println("\nGENERAL STATISTICS:")
	c.printf("   - Registered products: %d\n", summary.ProductCount)
	c.printf("   - Total inventory value: %s\n", c.money(summary.TotalInventoryValue))
	c.printf("   - Products with low stock: %d\n", summary.LowStockCount)
	c.printf("   - Products out of stock: %d\n", summary.OutOfStockCount)
	c.printf("   - Average profit margin: %s%%\n", summary.AverageMarginPercent.StringFixed(1))

	c.println("\nSTATISTICS BY CATEGORY:")
	for _, share := range summary.Categories {
		c.printf("   - %s: %d products (%s%%) - Value: %s\n",
			share.Category, share.Count, share.Percent.StringFixed(1), c.money(share.Value))
	}
}

func (c *Console) exportReport(ctx context.Context) {
	path, err := c.svc.ExportReport(ctx)
	if err != nil {
		c.failure(ctx, "export report", err)
		return
	}
	c.printf("\nReport exported to: %s\n", path)
}

func (c *Console) actionLog(ctx context.Context) {
	c.header("ACTION LOG")

	lines, total, err := c.svc.RecentActions(ctx, logTailLines)
	if err != nil {
		c.failure(ctx, "read action log", err)
		return
	}
	if total == 0 {
		c.println("\nThe action log is empty.")
		return
	}

	c.printf("\nLAST %d ACTIONS:\n", logTailLines)
	c.println(strings.Repeat("-", 80))
	for _, line := range lines {
		c.println(line)
	}
	c.println(strings.Repeat("-", 80))
	c.printf("Total entries: %d\n", total)
}

// money renders an amount with thousands separators and two decimals.
func (c *Console) money(d decimal.Decimal) string {
	return c.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
