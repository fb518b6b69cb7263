package console

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wuasibox/box-register/internal/catalog"
	"github.com/wuasibox/box-register/internal/model"
	"github.com/wuasibox/box-register/internal/service"
	"github.com/wuasibox/box-register/pkg/ptr"
)

func (c *Console) registerProduct(ctx context.Context) error {
	c.header("NEW PRODUCT REGISTRATION")

	c.println("\nAVAILABLE CATEGORIES:")
	for i, category := range model.Categories {
		c.printf("   %d. %s (code %s)\n", i+1, category, catalog.CategoryCode(category))
	}
	i, err := c.askChoice("\nSelect the category (1-8): ", len(model.Categories))
	if err != nil {
		return err
	}
	params := service.CreateProductParams{Category: model.Categories[i]}

	c.println("\nBASIC INFORMATION:")
	if params.Name, err = c.readLine("Product name: "); err != nil {
		return err
	}
	if params.Description, err = c.readLine("Description: "); err != nil {
		return err
	}
	if params.Brand, err = c.readLine("Brand/Manufacturer: "); err != nil {
		return err
	}

	c.println("\nUNITS OF MEASURE:")
	for i, unit := range model.Units {
		c.printf("   %d. %s\n", i+1, unit)
	}
	if i, err = c.askChoice("\nSelect the unit of measure (1-5): ", len(model.Units)); err != nil {
		return err
	}
	params.UnitOfMeasure = model.Units[i]

	c.println("\nPRICES AND STOCK:")
	if params.PurchasePrice, err = c.askAmount("Purchase price ($): "); err != nil {
		return err
	}
	if params.SalePrice, err = c.askAmount("Sale price ($): "); err != nil {
		return err
	}
	if params.Stock, err = c.askInt("Units in stock: "); err != nil {
		return err
	}
	if params.MinimumStock, err = c.askInt("Minimum stock (alert): "); err != nil {
		return err
	}

	c.println("\nSUPPLIER:")
	if params.Supplier, err = c.readLine("Supplier name: "); err != nil {
		return err
	}
	if params.SupplierContact, err = c.readLine("Supplier contact: "); err != nil {
		return err
	}

	c.println("\nTECHNICAL DETAILS:")
	for _, field := range []struct {
		prompt string
		dst    *string
	}{
		{"Width (e.g. 48mm): ", &params.Width},
		{"Length (e.g. 50m): ", &params.Length},
		{"Color: ", &params.Color},
		{"Main material: ", &params.Material},
		{"Warehouse location (e.g. A-12-B3): ", &params.Location},
	} {
		if *field.dst, err = c.readLine(field.prompt); err != nil {
			return err
		}
	}

	product, err := c.svc.CreateProduct(ctx, params)
	if err != nil {
		c.failure(ctx, "register product", err)
		return nil
	}

	c.println("\nPRODUCT REGISTERED SUCCESSFULLY")
	c.printf("   Code assigned: %s\n", product.Code)
	c.printf("   Registered at: %s\n", product.RegisteredAt.Format(dateTimeLayout))
	return nil
}

// lookupByCode asks for a product code until a well formed one is entered.
// ok is false when the operator cancels with 0 or the code is unknown.
func (c *Console) lookupByCode(ctx context.Context) (model.Product, bool, error) {
	for {
		code, err := c.readLine("\nEnter the product code (BOX-XXX-XXXX) or 0 to cancel: ")
		if err != nil {
			return model.Product{}, false, err
		}
		if code == "0" {
			return model.Product{}, false, nil
		}
		if !catalog.IsValidCode(code) {
			c.println("Invalid code format. Expected BOX-XXX-XXXX.")
			continue
		}

		product, err := c.svc.GetProduct(ctx, code)
		if err != nil {
			c.failure(ctx, "get product", err)
			return model.Product{}, false, nil
		}
		return product, true, nil
	}
}

func (c *Console) modifyProduct(ctx context.Context) error {
	c.header("MODIFY PRODUCT")

	product, ok, err := c.lookupByCode(ctx)
	if err != nil || !ok {
		return err
	}

	c.printf("\nMODIFYING %s - %s (%s)\n", product.Code, product.Name, product.Category)
	c.println("Enter the new values (leave empty to keep the current one):")

	var params service.UpdateProductParams
	for _, field := range []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"Product name", product.Name, &params.Name},
		{"Description", product.Description, &params.Description},
		{"Brand/Manufacturer", product.Brand, &params.Brand},
	} {
		if *field.dst, err = c.editText(field.prompt, field.current); err != nil {
			return err
		}
	}
	if params.PurchasePrice, err = c.editAmount("Purchase price ($)", product.PurchasePrice); err != nil {
		return err
	}
	if params.SalePrice, err = c.editAmount("Sale price ($)", product.SalePrice); err != nil {
		return err
	}
	if params.Stock, err = c.editCount("Units in stock", product.Stock); err != nil {
		return err
	}
	if params.MinimumStock, err = c.editCount("Minimum stock", product.MinimumStock); err != nil {
		return err
	}
	for _, field := range []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"Supplier", product.Supplier, &params.Supplier},
		{"Supplier contact", product.SupplierContact, &params.SupplierContact},
		{"Warehouse location", product.Location, &params.Location},
	} {
		if *field.dst, err = c.editText(field.prompt, field.current); err != nil {
			return err
		}
	}

	if _, err := c.svc.UpdateProduct(ctx, product.Code, params); err != nil {
		c.failure(ctx, "modify product", err)
		return nil
	}

	c.println("\nPRODUCT UPDATED SUCCESSFULLY")
	return nil
}

// editText returns nil when the operator keeps the current value.
func (c *Console) editText(label, current string) (*string, error) {
	line, err := c.readLine(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil || line == "" {
		return nil, err
	}
	return ptr.New(line), nil
}

func (c *Console) editAmount(label string, current decimal.Decimal) (*decimal.Decimal, error) {
	line, err := c.readLine(fmt.Sprintf("%s [%s]: ", label, current.StringFixed(2)))
	if err != nil || line == "" {
		return nil, err
	}
	d, ok := parseAmount(line)
	if !ok {
		c.println("Invalid value, keeping the previous one.")
		return nil, nil
	}
	return ptr.New(d), nil
}

func (c *Console) editCount(label string, current int) (*int, error) {
	line, err := c.readLine(fmt.Sprintf("%s [%d]: ", label, current))
	if err != nil || line == "" {
		return nil, err
	}
	n, ok := parseCount(line)
	if !ok {
		c.println("Invalid value, keeping the previous one.")
		return nil, nil
	}
	return ptr.New(n), nil
}
