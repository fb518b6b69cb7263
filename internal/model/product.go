package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one catalog record. Code, Category and RegisteredAt are fixed
// once the record is created; ModifiedAt/ModifiedBy stay empty until the
// first edit.
type Product struct {
	Code            string          `json:"code"`
	Category        Category        `json:"category"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Brand           string          `json:"brand"`
	UnitOfMeasure   Unit            `json:"unit_of_measure"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	Stock           int             `json:"stock"`
	MinimumStock    int             `json:"minimum_stock"`
	Supplier        string          `json:"supplier"`
	SupplierContact string          `json:"supplier_contact"`
	Width           string          `json:"width,omitempty"`
	Length          string          `json:"length,omitempty"`
	Color           string          `json:"color,omitempty"`
	Material        string          `json:"material,omitempty"`
	Location        string          `json:"location"`
	RegisteredAt    time.Time       `json:"registered_at"`
	ModifiedAt      *time.Time      `json:"modified_at,omitempty"`
	ModifiedBy      string          `json:"modified_by,omitempty"`
	Status          Status          `json:"status"`
}

// StatusOrDefault returns the record's lifecycle status, treating an empty
// value from an older catalog file as Active.
func (p Product) StatusOrDefault() Status {
	if p.Status == "" {
		return StatusActive
	}
	return p.Status
}
