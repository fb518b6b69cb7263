package model

import (
	"fmt"
	"slices"
)

// Category is one of the fixed product families sold by the reseller.
type Category string

const (
	CategoryClearTape         Category = "Cintas Transparentes"
	CategoryEnvoplast         Category = "Envoplast"
	CategoryInsulatingTape    Category = "Cinta Aislante"
	CategoryOfficeTape        Category = "Cinta de Oficina"
	CategoryPaperMaskingTape  Category = "Tirro de Papel"
	CategoryPlasticStrapping  Category = "Flejes Plásticos"
	CategoryStretchFilm       Category = "Películas Estirables"
	CategoryProtectiveProduct Category = "Material de Protección"
)

// Categories lists the categories in menu order.
var Categories = []Category{
	CategoryClearTape,
	CategoryEnvoplast,
	CategoryInsulatingTape,
	CategoryOfficeTape,
	CategoryPaperMaskingTape,
	CategoryPlasticStrapping,
	CategoryStretchFilm,
	CategoryProtectiveProduct,
}

func (c Category) Validate() error {
	if !slices.Contains(Categories, c) {
		return fmt.Errorf("unknown category: %q", string(c))
	}
	return nil
}

func (c Category) String() string {
	return string(c)
}

// Unit is the unit of measure a product is stocked in.
type Unit string

const (
	UnitRolls  Unit = "Rollos"
	UnitPieces Unit = "Unidades"
	UnitMeters Unit = "Metros"
	UnitKilos  Unit = "Kilos"
	UnitBoxes  Unit = "Cajas"
)

// Units lists the units of measure in menu order.
var Units = []Unit{UnitRolls, UnitPieces, UnitMeters, UnitKilos, UnitBoxes}

func (u Unit) Validate() error {
	if !slices.Contains(Units, u) {
		return fmt.Errorf("unknown unit of measure: %q", string(u))
	}
	return nil
}

func (u Unit) String() string {
	return string(u)
}

// Status is the record lifecycle flag. Only Active is assigned today.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusInactive:
		return nil
	default:
		return fmt.Errorf("unknown status: %q", string(s))
	}
}
