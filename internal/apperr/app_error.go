package apperr

import (
	"errors"

	"github.com/wuasibox/box-register/pkg/zerror"
)

const (
	ValidationErrorCode        = "VALIDATION_FAILED"
	InvalidCodeErrorCode       = "INVALID_PRODUCT_CODE"
	ProductNotFoundErrorCode   = "PRODUCT_NOT_FOUND"
	DuplicateCodeErrorCode     = "DUPLICATE_PRODUCT_CODE"
	MalformedCatalogErrorCode  = "MALFORMED_CATALOG"
	SequenceExhaustedErrorCode = "SEQUENCE_EXHAUSTED"
	PersistenceErrorCode       = "PERSISTENCE_FAILED"
	EmptyCatalogErrorCode      = "EMPTY_CATALOG"
)

var (
	ValidationErr        = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	InvalidCodeErr       = zerror.NewValidationFailed(InvalidCodeErrorCode, "product code must look like BOX-XXX-XXXX")
	ProductNotFoundErr   = zerror.NewNotFound(ProductNotFoundErrorCode, "product not found")
	DuplicateCodeErr     = zerror.NewConflict(DuplicateCodeErrorCode, "product code already exists")
	MalformedCatalogErr  = zerror.NewMalformedData(MalformedCatalogErrorCode, "catalog contains a malformed product code")
	SequenceExhaustedErr = zerror.NewMalformedData(SequenceExhaustedErrorCode, "product code sequence exhausted")
	PersistenceErr       = zerror.NewPersistence(PersistenceErrorCode, "catalog could not be persisted")
	EmptyCatalogErr      = zerror.NewUnprocessable(EmptyCatalogErrorCode, "there are no products registered")
)

// Is reports whether err carries the code of the predefined target.
func Is(err error, target zerror.ZError) bool {
	return errors.Is(err, target)
}
