package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator is a validator that validates the given struct.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// CodeChecker reports whether a product code is well formed. It is injected
// so this package stays free of domain imports.
type CodeChecker func(code string) bool

// NewDefaultValidator creates a new default validator with the custom enum
// and productcode tags registered.
func NewDefaultValidator(isValidCode CodeChecker) (*DefaultValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("enum", validateEnum); err != nil {
		return nil, fmt.Errorf("register enum validator: %w", err)
	}

	if err := v.RegisterValidation("productcode", func(fl validator.FieldLevel) bool {
		return isValidCode != nil && isValidCode(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register productcode validator: %w", err)
	}

	// Amounts are compared as float64 so gte/lte work on decimal fields.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return &DefaultValidator{v: v}, nil
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

// Describe flattens validation errors into "Field: message" lines. Other
// errors are returned as their message.
func Describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	lines := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		lines = append(lines, fmt.Sprintf("%s: %s", fe.Field(), ValidationErrorMessage(fe)))
	}
	return strings.Join(lines, "; ")
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "enum":
		return fmt.Sprintf("invalid value: %v", fe.Value())
	case "productcode":
		return "must look like BOX-XXX-XXXX"
	default:
		return "is invalid"
	}
}

func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

func validateEnum(fl validator.FieldLevel) bool {
	type Enum interface {
		Validate() error
	}

	value, ok := fl.Field().Interface().(Enum)
	if !ok {
		return false
	}

	return value.Validate() == nil
}
