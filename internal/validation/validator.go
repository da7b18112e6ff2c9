// Package validation checks mutation inputs before they reach the ledger.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/model"
)

// Validator wraps the go-playground validator with the finance rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that understands decimal amounts, json field names
// and the notblank rule.
func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal is a struct; expose it as a float so gte/lte rules apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return nil, fmt.Errorf("failed to register notblank rule: %w", err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}, nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Struct validates any tagged struct.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		return formatError(err)
	}
	return nil
}

// Transaction validates a transaction before it is added.
func (v *Validator) Transaction(in model.TransactionInput) error {
	return v.Struct(in)
}

// Category validates a category before it is added. Blank names and icons are rejected.
func (v *Validator) Category(in model.CategoryInput) error {
	return v.Struct(in)
}

// formatError flattens validator errors into one readable message.
func formatError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte":
		return "must not be negative"
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag()
	}
}
