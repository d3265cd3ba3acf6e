package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	errors "github.com/frahmantamala/budget-tracker/internal"
	"github.com/shopspring/decimal"
)

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

type ValidatorFunc func(interface{}) *errors.FieldError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName: name,
		Value:     value,
	}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) fail(message string) *errors.FieldError {
	return &errors.FieldError{Field: fv.FieldName, Message: message}
}

// NotBlank rejects empty or whitespace-only strings. Nil pointers pass,
// so it composes with optional patch fields.
func (fv *FieldValidator) NotBlank() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.FieldError {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return fv.fail("must not be blank")
			}
		case *string:
			if v != nil && strings.TrimSpace(*v) == "" {
				return fv.fail("must not be blank")
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.FieldError {
		s, ok := stringValue(value)
		if ok && len(s) > max {
			return fv.fail(fmt.Sprintf("size must be between 0 and %d", max))
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Positive() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.FieldError {
		d, ok := decimalValue(value)
		if ok && d.Sign() <= 0 {
			return fv.fail("must be greater than 0")
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) NonNegative() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.FieldError {
		d, ok := decimalValue(value)
		if ok && d.Sign() < 0 {
			return fv.fail("must be greater than or equal to 0")
		}
		return nil
	})
	return fv
}

// Digits bounds a decimal to at most integer digits before the point
// and fraction digits after it, mirroring numeric(19,2) columns.
func (fv *FieldValidator) Digits(integer, fraction int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.FieldError {
		d, ok := decimalValue(value)
		if !ok {
			return nil
		}
		if int(-d.Exponent()) > fraction {
			return fv.fail(fmt.Sprintf("numeric value out of bounds (<%d digits>.<%d digits> expected)", integer, fraction))
		}
		limit := decimal.New(1, int32(integer))
		if d.Abs().Cmp(limit) >= 0 {
			return fv.fail(fmt.Sprintf("numeric value out of bounds (<%d digits>.<%d digits> expected)", integer, fraction))
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Currency() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.FieldError {
		s, ok := stringValue(value)
		if ok && !currencyPattern.MatchString(s) {
			return fv.fail("Currency must be a 3-letter ISO code")
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) RequiredTime() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.FieldError {
		if t, ok := value.(time.Time); ok && t.IsZero() {
			return fv.fail("must not be null")
		}
		return nil
	})
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	var fieldErrors []errors.FieldError

	for _, field := range v.fields {
		for _, validate := range field.Validators {
			if ferr := validate(field.Value); ferr != nil {
				fieldErrors = append(fieldErrors, *ferr)
			}
		}
	}

	if len(fieldErrors) > 0 {
		return errors.NewFieldValidationError(fieldErrors...)
	}

	return nil
}

func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v != nil {
			return *v, true
		}
	}
	return "", false
}

func decimalValue(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v != nil {
			return *v, true
		}
	}
	return decimal.Decimal{}, false
}
