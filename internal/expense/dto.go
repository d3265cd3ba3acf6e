package expense

import (
	"time"

	errors "github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/core/common/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseDTO is the full create/update payload.
type ExpenseDTO struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	SpentAt    time.Time       `json:"spentAt"`
	Location   *string         `json:"location,omitempty"`
}

func (dto ExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).NotBlank()
	v.Field("amount", dto.Amount).Positive().Digits(17, 2)
	v.Field("currency", dto.Currency).NotBlank().Currency()
	v.Field("spentAt", dto.SpentAt).RequiredTime()
	if dto.Location != nil {
		v.Field("location", dto.Location).MaxLength(255)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if dto.CategoryID == uuid.Nil {
		return errors.NewFieldValidationError(errors.FieldError{Field: "categoryId", Message: "must not be null"})
	}
	return nil
}

type ExpensePatchDTO struct {
	CategoryID *uuid.UUID       `json:"categoryId,omitempty"`
	Name       *string          `json:"name,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Currency   *string          `json:"currency,omitempty"`
	SpentAt    *time.Time       `json:"spentAt,omitempty"`
	Location   *string          `json:"location,omitempty"`
}

func (dto ExpensePatchDTO) IsEmpty() bool {
	return dto.CategoryID == nil &&
		dto.Name == nil &&
		dto.Amount == nil &&
		dto.Currency == nil &&
		dto.SpentAt == nil &&
		dto.Location == nil
}

func (dto ExpensePatchDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", dto.Name).NotBlank()
	}
	if dto.Amount != nil {
		v.Field("amount", dto.Amount).Positive().Digits(17, 2)
	}
	if dto.Currency != nil {
		v.Field("currency", dto.Currency).Currency()
	}
	if dto.Location != nil {
		v.Field("location", dto.Location).MaxLength(255)
	}
	return v.Validate()
}

type ExpenseResponse struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	SpentAt      time.Time       `json:"spentAt"`
	Location     *string         `json:"location,omitempty"`
	Holiday      bool            `json:"holiday"`
	HolidayName  *string         `json:"holidayName"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type MonthlyCategoryTotalResponse struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Total        decimal.Decimal `json:"total"`
}
