package category

import (
	"time"

	errors "github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/core/common/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDTO is the full create/update payload. An absent budget limit
// on update clears the stored one (full-replace semantics).
type CategoryDTO struct {
	Name               string           `json:"name"`
	MonthlyBudgetLimit *decimal.Decimal `json:"monthlyBudgetLimit,omitempty"`
}

func (dto CategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).NotBlank().MaxLength(100)
	if dto.MonthlyBudgetLimit != nil {
		v.Field("monthlyBudgetLimit", dto.MonthlyBudgetLimit).NonNegative().Digits(17, 2)
	}
	return v.Validate()
}

type CategoryPatchDTO struct {
	Name               *string          `json:"name,omitempty"`
	MonthlyBudgetLimit *decimal.Decimal `json:"monthlyBudgetLimit,omitempty"`
}

func (dto CategoryPatchDTO) IsEmpty() bool {
	return dto.Name == nil && dto.MonthlyBudgetLimit == nil
}

func (dto CategoryPatchDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", dto.Name).NotBlank().MaxLength(100)
	}
	if dto.MonthlyBudgetLimit != nil {
		v.Field("monthlyBudgetLimit", dto.MonthlyBudgetLimit).NonNegative().Digits(17, 2)
	}
	return v.Validate()
}

type CategoryResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	MonthlyBudgetLimit *decimal.Decimal `json:"monthlyBudgetLimit"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}
