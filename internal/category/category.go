package category

import (
	"errors"
	"time"

	categoryDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/category"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain sentinels returned by the repository; the service maps them to
// typed API errors.
var (
	ErrNameConflict  = errors.New("category name already exists")
	ErrCategoryInUse = errors.New("category has expenses")
)

type Category struct {
	ID                 uuid.UUID
	Name               string
	MonthlyBudgetLimit *decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewCategory generates the id and both timestamps up front; persistence
// never back-fills them.
func NewCategory(name string, limit *decimal.Decimal) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:                 uuid.New(),
		Name:               name,
		MonthlyBudgetLimit: limit,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (c *Category) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:                 c.ID,
		Name:               c.Name,
		MonthlyBudgetLimit: c.MonthlyBudgetLimit,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	limit := decimal.NullDecimal{}
	if c.MonthlyBudgetLimit != nil {
		limit = decimal.NewNullDecimal(*c.MonthlyBudgetLimit)
	}
	return &categoryDatamodel.Category{
		ID:                 c.ID,
		Name:               c.Name,
		MonthlyBudgetLimit: limit,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	var limit *decimal.Decimal
	if c.MonthlyBudgetLimit.Valid {
		v := c.MonthlyBudgetLimit.Decimal
		limit = &v
	}
	return &Category{
		ID:                 c.ID,
		Name:               c.Name,
		MonthlyBudgetLimit: limit,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
