package category

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the persistence model. Name uniqueness is enforced by the
// lower(name) unique index created in the migrations; the gorm tag only
// documents the plain column.
type Category struct {
	ID                 uuid.UUID           `gorm:"primaryKey;type:uuid"`
	Name               string              `gorm:"column:name;size:100;not null"`
	MonthlyBudgetLimit decimal.NullDecimal `gorm:"column:monthly_budget_limit;type:numeric(19,2)"`
	CreatedAt          time.Time           `gorm:"column:created_at;not null"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;not null"`
}

func (Category) TableName() string {
	return "categories"
}
