package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          uuid.UUID       `gorm:"primaryKey;type:uuid"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(19,2);not null"`
	Currency    string          `gorm:"column:currency;size:3;not null"`
	SpentAt     time.Time       `gorm:"column:spent_at;not null"`
	Location    *string         `gorm:"column:location;size:255"`
	IsHoliday   bool            `gorm:"column:is_holiday;not null;default:false"`
	HolidayName *string         `gorm:"column:holiday_name"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;not null"`

	// CategoryName is populated by joined reads only and never written.
	CategoryName string `gorm:"column:category_name;->;-:migration"`
}

func (Expense) TableName() string {
	return "expenses"
}

// CategoryMonthlyTotal is the projection returned by the grouped
// monthly aggregation query.
type CategoryMonthlyTotal struct {
	CategoryID   uuid.UUID       `gorm:"column:category_id"`
	CategoryName string          `gorm:"column:category_name"`
	Total        decimal.Decimal `gorm:"column:total"`
}
