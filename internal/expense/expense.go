package expense

import (
	"strings"
	"time"

	expenseDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	Name         string
	Amount       decimal.Decimal
	Currency     string
	SpentAt      time.Time
	Location     *string
	IsHoliday    bool
	HolidayName  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewExpense generates the id and timestamps explicitly and normalizes
// the currency to upper case. Holiday fields are filled by the service
// before the first save.
func NewExpense(dto ExpenseDTO) *Expense {
	now := time.Now().UTC()
	return &Expense{
		ID:         uuid.New(),
		CategoryID: dto.CategoryID,
		Name:       dto.Name,
		Amount:     dto.Amount,
		Currency:   strings.ToUpper(dto.Currency),
		SpentAt:    dto.SpentAt,
		Location:   dto.Location,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (e *Expense) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

func (e *Expense) SetHoliday(name string, found bool) {
	if found {
		e.IsHoliday = true
		e.HolidayName = &name
		return
	}
	e.IsHoliday = false
	e.HolidayName = nil
}

func (e *Expense) ToResponse() ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Name:         e.Name,
		Amount:       e.Amount,
		Currency:     e.Currency,
		SpentAt:      e.SpentAt,
		Location:     e.Location,
		Holiday:      e.IsHoliday,
		HolidayName:  e.HolidayName,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Name:        e.Name,
		Amount:      e.Amount,
		Currency:    e.Currency,
		SpentAt:     e.SpentAt,
		Location:    e.Location,
		IsHoliday:   e.IsHoliday,
		HolidayName: e.HolidayName,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:           e.ID,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Name:         e.Name,
		Amount:       e.Amount,
		Currency:     e.Currency,
		SpentAt:      e.SpentAt,
		Location:     e.Location,
		IsHoliday:    e.IsHoliday,
		HolidayName:  e.HolidayName,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
