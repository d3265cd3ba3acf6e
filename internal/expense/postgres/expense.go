package postgres

import (
	"errors"
	"time"

	expenseDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/budget-tracker/internal/expense"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseRepository implements expense.RepositoryAPI using GORM.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(exp *expenseDatamodel.Expense) error {
	return r.db.Create(exp).Error
}

func (r *ExpenseRepository) GetByID(id uuid.UUID) (*expenseDatamodel.Expense, error) {
	var exp expenseDatamodel.Expense
	err := r.joined().Where("expenses.id = ?", id).First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exp, nil
}

func (r *ExpenseRepository) ListRecent(limit int) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.joined().
		Order("expenses.spent_at DESC, expenses.created_at DESC").
		Limit(limit).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) ListRecentByCategory(categoryID uuid.UUID, limit int) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.joined().
		Where("expenses.category_id = ?", categoryID).
		Order("expenses.spent_at DESC, expenses.created_at DESC").
		Limit(limit).
		Find(&expenses).Error
	return expenses, err
}

// CategoryTotalsBetween sums amounts per category for expenses whose
// spent_at falls in [start, end). Categories with no rows in the window
// do not appear.
func (r *ExpenseRepository) CategoryTotalsBetween(start, end time.Time) ([]*expenseDatamodel.CategoryMonthlyTotal, error) {
	var totals []*expenseDatamodel.CategoryMonthlyTotal
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Select("expenses.category_id AS category_id, categories.name AS category_name, SUM(expenses.amount) AS total").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.spent_at >= ? AND expenses.spent_at < ?", start, end).
		Group("expenses.category_id, categories.name").
		Order("categories.name ASC").
		Find(&totals).Error
	return totals, err
}

func (r *ExpenseRepository) Update(exp *expenseDatamodel.Expense) error {
	return r.db.Save(exp).Error
}

func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&expenseDatamodel.Expense{}).Error
}

func (r *ExpenseRepository) ExistsByCategory(categoryID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count > 0, err
}

func (r *ExpenseRepository) joined() *gorm.DB {
	return r.db.Model(&expenseDatamodel.Expense{}).
		Select("expenses.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = expenses.category_id")
}
