package postgres

import (
	"errors"

	"github.com/frahmantamala/budget-tracker/internal/category"
	categoryDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/expense"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAll() ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.Order("created_at ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(id uuid.UUID) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) ExistsByNameIgnoreCase(name string) (bool, error) {
	var count int64
	err := r.db.Model(&categoryDatamodel.Category{}).
		Where("lower(name) = lower(?)", name).
		Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) Create(cat *categoryDatamodel.Category) error {
	return translateConflict(r.db.Create(cat).Error)
}

func (r *CategoryRepository) Update(cat *categoryDatamodel.Category) error {
	return translateConflict(r.db.Save(cat).Error)
}

// Delete removes the category only when no expense references it; the
// check and the delete share one transaction so a concurrent expense
// insert cannot slip between them.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&expenseDatamodel.Expense{}).
			Where("category_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return category.ErrCategoryInUse
		}
		return tx.Where("id = ?", id).Delete(&categoryDatamodel.Category{}).Error
	})
}

// translateConflict maps the unique-index violation onto the domain
// sentinel; the index is the uniqueness source of truth.
func translateConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return category.ErrNameConflict
	}
	return err
}
