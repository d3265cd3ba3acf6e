package category

import (
	"errors"
	"log/slog"
	"strings"

	apperrors "github.com/frahmantamala/budget-tracker/internal"
	categoryDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/category"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	GetAll() ([]*categoryDatamodel.Category, error)
	GetByID(id uuid.UUID) (*categoryDatamodel.Category, error)
	ExistsByNameIgnoreCase(name string) (bool, error)
	Create(cat *categoryDatamodel.Category) error
	Update(cat *categoryDatamodel.Category) error
	// Delete re-checks the expense reference guard inside the same
	// transaction and returns ErrCategoryInUse when it fires.
	Delete(id uuid.UUID) error
}

// ExpenseChecker is the narrow slice of the expense store the category
// service needs for the deletion guard fast path.
type ExpenseChecker interface {
	ExistsByCategory(categoryID uuid.UUID) (bool, error)
}

type Service struct {
	repo     RepositoryAPI
	expenses ExpenseChecker
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, expenses ExpenseChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		expenses: expenses,
		logger:   logger,
	}
}

// CreateCategory persists a new category. The existence check here is a
// fast path only; the lower(name) unique index is the real guard, and a
// constraint violation surfaces as the same conflict.
func (s *Service) CreateCategory(dto CategoryDTO) (*CategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByNameIgnoreCase(dto.Name)
	if err != nil {
		s.logger.Error("failed to check category name", "name", dto.Name, "error", err)
		return nil, apperrors.NewInternalError("failed to create category", err)
	}
	if taken {
		return nil, apperrors.ErrCategoryNameTaken
	}

	cat := NewCategory(dto.Name, dto.MonthlyBudgetLimit)
	if err := s.repo.Create(ToDataModel(cat)); err != nil {
		if errors.Is(err, ErrNameConflict) {
			return nil, apperrors.ErrCategoryNameTaken
		}
		s.logger.Error("failed to create category", "name", dto.Name, "error", err)
		return nil, apperrors.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", cat.ID, "name", cat.Name)
	resp := cat.ToResponse()
	return &resp, nil
}

func (s *Service) UpdateCategory(id uuid.UUID, dto CategoryDTO) (*CategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkRename(cat.Name, dto.Name); err != nil {
		return nil, err
	}

	cat.Name = dto.Name
	cat.MonthlyBudgetLimit = dto.MonthlyBudgetLimit
	cat.Touch()

	if err := s.repo.Update(ToDataModel(cat)); err != nil {
		if errors.Is(err, ErrNameConflict) {
			return nil, apperrors.ErrCategoryNameTaken
		}
		s.logger.Error("failed to update category", "category_id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to update category", err)
	}

	resp := cat.ToResponse()
	return &resp, nil
}

func (s *Service) PatchCategory(id uuid.UUID, dto CategoryPatchDTO) (*CategoryResponse, error) {
	if dto.IsEmpty() {
		return nil, apperrors.ErrEmptyPatch
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		if err := s.checkRename(cat.Name, *dto.Name); err != nil {
			return nil, err
		}
		cat.Name = *dto.Name
	}
	if dto.MonthlyBudgetLimit != nil {
		cat.MonthlyBudgetLimit = dto.MonthlyBudgetLimit
	}
	cat.Touch()

	if err := s.repo.Update(ToDataModel(cat)); err != nil {
		if errors.Is(err, ErrNameConflict) {
			return nil, apperrors.ErrCategoryNameTaken
		}
		s.logger.Error("failed to patch category", "category_id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to patch category", err)
	}

	resp := cat.ToResponse()
	return &resp, nil
}

func (s *Service) ListCategories() ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, apperrors.NewInternalError("failed to list categories", err)
	}

	responses := make([]CategoryResponse, 0, len(dataCategories))
	for _, dataCategory := range dataCategories {
		responses = append(responses, FromDataModel(dataCategory).ToResponse())
	}
	return responses, nil
}

// GetCategory resolves a category or reports NotFound. The expense
// service uses it to validate category references.
func (s *Service) GetCategory(id uuid.UUID) (*Category, error) {
	dataCategory, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get category", "category_id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to get category", err)
	}
	if dataCategory == nil {
		return nil, apperrors.ErrCategoryNotFound
	}
	return FromDataModel(dataCategory), nil
}

func (s *Service) DeleteCategory(id uuid.UUID) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	// fast path; the repository repeats this check transactionally
	inUse, err := s.expenses.ExistsByCategory(id)
	if err != nil {
		s.logger.Error("failed to check category references", "category_id", id, "error", err)
		return apperrors.NewInternalError("failed to delete category", err)
	}
	if inUse {
		return apperrors.ErrCategoryHasExpenses
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, ErrCategoryInUse) {
			return apperrors.ErrCategoryHasExpenses
		}
		s.logger.Error("failed to delete category", "category_id", id, "error", err)
		return apperrors.NewInternalError("failed to delete category", err)
	}

	s.logger.Info("category deleted", "category_id", id)
	return nil
}

// checkRename enforces case-insensitive uniqueness while letting a
// category keep (or re-case) its own name.
func (s *Service) checkRename(currentName, newName string) error {
	if strings.EqualFold(currentName, newName) {
		return nil
	}
	taken, err := s.repo.ExistsByNameIgnoreCase(newName)
	if err != nil {
		s.logger.Error("failed to check category name", "name", newName, "error", err)
		return apperrors.NewInternalError("failed to check category name", err)
	}
	if taken {
		return apperrors.ErrCategoryNameTaken
	}
	return nil
}
