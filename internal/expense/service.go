package expense

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/category"
	expenseDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/budget-tracker/internal/holiday"
	"github.com/google/uuid"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// RepositoryAPI defines the data access methods for expenses.
type RepositoryAPI interface {
	Create(exp *expenseDatamodel.Expense) error
	GetByID(id uuid.UUID) (*expenseDatamodel.Expense, error)
	ListRecent(limit int) ([]*expenseDatamodel.Expense, error)
	ListRecentByCategory(categoryID uuid.UUID, limit int) ([]*expenseDatamodel.Expense, error)
	CategoryTotalsBetween(start, end time.Time) ([]*expenseDatamodel.CategoryMonthlyTotal, error)
	Update(exp *expenseDatamodel.Expense) error
	Delete(id uuid.UUID) error
	ExistsByCategory(categoryID uuid.UUID) (bool, error)
}

// CategoryResolver is the slice of the category service used to validate
// and resolve category references.
type CategoryResolver interface {
	GetCategory(id uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryResolver
	holidays   holiday.Service
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryResolver, holidays holiday.Service, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		holidays:   holidays,
		logger:     logger,
	}
}

func (s *Service) CreateExpense(ctx context.Context, dto ExpenseDTO) (*ExpenseResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.categories.GetCategory(dto.CategoryID)
	if err != nil {
		return nil, err
	}

	exp := NewExpense(dto)
	exp.CategoryName = cat.Name
	s.applyHoliday(ctx, exp)

	if err := s.repo.Create(ToDataModel(exp)); err != nil {
		s.logger.Error("failed to create expense", "error", err)
		return nil, apperrors.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"category_id", exp.CategoryID,
		"amount", exp.Amount,
		"holiday", exp.IsHoliday)

	resp := exp.ToResponse()
	return &resp, nil
}

func (s *Service) UpdateExpense(ctx context.Context, id uuid.UUID, dto ExpenseDTO) (*ExpenseResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exp, err := s.getExpense(id)
	if err != nil {
		return nil, err
	}

	cat, err := s.categories.GetCategory(dto.CategoryID)
	if err != nil {
		return nil, err
	}

	exp.CategoryID = cat.ID
	exp.CategoryName = cat.Name
	exp.Name = dto.Name
	exp.Amount = dto.Amount
	exp.Currency = strings.ToUpper(dto.Currency)
	exp.SpentAt = dto.SpentAt
	exp.Location = dto.Location
	exp.Touch()

	s.applyHoliday(ctx, exp)

	if err := s.repo.Update(ToDataModel(exp)); err != nil {
		s.logger.Error("failed to update expense", "expense_id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to update expense", err)
	}

	resp := exp.ToResponse()
	return &resp, nil
}

// PatchExpense applies only the fields present in the payload. Holiday
// enrichment re-runs on every patch, even one that does not touch
// spentAt, so the stored holiday fields always reflect the latest
// lookup result.
func (s *Service) PatchExpense(ctx context.Context, id uuid.UUID, dto ExpensePatchDTO) (*ExpenseResponse, error) {
	if dto.IsEmpty() {
		return nil, apperrors.ErrEmptyPatch
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exp, err := s.getExpense(id)
	if err != nil {
		return nil, err
	}

	if dto.CategoryID != nil {
		cat, err := s.categories.GetCategory(*dto.CategoryID)
		if err != nil {
			return nil, err
		}
		exp.CategoryID = cat.ID
		exp.CategoryName = cat.Name
	}
	if dto.Name != nil {
		exp.Name = *dto.Name
	}
	if dto.Amount != nil {
		exp.Amount = *dto.Amount
	}
	if dto.Currency != nil {
		exp.Currency = strings.ToUpper(*dto.Currency)
	}
	if dto.SpentAt != nil {
		exp.SpentAt = *dto.SpentAt
	}
	if dto.Location != nil {
		exp.Location = dto.Location
	}
	exp.Touch()

	s.applyHoliday(ctx, exp)

	if err := s.repo.Update(ToDataModel(exp)); err != nil {
		s.logger.Error("failed to patch expense", "expense_id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to patch expense", err)
	}

	resp := exp.ToResponse()
	return &resp, nil
}

func (s *Service) ListRecentExpenses(limit int) ([]ExpenseResponse, error) {
	rows, err := s.repo.ListRecent(clampLimit(limit))
	if err != nil {
		s.logger.Error("failed to list recent expenses", "error", err)
		return nil, apperrors.NewInternalError("failed to list expenses", err)
	}
	return toResponses(rows), nil
}

func (s *Service) ListRecentExpensesByCategory(categoryID uuid.UUID, limit int) ([]ExpenseResponse, error) {
	if _, err := s.categories.GetCategory(categoryID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListRecentByCategory(categoryID, clampLimit(limit))
	if err != nil {
		s.logger.Error("failed to list expenses by category", "category_id", categoryID, "error", err)
		return nil, apperrors.NewInternalError("failed to list expenses", err)
	}
	return toResponses(rows), nil
}

// CalculateMonthlyTotals sums amounts per category over the half-open
// UTC window [first of month, first of next month). Categories without
// expenses in the window are omitted.
func (s *Service) CalculateMonthlyTotals(year, month int) ([]MonthlyCategoryTotalResponse, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidMonth
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	totals, err := s.repo.CategoryTotalsBetween(start, end)
	if err != nil {
		s.logger.Error("failed to calculate monthly totals", "year", year, "month", month, "error", err)
		return nil, apperrors.NewInternalError("failed to calculate monthly totals", err)
	}

	responses := make([]MonthlyCategoryTotalResponse, 0, len(totals))
	for _, total := range totals {
		responses = append(responses, MonthlyCategoryTotalResponse{
			CategoryID:   total.CategoryID,
			CategoryName: total.CategoryName,
			Year:         year,
			Month:        month,
			Total:        total.Total,
		})
	}
	return responses, nil
}

func (s *Service) DeleteExpense(id uuid.UUID) error {
	if _, err := s.getExpense(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "expense_id", id, "error", err)
		return apperrors.NewInternalError("failed to delete expense", err)
	}

	s.logger.Info("expense deleted", "expense_id", id)
	return nil
}

func (s *Service) getExpense(id uuid.UUID) (*Expense, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get expense", "expense_id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to get expense", err)
	}
	if row == nil {
		return nil, apperrors.ErrExpenseNotFound
	}
	return FromDataModel(row), nil
}

// applyHoliday recomputes the derived holiday fields from spentAt's
// calendar date. Lookup failures read as "no holiday" and never block
// the write.
func (s *Service) applyHoliday(ctx context.Context, exp *Expense) {
	if exp.SpentAt.IsZero() {
		exp.SetHoliday("", false)
		return
	}
	name, found := s.holidays.FindHoliday(ctx, exp.SpentAt)
	exp.SetHoliday(name, found)
}

func toResponses(rows []*expenseDatamodel.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, 0, len(rows))
	for _, e := range FromDataModelSlice(rows) {
		responses = append(responses, e.ToResponse())
	}
	return responses
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRecentLimit
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}
