package expense

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/frahmantamala/budget-tracker/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	CreateExpense(ctx context.Context, dto ExpenseDTO) (*ExpenseResponse, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, dto ExpenseDTO) (*ExpenseResponse, error)
	PatchExpense(ctx context.Context, id uuid.UUID, dto ExpensePatchDTO) (*ExpenseResponse, error)
	ListRecentExpenses(limit int) ([]ExpenseResponse, error)
	ListRecentExpensesByCategory(categoryID uuid.UUID, limit int) ([]ExpenseResponse, error)
	CalculateMonthlyTotals(year, month int) ([]MonthlyCategoryTotalResponse, error)
	DeleteExpense(id uuid.UUID) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, r, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	resp, err := h.Service.CreateExpense(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "expenseId")
	if !ok {
		return
	}

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, r, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	resp, err := h.Service.UpdateExpense(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) PatchExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "expenseId")
	if !ok {
		return
	}

	var dto ExpensePatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, r, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	resp, err := h.Service.PatchExpense(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "expenseId")
	if !ok {
		return
	}

	if err := h.Service.DeleteExpense(id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecentExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Service.ListRecentExpenses(queryInt(r, "limit", 10))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expenses)
}

func (h *Handler) RecentExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := h.pathID(w, r, "categoryId")
	if !ok {
		return
	}

	expenses, err := h.Service.ListRecentExpensesByCategory(categoryID, queryInt(r, "limit", 10))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expenses)
}

func (h *Handler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.WriteError(w, r, http.StatusBadRequest, "Invalid request parameter",
			internal.FieldError{Field: "year", Message: "Invalid value"})
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		h.WriteError(w, r, http.StatusBadRequest, "Invalid request parameter",
			internal.FieldError{Field: "month", Message: "Invalid value"})
		return
	}

	totals, err := h.Service.CalculateMonthlyTotals(year, month)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, totals)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		h.WriteError(w, r, http.StatusBadRequest, "Invalid request parameter",
			internal.FieldError{Field: param, Message: "Invalid value"})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, defaultVal int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return defaultVal
}
