package expense_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/budget-tracker/internal/category"
	"github.com/frahmantamala/budget-tracker/internal/expense"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("Expense Handler", func() {
	var (
		mockRepo *MockRepository
		resolver *StubCategoryResolver
		holidays *StubHolidayService
		service  *expense.Service
		handler  *expense.Handler
		router   *chi.Mux

		groceries *category.Category
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		resolver = NewStubCategoryResolver()
		holidays = &StubHolidayService{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = expense.NewService(mockRepo, resolver, holidays, logger)
		handler = expense.NewHandler(service)

		groceries = category.NewCategory("Groceries", nil)
		resolver.Add(groceries)

		router = chi.NewRouter()
		router.Post("/expenses", handler.CreateExpense)
		router.Get("/expenses/recent", handler.RecentExpenses)
		router.Put("/expenses/{expenseId}", handler.UpdateExpense)
		router.Patch("/expenses/{expenseId}", handler.PatchExpense)
		router.Delete("/expenses/{expenseId}", handler.DeleteExpense)
		router.Get("/categories/{categoryId}/expenses/recent", handler.RecentExpensesByCategory)
		router.Get("/summary/monthly", handler.MonthlyTotals)
	})

	Describe("POST /expenses", func() {
		It("should record a valid expense and return 201", func() {
			body := `{"categoryId":"` + groceries.ID.String() + `","name":"Weekly shop","amount":54.20,"currency":"cad","spentAt":"2026-07-01T12:00:00Z"}`
			req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			raw := w.Body.String()
			Expect(raw).To(ContainSubstring(`"amount":54.2`))
			Expect(raw).NotTo(ContainSubstring(`"amount":"54.2"`))

			var resp expense.ExpenseResponse
			Expect(json.Unmarshal([]byte(raw), &resp)).To(Succeed())
			Expect(resp.Currency).To(Equal("CAD"))
			Expect(resp.CategoryName).To(Equal("Groceries"))
		})

		It("should return 400 with field errors for an invalid payload", func() {
			body := `{"categoryId":"` + groceries.ID.String() + `","name":"","amount":-5,"currency":"XXXX","spentAt":"2026-07-01T12:00:00Z"}`
			req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Status).To(Equal(http.StatusBadRequest))

			fields := make([]string, len(errResp.Errors))
			for i, fe := range errResp.Errors {
				fields[i] = fe.Field
			}
			Expect(fields).To(ContainElements("name", "amount", "currency"))
		})

		It("should return 404 for an unknown category", func() {
			body := `{"categoryId":"1f1deb14-6c20-4e2a-b3f8-1e8d9c2b5a70","name":"Shop","amount":5,"currency":"CAD","spentAt":"2026-07-01T12:00:00Z"}`
			req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Category not found"))
		})
	})

	Describe("GET /summary/monthly", func() {
		It("should return 400 when year is not a number", func() {
			req := httptest.NewRequest(http.MethodGet, "/summary/monthly?year=years&month=7", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Invalid request parameter"))
			Expect(errResp.Errors[0].Field).To(Equal("year"))
		})

		It("should return 400 for a month outside 1..12", func() {
			req := httptest.NewRequest(http.MethodGet, "/summary/monthly?year=2026&month=13", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Month must be between 1 and 12"))
		})

		It("should return the totals for a valid month", func() {
			dto := expense.ExpenseDTO{
				CategoryID: groceries.ID,
				Name:       "Weekly shop",
				Amount:     decimal.RequireFromString("40.00"),
				Currency:   "CAD",
				SpentAt:    time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC),
			}
			_, err := service.CreateExpense(context.Background(), dto)
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/summary/monthly?year=2026&month=7", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			raw := w.Body.String()
			// money fields are JSON numbers on the wire
			Expect(raw).To(ContainSubstring(`"total":40`))
			Expect(raw).NotTo(ContainSubstring(`"total":"40"`))

			var totals []expense.MonthlyCategoryTotalResponse
			Expect(json.Unmarshal([]byte(raw), &totals)).To(Succeed())
			Expect(totals).To(HaveLen(1))
			Expect(totals[0].Year).To(Equal(2026))
			Expect(totals[0].Month).To(Equal(7))
		})
	})

	Describe("GET /categories/{categoryId}/expenses/recent", func() {
		It("should return 400 for a malformed category id", func() {
			req := httptest.NewRequest(http.MethodGet, "/categories/nope/expenses/recent", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Errors[0].Field).To(Equal("categoryId"))
		})

		It("should return 404 for an unknown category", func() {
			req := httptest.NewRequest(http.MethodGet, "/categories/1f1deb14-6c20-4e2a-b3f8-1e8d9c2b5a70/expenses/recent", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /expenses/{expenseId}", func() {
		It("should return 204 on success", func() {
			resp, err := service.CreateExpense(context.Background(), expense.ExpenseDTO{
				CategoryID: groceries.ID,
				Name:       "Weekly shop",
				Amount:     decimal.RequireFromString("10.00"),
				Currency:   "CAD",
				SpentAt:    time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
			})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodDelete, "/expenses/"+resp.ID.String(), nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
		})

		It("should return 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodDelete, "/expenses/1f1deb14-6c20-4e2a-b3f8-1e8d9c2b5a70", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
