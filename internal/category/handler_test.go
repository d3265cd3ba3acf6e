package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	apperrors "github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/category"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category Handler", func() {
	var (
		mockRepo    *MockRepository
		mockChecker *MockExpenseChecker
		handler     *category.Handler
		router      *chi.Mux
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockChecker = NewMockExpenseChecker()
		logger := newTestLogger()
		service := category.NewService(mockRepo, mockChecker, logger)
		handler = category.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/categories", handler.CreateCategory)
		router.Get("/categories", handler.ListCategories)
		router.Put("/categories/{id}", handler.UpdateCategory)
		router.Patch("/categories/{id}", handler.PatchCategory)
		router.Delete("/categories/{id}", handler.DeleteCategory)
	})

	Describe("POST /categories", func() {
		It("should create a category and return 201", func() {
			body := `{"name":"Groceries","monthlyBudgetLimit":600.00}`
			req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			raw := w.Body.String()
			// money fields are JSON numbers on the wire
			Expect(raw).To(ContainSubstring(`"monthlyBudgetLimit":600`))
			Expect(raw).NotTo(ContainSubstring(`"monthlyBudgetLimit":"600"`))

			var resp category.CategoryResponse
			Expect(json.Unmarshal([]byte(raw), &resp)).To(Succeed())
			Expect(resp.Name).To(Equal("Groceries"))
			Expect(resp.MonthlyBudgetLimit.String()).To(Equal("600"))
		})

		It("should return 400 with field errors for a blank name", func() {
			body := `{"name":"  "}`
			req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Status).To(Equal(http.StatusBadRequest))
			Expect(errResp.Path).To(Equal("/categories"))
			Expect(errResp.Errors).To(HaveLen(1))
			Expect(errResp.Errors[0].Field).To(Equal("name"))
		})

		It("should return 400 for malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{broken`))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Malformed JSON request"))
		})

		It("should return 409 for a duplicate name", func() {
			mockRepo.AddCategory(category.NewCategory("Groceries", nil))

			req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"groceries"}`))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Category name already exists"))
		})
	})

	Describe("PUT /categories/{id}", func() {
		It("should return 400 for a malformed id", func() {
			req := httptest.NewRequest(http.MethodPut, "/categories/not-a-uuid", strings.NewReader(`{"name":"Food"}`))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Invalid request parameter"))
			Expect(errResp.Errors[0].Field).To(Equal("id"))
		})

		It("should return 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodPut, "/categories/1f1deb14-6c20-4e2a-b3f8-1e8d9c2b5a70", strings.NewReader(`{"name":"Food"}`))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Category not found"))
		})
	})

	Describe("PATCH /categories/{id}", func() {
		It("should return 400 for an empty patch", func() {
			existing := category.NewCategory("Groceries", nil)
			mockRepo.AddCategory(existing)

			req := httptest.NewRequest(http.MethodPatch, "/categories/"+existing.ID.String(), strings.NewReader(`{}`))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal(apperrors.ErrEmptyPatch.Message))
		})
	})

	Describe("DELETE /categories/{id}", func() {
		It("should return 204 on success", func() {
			existing := category.NewCategory("Groceries", nil)
			mockRepo.AddCategory(existing)

			req := httptest.NewRequest(http.MethodDelete, "/categories/"+existing.ID.String(), nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Body.Len()).To(BeZero())
		})

		It("should return 409 when the category has expenses", func() {
			existing := category.NewCategory("Groceries", nil)
			mockRepo.AddCategory(existing)
			mockChecker.inUse[existing.ID] = true

			req := httptest.NewRequest(http.MethodDelete, "/categories/"+existing.ID.String(), nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Category has expenses and cannot be deleted"))
		})
	})

	Describe("GET /categories", func() {
		It("should return all categories", func() {
			mockRepo.AddCategory(category.NewCategory("Groceries", nil))
			mockRepo.AddCategory(category.NewCategory("Transport", nil))

			req := httptest.NewRequest(http.MethodGet, "/categories", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp []category.CategoryResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp).To(HaveLen(2))
		})
	})
})
