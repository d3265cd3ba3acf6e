package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/budget-tracker/internal/auth"
	"github.com/frahmantamala/budget-tracker/internal/category"
	"github.com/frahmantamala/budget-tracker/internal/expense"
	"github.com/frahmantamala/budget-tracker/internal/transport/middleware"
	"github.com/frahmantamala/budget-tracker/internal/transport/swagger"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, categoryHandler *category.Handler, expenseHandler *expense.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", authHandler.Register)
		ar.Post("/login", authHandler.Login)
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)

		r.Route("/categories", func(cr chi.Router) {
			cr.Post("/", categoryHandler.CreateCategory)
			cr.Get("/", categoryHandler.ListCategories)
			cr.Put("/{id}", categoryHandler.UpdateCategory)
			cr.Patch("/{id}", categoryHandler.PatchCategory)
			cr.Delete("/{id}", categoryHandler.DeleteCategory)
			cr.Get("/{categoryId}/expenses/recent", expenseHandler.RecentExpensesByCategory)
		})

		r.Route("/expenses", func(er chi.Router) {
			er.Post("/", expenseHandler.CreateExpense)
			er.Get("/recent", expenseHandler.RecentExpenses)
			er.Put("/{expenseId}", expenseHandler.UpdateExpense)
			er.Patch("/{expenseId}", expenseHandler.PatchExpense)
			er.Delete("/{expenseId}", expenseHandler.DeleteExpense)
		})

		r.Get("/summary/monthly", expenseHandler.MonthlyTotals)
	})
}
