package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/cors"

	"github.com/fintrack/finance-tracker/internal/auth"
	"github.com/fintrack/finance-tracker/internal/budget"
	"github.com/fintrack/finance-tracker/internal/category"
	"github.com/fintrack/finance-tracker/internal/transaction"
	"github.com/fintrack/finance-tracker/internal/transport/middleware"
	"github.com/fintrack/finance-tracker/internal/transport/swagger"
	"github.com/fintrack/finance-tracker/internal/user"
)

type RouterDeps struct {
	DB                 *sql.DB
	AuthHandler        *auth.Handler
	UserHandler        *user.Handler
	CategoryHandler    *category.Handler
	TransactionHandler *transaction.Handler
	BudgetHandler      *budget.Handler
	AllowedOrigins     string
	Logger             *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	origins := []string{"*"}
	if deps.AllowedOrigins != "" {
		origins = strings.Split(deps.AllowedOrigins, ",")
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))

	// OpenAPI spec and swagger UI at root, outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", deps.AuthHandler.Register)
			sr.Post("/login", deps.AuthHandler.Login)
		})

		// Everything below requires a valid session token.
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)

			pr.Get("/users/me", deps.UserHandler.GetCurrentUser)

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", deps.CategoryHandler.GetCategories)
				cr.Post("/", deps.CategoryHandler.CreateCategory)
				cr.Put("/{id}", deps.CategoryHandler.UpdateCategory)
			})

			pr.Route("/transactions", func(tr chi.Router) {
				tr.Get("/", deps.TransactionHandler.ListTransactions)
				tr.Post("/", deps.TransactionHandler.CreateTransaction)
				tr.Get("/{id}", deps.TransactionHandler.GetTransaction)
				tr.Put("/{id}", deps.TransactionHandler.UpdateTransaction)
				tr.Delete("/{id}", deps.TransactionHandler.DeleteTransaction)
			})

			pr.Route("/budgets", func(br chi.Router) {
				br.Get("/", deps.BudgetHandler.GetBudgets)
				br.Post("/", deps.BudgetHandler.CreateBudget)
				br.Put("/{id}", deps.BudgetHandler.UpdateBudget)
				br.Delete("/{id}", deps.BudgetHandler.DeleteBudget)
			})
		})
	})
}
