package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fintrack/fintrack-backend/internal/api/handlers"
	custommiddleware "github.com/fintrack/fintrack-backend/internal/api/middleware"
	"github.com/fintrack/fintrack-backend/internal/auth"
	"github.com/fintrack/fintrack-backend/internal/config"
	"github.com/fintrack/fintrack-backend/internal/repository"
	"github.com/fintrack/fintrack-backend/internal/service"
)

// Dependencies bundles the services and infrastructure the router wires
// into handlers.
type Dependencies struct {
	SystemService      *service.SystemService
	ObjectiveService   *service.ObjectiveService
	InvestmentService  *service.InvestmentService
	RecurringService   *service.RecurringService
	TransactionService *service.TransactionService
	CategoryService    *service.CategoryService
	UserRepo           *repository.UserRepository
	TokenIssuer        *auth.TokenIssuer
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	userAuth := custommiddleware.NewUserAuth(deps.TokenIssuer)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(deps.SystemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/objective", func(r chi.Router) {
			objectiveHandler := handlers.NewObjectiveHandler(deps.ObjectiveService)
			r.Use(userAuth.Handler)
			r.Get("/", objectiveHandler.ListObjectives)
			r.Post("/", objectiveHandler.CreateObjective)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", objectiveHandler.GetObjective)
				r.Put("/", objectiveHandler.UpdateObjective)
				r.Delete("/", objectiveHandler.DeleteObjective)
				r.Get("/progress", objectiveHandler.GetProgress)
			})
		})

		r.Route("/investment", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(deps.InvestmentService)
			r.Use(userAuth.Handler)
			r.Get("/", investmentHandler.ListInvestments)
			r.Post("/", investmentHandler.CreateInvestment)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investmentHandler.GetInvestment)
				r.Delete("/", investmentHandler.DeleteInvestment)
				r.Put("/quote", investmentHandler.UpdateQuote)
				r.Post("/deactivate", investmentHandler.DeactivateInvestment)
			})
		})

		r.Route("/recurring", func(r chi.Router) {
			recurringHandler := handlers.NewRecurringHandler(deps.RecurringService)
			r.Use(userAuth.Handler)
			r.Get("/", recurringHandler.ListRecurring)
			r.Post("/", recurringHandler.CreateRecurring)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", recurringHandler.GetRecurring)
				r.Delete("/", recurringHandler.DeleteRecurring)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(deps.TransactionService)
			r.Use(userAuth.Handler)
			r.Get("/", transactionHandler.ListTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/category", func(r chi.Router) {
			categoryHandler := handlers.NewCategoryHandler(deps.CategoryService)
			r.Use(userAuth.Handler)
			r.Get("/", categoryHandler.ListCategories)
			r.Post("/", categoryHandler.CreateCategory)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", categoryHandler.GetCategory)
				r.Delete("/", categoryHandler.DeleteCategory)
			})
		})

		// Internal namespace: scheduler entry points and token issuance,
		// guarded by the internal API key rather than a user token.
		r.Route("/internal", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)

			objectiveHandler := handlers.NewObjectiveHandler(deps.ObjectiveService)
			recurringHandler := handlers.NewRecurringHandler(deps.RecurringService)
			authHandler := handlers.NewAuthHandler(deps.TokenIssuer, deps.UserRepo)

			r.Post("/evaluate", objectiveHandler.EvaluateAll)
			r.Post("/advance", recurringHandler.AdvanceDue)
			r.Post("/token", authHandler.IssueToken)
		})
	})

	return r
}
