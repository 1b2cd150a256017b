package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mphinance/ulty-tracker/internal/api/handlers"
	custommiddleware "github.com/mphinance/ulty-tracker/internal/api/middleware"
	"github.com/mphinance/ulty-tracker/internal/config"
	"github.com/mphinance/ulty-tracker/internal/service"
)

// Services bundles everything the router needs. All fields are required
// except SessionService, which may be nil when no fernet key is configured;
// the session routes are then not mounted.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Import      *service.ImportService
	Dividend    *service.DividendService
	Portfolio   *service.PortfolioService
	Price       *service.PriceService
	Session     *service.SessionService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	apiKeyGuard := custommiddleware.APIKey(cfg.Server.APIKey)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction, svc.Import)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Delete("/", transactionHandler.DeleteAllTransactions)
			r.Post("/import", transactionHandler.ImportTransactions)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.ReplaceTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/distribution", func(r chi.Router) {
			distributionHandler := handlers.NewDistributionHandler(svc.Dividend)
			r.Get("/schedule", distributionHandler.Schedule)
			r.With(apiKeyGuard).Post("/refresh", distributionHandler.Refresh)
		})

		investmentHandler := handlers.NewInvestmentHandler(svc.Portfolio)
		r.Get("/investment", investmentHandler.GetInvestment)

		r.Route("/price", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svc.Price)
			r.Get("/", priceHandler.GetPrice)
			r.Put("/", priceHandler.SetPrice)
			r.With(apiKeyGuard).Post("/refresh", priceHandler.RefreshPrice)
		})

		holdingsHandler := handlers.NewHoldingsHandler(svc.Transaction)
		r.Put("/holdings", holdingsHandler.ReplaceHoldings)

		if svc.Session != nil {
			r.Route("/session", func(r chi.Router) {
				sessionHandler := handlers.NewSessionHandler(svc.Session)
				r.Get("/share", sessionHandler.Share)
				r.With(apiKeyGuard).Post("/restore", sessionHandler.Restore)
			})
		}
	})

	return r
}
