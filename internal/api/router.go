package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lotledger/lotledger/internal/api/handlers"
	custommiddleware "github.com/lotledger/lotledger/internal/api/middleware"
	"github.com/lotledger/lotledger/internal/config"
	"github.com/lotledger/lotledger/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	db *sql.DB,
	ledgerService *service.LedgerService,
	valuationService *service.ValuationService,
	priceService *service.PriceService,
	brokerService *service.BrokerService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionsHandler := handlers.NewTransactionsHandler(ledgerService)
			r.Get("/", transactionsHandler.List)
			r.Post("/import", transactionsHandler.Import)
			r.Get("/accounts", transactionsHandler.Accounts)
		})

		r.Route("/portfolio", func(r chi.Router) {
			valuationHandler := handlers.NewValuationHandler(valuationService)
			r.Get("/snapshot", valuationHandler.Snapshot)
			r.Get("/ltcg", valuationHandler.UpcomingLTCG)
		})

		r.Route("/prices", func(r chi.Router) {
			pricesHandler := handlers.NewPricesHandler(priceService)
			r.Post("/refresh", pricesHandler.Refresh)
		})

		r.Route("/broker", func(r chi.Router) {
			brokerHandler := handlers.NewBrokerHandler(brokerService)
			r.Get("/config", brokerHandler.GetConfig)
			r.Put("/config", brokerHandler.UpdateConfig)
			r.Post("/sync", brokerHandler.Sync)
		})
	})

	return r
}
