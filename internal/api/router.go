package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Fund-Valuation-Backend/internal/api/middleware"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/config"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/service"
)

// Services groups the services the router dispatches to.
type Services struct {
	System    *service.SystemService
	Holdings  *service.HoldingService
	Watchlist *service.WatchlistService
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

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
		})

		valuationHandler := handlers.NewValuationHandler(svc.Holdings)
		r.Post("/resolve", valuationHandler.Resolve)
		r.Post("/refresh", valuationHandler.Refresh)
		r.Post("/recognize", valuationHandler.Recognize)

		r.Route("/holdings", func(r chi.Router) {
			holdingsHandler := handlers.NewHoldingsHandler(svc.Watchlist)
			r.Get("/", holdingsHandler.Holdings)
			r.Put("/", holdingsHandler.SaveHoldings)
			r.Post("/refresh", holdingsHandler.RefreshHoldings)

			r.Route("/{code}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateFundCodeMiddleware)
				r.Get("/snapshots", holdingsHandler.Snapshots)
			})
		})
	})

	return r
}
