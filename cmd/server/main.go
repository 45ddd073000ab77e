package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/api"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/config"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/database"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/eastmoney"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/extract"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/registry"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/repository"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/service"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/ths"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Fund registry: built-in table plus optional file entries
	reg := registry.Default()
	if cfg.Extract.RegistryPath != "" {
		extra, err := registry.LoadFile(cfg.Extract.RegistryPath)
		if err != nil {
			log.Fatalf("Failed to load registry: %v", err)
		}
		reg = reg.With(extra)
		log.Printf("Loaded %d registry entries from %s", len(extra), cfg.Extract.RegistryPath)
	}

	policy, err := extract.PolicyByName(cfg.Extract.Policy)
	if err != nil {
		log.Fatalf("Failed to select extract policy: %v", err)
	}

	var searcher extract.NameSearcher
	if cfg.Extract.SearchEnabled {
		searcher = eastmoney.NewCachingSearcher(eastmoney.NewSearchClient())
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	holdingRepo := repository.NewHoldingRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	valuationService := service.NewValuationService(ths.NewFinanceClient(cfg.Valuation.FetchTimeout), service.ValuationOptions{
		FetchTimeout:   cfg.Valuation.FetchTimeout,
		MaxConcurrency: cfg.Valuation.MaxConcurrency,
	})
	holdingService := service.NewHoldingService(
		extract.NewExtractor(reg, policy),
		extract.NewTextParser(reg, searcher),
		valuationService,
	)
	watchlistService := service.NewWatchlistService(
		holdingRepo,
		snapshotRepo,
		holdingService,
	)

	// Scheduled refresh of the saved list
	var scheduler *service.Scheduler
	if cfg.Refresh.Schedule != "" {
		scheduler, err = service.NewScheduler(cfg.Refresh.Schedule, watchlistService, cfg.Refresh.Timeout)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		scheduler.Start()
		log.Printf("Scheduled refresh: %s", cfg.Refresh.Schedule)
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Holdings:  holdingService,
		Watchlist: watchlistService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Valuation.FetchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(ctx)
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
