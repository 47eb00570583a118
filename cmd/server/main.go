package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lotledger/lotledger/internal/api"
	"github.com/lotledger/lotledger/internal/config"
	"github.com/lotledger/lotledger/internal/database"
	"github.com/lotledger/lotledger/internal/jobs"
	"github.com/lotledger/lotledger/internal/pricecache"
	"github.com/lotledger/lotledger/internal/repository"
	"github.com/lotledger/lotledger/internal/schwab"
	"github.com/lotledger/lotledger/internal/service"
	"github.com/lotledger/lotledger/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	ledgerRepo := repository.NewLedgerRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	brokerConfigRepo, err := repository.NewBrokerConfigRepository(db, cfg.Broker.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create broker config repository: %v", err)
	}

	// One price cache per process, shared by every portfolio build.
	cache := pricecache.New(yahoo.NewFinanceClient())

	// Create services
	ledgerService := service.NewLedgerService(ledgerRepo)
	valuationService := service.NewValuationService(ledgerRepo, cache)
	priceService := service.NewPriceService(priceRepo, ledgerRepo, cache)
	brokerService := service.NewBrokerService(brokerConfigRepo, ledgerRepo, schwab.NewAPIClient(cfg.Broker.BaseURL))

	if err := priceService.WarmCache(); err != nil {
		log.Fatalf("Failed to warm price cache: %v", err)
	}

	// Schedule the daily price refresh
	scheduler := jobs.NewScheduler()
	if err := scheduler.AddPriceRefresh(cfg.Prices.RefreshSchedule, priceService); err != nil {
		log.Fatalf("Failed to schedule price refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(db, ledgerService, valuationService, priceService, brokerService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
