package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"stock-backend/internal/cache"
	"stock-backend/internal/config"
	"stock-backend/internal/database"
	"stock-backend/internal/db"
	"stock-backend/internal/handlers"
	h "stock-backend/internal/http"
	"stock-backend/internal/health"
	"stock-backend/internal/ledger"
	"stock-backend/internal/logging"
	"stock-backend/internal/middleware"
	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
	"stock-backend/internal/services"
	"stock-backend/migrations"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	driver := flag.String("driver", "", "Storage engine: postgres or memory (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *driver != "" {
		cfg.Database.Driver = *driver
	}
	logging.Setup(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Storage engine
	var (
		store    *repositories.Store
		migrator services.Migrator
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Println("[Store] Using in-memory storage (data is lost on restart)")
		store = repositories.NewMemoryStore()
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		store = repositories.NewPostgresStore(pool)
		migrator = database.NewMigrator(pool, migrations.FS)
	default:
		log.Fatalf("Unknown database driver %q (expected %s or %s)", cfg.Database.Driver, config.DriverPostgres, config.DriverMemory)
	}

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	summaryCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		time.Duration(cfg.Redis.SummaryTTLSeconds)*time.Second)
	defer summaryCache.Close()

	// Services
	engine := ledger.Engine{
		DefaultPageSize: cfg.Stock.DefaultPageSize,
		MaxPageSize:     cfg.Stock.MaxPageSize,
		GroupMode:       ledger.ParseGroupMode(cfg.Stock.GroupMode, ledger.GroupPage),
	}
	productService := services.NewProductService(store, summaryCache)
	rackService := services.NewRackService(store, summaryCache)
	containerService := services.NewContainerService(store)
	measurementService := services.NewMeasurementService(store)
	entryService := services.NewEntryService(store, summaryCache)
	stockService := services.NewStockService(store, summaryCache, engine, cfg.Stock.LowStockThreshold)
	reportService := services.NewReportService(stockService, entryService)
	importService := services.NewImportService(productService, rackService, containerService,
		measurementService, entryService, stockService)

	// Migrations and first-run seed data
	if err := services.NewSeedService(store, migrator, summaryCache).InitDatabase(ctx); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	router := h.NewRouter(h.Handlers{
		Products:     handlers.NewProductHandler(productService),
		Racks:        handlers.NewRackHandler(rackService),
		Containers:   handlers.NewContainerHandler(containerService),
		Measurements: handlers.NewMeasurementHandler(measurementService),
		Inward:       handlers.NewEntryHandler(entryService, models.DirectionInward),
		Outward:      handlers.NewEntryHandler(entryService, models.DirectionOutward),
		Stock:        handlers.NewStockHandler(stockService, reportService),
		Import:       handlers.NewImportHandler(importService),
		Health:       handlers.NewHealthHandler(health.NewHealthChecker(store.Pinger, summaryCache, cfg.Database.Driver)),
	})

	// Wrap with panic recovery, request logging and CORS
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.RequestLogging(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s (storage: %s)", addr, cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
