package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"riskengine/configs"
	"riskengine/internal/database"
	deliveryhttp "riskengine/internal/delivery/http"
	"riskengine/internal/domain"
	"riskengine/internal/infra"
	"riskengine/internal/repository"
	"riskengine/internal/service"
	"riskengine/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	// Initialize context
	ctx := context.Background()

	// Initialize repositories, falling back to in-memory storage when no
	// database is configured
	var (
		txRepo      domain.TransactionRepository
		profileRepo domain.UserProfileRepository
	)
	if cfg.Database.URL != "" {
		db, err := infra.NewDatabase(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		txRepo = repository.NewTransactionRepository(db)
		profileRepo = repository.NewUserProfileRepository(db)
		log.Println("✓ Connected to PostgreSQL")
	} else {
		txRepo = repository.NewMemoryTransactionRepository()
		profileRepo = repository.NewMemoryUserProfileRepository()
		log.Println("WARNING: DATABASE_URL not set, using in-memory storage")
		log.Println("All transactions and user profiles will be lost on shutdown")
	}

	// Initialize services
	market := service.NewMarketSimulator(cfg.Market.HistoryLimit)
	orderBook := service.NewOrderBookService()
	portfolios := service.NewPortfolioService(cfg.Trading.DefaultCashBalance)
	riskGate := service.NewRiskScoringService()
	anomalies := service.NewAnomalyService()

	// Seed the market with the default asset catalogue
	seedAssets(market)

	// Initialize usecases
	tradingService := usecase.NewTradingService(
		market,
		orderBook,
		portfolios,
		riskGate,
		txRepo,
		profileRepo,
	)
	transactionService := usecase.NewTransactionService(
		txRepo,
		profileRepo,
		riskGate,
		anomalies,
	)

	// Initialize market tick scheduler
	scheduler := infra.NewScheduler(market, tradingService, cfg.Market.TickSeconds)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start market scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize HTTP handlers
	authHandler := deliveryhttp.NewAuthHandler(profileRepo)
	marketHandler := deliveryhttp.NewMarketHandler(market, tradingService, portfolios)
	transactionHandler := deliveryhttp.NewTransactionHandler(transactionService)
	riskHandler := deliveryhttp.NewRiskHandler(riskGate, transactionService, profileRepo)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	deliveryhttp.SetupRoutes(e, &deliveryhttp.RouterConfig{
		AuthHandler:        authHandler,
		MarketHandler:      marketHandler,
		TransactionHandler: transactionHandler,
		RiskHandler:        riskHandler,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Risk Engine starting on %s", addr)
	log.Printf("📊 Environment: %s", cfg.Server.Env)
	log.Printf("💰 Default Balance: $%.2f", cfg.Trading.DefaultCashBalance)
	log.Printf("📈 Market Tick: every %d seconds", cfg.Market.TickSeconds)
	log.Println("========================================")

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server exited gracefully")
}

// seedAssets registers the default tradable instruments.
func seedAssets(market *service.MarketSimulator) {
	seeds := []struct {
		symbol     string
		name       string
		typ        domain.AssetType
		currency   string
		volatility float64
	}{
		{"BTC-USD", "Bitcoin", domain.AssetTypeCrypto, "USD", 0.03},
		{"ETH-USD", "Ethereum", domain.AssetTypeCrypto, "USD", 0.04},
		{"AAPL", "Apple Inc.", domain.AssetTypeStock, "USD", 0.015},
		{"MSFT", "Microsoft Corporation", domain.AssetTypeStock, "USD", 0.014},
		{"AMZN", "Amazon.com Inc.", domain.AssetTypeStock, "USD", 0.018},
		{"GOOGL", "Alphabet Inc.", domain.AssetTypeStock, "USD", 0.016},
		{"GOLD", "Gold Futures", domain.AssetTypeCommodity, "USD", 0.01},
	}

	for _, s := range seeds {
		asset, err := domain.NewAsset(s.symbol, s.name, s.typ, s.currency, s.volatility)
		if err != nil {
			log.Fatalf("Invalid seed asset %s: %v", s.symbol, err)
		}
		if err := market.RegisterAsset(asset); err != nil {
			log.Fatalf("Failed to register asset %s: %v", s.symbol, err)
		}
	}
	log.Printf("✓ Seeded %d market assets", len(seeds))
}
