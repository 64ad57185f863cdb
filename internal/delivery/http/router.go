package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "riskengine/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler        *AuthHandler
	MarketHandler      *MarketHandler
	TransactionHandler *TransactionHandler
	RiskHandler        *RiskHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for high-frequency polling endpoints to reduce noise
			path := c.Request().URL.Path
			return path == "/health" || path == "/api/market/prices"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "riskengine-api",
		})
	})

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.POST("/register", config.AuthHandler.Register)
	}

	// Market data routes (public)
	market := api.Group("/market")
	{
		market.GET("/assets", config.MarketHandler.GetAssets)
		market.GET("/prices", config.MarketHandler.GetAllPrices)
		market.GET("/prices/:symbol", config.MarketHandler.GetPrice)
		market.GET("/prices/:symbol/history", config.MarketHandler.GetPriceHistory)
	}

	// Trading routes (protected with AuthMiddleware)
	trading := api.Group("/trading", custommiddleware.AuthMiddleware)
	{
		trading.POST("/orders", config.MarketHandler.PlaceOrder)
		trading.GET("/orders", config.MarketHandler.GetUserOrders)
		trading.POST("/orders/:id/cancel", config.MarketHandler.CancelOrder)
		trading.GET("/portfolio", config.MarketHandler.GetPortfolio)
		trading.GET("/portfolio/value", config.MarketHandler.GetPortfolioValue)
		trading.POST("/portfolio/deposit", config.MarketHandler.DepositFunds)
		trading.POST("/portfolio/withdraw", config.MarketHandler.WithdrawFunds)
	}

	// Transaction monitoring routes (protected)
	transactions := api.Group("/transactions", custommiddleware.AuthMiddleware)
	{
		transactions.GET("", config.TransactionHandler.GetAll)
		transactions.POST("", config.TransactionHandler.Create)
		transactions.GET("/anomalies", config.TransactionHandler.GetAnomalies)
		transactions.GET("/:id", config.TransactionHandler.GetByID)
		transactions.DELETE("/:id", config.TransactionHandler.Delete)
	}

	// Risk assessment routes (protected)
	risk := api.Group("/risk-assessment", custommiddleware.AuthMiddleware)
	{
		risk.POST("/evaluate", config.RiskHandler.Evaluate)
		risk.POST("/evaluate-transaction", config.RiskHandler.EvaluateTransaction)
	}
}
