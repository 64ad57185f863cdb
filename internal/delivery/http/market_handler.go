package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"riskengine/internal/delivery/http/dto"
	"riskengine/internal/domain"
	"riskengine/internal/middleware"
	"riskengine/internal/service"
	"riskengine/internal/usecase"
)

// MarketHandler exposes market data, trading, and portfolio endpoints.
type MarketHandler struct {
	market     *service.MarketSimulator
	trading    *usecase.TradingService
	portfolios *service.PortfolioService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(
	market *service.MarketSimulator,
	trading *usecase.TradingService,
	portfolios *service.PortfolioService,
) *MarketHandler {
	return &MarketHandler{
		market:     market,
		trading:    trading,
		portfolios: portfolios,
	}
}

// GetAssets handles GET /api/market/assets
func (h *MarketHandler) GetAssets(c echo.Context) error {
	return SuccessResponse(c, h.market.Assets())
}

// GetPrice handles GET /api/market/prices/:symbol
func (h *MarketHandler) GetPrice(c echo.Context) error {
	price, err := h.market.CurrentPrice(c.Param("symbol"))
	if err != nil {
		return DomainErrorResponse(c, err)
	}
	return SuccessResponse(c, price)
}

// GetAllPrices handles GET /api/market/prices
func (h *MarketHandler) GetAllPrices(c echo.Context) error {
	return SuccessResponse(c, h.market.AllPrices())
}

// GetPriceHistory handles GET /api/market/prices/:symbol/history
func (h *MarketHandler) GetPriceHistory(c echo.Context) error {
	history, err := h.market.PriceHistory(c.Param("symbol"))
	if err != nil {
		return DomainErrorResponse(c, err)
	}
	return SuccessResponse(c, history)
}

// PlaceOrder handles POST /api/trading/orders
func (h *MarketHandler) PlaceOrder(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	var req dto.OrderRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	order, err := h.trading.PlaceOrder(
		c.Request().Context(),
		userID,
		req.Symbol,
		req.Side,
		req.Quantity,
		req.Price,
		req.Type,
	)
	if err != nil {
		// A rejected order still comes back to the caller.
		if order != nil {
			return SuccessResponse(c, dto.OrderResponse{
				Order:   order,
				Success: false,
				Message: err.Error(),
			})
		}
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.OrderResponse{
		Order:   order,
		Success: true,
		Message: "Order processed successfully",
	})
}

// GetUserOrders handles GET /api/trading/orders
func (h *MarketHandler) GetUserOrders(c echo.Context) error {
	orders := h.trading.UserOpenOrders(middleware.UserIDFromContext(c))
	if orders == nil {
		orders = []domain.Order{}
	}
	return SuccessResponse(c, orders)
}

// CancelOrder handles POST /api/trading/orders/:id/cancel
func (h *MarketHandler) CancelOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid order id")
	}

	order, err := h.trading.CancelOrder(middleware.UserIDFromContext(c), orderID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}
	return SuccessResponse(c, dto.OrderResponse{
		Order:   order,
		Success: order.Status == domain.OrderStatusCancelled,
		Message: "Order cancelled",
	})
}

// GetPortfolio handles GET /api/trading/portfolio
func (h *MarketHandler) GetPortfolio(c echo.Context) error {
	return SuccessResponse(c, h.portfolios.Snapshot(middleware.UserIDFromContext(c)))
}

// GetPortfolioValue handles GET /api/trading/portfolio/value
func (h *MarketHandler) GetPortfolioValue(c echo.Context) error {
	value := h.portfolios.TotalValue(middleware.UserIDFromContext(c), h.market.AllPrices())
	return SuccessResponse(c, map[string]float64{"total_value": value})
}

// DepositFunds handles POST /api/trading/portfolio/deposit
func (h *MarketHandler) DepositFunds(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	var req dto.FundsRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := h.portfolios.Deposit(userID, req.Amount); err != nil {
		return DomainErrorResponse(c, err)
	}
	return SuccessResponse(c, h.portfolios.Snapshot(userID))
}

// WithdrawFunds handles POST /api/trading/portfolio/withdraw
func (h *MarketHandler) WithdrawFunds(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	var req dto.FundsRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := h.portfolios.Withdraw(userID, req.Amount); err != nil {
		return DomainErrorResponse(c, err)
	}
	return SuccessResponse(c, h.portfolios.Snapshot(userID))
}
