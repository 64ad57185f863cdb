package service

import (
	"fmt"
	"log"
	"sync"

	"riskengine/internal/domain"
)

// DefaultStartingCash is the balance a portfolio opens with.
const DefaultStartingCash = 10000.0

// PortfolioService manages user portfolios and applies trade settlement.
// The registry mutex only guards lazy creation; each portfolio carries its
// own lock, so settlements for different users never contend.
type PortfolioService struct {
	mu           sync.RWMutex
	portfolios   map[string]*domain.Portfolio
	startingCash float64
}

// NewPortfolioService creates the service. startingCash <= 0 falls back to
// DefaultStartingCash.
func NewPortfolioService(startingCash float64) *PortfolioService {
	if startingCash <= 0 {
		startingCash = DefaultStartingCash
	}
	return &PortfolioService{
		portfolios:   make(map[string]*domain.Portfolio),
		startingCash: startingCash,
	}
}

// Portfolio returns the user's portfolio, creating it with the starting cash
// balance on first access.
func (s *PortfolioService) Portfolio(userID string) *domain.Portfolio {
	s.mu.RLock()
	p, ok := s.portfolios[userID]
	s.mu.RUnlock()
	if ok {
		return p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.portfolios[userID]; ok {
		return p
	}
	p = domain.NewPortfolio(userID, s.startingCash)
	s.portfolios[userID] = p
	return p
}

// Deposit adds cash to the user's portfolio.
func (s *PortfolioService) Deposit(userID string, amount float64) error {
	if err := s.Portfolio(userID).Deposit(amount); err != nil {
		return err
	}
	log.Printf("Funds deposited: %s added $%.2f", userID, amount)
	return nil
}

// Withdraw removes cash from the user's portfolio. The balance is unchanged
// when it does not cover the amount.
func (s *PortfolioService) Withdraw(userID string, amount float64) error {
	if err := s.Portfolio(userID).Withdraw(amount); err != nil {
		return err
	}
	log.Printf("Funds withdrawn: %s withdrew $%.2f", userID, amount)
	return nil
}

// SettleTrade applies the ledger mutation for an executed order at the given
// price. Only FILLED orders settle. The balance check and the mutation run
// as one critical section on the user's portfolio, so concurrent settlements
// for the same user serialize.
func (s *PortfolioService) SettleTrade(order domain.Order, executionPrice float64) error {
	if order.Status != domain.OrderStatusFilled {
		return fmt.Errorf("%w: order %s not filled (status %s)", domain.ErrInvalidArgument, order.ID, order.Status)
	}

	portfolio := s.Portfolio(order.UserID)
	tradeValue := order.Quantity * executionPrice

	switch order.Side {
	case domain.OrderSideBuy:
		if err := portfolio.ApplyBuy(order.Symbol, order.Quantity, tradeValue); err != nil {
			return err
		}
		log.Printf("Buy executed: %s %.4f of %s at $%.4f", order.UserID, order.Quantity, order.Symbol, executionPrice)
	case domain.OrderSideSell:
		if err := portfolio.ApplySell(order.Symbol, order.Quantity, tradeValue); err != nil {
			return err
		}
		log.Printf("Sell executed: %s %.4f of %s at $%.4f", order.UserID, order.Quantity, order.Symbol, executionPrice)
	default:
		return fmt.Errorf("%w: unknown order side %q", domain.ErrInvalidArgument, order.Side)
	}
	return nil
}

// TotalValue is the user's cash plus holdings valued at the given prices.
func (s *PortfolioService) TotalValue(userID string, prices map[string]domain.AssetPrice) float64 {
	return s.Portfolio(userID).TotalValue(prices)
}

// Snapshot returns a point-in-time copy of the user's portfolio.
func (s *PortfolioService) Snapshot(userID string) domain.PortfolioSnapshot {
	return s.Portfolio(userID).Snapshot()
}
