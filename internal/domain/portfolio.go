package domain

import (
	"fmt"
	"sync"
)

// Portfolio holds a user's cash balance and asset holdings. All mutations go
// through the methods below, which serialize access per portfolio and keep
// the cash balance and every holding quantity non-negative.
type Portfolio struct {
	userID string

	mu       sync.Mutex
	cash     float64
	holdings map[string]float64
}

// NewPortfolio creates an empty portfolio with the given starting cash.
func NewPortfolio(userID string, startingCash float64) *Portfolio {
	return &Portfolio{
		userID:   userID,
		cash:     startingCash,
		holdings: make(map[string]float64),
	}
}

// UserID returns the owning user's identifier.
func (p *Portfolio) UserID() string {
	return p.userID
}

// CashBalance returns the current cash balance.
func (p *Portfolio) CashBalance() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cash
}

// Holdings returns a copy of the symbol -> quantity map.
func (p *Portfolio) Holdings() map[string]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]float64, len(p.holdings))
	for sym, qty := range p.holdings {
		out[sym] = qty
	}
	return out
}

// Deposit adds cash to the portfolio.
func (p *Portfolio) Deposit(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit amount must be positive", ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cash += amount
	return nil
}

// Withdraw removes cash from the portfolio. The balance is left untouched
// when it does not cover the amount.
func (p *Portfolio) Withdraw(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cash < amount {
		return fmt.Errorf("%w: balance %.2f below %.2f", ErrInsufficientFunds, p.cash, amount)
	}
	p.cash -= amount
	return nil
}

// ApplyBuy debits tradeValue from cash and credits quantity of symbol, as a
// single step. No mutation happens when cash does not cover the trade.
func (p *Portfolio) ApplyBuy(symbol string, quantity, tradeValue float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cash < tradeValue {
		return fmt.Errorf("%w: balance %.2f below trade value %.2f", ErrInsufficientFunds, p.cash, tradeValue)
	}
	p.cash -= tradeValue
	p.holdings[symbol] += quantity
	return nil
}

// ApplySell debits quantity of symbol and credits tradeValue to cash, as a
// single step. No mutation happens when the holding does not cover the
// quantity. Holdings drained to zero are removed.
func (p *Portfolio) ApplySell(symbol string, quantity, tradeValue float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	held := p.holdings[symbol]
	if held < quantity {
		return fmt.Errorf("%w: holding %.4f %s below %.4f", ErrInsufficientHoldings, held, symbol, quantity)
	}
	remaining := held - quantity
	if remaining <= 0 {
		delete(p.holdings, symbol)
	} else {
		p.holdings[symbol] = remaining
	}
	p.cash += tradeValue
	return nil
}

// TotalValue is cash plus holdings valued at the given prices. Holdings
// without a known price contribute nothing.
func (p *Portfolio) TotalValue(prices map[string]AssetPrice) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := p.cash
	for sym, qty := range p.holdings {
		if price, ok := prices[sym]; ok {
			total += qty * price.Price
		}
	}
	return total
}

// PortfolioSnapshot is a point-in-time copy of a portfolio for callers
// outside the core.
type PortfolioSnapshot struct {
	UserID      string             `json:"user_id"`
	CashBalance float64            `json:"cash_balance"`
	Holdings    map[string]float64 `json:"holdings"`
}

// Snapshot captures the portfolio state.
func (p *Portfolio) Snapshot() PortfolioSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	holdings := make(map[string]float64, len(p.holdings))
	for sym, qty := range p.holdings {
		holdings[sym] = qty
	}
	return PortfolioSnapshot{
		UserID:      p.userID,
		CashBalance: p.cash,
		Holdings:    holdings,
	}
}
