package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"riskengine/internal/domain"
)

// MarketData supplies current prices to the coordinator.
type MarketData interface {
	CurrentPrice(symbol string) (domain.AssetPrice, error)
	AllPrices() map[string]domain.AssetPrice
}

// OrderBook holds pending limit orders.
type OrderBook interface {
	Submit(order *domain.Order) error
	Order(id uuid.UUID) (domain.Order, bool)
	UserOpenOrders(userID string) []domain.Order
	Cancel(id uuid.UUID) (domain.Order, error)
	MatchAgainstPrice(symbol string, price float64) []domain.Order
}

// Ledger applies trade settlement to user portfolios.
type Ledger interface {
	SettleTrade(order domain.Order, executionPrice float64) error
}

// TradingService orchestrates order intake: risk gate, then execute or
// queue, then settle. Safe for concurrent use alongside the periodic sweep.
type TradingService struct {
	market      MarketData
	orderBook   OrderBook
	ledger      Ledger
	riskGate    domain.RiskAssessor
	txRepo      domain.TransactionRepository
	profileRepo domain.UserProfileRepository
}

// NewTradingService creates the coordinator.
func NewTradingService(
	market MarketData,
	orderBook OrderBook,
	ledger Ledger,
	riskGate domain.RiskAssessor,
	txRepo domain.TransactionRepository,
	profileRepo domain.UserProfileRepository,
) *TradingService {
	return &TradingService{
		market:      market,
		orderBook:   orderBook,
		ledger:      ledger,
		riskGate:    riskGate,
		txRepo:      txRepo,
		profileRepo: profileRepo,
	}
}

// PlaceOrder validates and routes a new order. Market orders settle
// immediately and come back FILLED; limit orders are queued OPEN in the
// book. A HIGH risk level rejects the order before any mutation. The
// returned order is non-nil whenever one was constructed, including
// rejections.
func (ts *TradingService) PlaceOrder(
	ctx context.Context,
	userID, symbol string,
	side domain.OrderSide,
	quantity, price float64,
	typ domain.OrderType,
) (*domain.Order, error) {
	log.Printf("Processing order request: %s %s %.4f %s at %.4f (%s)", userID, side, quantity, symbol, price, typ)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidArgument)
	}
	if !side.Valid() {
		return nil, fmt.Errorf("%w: unknown order side %q", domain.ErrInvalidArgument, side)
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown order type %q", domain.ErrInvalidArgument, typ)
	}
	if typ == domain.OrderTypeLimit && price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive for limit orders", domain.ErrInvalidArgument)
	}

	currentPrice, err := ts.market.CurrentPrice(symbol)
	if err != nil {
		return nil, err
	}

	order := domain.NewOrder(userID, symbol, typ, side, quantity, price)

	effectivePrice := price
	if typ == domain.OrderTypeMarket {
		effectivePrice = currentPrice.Price
	}

	// Risk gate on the provisional transaction. No mutation and no
	// persisted record when rejected.
	tx := domain.NewTradeTransaction(userID, side, quantity, effectivePrice)
	score := ts.riskGate.Assess(tx, ts.lookupProfile(ctx, userID))
	log.Printf("Risk assessment for order %s: score=%.2f level=%s", order.ID, score.Score, score.Level)

	if score.Level == domain.RiskLevelHigh {
		order.Reject("high risk transaction")
		return order, fmt.Errorf("%w: risk score %.2f", domain.ErrRiskRejected, score.Score)
	}
	tx.RiskScore = &score.Score

	if typ == domain.OrderTypeMarket {
		return ts.executeMarketOrder(ctx, order, tx, currentPrice.Price)
	}

	if err := ts.orderBook.Submit(order); err != nil {
		return nil, err
	}
	// The book keeps the submitted order and the sweep mutates it under the
	// book's lock. Return a detached copy so the caller never reads memory
	// the sweep writes.
	queued := *order
	return &queued, nil
}

// executeMarketOrder settles immediately at the current market price. The
// fill and the settlement are one atomic step: the order is not visible to
// anyone else yet, so a settlement shortfall rolls it back to REJECTED and
// nothing is persisted.
func (ts *TradingService) executeMarketOrder(ctx context.Context, order *domain.Order, tx *domain.Transaction, executionPrice float64) (*domain.Order, error) {
	if err := order.TransitionTo(domain.OrderStatusFilled); err != nil {
		return nil, err
	}

	if err := ts.ledger.SettleTrade(*order, executionPrice); err != nil {
		order.Reject(err.Error())
		return order, err
	}

	ts.recordTransaction(ctx, tx)
	log.Printf("Market order executed: %s at price %.4f", order.ID, executionPrice)
	return order, nil
}

// CancelOrder cancels an order on behalf of its owner.
func (ts *TradingService) CancelOrder(userID string, orderID uuid.UUID) (*domain.Order, error) {
	order, ok := ts.orderBook.Order(orderID)
	if !ok {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order %s belongs to another user", domain.ErrForbidden, orderID)
	}

	cancelled, err := ts.orderBook.Cancel(orderID)
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

// UserOpenOrders lists a user's working orders across all symbols.
func (ts *TradingService) UserOpenOrders(userID string) []domain.Order {
	return ts.orderBook.UserOpenOrders(userID)
}

// SweepLimitOrders matches every symbol's open limit orders against the
// current prices and settles the fills. Runs on the scheduler tick and is
// idempotent: with no new price movement a second sweep matches nothing.
func (ts *TradingService) SweepLimitOrders(ctx context.Context) {
	prices := ts.market.AllPrices()
	totalFilled := 0

	for symbol, price := range prices {
		filled := ts.orderBook.MatchAgainstPrice(symbol, price.Price)
		for _, order := range filled {
			if err := ts.ledger.SettleTrade(order, price.Price); err != nil {
				// The book already marked the order FILLED; an unsettleable
				// fill is logged and carries no transaction record.
				log.Printf("ERROR: Settlement failed for order %s: %v", order.ID, err)
				continue
			}
			tx := domain.NewTradeTransaction(order.UserID, order.Side, order.Quantity, price.Price)
			score := ts.riskGate.Assess(tx, ts.lookupProfile(ctx, order.UserID))
			tx.RiskScore = &score.Score
			ts.recordTransaction(ctx, tx)
			totalFilled++
		}
	}

	if totalFilled > 0 {
		log.Printf("Completed limit order processing: %d orders filled", totalFilled)
	}
}

// lookupProfile fetches the user's profile for risk assessment. Users
// without a stored profile trade with a nil profile.
func (ts *TradingService) lookupProfile(ctx context.Context, userID string) *domain.UserProfile {
	profile, err := ts.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("ERROR: Failed to load profile for %s: %v", userID, err)
		}
		return nil
	}
	return profile
}

// recordTransaction persists the settlement record. Persistence is a
// fire-and-forget collaborator: failures are logged, never bubbled into the
// trade path.
func (ts *TradingService) recordTransaction(ctx context.Context, tx *domain.Transaction) {
	if err := ts.txRepo.Save(ctx, tx); err != nil {
		log.Printf("ERROR: Failed to save transaction %s: %v", tx.ID, err)
	}
}
