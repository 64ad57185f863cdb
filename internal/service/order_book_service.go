package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"riskengine/internal/domain"
)

// OrderBookService keeps per-symbol pending order lists plus a by-id index.
// One mutex guards both structures so status transitions are atomic and
// exactly-once: of two concurrent cancel/match attempts on the same order,
// only one succeeds.
type OrderBookService struct {
	mu         sync.Mutex
	books      map[string][]*domain.Order
	ordersByID map[uuid.UUID]*domain.Order
}

// NewOrderBookService creates an empty order book.
func NewOrderBookService() *OrderBookService {
	return &OrderBookService{
		books:      make(map[string][]*domain.Order),
		ordersByID: make(map[uuid.UUID]*domain.Order),
	}
}

// Submit transitions the order to OPEN and stores it. Order ids are
// caller-supplied and assumed unique; a duplicate id is an error.
func (s *OrderBookService) Submit(order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ordersByID[order.ID]; exists {
		return fmt.Errorf("%w: order %s already in book", domain.ErrInvalidArgument, order.ID)
	}
	if err := order.TransitionTo(domain.OrderStatusOpen); err != nil {
		return err
	}

	s.books[order.Symbol] = append(s.books[order.Symbol], order)
	s.ordersByID[order.ID] = order

	log.Printf("Order added to book: %s %s %s qty=%.4f limit=%.4f", order.ID, order.Side, order.Symbol, order.Quantity, order.Price)
	return nil
}

// Order returns a copy of the order with the given id.
func (s *OrderBookService) Order(id uuid.UUID) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.ordersByID[id]
	if !ok {
		return domain.Order{}, false
	}
	return *order, true
}

// OpenOrders returns copies of the OPEN or PARTIALLY_FILLED orders for a
// symbol, in insertion order.
func (s *OrderBookService) OpenOrders(symbol string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, order := range s.books[symbol] {
		if order.Status.Active() {
			out = append(out, *order)
		}
	}
	return out
}

// UserOpenOrders returns copies of a user's OPEN or PARTIALLY_FILLED orders
// across all symbols.
func (s *OrderBookService) UserOpenOrders(userID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, order := range s.ordersByID {
		if order.UserID == userID && order.Status.Active() {
			out = append(out, *order)
		}
	}
	return out
}

// Cancel transitions an active order to CANCELLED and returns the updated
// order. Cancelling an order already in a terminal status is a no-op that
// returns it unchanged, so repeated cancels are idempotent.
func (s *OrderBookService) Cancel(id uuid.UUID) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.ordersByID[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}

	if order.Status.Active() {
		if err := order.TransitionTo(domain.OrderStatusCancelled); err != nil {
			return *order, err
		}
		log.Printf("Order cancelled: %s", order.ID)
	}

	return *order, nil
}

// MatchAgainstPrice fills the OPEN limit orders for a symbol that the given
// price satisfies: a buy fills when the price is at or below its limit, a
// sell when at or above. Fills are full-quantity and scan in insertion
// order. Returns copies of the filled orders.
func (s *OrderBookService) MatchAgainstPrice(symbol string, price float64) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filled []domain.Order
	for _, order := range s.books[symbol] {
		if order.Status != domain.OrderStatusOpen || order.Type != domain.OrderTypeLimit {
			continue
		}

		var shouldFill bool
		switch order.Side {
		case domain.OrderSideBuy:
			shouldFill = price <= order.Price
		case domain.OrderSideSell:
			shouldFill = price >= order.Price
		}

		if shouldFill {
			if err := order.TransitionTo(domain.OrderStatusFilled); err != nil {
				continue
			}
			filled = append(filled, *order)
			log.Printf("Filled limit order: %s at price %.4f", order.ID, price)
		}
	}
	return filled
}
