package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"riskengine/internal/domain"
)

func newLimitOrder(userID, symbol string, side domain.OrderSide, quantity, price float64) *domain.Order {
	return domain.NewOrder(userID, symbol, domain.OrderTypeLimit, side, quantity, price)
}

func TestSubmitOpensOrder(t *testing.T) {
	book := NewOrderBookService()
	order := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 50)

	if err := book.Submit(order); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if order.Status != domain.OrderStatusOpen {
		t.Errorf("submitted order status %s, want %s", order.Status, domain.OrderStatusOpen)
	}

	stored, ok := book.Order(order.ID)
	if !ok {
		t.Fatal("Order did not find the submitted order")
	}
	if stored.ID != order.ID || stored.Status != domain.OrderStatusOpen {
		t.Errorf("stored order %s status %s, want %s OPEN", stored.ID, stored.Status, order.ID)
	}
}

func TestSubmitDuplicateIDRejected(t *testing.T) {
	book := NewOrderBookService()
	order := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 50)
	if err := book.Submit(order); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	dup := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 50)
	dup.ID = order.ID
	if err := book.Submit(dup); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("duplicate Submit error = %v, want ErrInvalidArgument", err)
	}
}

func TestUserOpenOrdersFiltersByUserAndStatus(t *testing.T) {
	book := NewOrderBookService()
	aliceOrder := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 50)
	bobOrder := newLimitOrder("bob", "AAPL", domain.OrderSideSell, 2, 80)
	cancelled := newLimitOrder("alice", "MSFT", domain.OrderSideBuy, 1, 30)

	for _, o := range []*domain.Order{aliceOrder, bobOrder, cancelled} {
		if err := book.Submit(o); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}
	if _, err := book.Cancel(cancelled.ID); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	orders := book.UserOpenOrders("alice")
	if len(orders) != 1 {
		t.Fatalf("UserOpenOrders returned %d orders, want 1", len(orders))
	}
	if orders[0].ID != aliceOrder.ID {
		t.Errorf("UserOpenOrders returned order %s, want %s", orders[0].ID, aliceOrder.ID)
	}
}

func TestCancelUnknownOrder(t *testing.T) {
	book := NewOrderBookService()
	if _, err := book.Cancel(uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Cancel error = %v, want ErrNotFound", err)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	book := NewOrderBookService()
	order := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 50)
	if err := book.Submit(order); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	first, err := book.Cancel(order.ID)
	if err != nil {
		t.Fatalf("first Cancel returned error: %v", err)
	}
	if first.Status != domain.OrderStatusCancelled {
		t.Errorf("first Cancel status %s, want CANCELLED", first.Status)
	}

	second, err := book.Cancel(order.ID)
	if err != nil {
		t.Fatalf("second Cancel returned error: %v", err)
	}
	if second.Status != domain.OrderStatusCancelled {
		t.Errorf("second Cancel status %s, want CANCELLED", second.Status)
	}
}

func TestCancelFilledOrderLeavesItFilled(t *testing.T) {
	book := NewOrderBookService()
	order := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 50)
	if err := book.Submit(order); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	filled := book.MatchAgainstPrice("AAPL", 45)
	if len(filled) != 1 {
		t.Fatalf("MatchAgainstPrice filled %d orders, want 1", len(filled))
	}

	after, err := book.Cancel(order.ID)
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if after.Status != domain.OrderStatusFilled {
		t.Errorf("Cancel after fill status %s, want FILLED", after.Status)
	}
}

func TestMatchAgainstPriceSemantics(t *testing.T) {
	book := NewOrderBookService()
	buyLow := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 50)
	buyHigh := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 70)
	sellLow := newLimitOrder("bob", "AAPL", domain.OrderSideSell, 1, 55)
	sellHigh := newLimitOrder("bob", "AAPL", domain.OrderSideSell, 1, 90)

	for _, o := range []*domain.Order{buyLow, buyHigh, sellLow, sellHigh} {
		if err := book.Submit(o); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	filled := book.MatchAgainstPrice("AAPL", 60)

	// Price 60: buy@70 fills (60 <= 70), sell@55 fills (60 >= 55).
	if len(filled) != 2 {
		t.Fatalf("MatchAgainstPrice filled %d orders, want 2", len(filled))
	}
	want := map[uuid.UUID]bool{buyHigh.ID: true, sellLow.ID: true}
	for _, o := range filled {
		if !want[o.ID] {
			t.Errorf("unexpected fill %s", o.ID)
		}
		if o.Status != domain.OrderStatusFilled {
			t.Errorf("fill %s status %s, want FILLED", o.ID, o.Status)
		}
	}

	if remaining := book.OpenOrders("AAPL"); len(remaining) != 2 {
		t.Errorf("OpenOrders returned %d orders after match, want 2", len(remaining))
	}
}

func TestMatchAgainstPriceSkipsFilledOrders(t *testing.T) {
	book := NewOrderBookService()
	order := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 50)
	if err := book.Submit(order); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if filled := book.MatchAgainstPrice("AAPL", 45); len(filled) != 1 {
		t.Fatalf("first match filled %d orders, want 1", len(filled))
	}
	if filled := book.MatchAgainstPrice("AAPL", 45); len(filled) != 0 {
		t.Fatalf("second match filled %d orders, want 0", len(filled))
	}
}

func TestMatchAgainstPriceInsertionOrder(t *testing.T) {
	book := NewOrderBookService()
	first := newLimitOrder("alice", "AAPL", domain.OrderSideBuy, 1, 60)
	second := newLimitOrder("bob", "AAPL", domain.OrderSideBuy, 1, 60)
	if err := book.Submit(first); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if err := book.Submit(second); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	filled := book.MatchAgainstPrice("AAPL", 55)
	if len(filled) != 2 {
		t.Fatalf("MatchAgainstPrice filled %d orders, want 2", len(filled))
	}
	if filled[0].ID != first.ID || filled[1].ID != second.ID {
		t.Error("fills not in insertion order")
	}
}
