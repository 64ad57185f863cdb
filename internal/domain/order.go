package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderType distinguishes immediate execution from price-conditional orders.
type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

// Valid reports whether the order type is supported.
func (t OrderType) Valid() bool {
	return t == OrderTypeMarket || t == OrderTypeLimit
}

// OrderSide is the trade direction.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Valid reports whether the side is supported.
func (s OrderSide) Valid() bool {
	return s == OrderSideBuy || s == OrderSideSell
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusOpen    OrderStatus = "OPEN"
	// OrderStatusPartiallyFilled is declared for API compatibility. The
	// current matcher fills limit orders in full or not at all, so nothing
	// transitions into this state.
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusRejected        OrderStatus = "REJECTED"
)

// Terminal reports whether no further transitions are allowed out of the
// status.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusFilled, OrderStatusCancelled, OrderStatusRejected:
		return true
	}
	return false
}

// Active reports whether the order is still working in the book.
func (s OrderStatus) Active() bool {
	return s == OrderStatusOpen || s == OrderStatusPartiallyFilled
}

// orderTransitions is the allowed status graph. Transitions are monotonic:
// once an order reaches a terminal status it never leaves it.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:         {OrderStatusOpen, OrderStatusFilled, OrderStatusRejected},
	OrderStatusOpen:            {OrderStatusPartiallyFilled, OrderStatusFilled, OrderStatusCancelled},
	OrderStatusPartiallyFilled: {OrderStatusFilled, OrderStatusCancelled},
}

// Order is a request to trade an asset. Orders are never deleted, only
// status-transitioned.
type Order struct {
	ID           uuid.UUID   `json:"id"`
	UserID       string      `json:"user_id"`
	Symbol       string      `json:"symbol"`
	Type         OrderType   `json:"type"`
	Side         OrderSide   `json:"side"`
	Quantity     float64     `json:"quantity"`
	Price        float64     `json:"price"` // limit price; unused for market orders
	Status       OrderStatus `json:"status"`
	StatusReason string      `json:"status_reason,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewOrder creates a PENDING order with a fresh identifier.
func NewOrder(userID, symbol string, typ OrderType, side OrderSide, quantity, price float64) *Order {
	now := time.Now()
	return &Order{
		ID:        uuid.New(),
		UserID:    userID,
		Symbol:    symbol,
		Type:      typ,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TransitionTo moves the order to the target status if the transition is
// allowed, updating the timestamp. Illegal transitions return
// ErrInvalidArgument and leave the order untouched.
func (o *Order) TransitionTo(target OrderStatus) error {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == target {
			o.Status = target
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("%w: order %s cannot transition %s -> %s", ErrInvalidArgument, o.ID, o.Status, target)
}

// Reject marks the order REJECTED with a reason. Used both for risk
// rejections and for rolling back a market order whose settlement failed
// before the order became externally visible.
func (o *Order) Reject(reason string) {
	o.Status = OrderStatusRejected
	o.StatusReason = reason
	o.UpdatedAt = time.Now()
}
