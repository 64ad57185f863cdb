package dto

import "riskengine/internal/domain"

// OrderRequest is the payload for placing an order.
type OrderRequest struct {
	Symbol   string           `json:"symbol"`
	Side     domain.OrderSide `json:"side"`
	Type     domain.OrderType `json:"type"`
	Quantity float64          `json:"quantity"`
	Price    float64          `json:"price"`
}

// OrderResponse reports the outcome of an order operation.
type OrderResponse struct {
	Order   *domain.Order `json:"order,omitempty"`
	Success bool          `json:"success"`
	Message string        `json:"message"`
}

// FundsRequest is the payload for deposits and withdrawals.
type FundsRequest struct {
	Amount float64 `json:"amount"`
}
