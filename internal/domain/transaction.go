package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction type tags. Trade transactions carry the order side suffix.
const (
	TransactionTypeTradeBuy  = "TRADE_BUY"
	TransactionTypeTradeSell = "TRADE_SELL"
)

// ExchangeAccountID is the sentinel counterparty account for trades against
// the exchange.
const ExchangeAccountID = "EXCHANGE"

// Transaction is a monetary movement recorded for risk assessment. Immutable
// once persisted.
type Transaction struct {
	ID                   uuid.UUID `json:"id"`
	UserID               string    `json:"user_id"`
	Amount               float64   `json:"amount"`
	Timestamp            time.Time `json:"timestamp"`
	Type                 string    `json:"type"`
	SourceAccountID      string    `json:"source_account_id"`
	DestinationAccountID string    `json:"destination_account_id"`
	RiskScore            *float64  `json:"risk_score,omitempty"`
}

// NewTradeTransaction builds the transaction record for a trade of quantity
// at price. For a buy the user's account funds the exchange; for a sell the
// flow reverses.
func NewTradeTransaction(userID string, side OrderSide, quantity, price float64) *Transaction {
	source, destination := userID, ExchangeAccountID
	typ := TransactionTypeTradeBuy
	if side == OrderSideSell {
		source, destination = ExchangeAccountID, userID
		typ = TransactionTypeTradeSell
	}
	return &Transaction{
		ID:                   uuid.New(),
		UserID:               userID,
		Amount:               quantity * price,
		Timestamp:            time.Now(),
		Type:                 typ,
		SourceAccountID:      source,
		DestinationAccountID: destination,
	}
}
