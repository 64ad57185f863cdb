package dto

import (
	"time"

	"github.com/google/uuid"

	"riskengine/internal/domain"
)

// TransactionRequest is the payload for recording a transaction.
type TransactionRequest struct {
	UserID               string    `json:"user_id"`
	Amount               float64   `json:"amount"`
	Timestamp            time.Time `json:"timestamp"`
	Type                 string    `json:"type"`
	SourceAccountID      string    `json:"source_account_id"`
	DestinationAccountID string    `json:"destination_account_id"`
}

// ToDomain converts the request to a domain transaction. A zero timestamp
// defaults to now.
func (r TransactionRequest) ToDomain() *domain.Transaction {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &domain.Transaction{
		ID:                   uuid.New(),
		UserID:               r.UserID,
		Amount:               r.Amount,
		Timestamp:            ts,
		Type:                 r.Type,
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
	}
}

// RiskEvaluationRequest asks for a risk score on an existing transaction.
type RiskEvaluationRequest struct {
	TransactionID uuid.UUID `json:"transaction_id"`
}

// RiskScoreResponse carries the outcome of a risk evaluation.
type RiskScoreResponse struct {
	TransactionID uuid.UUID        `json:"transaction_id"`
	Score         float64          `json:"score"`
	Level         domain.RiskLevel `json:"level"`
	CreatedAt     time.Time        `json:"created_at"`
}
