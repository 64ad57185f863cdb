package domain

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel buckets a continuous risk score. HIGH blocks order execution.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// RiskLevelFor buckets a score in [0,1]: LOW below 0.3, MEDIUM below 0.7,
// HIGH otherwise.
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 0.3:
		return RiskLevelLow
	case score < 0.7:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// RiskScore is the outcome of assessing one transaction.
type RiskScore struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Score         float64   `json:"score"`
	Level         RiskLevel `json:"level"`
	CreatedAt     time.Time `json:"created_at"`
}

// RiskAssessor scores a prospective transaction. The user profile may be nil
// when the user has no stored profile.
type RiskAssessor interface {
	Assess(tx *Transaction, profile *UserProfile) RiskScore
}
