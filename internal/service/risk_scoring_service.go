package service

import (
	"math"
	"time"

	"github.com/google/uuid"

	"riskengine/internal/domain"
)

// Scoring thresholds. Transactions above the large-amount threshold or
// outside normal hours accumulate risk.
const (
	largeAmountThreshold = 10000.0
	normalHourStart      = 7  // 7 AM
	normalHourEnd        = 23 // 11 PM
)

// RiskScoringService computes a risk score in [0,1] for a transaction and
// buckets it into a level. Implements domain.RiskAssessor.
type RiskScoringService struct{}

// NewRiskScoringService creates the scoring service.
func NewRiskScoringService() *RiskScoringService {
	return &RiskScoringService{}
}

var _ domain.RiskAssessor = (*RiskScoringService)(nil)

// Assess scores the transaction: +0.3 for a large amount, +0.2 for an
// unusual hour, +0.2 when the user profile is flagged high risk, capped at
// 1.0. A nil profile contributes nothing.
func (s *RiskScoringService) Assess(tx *domain.Transaction, profile *domain.UserProfile) domain.RiskScore {
	score := s.numericScore(tx, profile)
	return domain.RiskScore{
		ID:            uuid.New(),
		TransactionID: tx.ID,
		Score:         score,
		Level:         domain.RiskLevelFor(score),
		CreatedAt:     time.Now(),
	}
}

func (s *RiskScoringService) numericScore(tx *domain.Transaction, profile *domain.UserProfile) float64 {
	if tx == nil {
		return 0
	}

	score := 0.0
	if tx.Amount > largeAmountThreshold {
		score += 0.3
	}
	if unusualHour(tx.Timestamp) {
		score += 0.2
	}
	if profile != nil && profile.HighRisk {
		score += 0.2
	}
	return math.Min(score, 1.0)
}

func unusualHour(t time.Time) bool {
	hour := t.Hour()
	return hour < normalHourStart || hour > normalHourEnd
}
