package service

import (
	"log"
	"math"
	"sort"

	"github.com/google/uuid"

	"riskengine/internal/domain"
)

// Detection thresholds: amounts at or above the 95th percentile of the
// batch, more than 5 transactions per user per hour, or activity outside
// normal business hours.
const (
	amountPercentileThreshold = 95.0
	frequencyThreshold        = 5
)

// AnomalyService flags suspicious transactions in a batch using several
// independent detectors.
type AnomalyService struct{}

// NewAnomalyService creates the anomaly detector.
func NewAnomalyService() *AnomalyService {
	return &AnomalyService{}
}

// DetectAnomalies runs every detector over the batch and returns the unique
// union of flagged transactions.
func (s *AnomalyService) DetectAnomalies(transactions []*domain.Transaction) []*domain.Transaction {
	if len(transactions) == 0 {
		return nil
	}

	log.Printf("Analyzing %d transactions for anomalies", len(transactions))

	var flagged []*domain.Transaction
	flagged = append(flagged, s.amountAnomalies(transactions)...)
	flagged = append(flagged, s.frequencyAnomalies(transactions)...)
	flagged = append(flagged, s.timeAnomalies(transactions)...)

	seen := make(map[uuid.UUID]bool, len(flagged))
	var unique []*domain.Transaction
	for _, tx := range flagged {
		if !seen[tx.ID] {
			seen[tx.ID] = true
			unique = append(unique, tx)
		}
	}

	log.Printf("Detected %d unique anomalous transactions", len(unique))
	return unique
}

// amountAnomalies flags the transactions above the amount percentile
// threshold.
func (s *AnomalyService) amountAnomalies(transactions []*domain.Transaction) []*domain.Transaction {
	sorted := make([]*domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Amount < sorted[j].Amount
	})

	idx := int(math.Ceil(float64(len(sorted))*amountPercentileThreshold/100.0)) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx:]
}

// frequencyAnomalies flags every transaction of any user that exceeded the
// per-hour frequency threshold.
func (s *AnomalyService) frequencyAnomalies(transactions []*domain.Transaction) []*domain.Transaction {
	type bucket struct {
		user string
		hour string
	}
	buckets := make(map[bucket][]*domain.Transaction)
	for _, tx := range transactions {
		key := bucket{user: tx.UserID, hour: tx.Timestamp.Format("2006-002-15")}
		buckets[key] = append(buckets[key], tx)
	}

	var flagged []*domain.Transaction
	for _, group := range buckets {
		if len(group) > frequencyThreshold {
			flagged = append(flagged, group...)
		}
	}
	return flagged
}

// timeAnomalies flags transactions outside normal business hours.
func (s *AnomalyService) timeAnomalies(transactions []*domain.Transaction) []*domain.Transaction {
	var flagged []*domain.Transaction
	for _, tx := range transactions {
		if unusualHour(tx.Timestamp) {
			flagged = append(flagged, tx)
		}
	}
	return flagged
}
