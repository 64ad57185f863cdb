package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"riskengine/internal/domain"
)

func batchTx(userID string, amount float64, ts time.Time) *domain.Transaction {
	tx := domain.NewTradeTransaction(userID, domain.OrderSideBuy, 1, amount)
	tx.Timestamp = ts
	return tx
}

func TestDetectAnomaliesEmptyBatch(t *testing.T) {
	svc := NewAnomalyService()
	if flagged := svc.DetectAnomalies(nil); flagged != nil {
		t.Errorf("DetectAnomalies(nil) = %v, want nil", flagged)
	}
}

func TestDetectAnomaliesLargeAmount(t *testing.T) {
	svc := NewAnomalyService()
	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// 18 ordinary transactions and one outlier. The 95th percentile of 19
	// sorted amounts lands on the outlier alone.
	var batch []*domain.Transaction
	for i := 0; i < 18; i++ {
		batch = append(batch, batchTx("user", 100, noon.Add(time.Duration(i)*24*time.Hour)))
	}
	outlier := batchTx("whale", 1000000, noon.Add(19*24*time.Hour))
	batch = append(batch, outlier)

	flagged := svc.DetectAnomalies(batch)
	if len(flagged) != 1 {
		t.Fatalf("flagged %d transactions, want 1", len(flagged))
	}
	if flagged[0].ID != outlier.ID {
		t.Errorf("flagged transaction %s, want outlier %s", flagged[0].ID, outlier.ID)
	}
}

func TestDetectAnomaliesFrequency(t *testing.T) {
	svc := NewAnomalyService()
	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// 6 transactions by one user in a single hour exceed the threshold;
	// spread the rest across distinct hours so only frequency fires.
	var batch []*domain.Transaction
	for i := 0; i < 6; i++ {
		batch = append(batch, batchTx("rapid", 100, noon.Add(time.Duration(i)*time.Minute)))
	}
	for i := 0; i < 94; i++ {
		batch = append(batch, batchTx("calm", 100, noon.Add(time.Duration(i+1)*time.Hour)))
	}

	flagged := svc.DetectAnomalies(batch)
	rapid := 0
	for _, tx := range flagged {
		if tx.UserID == "rapid" {
			rapid++
		}
	}
	if rapid != 6 {
		t.Errorf("flagged %d transactions for the rapid user, want 6", rapid)
	}
}

func TestDetectAnomaliesUnusualHour(t *testing.T) {
	svc := NewAnomalyService()
	night := batchTx("owl", 100, time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC))
	day := batchTx("lark", 100, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	flagged := svc.DetectAnomalies([]*domain.Transaction{night, day})

	found := false
	for _, tx := range flagged {
		if tx.ID == night.ID {
			found = true
		}
	}
	if !found {
		t.Error("night transaction not flagged")
	}
}

func TestDetectAnomaliesDeduplicates(t *testing.T) {
	svc := NewAnomalyService()
	// Large amount at an unusual hour trips two detectors but must appear
	// once.
	tx := batchTx("whale", 1000000, time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC))

	flagged := svc.DetectAnomalies([]*domain.Transaction{tx})
	count := make(map[uuid.UUID]int)
	for _, f := range flagged {
		count[f.ID]++
	}
	if count[tx.ID] != 1 {
		t.Errorf("transaction flagged %d times, want 1", count[tx.ID])
	}
}
