package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"riskengine/internal/domain"
)

// AnomalyDetector flags suspicious transactions in a batch.
type AnomalyDetector interface {
	DetectAnomalies(transactions []*domain.Transaction) []*domain.Transaction
}

// TransactionService handles transaction monitoring: ingesting new
// transactions with a risk score attached, lookups, and anomaly reports.
type TransactionService struct {
	txRepo      domain.TransactionRepository
	profileRepo domain.UserProfileRepository
	riskGate    domain.RiskAssessor
	anomalies   AnomalyDetector
}

// NewTransactionService creates the service.
func NewTransactionService(
	txRepo domain.TransactionRepository,
	profileRepo domain.UserProfileRepository,
	riskGate domain.RiskAssessor,
	anomalies AnomalyDetector,
) *TransactionService {
	return &TransactionService{
		txRepo:      txRepo,
		profileRepo: profileRepo,
		riskGate:    riskGate,
		anomalies:   anomalies,
	}
}

// Process validates a new transaction, scores it, and persists it with the
// score attached.
func (s *TransactionService) Process(ctx context.Context, tx *domain.Transaction) error {
	if tx.Amount <= 0 {
		return fmt.Errorf("%w: transaction amount must be greater than zero", domain.ErrInvalidArgument)
	}
	if tx.UserID == "" {
		return fmt.Errorf("%w: transaction user id is required", domain.ErrInvalidArgument)
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	var profile *domain.UserProfile
	if p, err := s.profileRepo.FindByID(ctx, tx.UserID); err == nil {
		profile = p
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Printf("ERROR: Failed to load profile for %s: %v", tx.UserID, err)
	}

	score := s.riskGate.Assess(tx, profile)
	tx.RiskScore = &score.Score

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// All returns every recorded transaction, newest first.
func (s *TransactionService) All(ctx context.Context) ([]*domain.Transaction, error) {
	return s.txRepo.FindAll(ctx)
}

// Get returns one transaction by id.
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return s.txRepo.FindByID(ctx, id)
}

// Delete removes one transaction by id.
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txRepo.DeleteByID(ctx, id)
}

// DetectAnomalies runs the anomaly detectors over all recorded
// transactions.
func (s *TransactionService) DetectAnomalies(ctx context.Context) ([]*domain.Transaction, error) {
	transactions, err := s.txRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return s.anomalies.DetectAnomalies(transactions), nil
}
