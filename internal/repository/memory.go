package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"riskengine/internal/domain"
)

// MemoryTransactionRepository is an in-memory domain.TransactionRepository.
// Used when no database is configured and in tests.
type MemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]domain.Transaction
}

// NewMemoryTransactionRepository creates an empty in-memory store.
func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{
		transactions: make(map[uuid.UUID]domain.Transaction),
	}
}

// Save stores a copy of the transaction.
func (r *MemoryTransactionRepository) Save(_ context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[tx.ID] = *tx
	return nil
}

// FindByID returns the stored transaction or ErrNotFound.
func (r *MemoryTransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.transactions[id]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
	}
	return &tx, nil
}

// FindAll returns every stored transaction, newest first.
func (r *MemoryTransactionRepository) FindAll(_ context.Context) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(r.transactions))
	for _, tx := range r.transactions {
		tx := tx
		out = append(out, &tx)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// DeleteByID removes a stored transaction or returns ErrNotFound.
func (r *MemoryTransactionRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[id]; !ok {
		return fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
	}
	delete(r.transactions, id)
	return nil
}

// MemoryUserProfileRepository is an in-memory domain.UserProfileRepository.
type MemoryUserProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
}

// NewMemoryUserProfileRepository creates an empty in-memory store.
func NewMemoryUserProfileRepository() *MemoryUserProfileRepository {
	return &MemoryUserProfileRepository{
		profiles: make(map[string]domain.UserProfile),
	}
}

// Create stores a copy of the profile.
func (r *MemoryUserProfileRepository) Create(_ context.Context, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[profile.ID]; exists {
		return fmt.Errorf("%w: user profile %s already exists", domain.ErrInvalidArgument, profile.ID)
	}
	r.profiles[profile.ID] = *profile
	return nil
}

// FindByID returns the stored profile or ErrNotFound.
func (r *MemoryUserProfileRepository) FindByID(_ context.Context, id string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: user profile %s", domain.ErrNotFound, id)
	}
	return &profile, nil
}

// FindByUsername returns the stored profile or ErrNotFound.
func (r *MemoryUserProfileRepository) FindByUsername(_ context.Context, username string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, profile := range r.profiles {
		if profile.Username == username {
			p := profile
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: user profile username=%s", domain.ErrNotFound, username)
}
