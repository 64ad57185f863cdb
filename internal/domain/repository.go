package domain

import (
	"context"

	"github.com/google/uuid"
)

// TransactionRepository is the durable store for transaction records.
// Persistence failures never block trading; callers treat saves as
// fire-and-forget collaborators.
type TransactionRepository interface {
	// Save persists a new transaction record.
	Save(ctx context.Context, tx *Transaction) error

	// FindByID retrieves a transaction, or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindAll retrieves every transaction, newest first.
	FindAll(ctx context.Context) ([]*Transaction, error)

	// DeleteByID removes a transaction, or ErrNotFound when absent.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// UserProfileRepository is the durable store for user profiles.
type UserProfileRepository interface {
	// Create persists a new profile.
	Create(ctx context.Context, profile *UserProfile) error

	// FindByID retrieves a profile, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*UserProfile, error)

	// FindByUsername retrieves a profile, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*UserProfile, error)
}
