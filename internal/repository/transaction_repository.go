package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"riskengine/internal/domain"
)

// TransactionRepositoryImpl implements domain.TransactionRepository on
// PostgreSQL.
type TransactionRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *pgxpool.Pool) domain.TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

// Save persists a new transaction record.
func (r *TransactionRepositoryImpl) Save(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, user_id, amount, transaction_date, transaction_type,
			source_account_id, destination_account_id, risk_score
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.db.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Amount,
		tx.Timestamp,
		tx.Type,
		tx.SourceAccountID,
		tx.DestinationAccountID,
		tx.RiskScore,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// FindByID retrieves a transaction by id.
func (r *TransactionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `
		SELECT id, user_id, amount, transaction_date, transaction_type,
		       source_account_id, destination_account_id, risk_score
		FROM transactions
		WHERE id = $1
	`

	tx := &domain.Transaction{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Amount,
		&tx.Timestamp,
		&tx.Type,
		&tx.SourceAccountID,
		&tx.DestinationAccountID,
		&tx.RiskScore,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}
	return tx, nil
}

// FindAll retrieves every transaction, newest first.
func (r *TransactionRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, amount, transaction_date, transaction_type,
		       source_account_id, destination_account_id, risk_score
		FROM transactions
		ORDER BY transaction_date DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx := &domain.Transaction{}
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Amount,
			&tx.Timestamp,
			&tx.Type,
			&tx.SourceAccountID,
			&tx.DestinationAccountID,
			&tx.RiskScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// DeleteByID removes a transaction by id.
func (r *TransactionRepositoryImpl) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
	}
	return nil
}
