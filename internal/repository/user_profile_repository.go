package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"riskengine/internal/domain"
)

// UserProfileRepositoryImpl implements domain.UserProfileRepository on
// PostgreSQL.
type UserProfileRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewUserProfileRepository creates a new UserProfileRepository.
func NewUserProfileRepository(db *pgxpool.Pool) domain.UserProfileRepository {
	return &UserProfileRepositoryImpl{db: db}
}

// Create persists a new user profile.
func (r *UserProfileRepositoryImpl) Create(ctx context.Context, profile *domain.UserProfile) error {
	query := `
		INSERT INTO user_profiles (
			id, username, email, password_hash, high_risk, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.Username,
		profile.Email,
		profile.PasswordHash,
		profile.HighRisk,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}

// FindByID retrieves a profile by user id.
func (r *UserProfileRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	return r.findBy(ctx, "id", id)
}

// FindByUsername retrieves a profile by username.
func (r *UserProfileRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	return r.findBy(ctx, "username", username)
}

func (r *UserProfileRepositoryImpl) findBy(ctx context.Context, column, value string) (*domain.UserProfile, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, high_risk, created_at, updated_at
		FROM user_profiles
		WHERE %s = $1
	`, column)

	profile := &domain.UserProfile{}
	err := r.db.QueryRow(ctx, query, value).Scan(
		&profile.ID,
		&profile.Username,
		&profile.Email,
		&profile.PasswordHash,
		&profile.HighRisk,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user profile %s=%s", domain.ErrNotFound, column, value)
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return profile, nil
}
