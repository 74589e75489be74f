package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tennismate-api/core/database"
	"tennismate-api/core/logger"
	"tennismate-api/modules/auth/entity"

	"github.com/google/uuid"
)

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	LinkGoogleAccount(ctx context.Context, userID uuid.UUID, googleID string) error
	TouchLastLogin(ctx context.Context, userID uuid.UUID) error
	SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)
}

type UserRepository struct {
	DB database.Database
}

func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (email, name, password, google_id, avatar_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.Password, user.GoogleID, user.AvatarURL, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		logger.Error("UserRepository:CreateUser", err)
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	query := `SELECT * FROM users WHERE email = $1`
	if err := r.DB.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("UserRepository:GetUserByEmail", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	query := `SELECT * FROM users WHERE id = $1`
	if err := r.DB.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("UserRepository:GetUserByID", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) LinkGoogleAccount(ctx context.Context, userID uuid.UUID, googleID string) error {
	query := `UPDATE users SET google_id = $2, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, userID, googleID); err != nil {
		logger.Error("UserRepository:LinkGoogleAccount", err)
		return err
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, userID); err != nil {
		logger.Error("UserRepository:TouchLastLogin", err)
		return err
	}
	return nil
}

func (r *UserRepository) SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error {
	query := `INSERT INTO oauth_states (state, expires_at) VALUES ($1, $2)`
	if err := r.DB.ExecContext(ctx, query, state, expiresAt); err != nil {
		logger.Error("UserRepository:SaveOAuthState", err)
		return err
	}
	return nil
}

// ConsumeOAuthState deletes the state row and reports whether it existed
// and had not expired. One-time use.
func (r *UserRepository) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	var expiresAt time.Time
	query := `DELETE FROM oauth_states WHERE state = $1 RETURNING expires_at`
	err := r.DB.QueryRowContext(ctx, query, state).Scan(&expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.Error("UserRepository:ConsumeOAuthState", err)
		return false, err
	}
	return expiresAt.After(time.Now()), nil
}
