package repository

import (
	"context"
	"database/sql"
	"errors"

	"tennismate-api/core/database"
	coreEntity "tennismate-api/core/entity"
	"tennismate-api/core/logger"
	"tennismate-api/core/params"
	"tennismate-api/modules/coach/entity"

	"github.com/google/uuid"
)

type CoachRepositoryInterface interface {
	ListCoaches(ctx context.Context, queryParams params.QueryParams) (*coreEntity.Pagination[entity.Coach], error)
	GetCoachByID(ctx context.Context, id uuid.UUID) (*entity.Coach, error)
	CreateBooking(ctx context.Context, booking *entity.CoachBooking) (*entity.CoachBooking, error)
	GetBookingsByPlayerID(ctx context.Context, playerID uuid.UUID) ([]entity.CoachBooking, error)
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*entity.CoachBooking, error)
}

type CoachRepository struct {
	DB database.Database
}

func NewCoachRepository(db database.Database) *CoachRepository {
	return &CoachRepository{DB: db}
}

func (r *CoachRepository) ListCoaches(ctx context.Context, queryParams params.QueryParams) (*coreEntity.Pagination[entity.Coach], error) {
	offset := (queryParams.PageNumber - 1) * queryParams.PageSize

	var total int
	countQuery := `SELECT COUNT(*) FROM coaches WHERE is_active = TRUE AND ($1 = '' OR name ILIKE '%' || $1 || '%')`
	if err := r.DB.GetContext(ctx, &total, countQuery, queryParams.Search); err != nil {
		logger.Error("CoachRepository:ListCoaches:Count", err)
		return nil, err
	}

	var coaches []entity.Coach
	query := `
		SELECT * FROM coaches
		WHERE is_active = TRUE AND ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY hourly_rate
		LIMIT $2 OFFSET $3
	`
	if err := r.DB.SelectContext(ctx, &coaches, query, queryParams.Search, queryParams.PageSize, offset); err != nil {
		logger.Error("CoachRepository:ListCoaches", err)
		return nil, err
	}

	return &coreEntity.Pagination[entity.Coach]{
		Items:      coaches,
		TotalItems: total,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (r *CoachRepository) GetCoachByID(ctx context.Context, id uuid.UUID) (*entity.Coach, error) {
	var coach entity.Coach
	query := `SELECT * FROM coaches WHERE id = $1`
	if err := r.DB.GetContext(ctx, &coach, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CoachRepository:GetCoachByID", err)
		return nil, err
	}
	return &coach, nil
}

func (r *CoachRepository) CreateBooking(ctx context.Context, booking *entity.CoachBooking) (*entity.CoachBooking, error) {
	query := `
		INSERT INTO coach_bookings (coach_id, player_id, reference_code, start_time, duration_mins, note, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		booking.CoachID, booking.PlayerID, booking.ReferenceCode,
		booking.StartTime, booking.DurationMins, booking.Note, booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		logger.Error("CoachRepository:CreateBooking", err)
		return nil, err
	}
	return booking, nil
}

func (r *CoachRepository) GetBookingsByPlayerID(ctx context.Context, playerID uuid.UUID) ([]entity.CoachBooking, error) {
	var bookings []entity.CoachBooking
	query := `SELECT * FROM coach_bookings WHERE player_id = $1 ORDER BY start_time DESC`
	if err := r.DB.SelectContext(ctx, &bookings, query, playerID); err != nil {
		logger.Error("CoachRepository:GetBookingsByPlayerID", err)
		return nil, err
	}
	return bookings, nil
}

func (r *CoachRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*entity.CoachBooking, error) {
	var booking entity.CoachBooking
	query := `SELECT * FROM coach_bookings WHERE id = $1`
	if err := r.DB.GetContext(ctx, &booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CoachRepository:GetBookingByID", err)
		return nil, err
	}
	return &booking, nil
}

func (r *CoachRepository) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE coach_bookings SET status = $2, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, bookingID, status); err != nil {
		logger.Error("CoachRepository:UpdateBookingStatus", err)
		return err
	}
	return nil
}
