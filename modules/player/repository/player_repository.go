package repository

import (
	"context"
	"database/sql"
	"errors"

	"tennismate-api/core/database"
	"tennismate-api/core/logger"
	"tennismate-api/modules/player/entity"

	"github.com/google/uuid"
)

type PlayerRepositoryInterface interface {
	UpsertProfile(ctx context.Context, profile *entity.PlayerProfile) error
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.PlayerProfile, error)
	ListProfilesWithLocation(ctx context.Context, excludeUserID uuid.UUID) ([]entity.PlayerProfile, error)
	UpdateAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error
}

type PlayerRepository struct {
	DB database.Database
}

func NewPlayerRepository(db database.Database) *PlayerRepository {
	return &PlayerRepository{DB: db}
}

func (r *PlayerRepository) UpsertProfile(ctx context.Context, profile *entity.PlayerProfile) error {
	query := `
		INSERT INTO player_profiles (user_id, name, skill_level, bio, city, latitude, longitude, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET name = $2, skill_level = $3, bio = $4, city = $5, latitude = $6, longitude = $7,
		    availability = $8, updated_at = NOW()
	`
	err := r.DB.ExecContext(ctx, query,
		profile.UserID, profile.Name, profile.SkillLevel, profile.Bio, profile.City,
		profile.Latitude, profile.Longitude, profile.Availability)
	if err != nil {
		logger.Error("PlayerRepository:UpsertProfile", err)
		return err
	}
	return nil
}

func (r *PlayerRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.PlayerProfile, error) {
	var profile entity.PlayerProfile
	query := `SELECT * FROM player_profiles WHERE user_id = $1`
	if err := r.DB.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("PlayerRepository:GetProfileByUserID", err)
		return nil, err
	}
	return &profile, nil
}

// ListProfilesWithLocation returns every other profile that has
// coordinates set. Distance filtering happens in the service; the
// player pool is small enough for a linear scan.
func (r *PlayerRepository) ListProfilesWithLocation(ctx context.Context, excludeUserID uuid.UUID) ([]entity.PlayerProfile, error) {
	var profiles []entity.PlayerProfile
	query := `
		SELECT * FROM player_profiles
		WHERE user_id != $1 AND latitude IS NOT NULL AND longitude IS NOT NULL
	`
	if err := r.DB.SelectContext(ctx, &profiles, query, excludeUserID); err != nil {
		logger.Error("PlayerRepository:ListProfilesWithLocation", err)
		return nil, err
	}
	return profiles, nil
}

func (r *PlayerRepository) UpdateAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	query := `UPDATE player_profiles SET avatar_url = $2, updated_at = NOW() WHERE user_id = $1`
	if err := r.DB.ExecContext(ctx, query, userID, avatarURL); err != nil {
		logger.Error("PlayerRepository:UpdateAvatarURL", err)
		return err
	}
	return nil
}
