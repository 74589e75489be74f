package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"

	"tennismate-api/core/errors"
	"tennismate-api/core/storage"
	"tennismate-api/modules/player/dto"
	"tennismate-api/modules/player/entity"
	"tennismate-api/modules/player/repository"

	"github.com/google/uuid"
)

// DefaultSearchRadiusKm bounds nearby searches when the caller does not
// pass an explicit radius.
const DefaultSearchRadiusKm = 25.0

type PlayerServiceInterface interface {
	UpsertMyProfile(ctx context.Context, userID uuid.UUID, requestData *dto.UpsertProfileRequest) (*dto.ProfileResponse, *errors.AppError)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, *errors.AppError)
	UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (*dto.AvatarResponse, *errors.AppError)
	SearchNearby(ctx context.Context, userID uuid.UUID, radiusKm float64, maxSkillGap *float64) ([]dto.MatchResponse, *errors.AppError)
}

type PlayerService struct {
	repo     repository.PlayerRepositoryInterface
	uploader *storage.Uploader
}

func NewPlayerService(repo repository.PlayerRepositoryInterface, uploader *storage.Uploader) *PlayerService {
	return &PlayerService{repo: repo, uploader: uploader}
}

func (service *PlayerService) UpsertMyProfile(ctx context.Context, userID uuid.UUID, requestData *dto.UpsertProfileRequest) (*dto.ProfileResponse, *errors.AppError) {
	if requestData.SkillLevel < entity.MinSkillLevel || requestData.SkillLevel > entity.MaxSkillLevel {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Skill level must be between %.1f and %.1f", entity.MinSkillLevel, entity.MaxSkillLevel), nil)
	}
	if (requestData.Latitude == nil) != (requestData.Longitude == nil) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Latitude and longitude must be set together", nil)
	}

	profile := &entity.PlayerProfile{
		UserID:       userID,
		Name:         requestData.Name,
		SkillLevel:   requestData.SkillLevel,
		Bio:          requestData.Bio,
		City:         requestData.City,
		Latitude:     requestData.Latitude,
		Longitude:    requestData.Longitude,
		Availability: requestData.Availability,
	}

	if err := service.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save profile", err)
	}

	saved, err := service.repo.GetProfileByUserID(ctx, userID)
	if err != nil || saved == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load saved profile", err)
	}
	return dto.ToProfileResponse(saved), nil
}

func (service *PlayerService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, *errors.AppError) {
	profile, err := service.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load profile", err)
	}
	if profile == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Profile not found", nil)
	}
	return dto.ToProfileResponse(profile), nil
}

func (service *PlayerService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (*dto.AvatarResponse, *errors.AppError) {
	profile, err := service.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load profile", err)
	}
	if profile == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Create a profile before uploading an avatar", nil)
	}

	key := fmt.Sprintf("avatars/%s", userID)
	url, err := service.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to upload avatar", err)
	}

	if err := service.repo.UpdateAvatarURL(ctx, userID, url); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save avatar URL", err)
	}
	return &dto.AvatarResponse{AvatarURL: url}, nil
}

// SearchNearby returns players within radiusKm of the caller, scored
// and sorted best match first. maxSkillGap, when set, drops candidates
// whose skill differs more than the gap.
func (service *PlayerService) SearchNearby(ctx context.Context, userID uuid.UUID, radiusKm float64, maxSkillGap *float64) ([]dto.MatchResponse, *errors.AppError) {
	me, err := service.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load profile", err)
	}
	if me == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Create a profile before searching", nil)
	}
	if !me.HasLocation() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Set your location before searching nearby", nil)
	}

	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}

	candidates, err := service.repo.ListProfilesWithLocation(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to search players", err)
	}

	matches := make([]dto.MatchResponse, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]

		distance := Haversine(*me.Latitude, *me.Longitude, *candidate.Latitude, *candidate.Longitude)
		if distance > radiusKm {
			continue
		}
		if maxSkillGap != nil && math.Abs(me.SkillLevel-candidate.SkillLevel) > *maxSkillGap {
			continue
		}

		matches = append(matches, dto.MatchResponse{
			Profile:    *dto.ToProfileResponse(candidate),
			DistanceKm: distance,
			MatchScore: MatchScore(me, candidate, distance),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches, nil
}
