package dto

import (
	"time"

	"tennismate-api/modules/player/entity"

	"github.com/google/uuid"
)

type UpsertProfileRequest struct {
	Name         string   `json:"name" validate:"required"`
	SkillLevel   float64  `json:"skill_level" validate:"required"`
	Bio          *string  `json:"bio"`
	City         *string  `json:"city"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Availability []string `json:"availability"`
}

type ProfileResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	SkillLevel   float64   `json:"skill_level"`
	Bio          *string   `json:"bio,omitempty"`
	City         *string   `json:"city,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Availability []string  `json:"availability"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MatchResponse is a directory entry scored against the caller.
type MatchResponse struct {
	Profile    ProfileResponse `json:"profile"`
	DistanceKm float64         `json:"distance_km"`
	MatchScore int             `json:"match_score"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

func ToProfileResponse(p *entity.PlayerProfile) *ProfileResponse {
	return &ProfileResponse{
		UserID:       p.UserID,
		Name:         p.Name,
		SkillLevel:   p.SkillLevel,
		Bio:          p.Bio,
		City:         p.City,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		AvatarURL:    p.AvatarURL,
		Availability: p.Availability,
		UpdatedAt:    p.UpdatedAt,
	}
}
