package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Skill levels follow the NTRP rating scale.
const (
	MinSkillLevel = 1.0
	MaxSkillLevel = 7.0
)

// Availability flags a player can advertise on their profile.
const (
	AvailabilityWeekdayMorning = "weekday_morning"
	AvailabilityWeekdayEvening = "weekday_evening"
	AvailabilityWeekendMorning = "weekend_morning"
	AvailabilityWeekendEvening = "weekend_evening"
)

type PlayerProfile struct {
	UserID       uuid.UUID      `db:"user_id" json:"user_id"`
	Name         string         `db:"name" json:"name"`
	SkillLevel   float64        `db:"skill_level" json:"skill_level"`
	Bio          *string        `db:"bio" json:"bio,omitempty"`
	City         *string        `db:"city" json:"city,omitempty"`
	Latitude     *float64       `db:"latitude" json:"latitude,omitempty"`
	Longitude    *float64       `db:"longitude" json:"longitude,omitempty"`
	AvatarURL    *string        `db:"avatar_url" json:"avatar_url,omitempty"`
	Availability pq.StringArray `db:"availability" json:"availability"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// HasLocation reports whether the profile can take part in distance
// based discovery.
func (p *PlayerProfile) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}
