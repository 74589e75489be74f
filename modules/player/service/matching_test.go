package service

import (
	"testing"

	"tennismate-api/modules/player/entity"

	"github.com/stretchr/testify/assert"
)

func profile(skill float64, availability ...string) *entity.PlayerProfile {
	return &entity.PlayerProfile{
		SkillLevel:   skill,
		Availability: availability,
	}
}

func TestHaversineKnownDistances(t *testing.T) {
	// Paris <-> London is roughly 344 km.
	d := Haversine(48.8566, 2.3522, 51.5074, -0.1278)
	assert.InDelta(t, 344, d, 5)

	// Same point.
	assert.InDelta(t, 0, Haversine(40.0, -3.7, 40.0, -3.7), 0.001)

	// Symmetry.
	assert.InDelta(t,
		Haversine(48.8566, 2.3522, 51.5074, -0.1278),
		Haversine(51.5074, -0.1278, 48.8566, 2.3522),
		0.001)
}

func TestMatchScoreSkillProximity(t *testing.T) {
	me := profile(4.0)

	same := MatchScore(me, profile(4.0), 100)
	close := MatchScore(me, profile(4.8), 100)
	far := MatchScore(me, profile(6.0), 100)

	assert.Greater(t, same, close)
	assert.Greater(t, close, far)
	assert.Equal(t, 0, far) // beyond every band at 100 km
}

func TestMatchScoreDistanceBands(t *testing.T) {
	me := profile(4.0)
	candidate := profile(6.5) // no skill points, isolates distance

	near := MatchScore(me, candidate, 3)
	mid := MatchScore(me, candidate, 10)
	edge := MatchScore(me, candidate, 25)
	out := MatchScore(me, candidate, 50)

	assert.Equal(t, 30, near)
	assert.Equal(t, 20, mid)
	assert.Equal(t, 10, edge)
	assert.Equal(t, 0, out)
}

func TestMatchScoreSharedAvailability(t *testing.T) {
	me := profile(7.0, entity.AvailabilityWeekendMorning, entity.AvailabilityWeekdayEvening)
	candidate := profile(1.0, entity.AvailabilityWeekendMorning, entity.AvailabilityWeekdayEvening)
	stranger := profile(1.0, entity.AvailabilityWeekendEvening)

	// Skill and distance contribute nothing here; only overlap counts.
	assert.Equal(t, 20, MatchScore(me, candidate, 100))
	assert.Equal(t, 0, MatchScore(me, stranger, 100))
}

func TestMatchScoreAdditive(t *testing.T) {
	me := profile(4.0, entity.AvailabilityWeekendMorning)
	best := profile(4.0, entity.AvailabilityWeekendMorning)

	// 30 (skill) + 30 (distance) + 10 (one shared slot).
	assert.Equal(t, 70, MatchScore(me, best, 1))
}
