package service

import (
	"math"

	"tennismate-api/modules/player/entity"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometres between two
// coordinates.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// MatchScore rates how well a candidate fits the searching player.
// Additive heuristic: closer skill, shorter distance and overlapping
// availability all raise the score.
func MatchScore(me, candidate *entity.PlayerProfile, distanceKm float64) int {
	score := 0

	switch diff := math.Abs(me.SkillLevel - candidate.SkillLevel); {
	case diff <= 0.5:
		score += 30
	case diff <= 1.0:
		score += 20
	case diff <= 1.5:
		score += 10
	}

	switch {
	case distanceKm <= 5:
		score += 30
	case distanceKm <= 15:
		score += 20
	case distanceKm <= 30:
		score += 10
	}

	score += 10 * sharedAvailability(me, candidate)

	return score
}

func sharedAvailability(a, b *entity.PlayerProfile) int {
	shared := 0
	for _, slotA := range a.Availability {
		for _, slotB := range b.Availability {
			if slotA == slotB {
				shared++
				break
			}
		}
	}
	return shared
}
