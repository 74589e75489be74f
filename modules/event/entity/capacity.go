package entity

import "fmt"

// CapacityPolicy bounds the number of joinable spots per event type.
// Max == 0 means unbounded.
type CapacityPolicy struct {
	Min     int
	Max     int
	Default int
}

var capacityPolicies = map[EventType]CapacityPolicy{
	EventTypeSingles: {Min: 1, Max: 1, Default: 1},
	EventTypeDoubles: {Min: 2, Max: 4, Default: 3},
	EventTypeSocial:  {Min: 5, Max: 0, Default: 5},
}

// PolicyFor returns the capacity policy for an event type.
func PolicyFor(t EventType) (CapacityPolicy, bool) {
	p, ok := capacityPolicies[t]
	return p, ok
}

// ResolveCapacity validates a requested capacity against the policy for
// the event type, applying the default when none was requested.
func ResolveCapacity(t EventType, requested *int) (int, error) {
	policy, ok := capacityPolicies[t]
	if !ok {
		return 0, fmt.Errorf("unknown event type %q", t)
	}
	if requested == nil {
		return policy.Default, nil
	}
	if *requested < policy.Min {
		return 0, fmt.Errorf("%s events need at least %d spots", t, policy.Min)
	}
	if policy.Max > 0 && *requested > policy.Max {
		return 0, fmt.Errorf("%s events allow at most %d spots", t, policy.Max)
	}
	return *requested, nil
}
