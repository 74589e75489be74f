package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestResolveCapacity(t *testing.T) {
	tests := []struct {
		name      string
		eventType EventType
		requested *int
		want      int
		wantErr   bool
	}{
		{"singles default", EventTypeSingles, nil, 1, false},
		{"singles explicit", EventTypeSingles, intPtr(1), 1, false},
		{"singles too many", EventTypeSingles, intPtr(2), 0, true},
		{"doubles default", EventTypeDoubles, nil, 3, false},
		{"doubles min", EventTypeDoubles, intPtr(2), 2, false},
		{"doubles max", EventTypeDoubles, intPtr(4), 4, false},
		{"doubles below min", EventTypeDoubles, intPtr(1), 0, true},
		{"doubles above max", EventTypeDoubles, intPtr(5), 0, true},
		{"social default", EventTypeSocial, nil, 5, false},
		{"social large", EventTypeSocial, intPtr(40), 40, false},
		{"social below min", EventTypeSocial, intPtr(4), 0, true},
		{"unknown type", EventType("mixed"), nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveCapacity(tt.eventType, tt.requested)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddParticipantRecomputesAndFlipsToFull(t *testing.T) {
	ev := &Event{
		Type:       EventTypeDoubles,
		TotalSpots: intPtr(2),
		Status:     EventStatusOpen,
	}

	a, b := uuid.New(), uuid.New()

	ev.AddParticipant(a)
	assert.Equal(t, 1, ev.SpotsFilled)
	assert.Equal(t, EventStatusOpen, ev.Status)
	assert.False(t, ev.IsFull())

	ev.AddParticipant(b)
	assert.Equal(t, 2, ev.SpotsFilled)
	assert.Equal(t, EventStatusFull, ev.Status)
	assert.True(t, ev.IsFull())
}

func TestAddParticipantIsSetSemantics(t *testing.T) {
	ev := &Event{TotalSpots: intPtr(4), Status: EventStatusOpen}
	a := uuid.New()

	ev.AddParticipant(a)
	ev.AddParticipant(a)

	assert.Len(t, ev.Participants, 1)
	assert.Equal(t, 1, ev.SpotsFilled)
}

func TestRemoveParticipantDemotesFullToOpen(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ev := &Event{
		TotalSpots:   intPtr(2),
		Status:       EventStatusFull,
		Participants: UUIDArray{a, b},
		SpotsFilled:  2,
	}

	ev.RemoveParticipant(a)

	assert.Equal(t, 1, ev.SpotsFilled)
	assert.Equal(t, EventStatusOpen, ev.Status)
	assert.False(t, ev.HasParticipant(a))
	assert.True(t, ev.HasParticipant(b))
}

func TestRemoveParticipantKeepsCancelledStatus(t *testing.T) {
	a := uuid.New()
	ev := &Event{
		TotalSpots:   intPtr(2),
		Status:       EventStatusCancelled,
		Participants: UUIDArray{a},
		SpotsFilled:  1,
	}

	ev.RemoveParticipant(a)

	assert.Equal(t, EventStatusCancelled, ev.Status)
}

func TestFilledCountMatchesParticipants(t *testing.T) {
	ev := &Event{TotalSpots: intPtr(4), Status: EventStatusOpen}
	for i := 0; i < 3; i++ {
		ev.AddParticipant(uuid.New())
	}
	assert.Equal(t, len(ev.Participants), ev.FilledCount())
	assert.LessOrEqual(t, ev.FilledCount(), *ev.TotalSpots)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&Event{Status: EventStatusOpen}).IsTerminal())
	assert.False(t, (&Event{Status: EventStatusFull}).IsTerminal())
	assert.True(t, (&Event{Status: EventStatusCancelled}).IsTerminal())
	assert.True(t, (&Event{Status: EventStatusCompleted}).IsTerminal())
}

func TestJoinRequestIsActive(t *testing.T) {
	assert.True(t, (&JoinRequest{Status: RequestStatusPending}).IsActive())
	assert.True(t, (&JoinRequest{Status: RequestStatusAccepted}).IsActive())
	assert.False(t, (&JoinRequest{Status: RequestStatusDeclined}).IsActive())
	assert.False(t, (&JoinRequest{Status: RequestStatusLeft}).IsActive())
}
