package service

import (
	"context"
	"testing"
	"time"

	"tennismate-api/modules/calendar/entity"
	eventEntity "tennismate-api/modules/event/entity"
	eventRepository "tennismate-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entryKey struct {
	eventID uuid.UUID
	userID  uuid.UUID
}

type fakeCalendarRepo struct {
	entries map[entryKey]*entity.CalendarEntry
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{entries: make(map[entryKey]*entity.CalendarEntry)}
}

func (f *fakeCalendarRepo) UpsertEntry(_ context.Context, entry *entity.CalendarEntry) error {
	cp := *entry
	f.entries[entryKey{entry.EventID, entry.UserID}] = &cp
	return nil
}

func (f *fakeCalendarRepo) DeleteEntry(_ context.Context, eventID, userID uuid.UUID) error {
	delete(f.entries, entryKey{eventID, userID})
	return nil
}

func (f *fakeCalendarRepo) GetEntriesByUserID(_ context.Context, userID uuid.UUID) ([]entity.CalendarEntry, error) {
	var out []entity.CalendarEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// fakeEventSource only serves GetEventByID; the sync path touches
// nothing else on the repository.
type fakeEventSource struct {
	eventRepository.EventRepositoryInterface
	events map[uuid.UUID]*eventEntity.Event
}

func (f *fakeEventSource) GetEventByID(_ context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	return ev, nil
}

func newSyncFixture(events ...*eventEntity.Event) (*CalendarService, *fakeCalendarRepo) {
	src := &fakeEventSource{events: make(map[uuid.UUID]*eventEntity.Event)}
	for _, ev := range events {
		src.events[ev.ID] = ev
	}
	repo := newFakeCalendarRepo()
	return NewCalendarService(repo, src), repo
}

func TestSyncEventMirrorsHostAndParticipants(t *testing.T) {
	hostID, playerA, playerB := uuid.New(), uuid.New(), uuid.New()
	ev := &eventEntity.Event{
		ID:           uuid.New(),
		HostID:       hostID,
		Title:        "Doubles night",
		Type:         eventEntity.EventTypeDoubles,
		Location:     "Court 2",
		StartTime:    time.Now().Add(24 * time.Hour),
		EndTime:      time.Now().Add(25 * time.Hour),
		Status:       eventEntity.EventStatusOpen,
		Participants: eventEntity.UUIDArray{playerA, playerB},
	}
	svc, repo := newSyncFixture(ev)

	require.NoError(t, svc.SyncEvent(context.Background(), ev.ID))

	assert.Len(t, repo.entries, 3)
	for _, userID := range []uuid.UUID{hostID, playerA, playerB} {
		entry, ok := repo.entries[entryKey{ev.ID, userID}]
		require.True(t, ok, "missing entry for %s", userID)
		assert.Equal(t, "Doubles night", entry.Title)
		assert.Equal(t, hostID, entry.HostID)
		assert.Equal(t, "open", entry.Status)
	}
}

func TestSyncEventIsIdempotent(t *testing.T) {
	ev := &eventEntity.Event{
		ID:     uuid.New(),
		HostID: uuid.New(),
		Status: eventEntity.EventStatusOpen,
	}
	svc, repo := newSyncFixture(ev)

	require.NoError(t, svc.SyncEvent(context.Background(), ev.ID))
	require.NoError(t, svc.SyncEvent(context.Background(), ev.ID))

	assert.Len(t, repo.entries, 1)
}

func TestSyncEventSkipsCancelledEvents(t *testing.T) {
	ev := &eventEntity.Event{
		ID:     uuid.New(),
		HostID: uuid.New(),
		Status: eventEntity.EventStatusCancelled,
	}
	svc, repo := newSyncFixture(ev)

	require.NoError(t, svc.SyncEvent(context.Background(), ev.ID))
	assert.Empty(t, repo.entries)
}

func TestSyncEventMissingEventIsNoop(t *testing.T) {
	svc, repo := newSyncFixture()

	require.NoError(t, svc.SyncEvent(context.Background(), uuid.New()))
	assert.Empty(t, repo.entries)
}

func TestRemoveEntryDeletesOnlyThatUser(t *testing.T) {
	hostID, playerID := uuid.New(), uuid.New()
	ev := &eventEntity.Event{
		ID:           uuid.New(),
		HostID:       hostID,
		Status:       eventEntity.EventStatusOpen,
		Participants: eventEntity.UUIDArray{playerID},
	}
	svc, repo := newSyncFixture(ev)
	require.NoError(t, svc.SyncEvent(context.Background(), ev.ID))
	require.Len(t, repo.entries, 2)

	require.NoError(t, svc.RemoveEntry(context.Background(), ev.ID, playerID))

	assert.Len(t, repo.entries, 1)
	_, hostKept := repo.entries[entryKey{ev.ID, hostID}]
	assert.True(t, hostKept)
}
