package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	apperrors "tennismate-api/core/errors"
	"tennismate-api/core/params"
	"tennismate-api/modules/event/dto"
	"tennismate-api/modules/event/entity"
	"tennismate-api/modules/event/repository"
	notifDto "tennismate-api/modules/notification/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo runs the same mutation closures the real repository runs
// inside a transaction, against in-memory state. A closure error leaves
// the stored event untouched, mirroring a rollback.
type fakeEventRepo struct {
	events   map[uuid.UUID]*entity.Event
	requests map[uuid.UUID]*entity.JoinRequest
	removed  [][2]uuid.UUID // conversation member removals
}

var _ repository.EventRepositoryInterface = (*fakeEventRepo)(nil)

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:   make(map[uuid.UUID]*entity.Event),
		requests: make(map[uuid.UUID]*entity.JoinRequest),
	}
}

func cloneEvent(ev *entity.Event) *entity.Event {
	cp := *ev
	cp.Participants = append(entity.UUIDArray{}, ev.Participants...)
	return &cp
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event *entity.Event) (*entity.Event, error) {
	ev := cloneEvent(event)
	ev.ID = uuid.New()
	f.events[ev.ID] = ev
	return cloneEvent(ev), nil
}

func (f *fakeEventRepo) GetEventByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	return cloneEvent(ev), nil
}

func (f *fakeEventRepo) ListOpenEvents(_ context.Context, p params.QueryParams) (*repository.PaginatedEventEntity, error) {
	var items []entity.Event
	for _, ev := range f.events {
		if ev.Status == entity.EventStatusOpen {
			items = append(items, *cloneEvent(ev))
		}
	}
	return &repository.PaginatedEventEntity{
		Items:      items,
		TotalItems: len(items),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (f *fakeEventRepo) GetEventsByHostID(_ context.Context, hostID uuid.UUID) ([]entity.Event, error) {
	var items []entity.Event
	for _, ev := range f.events {
		if ev.HostID == hostID {
			items = append(items, *cloneEvent(ev))
		}
	}
	return items, nil
}

func (f *fakeEventRepo) MutateEvent(_ context.Context, eventID uuid.UUID, fn func(ev *entity.Event) error) (*entity.Event, error) {
	stored, ok := f.events[eventID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	work := cloneEvent(stored)
	if err := fn(work); err != nil {
		return nil, err
	}
	f.events[eventID] = work
	return cloneEvent(work), nil
}

func (f *fakeEventRepo) MutateEventWithRequest(_ context.Context, eventID, requestID uuid.UUID, fn func(ev *entity.Event, req *entity.JoinRequest) error) (*entity.Event, *entity.JoinRequest, error) {
	storedEv, ok := f.events[eventID]
	if !ok {
		return nil, nil, sql.ErrNoRows
	}
	storedReq, ok := f.requests[requestID]
	if !ok {
		return nil, nil, sql.ErrNoRows
	}
	workEv := cloneEvent(storedEv)
	workReq := *storedReq
	if err := fn(workEv, &workReq); err != nil {
		return nil, nil, err
	}
	f.events[eventID] = workEv
	f.requests[requestID] = &workReq
	reqCopy := workReq
	return cloneEvent(workEv), &reqCopy, nil
}

func (f *fakeEventRepo) UpsertJoinRequest(_ context.Context, eventID, userID uuid.UUID) (*entity.JoinRequest, error) {
	for _, req := range f.requests {
		if req.EventID == eventID && req.UserID == userID {
			req.Status = entity.RequestStatusPending
			cp := *req
			return &cp, nil
		}
	}
	req := &entity.JoinRequest{
		ID:        uuid.New(),
		EventID:   eventID,
		UserID:    userID,
		Status:    entity.RequestStatusPending,
		CreatedAt: time.Now(),
	}
	f.requests[req.ID] = req
	cp := *req
	return &cp, nil
}

func (f *fakeEventRepo) GetJoinRequestByID(_ context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (f *fakeEventRepo) GetJoinRequestByEventAndUser(_ context.Context, eventID, userID uuid.UUID) (*entity.JoinRequest, error) {
	for _, req := range f.requests {
		if req.EventID == eventID && req.UserID == userID {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) GetJoinRequestsByEventID(_ context.Context, eventID uuid.UUID) ([]entity.JoinRequest, error) {
	var out []entity.JoinRequest
	for _, req := range f.requests {
		if req.EventID == eventID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateJoinRequestStatus(_ context.Context, id uuid.UUID, status entity.RequestStatus) error {
	req, ok := f.requests[id]
	if !ok {
		return sql.ErrNoRows
	}
	req.Status = status
	return nil
}

func (f *fakeEventRepo) RemoveConversationMember(_ context.Context, eventID, userID uuid.UUID) error {
	f.removed = append(f.removed, [2]uuid.UUID{eventID, userID})
	return nil
}

type fakeNotifier struct {
	sent []*notifDto.CreateNotificationRequest
}

func (f *fakeNotifier) Create(_ context.Context, req *notifDto.CreateNotificationRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

type fakeEnqueuer struct {
	syncs   []uuid.UUID
	deletes [][2]uuid.UUID // event, user
	pushes  [][2]uuid.UUID
}

func (f *fakeEnqueuer) EnqueueCalendarSync(_ context.Context, eventID uuid.UUID) error {
	f.syncs = append(f.syncs, eventID)
	return nil
}

func (f *fakeEnqueuer) EnqueueCalendarDelete(_ context.Context, eventID, userID uuid.UUID) error {
	f.deletes = append(f.deletes, [2]uuid.UUID{eventID, userID})
	return nil
}

func (f *fakeEnqueuer) EnqueuePushNotify(_ context.Context, notificationID, userID uuid.UUID) error {
	f.pushes = append(f.pushes, [2]uuid.UUID{notificationID, userID})
	return nil
}

type fixture struct {
	repo  *fakeEventRepo
	notif *fakeNotifier
	queue *fakeEnqueuer
	svc   EventServiceInterface
}

func newFixture() *fixture {
	repo := newFakeEventRepo()
	notif := &fakeNotifier{}
	q := &fakeEnqueuer{}
	return &fixture{
		repo:  repo,
		notif: notif,
		queue: q,
		svc:   NewEventService(repo, notif, q),
	}
}

func intPtr(v int) *int { return &v }

func createEventRequest(eventType string, totalSpots *int) *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:           "Saturday rally",
		Type:            eventType,
		Location:        "Court 4",
		StartTime:       time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		DurationMinutes: 90,
		TotalSpots:      totalSpots,
	}
}

func seedEvent(f *fixture, hostID uuid.UUID, eventType entity.EventType, totalSpots int) *entity.Event {
	ev := &entity.Event{
		ID:           uuid.New(),
		HostID:       hostID,
		Title:        "Saturday rally",
		Slug:         "saturday-rally-abc1234",
		Type:         eventType,
		Location:     "Court 4",
		StartTime:    time.Now().Add(48 * time.Hour),
		EndTime:      time.Now().Add(49 * time.Hour),
		TotalSpots:   intPtr(totalSpots),
		Status:       entity.EventStatusOpen,
		Participants: entity.UUIDArray{},
	}
	f.repo.events[ev.ID] = ev
	return ev
}

func seedRequest(f *fixture, eventID, userID uuid.UUID, status entity.RequestStatus) *entity.JoinRequest {
	req := &entity.JoinRequest{
		ID:      uuid.New(),
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	}
	f.repo.requests[req.ID] = req
	return req
}

// ===================== Create =====================

func TestCreateEventValidatesCapacity(t *testing.T) {
	f := newFixture()
	hostID := uuid.New()

	_, appErr := f.svc.CreateEvent(context.Background(), hostID, createEventRequest("singles", intPtr(3)))
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)

	resp, appErr := f.svc.CreateEvent(context.Background(), hostID, createEventRequest("doubles", nil))
	require.Nil(t, appErr)
	assert.Equal(t, "open", resp.Status)
	assert.Equal(t, 3, *resp.TotalSpots) // doubles default
	assert.Empty(t, resp.Participants)
	assert.Len(t, f.queue.syncs, 1) // host calendar mirror
}

// ===================== Submit =====================

func TestSubmitJoinRequestHostForbidden(t *testing.T) {
	f := newFixture()
	hostID := uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 2)

	_, appErr := f.svc.SubmitJoinRequest(context.Background(), ev.ID, hostID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestSubmitJoinRequestNotifiesHost(t *testing.T) {
	f := newFixture()
	hostID, playerID := uuid.New(), uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 2)

	resp, appErr := f.svc.SubmitJoinRequest(context.Background(), ev.ID, playerID)
	require.Nil(t, appErr)
	assert.Equal(t, "pending", resp.Status)

	require.Len(t, f.notif.sent, 1)
	assert.Equal(t, hostID, f.notif.sent[0].UserID)
}

func TestSubmitJoinRequestRejectedWhenFull(t *testing.T) {
	f := newFixture()
	hostID, playerID := uuid.New(), uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeSingles, 1)
	ev.AddParticipant(uuid.New())

	_, appErr := f.svc.SubmitJoinRequest(context.Background(), ev.ID, playerID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrEventFull, appErr.Code)
}

func TestSubmitJoinRequestResubmissionReusesRow(t *testing.T) {
	f := newFixture()
	hostID, playerID := uuid.New(), uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 3)

	first, appErr := f.svc.SubmitJoinRequest(context.Background(), ev.ID, playerID)
	require.Nil(t, appErr)

	firstID := uuid.MustParse(first.ID)
	_, appErr = f.svc.DeclineJoinRequest(context.Background(), ev.ID, firstID, hostID)
	require.Nil(t, appErr)

	second, appErr := f.svc.SubmitJoinRequest(context.Background(), ev.ID, playerID)
	require.Nil(t, appErr)

	assert.Equal(t, first.ID, second.ID) // same row, reset to pending
	assert.Equal(t, "pending", second.Status)
	assert.Len(t, f.repo.requests, 1)
}

// ===================== Accept =====================

func TestAcceptJoinRequestFlipsSinglesToFull(t *testing.T) {
	f := newFixture()
	hostID, playerID := uuid.New(), uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeSingles, 1)
	req := seedRequest(f, ev.ID, playerID, entity.RequestStatusPending)

	resp, appErr := f.svc.AcceptJoinRequest(context.Background(), ev.ID, req.ID, hostID)
	require.Nil(t, appErr)

	assert.Equal(t, "full", resp.Status)
	assert.Equal(t, 1, resp.SpotsFilled)
	assert.Equal(t, []string{playerID.String()}, resp.Participants)
	assert.Equal(t, entity.RequestStatusAccepted, f.repo.requests[req.ID].Status)
	assert.NotContains(t, resp.Participants, hostID.String())
	assert.Len(t, f.queue.syncs, 1)
}

func TestAcceptOnFullEventFailsWithoutMutation(t *testing.T) {
	f := newFixture()
	hostID := uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 2)

	// Fill to capacity.
	for i := 0; i < 2; i++ {
		playerID := uuid.New()
		req := seedRequest(f, ev.ID, playerID, entity.RequestStatusPending)
		_, appErr := f.svc.AcceptJoinRequest(context.Background(), ev.ID, req.ID, hostID)
		require.Nil(t, appErr)
	}
	require.Equal(t, entity.EventStatusFull, f.repo.events[ev.ID].Status)

	lateID := uuid.New()
	lateReq := seedRequest(f, ev.ID, lateID, entity.RequestStatusPending)

	_, appErr := f.svc.AcceptJoinRequest(context.Background(), ev.ID, lateReq.ID, hostID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrEventFull, appErr.Code)

	// Nothing changed: spots, participants and the late request.
	stored := f.repo.events[ev.ID]
	assert.Equal(t, 2, stored.SpotsFilled)
	assert.Len(t, stored.Participants, 2)
	assert.Equal(t, entity.RequestStatusPending, f.repo.requests[lateReq.ID].Status)
}

func TestAcceptJoinRequestNonHostForbidden(t *testing.T) {
	f := newFixture()
	hostID, playerID := uuid.New(), uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 2)
	req := seedRequest(f, ev.ID, playerID, entity.RequestStatusPending)

	_, appErr := f.svc.AcceptJoinRequest(context.Background(), ev.ID, req.ID, playerID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	assert.Equal(t, entity.RequestStatusPending, f.repo.requests[req.ID].Status)
}

func TestAcceptJoinRequestWrongEventRejected(t *testing.T) {
	f := newFixture()
	hostID, playerID := uuid.New(), uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 2)
	other := seedEvent(f, hostID, entity.EventTypeDoubles, 2)
	req := seedRequest(f, other.ID, playerID, entity.RequestStatusPending)

	_, appErr := f.svc.AcceptJoinRequest(context.Background(), ev.ID, req.ID, hostID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
}

func TestAcceptJoinRequestNonPendingRejected(t *testing.T) {
	f := newFixture()
	hostID, playerID := uuid.New(), uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 2)
	req := seedRequest(f, ev.ID, playerID, entity.RequestStatusDeclined)

	_, appErr := f.svc.AcceptJoinRequest(context.Background(), ev.ID, req.ID, hostID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
}

// ===================== Leave =====================

func TestLeaveEventDemotesFullToOpen(t *testing.T) {
	f := newFixture()
	hostID, playerID := uuid.New(), uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeSingles, 1)
	req := seedRequest(f, ev.ID, playerID, entity.RequestStatusPending)

	_, appErr := f.svc.AcceptJoinRequest(context.Background(), ev.ID, req.ID, hostID)
	require.Nil(t, appErr)
	require.Equal(t, entity.EventStatusFull, f.repo.events[ev.ID].Status)

	resp, appErr := f.svc.LeaveEvent(context.Background(), ev.ID, playerID)
	require.Nil(t, appErr)

	assert.Equal(t, "open", resp.Status)
	assert.Equal(t, 0, resp.SpotsFilled)
	assert.Empty(t, resp.Participants)
	assert.Equal(t, entity.RequestStatusLeft, f.repo.requests[req.ID].Status)
	assert.Contains(t, f.queue.deletes, [2]uuid.UUID{ev.ID, playerID})
	assert.Contains(t, f.repo.removed, [2]uuid.UUID{ev.ID, playerID})
}

func TestLeaveEventHostCannotLeave(t *testing.T) {
	f := newFixture()
	hostID := uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 2)

	_, appErr := f.svc.LeaveEvent(context.Background(), ev.ID, hostID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestLeaveEventNonParticipantRejected(t *testing.T) {
	f := newFixture()
	hostID := uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 2)

	_, appErr := f.svc.LeaveEvent(context.Background(), ev.ID, uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
}

// ===================== Cancel =====================

func TestCancelEventFreezesAndFansOut(t *testing.T) {
	f := newFixture()
	hostID := uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeDoubles, 3)

	playerA, playerB := uuid.New(), uuid.New()
	for _, p := range []uuid.UUID{playerA, playerB} {
		req := seedRequest(f, ev.ID, p, entity.RequestStatusPending)
		_, appErr := f.svc.AcceptJoinRequest(context.Background(), ev.ID, req.ID, hostID)
		require.Nil(t, appErr)
	}
	f.notif.sent = nil
	f.queue.deletes = nil

	resp, appErr := f.svc.CancelEvent(context.Background(), ev.ID, hostID)
	require.Nil(t, appErr)
	assert.Equal(t, "cancelled", resp.Status)

	// Every participant notified, mirror deletes for host + participants.
	assert.Len(t, f.notif.sent, 2)
	assert.ElementsMatch(t, [][2]uuid.UUID{
		{ev.ID, hostID},
		{ev.ID, playerA},
		{ev.ID, playerB},
	}, f.queue.deletes)

	// Cancelled events are frozen for every further mutation.
	lateReq := seedRequest(f, ev.ID, uuid.New(), entity.RequestStatusPending)
	_, appErr = f.svc.AcceptJoinRequest(context.Background(), ev.ID, lateReq.ID, hostID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrEventClosed, appErr.Code)

	_, appErr = f.svc.LeaveEvent(context.Background(), ev.ID, playerA)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrEventClosed, appErr.Code)

	_, appErr = f.svc.SubmitJoinRequest(context.Background(), ev.ID, uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrEventClosed, appErr.Code)

	_, appErr = f.svc.CancelEvent(context.Background(), ev.ID, hostID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrEventClosed, appErr.Code)
}

func TestCancelEventNonHostForbidden(t *testing.T) {
	f := newFixture()
	hostID := uuid.New()
	ev := seedEvent(f, hostID, entity.EventTypeSocial, 5)

	_, appErr := f.svc.CancelEvent(context.Background(), ev.ID, uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	assert.Equal(t, entity.EventStatusOpen, f.repo.events[ev.ID].Status)
}

func TestMutateOnMissingEventIsNotFound(t *testing.T) {
	f := newFixture()

	_, appErr := f.svc.CancelEvent(context.Background(), uuid.New(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
