package service

import (
	"context"
	"time"

	"tennismate-api/core/constants"
	"tennismate-api/core/errors"
	"tennismate-api/core/logger"
	"tennismate-api/core/params"
	"tennismate-api/core/utils"
	"tennismate-api/modules/coach/dto"
	"tennismate-api/modules/coach/entity"
	"tennismate-api/modules/coach/repository"
	notifDto "tennismate-api/modules/notification/dto"

	"github.com/google/uuid"
)

// Notifier is the slice of the notification module the coach flow uses.
type Notifier interface {
	Create(ctx context.Context, req *notifDto.CreateNotificationRequest) error
}

type CoachServiceInterface interface {
	ListCoaches(ctx context.Context, queryParams params.QueryParams) (*dto.PaginatedCoachResponse, *errors.AppError)
	GetCoach(ctx context.Context, id uuid.UUID) (*dto.CoachResponse, *errors.AppError)
	RequestBooking(ctx context.Context, playerID, coachID uuid.UUID, requestData *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError)
	GetMyBookings(ctx context.Context, playerID uuid.UUID) ([]dto.BookingResponse, *errors.AppError)
}

type CoachService struct {
	repo  repository.CoachRepositoryInterface
	notif Notifier
}

func NewCoachService(repo repository.CoachRepositoryInterface, notif Notifier) *CoachService {
	return &CoachService{repo: repo, notif: notif}
}

func (service *CoachService) ListCoaches(ctx context.Context, queryParams params.QueryParams) (*dto.PaginatedCoachResponse, *errors.AppError) {
	page, err := service.repo.ListCoaches(ctx, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list coaches", err)
	}

	items := make([]dto.CoachResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *dto.ToCoachResponse(&page.Items[i]))
	}
	return &dto.PaginatedCoachResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

func (service *CoachService) GetCoach(ctx context.Context, id uuid.UUID) (*dto.CoachResponse, *errors.AppError) {
	coach, err := service.repo.GetCoachByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get coach", err)
	}
	if coach == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Coach not found", nil)
	}
	return dto.ToCoachResponse(coach), nil
}

func (service *CoachService) RequestBooking(ctx context.Context, playerID, coachID uuid.UUID, requestData *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError) {
	coach, err := service.repo.GetCoachByID(ctx, coachID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get coach", err)
	}
	if coach == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Coach not found", nil)
	}
	if !coach.IsActive {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Coach is not taking bookings", nil)
	}

	startTime, err := time.Parse(time.RFC3339, requestData.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time must be RFC3339", err)
	}
	if startTime.Before(time.Now()) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time must be in the future", nil)
	}
	if requestData.DurationMins <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "duration_mins must be positive", nil)
	}

	booking := &entity.CoachBooking{
		CoachID:       coachID,
		PlayerID:      playerID,
		ReferenceCode: utils.GenerateID(),
		StartTime:     startTime,
		DurationMins:  requestData.DurationMins,
		Note:          requestData.Note,
		Status:        entity.BookingStatusRequested,
	}

	created, err := service.repo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create booking", err)
	}

	// Booking is saved either way; the coach notification is best-effort.
	errNotif := service.notif.Create(ctx, &notifDto.CreateNotificationRequest{
		UserID:  coach.UserID,
		Title:   "New lesson request",
		Message: "A player requested a lesson with you",
		Type:    constants.NotificationTypeCoachBooking,
		Data: map[string]interface{}{
			"booking_id":     created.ID.String(),
			"reference_code": created.ReferenceCode,
			"start_time":     created.StartTime.Format(time.RFC3339),
		},
	})
	if errNotif != nil {
		logger.Error("CoachService:RequestBooking:Notify", errNotif)
	}

	return dto.ToBookingResponse(created), nil
}

func (service *CoachService) GetMyBookings(ctx context.Context, playerID uuid.UUID) ([]dto.BookingResponse, *errors.AppError) {
	bookings, err := service.repo.GetBookingsByPlayerID(ctx, playerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list bookings", err)
	}

	result := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, *dto.ToBookingResponse(&bookings[i]))
	}
	return result, nil
}
