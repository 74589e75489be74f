package controller

import (
	"tennismate-api/core/constants"
	"tennismate-api/core/controller"
	"tennismate-api/core/errors"
	"tennismate-api/core/params"
	"tennismate-api/core/utils"
	"tennismate-api/modules/coach/dto"
	"tennismate-api/modules/coach/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CoachController struct {
	controller.BaseController
	service service.CoachServiceInterface
}

func NewCoachController(svc service.CoachServiceInterface) *CoachController {
	return &CoachController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *CoachController) userID(ctx echo.Context) (uuid.UUID, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// ListCoaches handles GET /coaches
// @Summary List active coaches
// @Tags Coaches
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Name filter"
// @Success 200 {object} dto.PaginatedCoachResponse
// @Router /private/coaches [get]
func (c *CoachController) ListCoaches(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)

	result, appErr := c.service.ListCoaches(ctx.Request().Context(), *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetCoach handles GET /coaches/:id
// @Summary Get a coach by ID
// @Tags Coaches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Coach ID"
// @Success 200 {object} dto.CoachResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/coaches/{id} [get]
func (c *CoachController) GetCoach(ctx echo.Context) error {
	coachID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid coach ID")
	}

	result, appErr := c.service.GetCoach(ctx.Request().Context(), coachID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// RequestBooking handles POST /coaches/:id/bookings
// @Summary Request a lesson with a coach
// @Tags Coaches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Coach ID"
// @Param request body dto.CreateBookingRequest true "Booking data"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/coaches/{id}/bookings [post]
func (c *CoachController) RequestBooking(ctx echo.Context) error {
	playerID, ok := c.userID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	coachID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid coach ID")
	}

	var requestData dto.CreateBookingRequest
	if err := ctx.Bind(&requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	result, appErr := c.service.RequestBooking(ctx.Request().Context(), playerID, coachID, &requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking requested")
}

// GetMyBookings handles GET /coaches/bookings/mine
// @Summary List my lesson bookings
// @Tags Coaches
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.BookingResponse
// @Router /private/coaches/bookings/mine [get]
func (c *CoachController) GetMyBookings(ctx echo.Context) error {
	playerID, ok := c.userID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.service.GetMyBookings(ctx.Request().Context(), playerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
