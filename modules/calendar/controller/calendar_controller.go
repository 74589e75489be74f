package controller

import (
	"tennismate-api/core/constants"
	"tennismate-api/core/controller"
	"tennismate-api/core/errors"
	"tennismate-api/core/utils"
	"tennismate-api/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	controller.BaseController
	service *service.CalendarService
}

func NewCalendarController(svc *service.CalendarService) *CalendarController {
	return &CalendarController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}
	return claims.UserID, nil
}

// GetMyCalendar handles GET /calendar
// @Summary Get my calendar
// @Description Returns the caller's mirror entries ordered by start time
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {array} entity.CalendarEntry
// @Failure 401 {object} errors.AppError
// @Router /private/calendar [get]
func (c *CalendarController) GetMyCalendar(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	entries, appErr := c.service.GetMyCalendar(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, entries, "Success")
}
