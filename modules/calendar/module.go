package calendar

import (
	"tennismate-api/core/database"
	"tennismate-api/core/middleware"
	"tennismate-api/modules/calendar/controller"
	"tennismate-api/modules/calendar/repository"
	"tennismate-api/modules/calendar/router"
	"tennismate-api/modules/calendar/service"
	eventRepository "tennismate-api/modules/event/repository"

	"github.com/labstack/echo/v4"
)

// Init wires the calendar module. The returned service also carries the
// queue task handlers registered by the worker.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware) *service.CalendarService {
	repo := repository.NewCalendarRepository(db)
	eventRepo := eventRepository.NewEventRepository(db)
	svc := service.NewCalendarService(repo, eventRepo)
	ctrl := controller.NewCalendarController(svc)

	router.NewCalendarRouter(ctrl).Register(g, mw)

	return svc
}
