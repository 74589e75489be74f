package router

import (
	"tennismate-api/core/middleware"
	"tennismate-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{controller: controller}
}

func (r *CalendarRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	calendar := g.Group("/calendar", mw.AuthMiddleware())
	calendar.GET("", r.controller.GetMyCalendar)
}
