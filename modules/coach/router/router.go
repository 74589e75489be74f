package router

import (
	"tennismate-api/core/middleware"
	"tennismate-api/modules/coach/controller"

	"github.com/labstack/echo/v4"
)

type CoachRouter struct {
	controller *controller.CoachController
}

func NewCoachRouter(controller *controller.CoachController) *CoachRouter {
	return &CoachRouter{controller: controller}
}

func (r *CoachRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	coaches := g.Group("/coaches", mw.AuthMiddleware())
	coaches.GET("", r.controller.ListCoaches)
	coaches.GET("/bookings/mine", r.controller.GetMyBookings)
	coaches.GET("/:id", r.controller.GetCoach)
	coaches.POST("/:id/bookings", r.controller.RequestBooking)
}
