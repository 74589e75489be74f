package router

import (
	"tennismate-api/core/middleware"
	"tennismate-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter registers event lifecycle routes.
type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{EventController: eventController}
}

func (r *EventRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	events := g.Group("/events", mw.AuthMiddleware())

	events.POST("", r.EventController.CreateEvent)
	events.GET("", r.EventController.ListOpenEvents)
	events.GET("/mine", r.EventController.GetMyEvents)
	events.GET("/:id", r.EventController.GetEvent)

	events.POST("/:id/requests", r.EventController.SubmitJoinRequest)
	events.GET("/:id/requests", r.EventController.ListJoinRequests)
	events.POST("/:id/requests/:requestId/accept", r.EventController.AcceptJoinRequest)
	events.POST("/:id/requests/:requestId/decline", r.EventController.DeclineJoinRequest)

	events.POST("/:id/leave", r.EventController.LeaveEvent)
	events.POST("/:id/cancel", r.EventController.CancelEvent)
}
