package event

import (
	"tennismate-api/core/database"
	"tennismate-api/core/middleware"
	"tennismate-api/core/queue"
	"tennismate-api/modules/event/controller"
	"tennismate-api/modules/event/repository"
	"tennismate-api/modules/event/router"
	"tennismate-api/modules/event/service"
	notifService "tennismate-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init wires the event module and registers its routes.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, notif *notifService.NotificationService, q queue.Enqueuer) service.EventServiceInterface {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, notif, q)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Register(g, mw)

	return svc
}
