package notification

import (
	"tennismate-api/core/database"
	"tennismate-api/core/middleware"
	"tennismate-api/core/queue"
	"tennismate-api/modules/notification/controller"
	"tennismate-api/modules/notification/repository"
	"tennismate-api/modules/notification/router"
	"tennismate-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, q queue.Enqueuer) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, q)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(g, mw)

	return svc
}
