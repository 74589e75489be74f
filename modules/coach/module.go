package coach

import (
	"tennismate-api/core/database"
	"tennismate-api/core/middleware"
	"tennismate-api/modules/coach/controller"
	"tennismate-api/modules/coach/repository"
	"tennismate-api/modules/coach/router"
	"tennismate-api/modules/coach/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, notif service.Notifier) service.CoachServiceInterface {
	repo := repository.NewCoachRepository(db)
	svc := service.NewCoachService(repo, notif)
	ctrl := controller.NewCoachController(svc)

	router.NewCoachRouter(ctrl).Register(g, mw)

	return svc
}
