package player

import (
	"tennismate-api/core/database"
	"tennismate-api/core/middleware"
	"tennismate-api/core/storage"
	"tennismate-api/modules/player/controller"
	"tennismate-api/modules/player/repository"
	"tennismate-api/modules/player/router"
	"tennismate-api/modules/player/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, uploader *storage.Uploader) service.PlayerServiceInterface {
	repo := repository.NewPlayerRepository(db)
	svc := service.NewPlayerService(repo, uploader)
	ctrl := controller.NewPlayerController(svc)

	router.NewPlayerRouter(ctrl).Register(g, mw)

	return svc
}
