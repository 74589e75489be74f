package auth

import (
	"tennismate-api/core/cache"
	"tennismate-api/core/database"
	"tennismate-api/core/middleware"
	"tennismate-api/modules/auth/controller"
	"tennismate-api/modules/auth/repository"
	"tennismate-api/modules/auth/router"
	"tennismate-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(public *echo.Group, private *echo.Group, db database.Database, c cache.Cache, mw *middleware.Middleware) service.AuthServiceInterface {
	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo, c)
	ctrl := controller.NewAuthController(svc)

	router.NewAuthRouter(ctrl).Register(public, private, mw)

	return svc
}
