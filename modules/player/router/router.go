package router

import (
	"tennismate-api/core/middleware"
	"tennismate-api/modules/player/controller"

	"github.com/labstack/echo/v4"
)

type PlayerRouter struct {
	controller *controller.PlayerController
}

func NewPlayerRouter(controller *controller.PlayerController) *PlayerRouter {
	return &PlayerRouter{controller: controller}
}

func (r *PlayerRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	players := g.Group("/players", mw.AuthMiddleware())
	players.PUT("/me", r.controller.UpsertMyProfile)
	players.GET("/me", r.controller.GetMyProfile)
	players.POST("/me/avatar", r.controller.UploadAvatar)
	players.GET("/nearby", r.controller.SearchNearby)
	players.GET("/:id", r.controller.GetProfile)
}
