package router

import (
	"tennismate-api/core/middleware"
	"tennismate-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Register(public *echo.Group, private *echo.Group, mw *middleware.Middleware) {
	auth := public.Group("/auth")
	auth.POST("/register", r.controller.Register)
	auth.POST("/login", r.controller.Login)
	auth.GET("/google", r.controller.GoogleAuthURL)
	auth.GET("/google/callback", r.controller.GoogleCallback)

	protected := private.Group("/auth", mw.AuthMiddleware())
	protected.POST("/logout", r.controller.Logout)
	protected.GET("/me", r.controller.Me)
}
