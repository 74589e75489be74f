package middleware

import (
	"tennismate-api/core/cache"
	"tennismate-api/core/constants"
	"tennismate-api/core/controller"
	"tennismate-api/core/errors"
	"tennismate-api/core/logger"
	"tennismate-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the Bearer token, rejects blacklisted tokens
// and stores the parsed claims on the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, err := utils.ExtractBearerToken(ctx.Request().Header.Get("Authorization"))
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Missing or malformed authorization header")
			}

			blacklisted, err := m.cache.IsTokenBlacklisted(ctx.Request().Context(), token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", err)
				return controller.NewErrorResponse(500, errors.ErrInternalServer, "Failed to verify token")
			}
			if blacklisted {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Token has been revoked")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Invalid or expired token")
			}

			ctx.Set(constants.ContextTokenData, claims)
			ctx.Set(constants.ContextTokenData+":raw", token)
			return next(ctx)
		}
	}
}
