package controller

import (
	"tennismate-api/core/constants"
	"tennismate-api/core/controller"
	"tennismate-api/core/errors"
	"tennismate-api/core/utils"
	"tennismate-api/modules/auth/dto"
	"tennismate-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	service service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// Register handles POST /auth/register
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 200 {object} dto.AuthResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /public/auth/register [post]
func (c *AuthController) Register(ctx echo.Context) error {
	var requestData dto.RegisterRequest
	if err := ctx.Bind(&requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if requestData.Email == "" || requestData.Password == "" || requestData.Name == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Email, name and password are required")
	}

	result, appErr := c.service.Register(ctx.Request().Context(), &requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Registered successfully")
}

// Login handles POST /auth/login
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /public/auth/login [post]
func (c *AuthController) Login(ctx echo.Context) error {
	var requestData dto.LoginRequest
	if err := ctx.Bind(&requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	result, appErr := c.service.Login(ctx.Request().Context(), &requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Logged in successfully")
}

// Logout handles POST /auth/logout
// @Summary Log out and revoke the current token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/auth/logout [post]
func (c *AuthController) Logout(ctx echo.Context) error {
	token, ok := ctx.Get(constants.ContextTokenData + ":raw").(string)
	if !ok || token == "" {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.service.Logout(ctx.Request().Context(), token); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Logged out successfully")
}

// Me handles GET /auth/me
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/auth/me [get]
func (c *AuthController) Me(ctx echo.Context) error {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.service.Me(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GoogleAuthURL handles GET /auth/google
// @Summary Get the Google sign-in URL
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.GoogleAuthURLResponse
// @Router /public/auth/google [get]
func (c *AuthController) GoogleAuthURL(ctx echo.Context) error {
	url, appErr := c.service.GetGoogleAuthURL(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.GoogleAuthURLResponse{URL: url}, "Success")
}

// GoogleCallback handles GET /auth/google/callback
// @Summary Complete the Google sign-in flow
// @Tags Auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /public/auth/google/callback [get]
func (c *AuthController) GoogleCallback(ctx echo.Context) error {
	code := ctx.QueryParam("code")
	state := ctx.QueryParam("state")
	if code == "" || state == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing code or state parameter")
	}

	result, appErr := c.service.HandleGoogleCallback(ctx.Request().Context(), code, state)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Logged in successfully")
}
