package controller

import (
	"strconv"

	"tennismate-api/core/constants"
	"tennismate-api/core/controller"
	"tennismate-api/core/errors"
	"tennismate-api/core/utils"
	"tennismate-api/modules/player/dto"
	"tennismate-api/modules/player/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PlayerController struct {
	controller.BaseController
	service service.PlayerServiceInterface
}

func NewPlayerController(svc service.PlayerServiceInterface) *PlayerController {
	return &PlayerController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *PlayerController) userID(ctx echo.Context) (uuid.UUID, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// UpsertMyProfile handles PUT /players/me
// @Summary Create or update my player profile
// @Tags Players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpsertProfileRequest true "Profile data"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/players/me [put]
func (c *PlayerController) UpsertMyProfile(ctx echo.Context) error {
	userID, ok := c.userID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var requestData dto.UpsertProfileRequest
	if err := ctx.Bind(&requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if requestData.Name == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Name is required")
	}

	result, appErr := c.service.UpsertMyProfile(ctx.Request().Context(), userID, &requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Profile saved")
}

// GetMyProfile handles GET /players/me
// @Summary Get my player profile
// @Tags Players
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/players/me [get]
func (c *PlayerController) GetMyProfile(ctx echo.Context) error {
	userID, ok := c.userID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.service.GetProfile(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetProfile handles GET /players/:id
// @Summary Get a player profile by user ID
// @Tags Players
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/players/{id} [get]
func (c *PlayerController) GetProfile(ctx echo.Context) error {
	targetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	result, appErr := c.service.GetProfile(ctx.Request().Context(), targetID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UploadAvatar handles POST /players/me/avatar
// @Summary Upload my avatar photo
// @Tags Players
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.AvatarResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/players/me/avatar [post]
func (c *PlayerController) UploadAvatar(ctx echo.Context) error {
	userID, ok := c.userID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Avatar file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Failed to read avatar file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, appErr := c.service.UploadAvatar(ctx.Request().Context(), userID, contentType, file)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Avatar uploaded")
}

// SearchNearby handles GET /players/nearby
// @Summary Find nearby players scored by match quality
// @Tags Players
// @Security BearerAuth
// @Produce json
// @Param radius_km query number false "Search radius in km (default 25)"
// @Param max_skill_gap query number false "Maximum skill level difference"
// @Success 200 {array} dto.MatchResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/players/nearby [get]
func (c *PlayerController) SearchNearby(ctx echo.Context) error {
	userID, ok := c.userID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var radiusKm float64
	if raw := ctx.QueryParam("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return c.BadRequest(errors.ErrInvalidInput, "radius_km must be a positive number")
		}
		radiusKm = parsed
	}

	var maxSkillGap *float64
	if raw := ctx.QueryParam("max_skill_gap"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return c.BadRequest(errors.ErrInvalidInput, "max_skill_gap must be a non-negative number")
		}
		maxSkillGap = &parsed
	}

	result, appErr := c.service.SearchNearby(ctx.Request().Context(), userID, radiusKm, maxSkillGap)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
