package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tennismate-api/core/cache"
	"tennismate-api/core/config"
	"tennismate-api/core/errors"
	"tennismate-api/core/logger"
	"tennismate-api/core/utils"
	"tennismate-api/modules/auth/dto"
	"tennismate-api/modules/auth/entity"
	"tennismate-api/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError)
	Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError)
	HandleGoogleCallback(ctx context.Context, code, state string) (*dto.AuthResponse, *errors.AppError)
}

type AuthService struct {
	repo  repository.UserRepositoryInterface
	cache cache.Cache
}

func NewAuthService(repo repository.UserRepositoryInterface, c cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: c}
}

func (service *AuthService) Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	existing, err := service.repo.GetUserByEmail(ctx, requestData.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "User with this email already exists", nil)
	}

	hashedPassword, err := utils.HashPassword(requestData.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	user := &entity.User{
		Email:    requestData.Email,
		Name:     requestData.Name,
		Password: hashedPassword,
		IsActive: true,
	}

	created, err := service.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create user", err)
	}

	return service.issueTokens(created)
}

func (service *AuthService) Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	user, err := service.repo.GetUserByEmail(ctx, requestData.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}
	if !user.IsActive {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Account is deactivated", nil)
	}
	if !utils.ComparePassword(user.Password, requestData.Password) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}

	if err := service.repo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Warn("AuthService:Login:TouchLastLogin", "error", err, "user_id", user.ID)
	}

	return service.issueTokens(user)
}

func (service *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "Invalid token", err)
	}

	// Blacklist only until the token would expire anyway.
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := service.cache.BlacklistToken(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:BlacklistToken", err)
		return errors.NewAppError(errors.ErrInternalServer, "Failed to log out", err)
	}
	return nil
}

func (service *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}
	return dto.ToUserResponse(user), nil
}

// GetGoogleAuthURL builds the Google consent URL with a one-time state
// token stored server-side.
func (service *AuthService) GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError) {
	oauthConfig, appErr := service.googleOAuthConfig()
	if appErr != nil {
		return "", appErr
	}

	state := utils.GenerateRandomString(16)
	if err := service.repo.SaveOAuthState(ctx, state, time.Now().Add(10*time.Minute)); err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Failed to store state token", err)
	}

	return oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (service *AuthService) HandleGoogleCallback(ctx context.Context, code, state string) (*dto.AuthResponse, *errors.AppError) {
	valid, err := service.repo.ConsumeOAuthState(ctx, state)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to validate state token", err)
	}
	if !valid {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid or expired state token", nil)
	}

	oauthConfig, appErr := service.googleOAuthConfig()
	if appErr != nil {
		return nil, appErr
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:Exchange", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Failed to exchange authorization code", err)
	}

	userInfo, err := service.getGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:GetGoogleUserInfo", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to fetch Google user info", err)
	}

	user, err := service.repo.GetUserByEmail(ctx, userInfo.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get user", err)
	}

	if user == nil {
		// First Google sign-in: create the account with a random password.
		hashedPassword, _ := utils.HashPassword(utils.GenerateRandomString(16))
		name := userInfo.Name
		if name == "" {
			name = userInfo.Email
		}
		newUser := &entity.User{
			Email:    userInfo.Email,
			Name:     name,
			Password: hashedPassword,
			GoogleID: &userInfo.ID,
			IsActive: true,
		}
		if userInfo.Picture != "" {
			newUser.AvatarURL = &userInfo.Picture
		}
		user, err = service.repo.CreateUser(ctx, newUser)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create user", err)
		}
	} else if user.GoogleID == nil {
		if err := service.repo.LinkGoogleAccount(ctx, user.ID, userInfo.ID); err != nil {
			logger.Warn("AuthService:HandleGoogleCallback:LinkGoogleAccount", "error", err, "user_id", user.ID)
		}
	}

	if err := service.repo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Warn("AuthService:HandleGoogleCallback:TouchLastLogin", "error", err, "user_id", user.ID)
	}

	return service.issueTokens(user)
}

func (service *AuthService) issueTokens(user *entity.User) (*dto.AuthResponse, *errors.AppError) {
	accessToken, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.Error("AuthService:IssueTokens:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate access token", err)
	}
	return &dto.AuthResponse{
		AccessToken: accessToken,
		User:        *dto.ToUserResponse(user),
	}, nil
}

func (service *AuthService) googleOAuthConfig() (*oauth2.Config, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Config not initialized", nil)
	}
	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" || cfg.Google.RedirectURL == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}
	return &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}, nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (service *AuthService) getGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: %s", string(body))
	}

	var userInfo googleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}
	return &userInfo, nil
}
