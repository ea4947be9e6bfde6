package services

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vistaimoveis/brokerage-service/internal/config"
	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/middleware"
	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/repositories"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

const refreshTokenLength = 64

type AuthService interface {
	Login(ctx context.Context, req dtos.LoginRequest, ip string) (*dtos.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken, ip string) (*dtos.RefreshTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req dtos.ChangePasswordRequest, ip string) (*dtos.ChangePasswordResponse, error)

	// CleanupExpiredTokens is invoked by the scheduler.
	CleanupExpiredTokens(ctx context.Context)
}

type authService struct {
	cfg         *config.Config
	userRepo    repositories.UserRepository
	refreshRepo repositories.RefreshTokenRepository
}

func NewAuthService(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	refreshRepo repositories.RefreshTokenRepository,
) AuthService {
	return &authService{
		cfg:         cfg,
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
	}
}

// ------------------------------------------------------------------
// Public API
// ------------------------------------------------------------------

func (s *authService) Login(ctx context.Context, req dtos.LoginRequest, ip string) (*dtos.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.InternalError("Failed to look up user", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		// One message for both cases; don't leak which emails exist.
		return nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeInvalidCredentials,
			Message:    "Invalid email or password",
		}
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, utils.InternalError("Failed to sign access token", err)
	}
	refreshToken, err := s.issueRefreshToken(ctx, user.ID, ip)
	if err != nil {
		return nil, err
	}

	return &dtos.LoginResponse{
		AccessToken:            accessToken,
		RefreshToken:           refreshToken,
		PasswordChangeRequired: user.IsDefaultPassword,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken, ip string) (*dtos.RefreshTokenResponse, error) {
	stored, err := s.refreshRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, utils.InternalError("Failed to look up refresh token", err)
	}
	if stored == nil || stored.Revoked || stored.ExpiresAt.Before(time.Now()) {
		return nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Invalid or expired refresh token",
		}
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, utils.InternalError("Failed to look up user", err)
	}
	if user == nil {
		// Account deleted since the token was minted.
		_ = s.refreshRepo.Revoke(ctx, refreshToken)
		return nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Invalid or expired refresh token",
		}
	}

	// Rotate: the presented token is single-use.
	if err := s.refreshRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, utils.InternalError("Failed to rotate refresh token", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, utils.InternalError("Failed to sign access token", err)
	}
	newRefresh, err := s.issueRefreshToken(ctx, user.ID, ip)
	if err != nil {
		return nil, err
	}

	return &dtos.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshRepo.Revoke(ctx, refreshToken); err != nil {
		return utils.InternalError("Failed to revoke refresh token", err)
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req dtos.ChangePasswordRequest, ip string) (*dtos.ChangePasswordResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, utils.NotFoundError("User not found")
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeInvalidCredentials,
			Message:    "Current password is incorrect",
		}
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return nil, utils.InternalError("Failed to hash password", err)
	}

	err = s.userRepo.UpdateWithRetry(ctx, userID, func(u *models.User) error {
		u.PasswordHash = hash
		u.IsDefaultPassword = false
		return nil
	})
	if err != nil {
		return nil, utils.InternalError("Failed to update password", err)
	}

	// Old sessions die with the old password.
	if err := s.refreshRepo.RevokeAllForUser(ctx, userID); err != nil {
		return nil, utils.InternalError("Failed to revoke sessions", err)
	}

	user.PasswordHash = hash
	user.IsDefaultPassword = false
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, utils.InternalError("Failed to sign access token", err)
	}
	refreshToken, err := s.issueRefreshToken(ctx, userID, ip)
	if err != nil {
		return nil, err
	}

	return &dtos.ChangePasswordResponse{
		Message:      "Password updated",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) CleanupExpiredTokens(ctx context.Context) {
	n, err := s.refreshRepo.DeleteExpired(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Refresh token cleanup failed")
		return
	}
	if n > 0 {
		utils.Logger.Infof("Cleaned up %d expired/revoked refresh tokens", n)
	}
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  middleware.TokenIssuer,
		"sub":  user.ID.String(),
		"role": user.Role.String(),
		"pwd":  user.IsDefaultPassword,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.AccessTokenExpiry).Unix(),
		"jti":  uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.cfg.RSAPrivateKey)
}

func (s *authService) issueRefreshToken(ctx context.Context, userID uuid.UUID, ip string) (string, error) {
	rt := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     utils.RandomString(refreshTokenLength),
		IPAddress: ip,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenExpiry),
	}
	if err := s.refreshRepo.Create(ctx, rt); err != nil {
		return "", utils.InternalError("Failed to store refresh token", err)
	}
	return rt.Token, nil
}
