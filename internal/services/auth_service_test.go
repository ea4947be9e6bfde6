package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vistaimoveis/brokerage-service/internal/config"
	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/middleware"
	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

type authFixture struct {
	svc      AuthService
	cfg      *config.Config
	userRepo *fakeUserRepo
	refresh  *fakeRefreshRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &authFixture{
		cfg: &config.Config{
			RSAPrivateKey:      key,
			RSAPublicKey:       &key.PublicKey,
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		userRepo: newFakeUserRepo(),
		refresh:  newFakeRefreshRepo(),
	}
	f.svc = NewAuthService(f.cfg, f.userRepo, f.refresh)
	return f
}

func (f *authFixture) seedUser(t *testing.T, password string, defaultPwd bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	u := &models.User{
		ID:                uuid.New(),
		Name:              "Corretor",
		Email:             "corretor@example.com",
		Role:              models.RoleBroker,
		PasswordHash:      hash,
		IsDefaultPassword: defaultPwd,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), u))
	return u
}

func TestLogin_IssuesValidTokenPair(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "super-secret-1", true)

	resp, err := f.svc.Login(context.Background(), dtos.LoginRequest{
		Email:    u.Email,
		Password: "super-secret-1",
	}, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, resp.PasswordChangeRequired)
	require.Len(t, resp.RefreshToken, 64)

	tok, err := middleware.ValidateToken(resp.AccessToken, f.cfg.RSAPublicKey)
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	require.Equal(t, u.ID.String(), claims["sub"])
	require.Equal(t, "BROKER", claims["role"])
	require.Equal(t, true, claims["pwd"])
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "super-secret-1", false)

	_, err := f.svc.Login(context.Background(), dtos.LoginRequest{
		Email:    u.Email,
		Password: "wrong-password",
	}, "10.0.0.1")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeInvalidCredentials, appErr.Code)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), dtos.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-123",
	}, "10.0.0.1")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeInvalidCredentials, appErr.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "super-secret-1", false)

	login, err := f.svc.Login(context.Background(), dtos.LoginRequest{
		Email:    u.Email,
		Password: "super-secret-1",
	}, "10.0.0.1")
	require.NoError(t, err)

	refreshed, err := f.svc.Refresh(context.Background(), login.RefreshToken, "10.0.0.1")
	require.NoError(t, err)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The presented token is single-use.
	_, err = f.svc.Refresh(context.Background(), login.RefreshToken, "10.0.0.1")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeUnauthorized, appErr.Code)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "super-secret-1", false)

	login, err := f.svc.Login(context.Background(), dtos.LoginRequest{
		Email:    u.Email,
		Password: "super-secret-1",
	}, "10.0.0.1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), login.RefreshToken))

	_, err = f.svc.Refresh(context.Background(), login.RefreshToken, "10.0.0.1")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeUnauthorized, appErr.Code)
}

func TestChangePassword_ClearsFlagAndRevokesOldSessions(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "temp-password-1", true)

	login, err := f.svc.Login(context.Background(), dtos.LoginRequest{
		Email:    u.Email,
		Password: "temp-password-1",
	}, "10.0.0.1")
	require.NoError(t, err)

	resp, err := f.svc.ChangePassword(context.Background(), u.ID, dtos.ChangePasswordRequest{
		CurrentPassword: "temp-password-1",
		NewPassword:     "chosen-password-1",
	}, "10.0.0.1")
	require.NoError(t, err)

	tok, err := middleware.ValidateToken(resp.AccessToken, f.cfg.RSAPublicKey)
	require.NoError(t, err)
	require.Equal(t, false, tok.Claims.(jwt.MapClaims)["pwd"])

	stored, err := f.userRepo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.False(t, stored.IsDefaultPassword)
	require.True(t, utils.CheckPasswordHash("chosen-password-1", stored.PasswordHash))

	// The pre-change refresh token died with the old password.
	_, err = f.svc.Refresh(context.Background(), login.RefreshToken, "10.0.0.1")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeUnauthorized, appErr.Code)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "temp-password-1", true)

	_, err := f.svc.ChangePassword(context.Background(), u.ID, dtos.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "chosen-password-1",
	}, "10.0.0.1")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeInvalidCredentials, appErr.Code)
}
