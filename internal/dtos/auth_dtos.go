package dtos

// ----------------------
// Login
// ----------------------

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	AccessToken            string `json:"access_token"`
	RefreshToken           string `json:"refresh_token"`
	PasswordChangeRequired bool   `json:"password_change_required"`
}

// ----------------------
// Refresh Token
// ----------------------

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required,len=64"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ----------------------
// Logout
// ----------------------

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required,len=64"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// ----------------------
// Password change
// ----------------------

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangePasswordResponse hands back a fresh token pair: the old refresh
// tokens are revoked and the old access token still carries the
// password-change-required flag.
type ChangePasswordResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
