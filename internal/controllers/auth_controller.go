package controllers

import (
	"net/http"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/services"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

type AuthController struct {
	svc services.AuthService
}

func NewAuthController(svc services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// -----------------------------------------------------------------------------
// POST /api/v1/auth/login
// -----------------------------------------------------------------------------
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.Login(r.Context(), req, clientIP(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /api/v1/auth/refresh
// -----------------------------------------------------------------------------
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dtos.RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.Refresh(r.Context(), req.RefreshToken, clientIP(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /api/v1/auth/logout
// -----------------------------------------------------------------------------
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	var req dtos.LogoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.svc.Logout(r.Context(), req.RefreshToken); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.LogoutResponse{Message: "Logged out"})
}

// -----------------------------------------------------------------------------
// POST /api/v1/auth/password
// -----------------------------------------------------------------------------
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}

	var req dtos.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.ChangePassword(r.Context(), requester.ID, req, clientIP(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
