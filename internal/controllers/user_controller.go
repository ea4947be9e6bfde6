package controllers

import (
	"net/http"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/services"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

// UserController is mounted admin-only; the self-deletion rule is still
// re-checked in the service.
type UserController struct {
	svc services.UserService
}

func NewUserController(svc services.UserService) *UserController {
	return &UserController{svc: svc}
}

// -----------------------------------------------------------------------------
// POST /api/v1/dashboard/users
// -----------------------------------------------------------------------------
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// -----------------------------------------------------------------------------
// GET /api/v1/dashboard/users
// -----------------------------------------------------------------------------
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.svc.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

// -----------------------------------------------------------------------------
// GET /api/v1/dashboard/users/{id}
// -----------------------------------------------------------------------------
func (c *UserController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := c.svc.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// -----------------------------------------------------------------------------
// PUT /api/v1/dashboard/users/{id}
// -----------------------------------------------------------------------------
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/dashboard/users/{id}
// -----------------------------------------------------------------------------
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.svc.Delete(r.Context(), requester, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -----------------------------------------------------------------------------
// POST /api/v1/dashboard/users/{id}/reset-password
// -----------------------------------------------------------------------------
func (c *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := c.svc.ResetPassword(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
