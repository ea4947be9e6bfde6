package controllers

import (
	"net/http"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/services"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

type LeadController struct {
	svc services.LeadService
}

func NewLeadController(svc services.LeadService) *LeadController {
	return &LeadController{svc: svc}
}

// -----------------------------------------------------------------------------
// GET /api/v1/dashboard/leads
// -----------------------------------------------------------------------------
func (c *LeadController) List(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}

	resp, err := c.svc.List(r.Context(), requester, optionalStatusParam(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// GET /api/v1/dashboard/leads/{id}
// -----------------------------------------------------------------------------
func (c *LeadController) GetByID(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	l, err := c.svc.GetByID(r.Context(), requester, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, l)
}

// -----------------------------------------------------------------------------
// PUT /api/v1/dashboard/leads/{id}
// -----------------------------------------------------------------------------
func (c *LeadController) Update(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateLeadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := c.svc.Update(r.Context(), requester, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, l)
}

// -----------------------------------------------------------------------------
// POST /api/v1/dashboard/leads/{id}/assign
// -----------------------------------------------------------------------------
func (c *LeadController) Assign(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.AssignRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := c.svc.Assign(r.Context(), requester, id, req.AssignedUserID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, l)
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/dashboard/leads/{id}
// -----------------------------------------------------------------------------
func (c *LeadController) Delete(w http.ResponseWriter, r *http.Request) {
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
