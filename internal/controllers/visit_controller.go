package controllers

import (
	"net/http"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/services"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

type VisitController struct {
	svc services.VisitService
}

func NewVisitController(svc services.VisitService) *VisitController {
	return &VisitController{svc: svc}
}

// -----------------------------------------------------------------------------
// GET /api/v1/dashboard/visits
// -----------------------------------------------------------------------------
func (c *VisitController) List(w http.ResponseWriter, r *http.Request) {
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
// GET /api/v1/dashboard/visits/{id}
// -----------------------------------------------------------------------------
func (c *VisitController) GetByID(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	v, err := c.svc.GetByID(r.Context(), requester, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, v)
}

// -----------------------------------------------------------------------------
// PUT /api/v1/dashboard/visits/{id}
// -----------------------------------------------------------------------------
func (c *VisitController) Update(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateVisitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, err := c.svc.Update(r.Context(), requester, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, v)
}

// -----------------------------------------------------------------------------
// POST /api/v1/dashboard/visits/{id}/assign
// -----------------------------------------------------------------------------
func (c *VisitController) Assign(w http.ResponseWriter, r *http.Request) {
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

	v, err := c.svc.Assign(r.Context(), requester, id, req.AssignedUserID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, v)
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/dashboard/visits/{id}
// -----------------------------------------------------------------------------
func (c *VisitController) Delete(w http.ResponseWriter, r *http.Request) {
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
