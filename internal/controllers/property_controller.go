package controllers

import (
	"net/http"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/services"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

// PropertyController serves the dashboard listing CRUD. Row-level access
// is decided in the service layer; the router only guarantees a valid
// session.
type PropertyController struct {
	svc services.PropertyService
}

func NewPropertyController(svc services.PropertyService) *PropertyController {
	return &PropertyController{svc: svc}
}

// -----------------------------------------------------------------------------
// GET /api/v1/dashboard/properties
// -----------------------------------------------------------------------------
func (c *PropertyController) List(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}
	req, ok := searchRequestFromQuery(w, r)
	if !ok {
		return
	}

	resp, err := c.svc.DashboardList(r.Context(), requester, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// GET /api/v1/dashboard/properties/{id}
// -----------------------------------------------------------------------------
func (c *PropertyController) GetByID(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := c.svc.DashboardGetByID(r.Context(), requester, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// -----------------------------------------------------------------------------
// POST /api/v1/dashboard/properties
// -----------------------------------------------------------------------------
func (c *PropertyController) Create(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := c.svc.Create(r.Context(), requester, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, p)
}

// -----------------------------------------------------------------------------
// PUT /api/v1/dashboard/properties/{id}
// -----------------------------------------------------------------------------
func (c *PropertyController) Update(w http.ResponseWriter, r *http.Request) {
	requester, ok := getRequester(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdatePropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := c.svc.Update(r.Context(), requester, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/dashboard/properties/{id}
// -----------------------------------------------------------------------------
func (c *PropertyController) Delete(w http.ResponseWriter, r *http.Request) {
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
