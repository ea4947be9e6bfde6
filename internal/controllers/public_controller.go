package controllers

import (
	"net/http"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/mortgage"
	"github.com/vistaimoveis/brokerage-service/internal/services"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

// PublicController serves the unauthenticated surface: listing search,
// lead capture, visit scheduling, and the mortgage simulator.
type PublicController struct {
	properties services.PropertyService
	leads      services.LeadService
	visits     services.VisitService
}

func NewPublicController(
	properties services.PropertyService,
	leads services.LeadService,
	visits services.VisitService,
) *PublicController {
	return &PublicController{
		properties: properties,
		leads:      leads,
		visits:     visits,
	}
}

// -----------------------------------------------------------------------------
// GET /api/v1/public/properties
// -----------------------------------------------------------------------------
func (c *PublicController) SearchProperties(w http.ResponseWriter, r *http.Request) {
	req, ok := searchRequestFromQuery(w, r)
	if !ok {
		return
	}

	resp, err := c.properties.PublicSearch(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// GET /api/v1/public/properties/{id}
// -----------------------------------------------------------------------------
func (c *PublicController) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := c.properties.PublicGetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// -----------------------------------------------------------------------------
// POST /api/v1/public/leads
// -----------------------------------------------------------------------------
func (c *PublicController) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateLeadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := c.leads.PublicCreate(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, l)
}

// -----------------------------------------------------------------------------
// POST /api/v1/public/visits
// -----------------------------------------------------------------------------
func (c *PublicController) CreateVisit(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateVisitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, err := c.visits.PublicCreate(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, v)
}

// -----------------------------------------------------------------------------
// POST /api/v1/public/mortgage/simulate
// -----------------------------------------------------------------------------
func (c *PublicController) SimulateMortgage(w http.ResponseWriter, r *http.Request) {
	var req dtos.MortgageSimulateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	schedule, err := mortgage.ParseSchedule(req.Schedule)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid schedule", nil, err,
		)
		return
	}

	sim := mortgage.Simulate(req.PropertyPrice, req.DownPayment, req.TermYears, req.AnnualRatePct, schedule)
	utils.RespondWithJSON(w, http.StatusOK, dtos.MortgageSimulateResponse{
		Schedule:     sim.Schedule.String(),
		Financed:     sim.Financed,
		Months:       sim.Months,
		FixedPayment: sim.FixedPayment,
		FirstPayment: sim.FirstPayment,
		LastPayment:  sim.LastPayment,
	})
}
