package controllers

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/middleware"
	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/policy"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

var validate = validator.New()

// decodeAndValidate binds the JSON body into dst and runs validation.
// On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err,
		)
		return false
	}
	return true
}

// getRequester rebuilds the policy principal from the auth middleware's
// context values. A false return means the middleware never ran.
func getRequester(w http.ResponseWriter, r *http.Request) (policy.Requester, bool) {
	idStr, okID := r.Context().Value(middleware.ContextKeyUserID).(string)
	role, okRole := r.Context().Value(middleware.ContextKeyUserRole).(models.Role)
	if !okID || !okRole {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing authentication", nil,
		)
		return policy.Requester{}, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Malformed subject", nil, err,
		)
		return policy.Requester{}, false
	}
	return policy.Requester{ID: id, Role: role}, true
}

// pathID extracts and parses the {id} route variable.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid id", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

// clientIP strips the port; X-Forwarded-For wins when a proxy set it.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// searchRequestFromQuery binds the listing search parameters. Malformed
// numbers are reported, not ignored.
func searchRequestFromQuery(w http.ResponseWriter, r *http.Request) (dtos.PropertySearchRequest, bool) {
	q := r.URL.Query()
	req := dtos.PropertySearchRequest{City: q.Get("city")}

	if v := q.Get("purpose"); v != "" {
		req.Purpose = &v
	}
	if v := q.Get("status"); v != "" {
		req.Status = &v
	}

	bad := func(name string, err error) (dtos.PropertySearchRequest, bool) {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid query parameter: "+name, nil, err,
		)
		return dtos.PropertySearchRequest{}, false
	}

	if v := q.Get("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bad("min_price", err)
		}
		req.MinPrice = &f
	}
	if v := q.Get("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bad("max_price", err)
		}
		req.MaxPrice = &f
	}
	if v := q.Get("min_bedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return bad("min_bedrooms", err)
		}
		req.MinBedrooms = n
	}
	if v := q.Get("min_garage_spots"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return bad("min_garage_spots", err)
		}
		req.MinGarageSpots = n
	}
	if v := q.Get("lat"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bad("lat", err)
		}
		req.Lat = &f
	}
	if v := q.Get("lng"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bad("lng", err)
		}
		req.Lng = &f
	}
	if v := q.Get("radius_miles"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bad("radius_miles", err)
		}
		req.RadiusMiles = &f
	}

	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err,
		)
		return dtos.PropertySearchRequest{}, false
	}
	return req, true
}

// optionalStatusParam returns the ?status= filter if present.
func optionalStatusParam(r *http.Request) *string {
	if v := r.URL.Query().Get("status"); v != "" {
		return &v
	}
	return nil
}
