// Package policy holds the pure role/visibility rules shared by every
// dashboard handler. No I/O happens here: callers fetch rows, ask policy,
// and translate a denial into 401/403 themselves.
package policy

import (
	"errors"

	"github.com/google/uuid"

	"github.com/vistaimoveis/brokerage-service/internal/models"
)

// ErrUnauthenticated is returned by ListScope when a dashboard view is
// requested without a requester.
var ErrUnauthenticated = errors.New("unauthenticated")

// Requester is the authenticated principal extracted from the JWT.
type Requester struct {
	ID   uuid.UUID
	Role models.Role
}

// ViewContext distinguishes the public site from the back-office.
type ViewContext int

const (
	ViewPublic ViewContext = iota
	ViewDashboard
)

// Operation is a mutation class checked by CanMutate.
type Operation int

const (
	OpUpdate Operation = iota
	OpDelete
	OpAssign
	OpApprove
)

// Scope is the listing filter produced by ListScope. Callers translate it
// into repository filters: AvailableOnly restricts to AVAILABLE records,
// OwnerOnly restricts to rows owned by / assigned to the given user.
type Scope struct {
	AvailableOnly bool
	OwnerOnly     *uuid.UUID
}

// ListScope maps (requester, view) to the record visibility scope.
// The public surface only ever shows available inventory, even to a
// logged-in admin browsing the public site.
func ListScope(req *Requester, view ViewContext) (Scope, error) {
	if view == ViewPublic {
		return Scope{AvailableOnly: true}, nil
	}
	if req == nil {
		return Scope{}, ErrUnauthenticated
	}
	switch req.Role {
	case models.RoleAdmin:
		return Scope{}, nil
	case models.RoleBroker:
		id := req.ID
		return Scope{OwnerOnly: &id}, nil
	}
	return Scope{}, ErrUnauthenticated
}

// CanMutate decides a single-record mutation. ownerID is the record's
// owning/assigned user; nil means unassigned. Brokers may update or delete
// only their own records, and may never assign or approve.
func CanMutate(req Requester, ownerID *uuid.UUID, op Operation) bool {
	switch req.Role {
	case models.RoleAdmin:
		return true
	case models.RoleBroker:
		switch op {
		case OpUpdate, OpDelete:
			return ownerID != nil && *ownerID == req.ID
		case OpAssign, OpApprove:
			return false
		}
	}
	return false
}

// CanDeleteUser gates account deletion. Self-deletion is always denied,
// even for admins; everything else is admin-only.
func CanDeleteUser(req Requester, targetID uuid.UUID) bool {
	if req.ID == targetID {
		return false
	}
	return req.Role == models.RoleAdmin
}

// PropertyStatusForWrite applies the AVAILABLE guard: only an admin may
// publish a listing. A broker asking for AVAILABLE gets PENDING stored
// instead of an error (downgrade, not rejection).
func PropertyStatusForWrite(req Requester, requested models.PropertyStatus) models.PropertyStatus {
	if requested == models.PropertyAvailable && req.Role != models.RoleAdmin {
		return models.PropertyPending
	}
	return requested
}
