package dtos

import (
	"github.com/google/uuid"

	"github.com/vistaimoveis/brokerage-service/internal/models"
)

// CreateLeadRequest is the public contact form payload.
type CreateLeadRequest struct {
	Name       string     `json:"name" validate:"required,min=2,max=120"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      *string    `json:"phone" validate:"omitempty,e164"`
	Message    string     `json:"message" validate:"max=5000"`
	PropertyID *uuid.UUID `json:"property_id"`
}

type UpdateLeadRequest struct {
	Status  string `json:"status" validate:"required,oneof=NEW IN_PROGRESS VISIT_SCHEDULED CLOSED ARCHIVED"`
	Message string `json:"message" validate:"max=5000"`
}

type AssignRequest struct {
	AssignedUserID uuid.UUID `json:"assigned_user_id" validate:"required"`
}

type LeadListResponse struct {
	Leads []*models.Lead `json:"leads"`
	Total int            `json:"total"`
}
