package dtos

import (
	"github.com/google/uuid"

	"github.com/vistaimoveis/brokerage-service/internal/models"
)

// CreateVisitRequest is the public scheduling payload. The date is a
// calendar day; the half-day slot picks morning or afternoon.
type CreateVisitRequest struct {
	PropertyID    uuid.UUID `json:"property_id" validate:"required"`
	VisitorName   string    `json:"visitor_name" validate:"required,min=2,max=120"`
	VisitorEmail  string    `json:"visitor_email" validate:"required,email"`
	VisitorPhone  *string   `json:"visitor_phone" validate:"omitempty,e164"`
	ScheduledDate string    `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	TimeSlot      string    `json:"time_slot" validate:"required,oneof=MORNING AFTERNOON"`
}

type UpdateVisitRequest struct {
	Status        string  `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
	ScheduledDate *string `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	TimeSlot      *string `json:"time_slot" validate:"omitempty,oneof=MORNING AFTERNOON"`
}

// VisitUpdateResponse reports whether the visitor was told about a
// confirmation. Notified stays false when no notification was due.
type VisitUpdateResponse struct {
	*models.Visit
	Notified bool `json:"notified"`
}

type VisitListResponse struct {
	Visits []*models.Visit `json:"visits"`
	Total  int             `json:"total"`
}
