package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type LeadStatus int

const (
	LeadNew LeadStatus = iota
	LeadInProgress
	LeadVisitScheduled
	LeadClosed
	LeadArchived
)

func (s LeadStatus) String() string {
	switch s {
	case LeadNew:
		return "NEW"
	case LeadInProgress:
		return "IN_PROGRESS"
	case LeadVisitScheduled:
		return "VISIT_SCHEDULED"
	case LeadClosed:
		return "CLOSED"
	case LeadArchived:
		return "ARCHIVED"
	default:
		return "UNKNOWN"
	}
}

func ParseLeadStatus(s string) (LeadStatus, error) {
	switch s {
	case "NEW":
		return LeadNew, nil
	case "IN_PROGRESS":
		return LeadInProgress, nil
	case "VISIT_SCHEDULED":
		return LeadVisitScheduled, nil
	case "CLOSED":
		return LeadClosed, nil
	case "ARCHIVED":
		return LeadArchived, nil
	default:
		return -1, fmt.Errorf("invalid lead status: %q", s)
	}
}

func (s LeadStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *LeadStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParseLeadStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Lead is an inbound contact-form submission from the public site.
// Assignment to a broker is an admin-only mutation.
type Lead struct {
	Versioned

	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          *string    `json:"phone,omitempty"`
	Message        string     `json:"message"`
	PropertyID     *uuid.UUID `json:"property_id,omitempty"`
	Status         LeadStatus `json:"status"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (l *Lead) GetID() string {
	return l.ID.String()
}
