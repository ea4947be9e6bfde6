package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type VisitStatus int

const (
	VisitPending VisitStatus = iota
	VisitConfirmed
	VisitCancelled
)

func (s VisitStatus) String() string {
	switch s {
	case VisitPending:
		return "PENDING"
	case VisitConfirmed:
		return "CONFIRMED"
	case VisitCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

func ParseVisitStatus(s string) (VisitStatus, error) {
	switch s {
	case "PENDING":
		return VisitPending, nil
	case "CONFIRMED":
		return VisitConfirmed, nil
	case "CANCELLED":
		return VisitCancelled, nil
	default:
		return -1, fmt.Errorf("invalid visit status: %q", s)
	}
}

func (s VisitStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *VisitStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParseVisitStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type TimeSlot int

const (
	SlotMorning TimeSlot = iota
	SlotAfternoon
)

func (t TimeSlot) String() string {
	switch t {
	case SlotMorning:
		return "MORNING"
	case SlotAfternoon:
		return "AFTERNOON"
	default:
		return "UNKNOWN"
	}
}

func ParseTimeSlot(s string) (TimeSlot, error) {
	switch s {
	case "MORNING":
		return SlotMorning, nil
	case "AFTERNOON":
		return SlotAfternoon, nil
	default:
		return -1, fmt.Errorf("invalid time slot: %q", s)
	}
}

func (t TimeSlot) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TimeSlot) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParseTimeSlot(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Visit is a property-viewing request submitted from the public site.
// It starts PENDING and unassigned; only an admin assigns a broker.
type Visit struct {
	Versioned

	ID             uuid.UUID   `json:"id"`
	PropertyID     uuid.UUID   `json:"property_id"`
	VisitorName    string      `json:"visitor_name"`
	VisitorEmail   string      `json:"visitor_email"`
	VisitorPhone   *string     `json:"visitor_phone,omitempty"`
	ScheduledDate  time.Time   `json:"scheduled_date"`
	TimeSlot       TimeSlot    `json:"time_slot"`
	Status         VisitStatus `json:"status"`
	AssignedUserID *uuid.UUID  `json:"assigned_user_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (v *Visit) GetID() string {
	return v.ID.String()
}
