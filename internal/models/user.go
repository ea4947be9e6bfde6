package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office account: an ADMIN or a listing BROKER.
type User struct {
	Versioned

	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"` // Never serialize to JSON

	// IsDefaultPassword is true while the account still uses the
	// provisioning password sent at creation/reset. The credential gate
	// blocks every dashboard action until the user sets their own.
	IsDefaultPassword bool `json:"is_default_password"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) GetID() string {
	return u.ID.String()
}
