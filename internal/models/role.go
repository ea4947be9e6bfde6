package models

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of account roles. Kept as a tagged enum so an
// unhandled role is a compile-time problem, not a stray string.
type Role int

const (
	RoleBroker Role = iota
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleBroker:
		return "BROKER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

// ParseRole converts the stored/wire representation to the enum.
func ParseRole(s string) (Role, error) {
	switch s {
	case "BROKER":
		return RoleBroker, nil
	case "ADMIN":
		return RoleAdmin, nil
	default:
		return -1, fmt.Errorf("invalid role: %q", s)
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
