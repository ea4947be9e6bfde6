package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/vistaimoveis/brokerage-service/internal/models"
)

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=BROKER ADMIN"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=BROKER ADMIN"`
}

type UserResponse struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Email             string      `json:"email"`
	Role              models.Role `json:"role"`
	IsDefaultPassword bool        `json:"is_default_password"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// CreatedUserResponse carries the one-time provisioning password back to
// the admin who created the account. It is never persisted in clear.
// EmailSent tells the admin whether the password also went out by mail.
type CreatedUserResponse struct {
	UserResponse
	ProvisioningPassword string `json:"provisioning_password"`
	EmailSent            bool   `json:"email_sent"`
}

type ResetPasswordResponse struct {
	ProvisioningPassword string `json:"provisioning_password"`
	EmailSent            bool   `json:"email_sent"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		IsDefaultPassword: u.IsDefaultPassword,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
