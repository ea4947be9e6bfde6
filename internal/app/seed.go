package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/repositories"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

// EnsureBootstrapAdmin creates the first ADMIN account when none exists,
// so a fresh deployment can be logged into. The seeded account keeps
// is_default_password=true and is forced through a password change on
// first login.
func (a *App) EnsureBootstrapAdmin(ctx context.Context, users repositories.UserRepository) error {
	n, err := users.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("counting admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := utils.HashPassword(a.Config.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing bootstrap password: %w", err)
	}

	admin := &models.User{
		ID:                uuid.New(),
		Name:              "Administrator",
		Email:             a.Config.BootstrapAdminEmail,
		Role:              models.RoleAdmin,
		PasswordHash:      hash,
		IsDefaultPassword: true,
	}
	if err := users.Create(ctx, admin); err != nil {
		if repositories.IsUniqueViolation(err) {
			// Concurrent replica seeded it first.
			return nil
		}
		return fmt.Errorf("creating bootstrap admin: %w", err)
	}

	utils.Logger.Infof("Seeded bootstrap admin %s", admin.Email)
	return nil
}
