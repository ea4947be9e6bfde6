package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/vistaimoveis/brokerage-service/internal/constants"
	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/policy"
	"github.com/vistaimoveis/brokerage-service/internal/repositories"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

type UserService interface {
	Create(ctx context.Context, req dtos.CreateUserRequest) (*dtos.CreatedUserResponse, error)
	List(ctx context.Context) ([]dtos.UserResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dtos.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdateUserRequest) (*dtos.UserResponse, error)
	Delete(ctx context.Context, requester policy.Requester, id uuid.UUID) error
	ResetPassword(ctx context.Context, id uuid.UUID) (*dtos.ResetPasswordResponse, error)
}

type userService struct {
	userRepo    repositories.UserRepository
	refreshRepo repositories.RefreshTokenRepository
	notifier    NotificationService
}

func NewUserService(
	userRepo repositories.UserRepository,
	refreshRepo repositories.RefreshTokenRepository,
	notifier NotificationService,
) UserService {
	return &userService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		notifier:    notifier,
	}
}

func (s *userService) Create(ctx context.Context, req dtos.CreateUserRequest) (*dtos.CreatedUserResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, utils.ValidationError("Invalid role", err)
	}

	password := utils.RandomString(constants.ProvisioningPasswordLength)
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.InternalError("Failed to hash password", err)
	}

	user := &models.User{
		ID:                uuid.New(),
		Name:              req.Name,
		Email:             req.Email,
		Role:              role,
		PasswordHash:      hash,
		IsDefaultPassword: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.ConflictError("Email already in use")
		}
		return nil, utils.InternalError("Failed to create user", err)
	}

	// Best-effort; the admin still sees the password in the response.
	emailSent := s.notifier.SendProvisioningEmail(user.Name, user.Email, password, false)

	return &dtos.CreatedUserResponse{
		UserResponse:         dtos.NewUserResponse(user),
		ProvisioningPassword: password,
		EmailSent:            emailSent,
	}, nil
}

func (s *userService) List(ctx context.Context) ([]dtos.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, utils.InternalError("Failed to list users", err)
	}
	out := make([]dtos.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dtos.NewUserResponse(u))
	}
	return out, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*dtos.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, utils.NotFoundError("User not found")
	}
	resp := dtos.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateUserRequest) (*dtos.UserResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, utils.ValidationError("Invalid role", err)
	}

	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up user", err)
	}
	if existing == nil {
		return nil, utils.NotFoundError("User not found")
	}

	// Never demote the last remaining admin; the dashboard would be
	// unmanageable.
	if existing.Role == models.RoleAdmin && role != models.RoleAdmin {
		n, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return nil, utils.InternalError("Failed to count admins", err)
		}
		if n <= 1 {
			return nil, utils.ConflictError("Cannot demote the last admin")
		}
	}

	err = s.userRepo.UpdateWithRetry(ctx, id, func(u *models.User) error {
		u.Name = req.Name
		u.Email = req.Email
		u.Role = role
		return nil
	})
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.ConflictError("Email already in use")
		}
		return nil, utils.InternalError("Failed to update user", err)
	}

	return s.GetByID(ctx, id)
}

func (s *userService) Delete(ctx context.Context, requester policy.Requester, id uuid.UUID) error {
	if !policy.CanDeleteUser(requester, id) {
		return utils.ForbiddenError("You cannot delete this account")
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return utils.InternalError("Failed to look up user", err)
	}
	if target == nil {
		return utils.NotFoundError("User not found")
	}
	if target.Role == models.RoleAdmin {
		n, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return utils.InternalError("Failed to count admins", err)
		}
		if n <= 1 {
			return utils.ConflictError("Cannot delete the last admin")
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return utils.ConflictError("User still owns listings; reassign them first")
		}
		return utils.InternalError("Failed to delete user", err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, id uuid.UUID) (*dtos.ResetPasswordResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, utils.NotFoundError("User not found")
	}

	password := utils.RandomString(constants.ProvisioningPasswordLength)
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.InternalError("Failed to hash password", err)
	}

	err = s.userRepo.UpdateWithRetry(ctx, id, func(u *models.User) error {
		u.PasswordHash = hash
		u.IsDefaultPassword = true
		return nil
	})
	if err != nil {
		return nil, utils.InternalError("Failed to reset password", err)
	}

	// Force every session through a fresh login.
	if err := s.refreshRepo.RevokeAllForUser(ctx, id); err != nil {
		return nil, utils.InternalError("Failed to revoke sessions", err)
	}

	emailSent := s.notifier.SendProvisioningEmail(user.Name, user.Email, password, true)

	return &dtos.ResetPasswordResponse{ProvisioningPassword: password, EmailSent: emailSent}, nil
}
