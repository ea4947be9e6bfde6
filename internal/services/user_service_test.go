package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/policy"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

type userFixture struct {
	svc      UserService
	userRepo *fakeUserRepo
	refresh  *fakeRefreshRepo
	notifier *fakeNotifier
}

func newUserFixture() *userFixture {
	f := &userFixture{
		userRepo: newFakeUserRepo(),
		refresh:  newFakeRefreshRepo(),
		notifier: &fakeNotifier{},
	}
	f.svc = NewUserService(f.userRepo, f.refresh, f.notifier)
	return f
}

func (f *userFixture) seedAdmin(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, f.userRepo.Create(context.Background(), &models.User{
		ID:    id,
		Name:  "Admin",
		Email: id.String() + "@example.com",
		Role:  models.RoleAdmin,
	}))
	return id
}

func TestCreateUser_ProvisionsTemporaryPassword(t *testing.T) {
	f := newUserFixture()

	resp, err := f.svc.Create(context.Background(), dtos.CreateUserRequest{
		Name:  "João Corretor",
		Email: "joao@example.com",
		Role:  "BROKER",
	})
	require.NoError(t, err)
	require.Len(t, resp.ProvisioningPassword, 12)
	require.True(t, resp.IsDefaultPassword)
	require.True(t, resp.EmailSent)
	require.Equal(t, []string{"joao@example.com"}, f.notifier.emails)

	stored, err := f.userRepo.GetByEmail(context.Background(), "joao@example.com")
	require.NoError(t, err)
	require.NotEqual(t, resp.ProvisioningPassword, stored.PasswordHash)
	require.True(t, utils.CheckPasswordHash(resp.ProvisioningPassword, stored.PasswordHash))
}

func TestCreateUser_EmailFailureDoesNotFailCreation(t *testing.T) {
	f := newUserFixture()
	f.notifier.fail = true

	resp, err := f.svc.Create(context.Background(), dtos.CreateUserRequest{
		Name:  "João Corretor",
		Email: "joao@example.com",
		Role:  "BROKER",
	})
	require.NoError(t, err)
	require.False(t, resp.EmailSent)

	stored, err := f.userRepo.GetByEmail(context.Background(), "joao@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateUser_DuplicateEmailConflicts(t *testing.T) {
	f := newUserFixture()

	req := dtos.CreateUserRequest{Name: "João", Email: "joao@example.com", Role: "BROKER"}
	_, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), req)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeConflict, appErr.Code)
}

func TestDeleteUser_SelfDeletionAlwaysDenied(t *testing.T) {
	f := newUserFixture()
	adminID := f.seedAdmin(t)
	f.seedAdmin(t) // a second admin, so the last-admin rule is not the reason

	err := f.svc.Delete(
		context.Background(),
		policy.Requester{ID: adminID, Role: models.RoleAdmin},
		adminID,
	)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeForbidden, appErr.Code)
}

func TestDeleteUser_LastAdminProtected(t *testing.T) {
	f := newUserFixture()
	onlyAdmin := f.seedAdmin(t)

	err := f.svc.Delete(
		context.Background(),
		policy.Requester{ID: uuid.New(), Role: models.RoleAdmin},
		onlyAdmin,
	)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeConflict, appErr.Code)
}

func TestUpdateUser_LastAdminCannotBeDemoted(t *testing.T) {
	f := newUserFixture()
	onlyAdmin := f.seedAdmin(t)

	u, err := f.userRepo.GetByID(context.Background(), onlyAdmin)
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), onlyAdmin, dtos.UpdateUserRequest{
		Name:  u.Name,
		Email: u.Email,
		Role:  "BROKER",
	})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeConflict, appErr.Code)
}

func TestResetPassword_FlagsDefaultAndRevokesSessions(t *testing.T) {
	f := newUserFixture()

	created, err := f.svc.Create(context.Background(), dtos.CreateUserRequest{
		Name:  "João",
		Email: "joao@example.com",
		Role:  "BROKER",
	})
	require.NoError(t, err)

	// Clear the provisioning flag, then reset.
	require.NoError(t, f.userRepo.UpdateWithRetry(context.Background(), created.ID, func(u *models.User) error {
		u.IsDefaultPassword = false
		return nil
	}))
	require.NoError(t, f.refresh.Create(context.Background(), &models.RefreshToken{
		ID: uuid.New(), UserID: created.ID, Token: "tok-1",
	}))

	resp, err := f.svc.ResetPassword(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, resp.ProvisioningPassword, 12)
	require.True(t, resp.EmailSent)

	stored, err := f.userRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, stored.IsDefaultPassword)
	require.True(t, utils.CheckPasswordHash(resp.ProvisioningPassword, stored.PasswordHash))

	rt, err := f.refresh.GetByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	require.True(t, rt.Revoked)
}
