package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/policy"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

type leadFixture struct {
	svc      LeadService
	leadRepo *fakeLeadRepo
	userRepo *fakeUserRepo
}

func newLeadFixture() *leadFixture {
	f := &leadFixture{
		leadRepo: newFakeLeadRepo(),
		userRepo: newFakeUserRepo(),
	}
	f.svc = NewLeadService(f.leadRepo, f.userRepo)
	return f
}

func (f *leadFixture) seedBroker(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, f.userRepo.Create(context.Background(), &models.User{
		ID:    id,
		Name:  "Corretor",
		Email: id.String() + "@example.com",
		Role:  models.RoleBroker,
	}))
	return id
}

func (f *leadFixture) seedLead(t *testing.T, assignedTo *uuid.UUID) *models.Lead {
	t.Helper()
	l := &models.Lead{
		ID:             uuid.New(),
		Name:           "Cliente",
		Email:          "cliente@example.com",
		Message:        "Tenho interesse",
		Status:         models.LeadNew,
		AssignedUserID: assignedTo,
	}
	require.NoError(t, f.leadRepo.Create(context.Background(), l))
	return l
}

func TestPublicCreateLead_StartsNew(t *testing.T) {
	f := newLeadFixture()

	l, err := f.svc.PublicCreate(context.Background(), dtos.CreateLeadRequest{
		Name:    "Cliente",
		Email:   "cliente@example.com",
		Message: "Quero visitar",
	})
	require.NoError(t, err)
	require.Equal(t, models.LeadNew, l.Status)
	require.Nil(t, l.AssignedUserID)
}

func TestUpdateLead_NonAssignedBrokerForbidden(t *testing.T) {
	f := newLeadFixture()
	assigned := f.seedBroker(t)
	l := f.seedLead(t, &assigned)

	other := f.seedBroker(t)
	_, err := f.svc.Update(
		context.Background(),
		policy.Requester{ID: other, Role: models.RoleBroker},
		l.ID,
		dtos.UpdateLeadRequest{Status: "CLOSED"},
	)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeForbidden, appErr.Code)
}

func TestUpdateLead_AssignedBrokerMovesStatus(t *testing.T) {
	f := newLeadFixture()
	assigned := f.seedBroker(t)
	l := f.seedLead(t, &assigned)

	updated, err := f.svc.Update(
		context.Background(),
		policy.Requester{ID: assigned, Role: models.RoleBroker},
		l.ID,
		dtos.UpdateLeadRequest{Status: "VISIT_SCHEDULED"},
	)
	require.NoError(t, err)
	require.Equal(t, models.LeadVisitScheduled, updated.Status)
}

func TestAssignLead_AdminOnlyAndBumpsStatus(t *testing.T) {
	f := newLeadFixture()
	l := f.seedLead(t, nil)
	broker := f.seedBroker(t)

	_, err := f.svc.Assign(
		context.Background(),
		policy.Requester{ID: broker, Role: models.RoleBroker},
		l.ID, broker,
	)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeForbidden, appErr.Code)

	updated, err := f.svc.Assign(
		context.Background(),
		policy.Requester{ID: uuid.New(), Role: models.RoleAdmin},
		l.ID, broker,
	)
	require.NoError(t, err)
	require.Equal(t, broker, *updated.AssignedUserID)
	require.Equal(t, models.LeadInProgress, updated.Status)
}

func TestDeleteLead_AdminOnly(t *testing.T) {
	f := newLeadFixture()
	assigned := f.seedBroker(t)
	l := f.seedLead(t, &assigned)

	// Even the assigned broker cannot delete a lead.
	err := f.svc.Delete(
		context.Background(),
		policy.Requester{ID: assigned, Role: models.RoleBroker},
		l.ID,
	)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, utils.ErrCodeForbidden, appErr.Code)

	err = f.svc.Delete(
		context.Background(),
		policy.Requester{ID: uuid.New(), Role: models.RoleAdmin},
		l.ID,
	)
	require.NoError(t, err)
}

func TestListLeads_BrokerScopedToAssigned(t *testing.T) {
	f := newLeadFixture()
	mine := f.seedBroker(t)
	f.seedLead(t, &mine)
	f.seedLead(t, nil)

	resp, err := f.svc.List(context.Background(), policy.Requester{ID: mine, Role: models.RoleBroker}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)

	adminResp, err := f.svc.List(context.Background(), policy.Requester{ID: uuid.New(), Role: models.RoleAdmin}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, adminResp.Total)
}

func TestListLeads_BogusStatusRejected(t *testing.T) {
	f := newLeadFixture()

	_, err := f.svc.List(
		context.Background(),
		policy.Requester{ID: uuid.New(), Role: models.RoleAdmin},
		utils.Ptr("BOGUS"),
	)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	require.Equal(t, utils.ErrCodeValidation, appErr.Code)
}
