package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/policy"
	"github.com/vistaimoveis/brokerage-service/internal/repositories"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

type LeadService interface {
	PublicCreate(ctx context.Context, req dtos.CreateLeadRequest) (*models.Lead, error)

	List(ctx context.Context, requester policy.Requester, status *string) (*dtos.LeadListResponse, error)
	GetByID(ctx context.Context, requester policy.Requester, id uuid.UUID) (*models.Lead, error)
	Update(ctx context.Context, requester policy.Requester, id uuid.UUID, req dtos.UpdateLeadRequest) (*models.Lead, error)
	Assign(ctx context.Context, requester policy.Requester, id, userID uuid.UUID) (*models.Lead, error)
	Delete(ctx context.Context, requester policy.Requester, id uuid.UUID) error
}

type leadService struct {
	leadRepo repositories.LeadRepository
	userRepo repositories.UserRepository
}

func NewLeadService(leadRepo repositories.LeadRepository, userRepo repositories.UserRepository) LeadService {
	return &leadService{
		leadRepo: leadRepo,
		userRepo: userRepo,
	}
}

func (s *leadService) PublicCreate(ctx context.Context, req dtos.CreateLeadRequest) (*models.Lead, error) {
	l := &models.Lead{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		PropertyID: req.PropertyID,
		Status:     models.LeadNew,
	}
	if err := s.leadRepo.Create(ctx, l); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return nil, utils.NotFoundError("Property not found")
		}
		return nil, utils.InternalError("Failed to create lead", err)
	}
	return l, nil
}

func (s *leadService) List(ctx context.Context, requester policy.Requester, status *string) (*dtos.LeadListResponse, error) {
	scope, err := policy.ListScope(&requester, policy.ViewDashboard)
	if err != nil {
		return nil, utils.ForbiddenError("Insufficient permissions")
	}

	filter := repositories.LeadFilter{AssignedUserID: scope.OwnerOnly}
	if status != nil {
		st, err := models.ParseLeadStatus(*status)
		if err != nil {
			return nil, utils.ValidationError("Invalid status", err)
		}
		filter.Status = &st
	}

	leads, err := s.leadRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.InternalError("Failed to list leads", err)
	}
	return &dtos.LeadListResponse{Leads: leads, Total: len(leads)}, nil
}

func (s *leadService) GetByID(ctx context.Context, requester policy.Requester, id uuid.UUID) (*models.Lead, error) {
	l, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up lead", err)
	}
	if l == nil {
		return nil, utils.NotFoundError("Lead not found")
	}
	if requester.Role != models.RoleAdmin &&
		(l.AssignedUserID == nil || *l.AssignedUserID != requester.ID) {
		return nil, utils.ForbiddenError("This lead is assigned to another broker")
	}
	return l, nil
}

func (s *leadService) Update(ctx context.Context, requester policy.Requester, id uuid.UUID, req dtos.UpdateLeadRequest) (*models.Lead, error) {
	status, err := models.ParseLeadStatus(req.Status)
	if err != nil {
		return nil, utils.ValidationError("Invalid status", err)
	}

	existing, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up lead", err)
	}
	if existing == nil {
		return nil, utils.NotFoundError("Lead not found")
	}
	if !policy.CanMutate(requester, existing.AssignedUserID, policy.OpUpdate) {
		return nil, utils.ForbiddenError("This lead is assigned to another broker")
	}

	err = s.leadRepo.UpdateWithRetry(ctx, id, func(l *models.Lead) error {
		l.Status = status
		if req.Message != "" {
			l.Message = req.Message
		}
		return nil
	})
	if err != nil {
		return nil, utils.InternalError("Failed to update lead", err)
	}
	return s.leadRepo.GetByID(ctx, id)
}

func (s *leadService) Assign(ctx context.Context, requester policy.Requester, id, userID uuid.UUID) (*models.Lead, error) {
	existing, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up lead", err)
	}
	if existing == nil {
		return nil, utils.NotFoundError("Lead not found")
	}
	if !policy.CanMutate(requester, existing.AssignedUserID, policy.OpAssign) {
		return nil, utils.ForbiddenError("Only admins assign leads")
	}

	assignee, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to look up user", err)
	}
	if assignee == nil {
		return nil, utils.NotFoundError("Assignee not found")
	}

	err = s.leadRepo.UpdateWithRetry(ctx, id, func(l *models.Lead) error {
		l.AssignedUserID = &userID
		// A freshly assigned lead is being worked on.
		if l.Status == models.LeadNew {
			l.Status = models.LeadInProgress
		}
		return nil
	})
	if err != nil {
		return nil, utils.InternalError("Failed to assign lead", err)
	}
	return s.leadRepo.GetByID(ctx, id)
}

func (s *leadService) Delete(ctx context.Context, requester policy.Requester, id uuid.UUID) error {
	if requester.Role != models.RoleAdmin {
		return utils.ForbiddenError("Only admins delete leads")
	}

	existing, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return utils.InternalError("Failed to look up lead", err)
	}
	if existing == nil {
		return utils.NotFoundError("Lead not found")
	}

	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return utils.InternalError("Failed to delete lead", err)
	}
	return nil
}
