package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vistaimoveis/brokerage-service/internal/dtos"
	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/policy"
	"github.com/vistaimoveis/brokerage-service/internal/repositories"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

const visitDateLayout = "2006-01-02"

type VisitService interface {
	PublicCreate(ctx context.Context, req dtos.CreateVisitRequest) (*models.Visit, error)

	List(ctx context.Context, requester policy.Requester, status *string) (*dtos.VisitListResponse, error)
	GetByID(ctx context.Context, requester policy.Requester, id uuid.UUID) (*models.Visit, error)
	Update(ctx context.Context, requester policy.Requester, id uuid.UUID, req dtos.UpdateVisitRequest) (*dtos.VisitUpdateResponse, error)
	Assign(ctx context.Context, requester policy.Requester, id, userID uuid.UUID) (*models.Visit, error)
	Delete(ctx context.Context, requester policy.Requester, id uuid.UUID) error
}

type visitService struct {
	visitRepo    repositories.VisitRepository
	propertyRepo repositories.PropertyRepository
	userRepo     repositories.UserRepository
	notifier     NotificationService
}

func NewVisitService(
	visitRepo repositories.VisitRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) VisitService {
	return &visitService{
		visitRepo:    visitRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (s *visitService) PublicCreate(ctx context.Context, req dtos.CreateVisitRequest) (*models.Visit, error) {
	property, err := s.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, utils.InternalError("Failed to look up property", err)
	}
	// Only published inventory is schedulable from the public site, and
	// unpublished listings stay invisible.
	if property == nil || property.Status != models.PropertyAvailable {
		return nil, utils.NotFoundError("Property not found")
	}

	date, err := time.Parse(visitDateLayout, req.ScheduledDate)
	if err != nil {
		return nil, utils.ValidationError("Invalid scheduled date", err)
	}
	slot, err := models.ParseTimeSlot(req.TimeSlot)
	if err != nil {
		return nil, utils.ValidationError("Invalid time slot", err)
	}

	v := &models.Visit{
		ID:            uuid.New(),
		PropertyID:    req.PropertyID,
		VisitorName:   req.VisitorName,
		VisitorEmail:  req.VisitorEmail,
		VisitorPhone:  req.VisitorPhone,
		ScheduledDate: date,
		TimeSlot:      slot,
		Status:        models.VisitPending,
	}
	if err := s.visitRepo.Create(ctx, v); err != nil {
		return nil, utils.InternalError("Failed to create visit", err)
	}
	return v, nil
}

func (s *visitService) List(ctx context.Context, requester policy.Requester, status *string) (*dtos.VisitListResponse, error) {
	scope, err := policy.ListScope(&requester, policy.ViewDashboard)
	if err != nil {
		return nil, utils.ForbiddenError("Insufficient permissions")
	}

	filter := repositories.VisitFilter{AssignedUserID: scope.OwnerOnly}
	if status != nil {
		st, err := models.ParseVisitStatus(*status)
		if err != nil {
			return nil, utils.ValidationError("Invalid status", err)
		}
		filter.Status = &st
	}

	visits, err := s.visitRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.InternalError("Failed to list visits", err)
	}
	return &dtos.VisitListResponse{Visits: visits, Total: len(visits)}, nil
}

func (s *visitService) GetByID(ctx context.Context, requester policy.Requester, id uuid.UUID) (*models.Visit, error) {
	v, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up visit", err)
	}
	if v == nil {
		return nil, utils.NotFoundError("Visit not found")
	}
	if requester.Role != models.RoleAdmin &&
		(v.AssignedUserID == nil || *v.AssignedUserID != requester.ID) {
		return nil, utils.ForbiddenError("This visit is assigned to another broker")
	}
	return v, nil
}

func (s *visitService) Update(ctx context.Context, requester policy.Requester, id uuid.UUID, req dtos.UpdateVisitRequest) (*dtos.VisitUpdateResponse, error) {
	status, err := models.ParseVisitStatus(req.Status)
	if err != nil {
		return nil, utils.ValidationError("Invalid status", err)
	}

	existing, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up visit", err)
	}
	if existing == nil {
		return nil, utils.NotFoundError("Visit not found")
	}
	// Ownership of the listing does not grant access; only assignment does.
	if !policy.CanMutate(requester, existing.AssignedUserID, policy.OpUpdate) {
		return nil, utils.ForbiddenError("This visit is assigned to another broker")
	}

	date := existing.ScheduledDate
	if req.ScheduledDate != nil {
		if date, err = time.Parse(visitDateLayout, *req.ScheduledDate); err != nil {
			return nil, utils.ValidationError("Invalid scheduled date", err)
		}
	}
	slot := existing.TimeSlot
	if req.TimeSlot != nil {
		if slot, err = models.ParseTimeSlot(*req.TimeSlot); err != nil {
			return nil, utils.ValidationError("Invalid time slot", err)
		}
	}

	confirming := status == models.VisitConfirmed && existing.Status != models.VisitConfirmed

	err = s.visitRepo.UpdateWithRetry(ctx, id, func(v *models.Visit) error {
		v.Status = status
		v.ScheduledDate = date
		v.TimeSlot = slot
		return nil
	})
	if err != nil {
		return nil, utils.InternalError("Failed to update visit", err)
	}

	updated, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to reload visit", err)
	}

	notified := false
	if confirming && updated != nil {
		notified = s.notifyConfirmation(ctx, updated)
	}
	return &dtos.VisitUpdateResponse{Visit: updated, Notified: notified}, nil
}

func (s *visitService) Assign(ctx context.Context, requester policy.Requester, id, userID uuid.UUID) (*models.Visit, error) {
	existing, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up visit", err)
	}
	if existing == nil {
		return nil, utils.NotFoundError("Visit not found")
	}
	if !policy.CanMutate(requester, existing.AssignedUserID, policy.OpAssign) {
		return nil, utils.ForbiddenError("Only admins assign visits")
	}

	assignee, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to look up user", err)
	}
	if assignee == nil {
		return nil, utils.NotFoundError("Assignee not found")
	}

	err = s.visitRepo.UpdateWithRetry(ctx, id, func(v *models.Visit) error {
		v.AssignedUserID = &userID
		return nil
	})
	if err != nil {
		return nil, utils.InternalError("Failed to assign visit", err)
	}
	return s.visitRepo.GetByID(ctx, id)
}

func (s *visitService) Delete(ctx context.Context, requester policy.Requester, id uuid.UUID) error {
	existing, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return utils.InternalError("Failed to look up visit", err)
	}
	if existing == nil {
		return utils.NotFoundError("Visit not found")
	}
	if !policy.CanMutate(requester, existing.AssignedUserID, policy.OpDelete) {
		return utils.ForbiddenError("This visit is assigned to another broker")
	}

	if err := s.visitRepo.Delete(ctx, id); err != nil {
		return utils.InternalError("Failed to delete visit", err)
	}
	return nil
}

// notifyConfirmation tells the visitor their slot is locked in. Both
// channels are best-effort; the return reports whether the email went out.
func (s *visitService) notifyConfirmation(ctx context.Context, v *models.Visit) bool {
	title := "the property"
	if p, err := s.propertyRepo.GetByID(ctx, v.PropertyID); err == nil && p != nil {
		title = p.Title
	}

	date := v.ScheduledDate.Format(visitDateLayout)
	slot := v.TimeSlot.String()

	sent := s.notifier.SendVisitConfirmationEmail(v.VisitorName, v.VisitorEmail, title, date, slot)
	if v.VisitorPhone != nil {
		s.notifier.SendVisitConfirmationSMS(*v.VisitorPhone, title, date, slot)
	}
	return sent
}
