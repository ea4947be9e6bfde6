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

type PropertyService interface {
	PublicSearch(ctx context.Context, req dtos.PropertySearchRequest) (*dtos.PropertyListResponse, error)
	PublicGetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)

	DashboardList(ctx context.Context, requester policy.Requester, req dtos.PropertySearchRequest) (*dtos.PropertyListResponse, error)
	DashboardGetByID(ctx context.Context, requester policy.Requester, id uuid.UUID) (*models.Property, error)
	Create(ctx context.Context, requester policy.Requester, req dtos.CreatePropertyRequest) (*models.Property, error)
	Update(ctx context.Context, requester policy.Requester, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error)
	Delete(ctx context.Context, requester policy.Requester, id uuid.UUID) error
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
	geocoder     Geocoder
}

func NewPropertyService(propertyRepo repositories.PropertyRepository, geocoder Geocoder) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		geocoder:     geocoder,
	}
}

// ------------------------------------------------------------------
// Public surface
// ------------------------------------------------------------------

func (s *propertyService) PublicSearch(ctx context.Context, req dtos.PropertySearchRequest) (*dtos.PropertyListResponse, error) {
	scope, _ := policy.ListScope(nil, policy.ViewPublic)
	return s.search(ctx, scope, req, false)
}

func (s *propertyService) PublicGetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up property", err)
	}
	// Anything not published is invisible here, including its existence.
	if p == nil || p.Status != models.PropertyAvailable {
		return nil, utils.NotFoundError("Property not found")
	}
	return p, nil
}

// ------------------------------------------------------------------
// Dashboard
// ------------------------------------------------------------------

func (s *propertyService) DashboardList(ctx context.Context, requester policy.Requester, req dtos.PropertySearchRequest) (*dtos.PropertyListResponse, error) {
	scope, err := policy.ListScope(&requester, policy.ViewDashboard)
	if err != nil {
		return nil, utils.ForbiddenError("Insufficient permissions")
	}
	return s.search(ctx, scope, req, true)
}

func (s *propertyService) DashboardGetByID(ctx context.Context, requester policy.Requester, id uuid.UUID) (*models.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up property", err)
	}
	if p == nil {
		return nil, utils.NotFoundError("Property not found")
	}
	if requester.Role != models.RoleAdmin && p.OwnerID != requester.ID {
		return nil, utils.ForbiddenError("This listing belongs to another broker")
	}
	return p, nil
}

func (s *propertyService) Create(ctx context.Context, requester policy.Requester, req dtos.CreatePropertyRequest) (*models.Property, error) {
	purpose, err := models.ParsePurpose(req.Purpose)
	if err != nil {
		return nil, utils.ValidationError("Invalid purpose", err)
	}
	status, err := models.ParsePropertyStatus(req.Status)
	if err != nil {
		return nil, utils.ValidationError("Invalid status", err)
	}

	lat, lng := s.geocoder.Geocode(ctx, FormatFullAddress(req.Address, req.City, req.State, req.ZipCode))

	p := &models.Property{
		ID:          uuid.New(),
		OwnerID:     requester.ID,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Latitude:    lat,
		Longitude:   lng,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		GarageSpots: req.GarageSpots,
		AreaM2:      req.AreaM2,
		PriceSale:   req.PriceSale,
		PriceRent:   req.PriceRent,
		Purpose:     purpose,
		Status:      policy.PropertyStatusForWrite(requester, status),
	}
	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, utils.InternalError("Failed to create property", err)
	}
	return p, nil
}

func (s *propertyService) Update(ctx context.Context, requester policy.Requester, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	purpose, err := models.ParsePurpose(req.Purpose)
	if err != nil {
		return nil, utils.ValidationError("Invalid purpose", err)
	}
	status, err := models.ParsePropertyStatus(req.Status)
	if err != nil {
		return nil, utils.ValidationError("Invalid status", err)
	}

	existing, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to look up property", err)
	}
	if existing == nil {
		return nil, utils.NotFoundError("Property not found")
	}
	if !policy.CanMutate(requester, utils.Ptr(existing.OwnerID), policy.OpUpdate) {
		return nil, utils.ForbiddenError("This listing belongs to another broker")
	}

	// Re-geocode only when the location actually changed.
	lat, lng := existing.Latitude, existing.Longitude
	if req.Address != existing.Address || req.City != existing.City ||
		req.State != existing.State || req.ZipCode != existing.ZipCode {
		lat, lng = s.geocoder.Geocode(ctx, FormatFullAddress(req.Address, req.City, req.State, req.ZipCode))
	}
	finalStatus := policy.PropertyStatusForWrite(requester, status)

	err = s.propertyRepo.UpdateWithRetry(ctx, id, func(p *models.Property) error {
		p.Title = req.Title
		p.Description = req.Description
		p.Address = req.Address
		p.City = req.City
		p.State = req.State
		p.ZipCode = req.ZipCode
		p.Latitude = lat
		p.Longitude = lng
		p.Bedrooms = req.Bedrooms
		p.Bathrooms = req.Bathrooms
		p.GarageSpots = req.GarageSpots
		p.AreaM2 = req.AreaM2
		p.PriceSale = req.PriceSale
		p.PriceRent = req.PriceRent
		p.Purpose = purpose
		p.Status = finalStatus
		return nil
	})
	if err != nil {
		return nil, utils.InternalError("Failed to update property", err)
	}

	updated, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to reload property", err)
	}
	return updated, nil
}

func (s *propertyService) Delete(ctx context.Context, requester policy.Requester, id uuid.UUID) error {
	existing, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return utils.InternalError("Failed to look up property", err)
	}
	if existing == nil {
		return utils.NotFoundError("Property not found")
	}
	if !policy.CanMutate(requester, utils.Ptr(existing.OwnerID), policy.OpDelete) {
		return utils.ForbiddenError("This listing belongs to another broker")
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return utils.ConflictError("Listing has related records; resolve them first")
		}
		return utils.InternalError("Failed to delete property", err)
	}
	return nil
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

// search runs the SQL-expressible filters through the repository and the
// price window / proximity filters in memory, because the price target
// depends on the search purpose and distance needs haversine math.
func (s *propertyService) search(ctx context.Context, scope policy.Scope, req dtos.PropertySearchRequest, allowStatusFilter bool) (*dtos.PropertyListResponse, error) {
	filter := repositories.PropertyFilter{
		City:           req.City,
		MinBedrooms:    req.MinBedrooms,
		MinGarageSpots: req.MinGarageSpots,
		OwnerID:        scope.OwnerOnly,
	}

	if scope.AvailableOnly {
		filter.Status = utils.Ptr(models.PropertyAvailable)
	} else if allowStatusFilter && req.Status != nil {
		status, err := models.ParsePropertyStatus(*req.Status)
		if err != nil {
			return nil, utils.ValidationError("Invalid status", err)
		}
		filter.Status = &status
	}

	var searchPurpose *models.Purpose
	if req.Purpose != nil {
		purpose, err := models.ParsePurpose(*req.Purpose)
		if err != nil {
			return nil, utils.ValidationError("Invalid purpose", err)
		}
		searchPurpose = &purpose
		filter.Purpose = &purpose
	}

	rows, err := s.propertyRepo.Search(ctx, filter)
	if err != nil {
		return nil, utils.InternalError("Failed to search properties", err)
	}

	useRadius := req.Lat != nil && req.Lng != nil
	radius := constants.DefaultSearchRadiusMiles
	if req.RadiusMiles != nil {
		radius = *req.RadiusMiles
	}
	out := make([]*models.Property, 0, len(rows))
	for _, p := range rows {
		price := p.ActivePrice(searchPurpose)
		if req.MinPrice != nil && price < *req.MinPrice {
			continue
		}
		if req.MaxPrice != nil && price > *req.MaxPrice {
			continue
		}
		if useRadius {
			// Listings without coordinates never match a proximity search.
			if !p.HasCoordinates() {
				continue
			}
			d := utils.DistanceMiles(*req.Lat, *req.Lng, *p.Latitude, *p.Longitude)
			if d > radius {
				continue
			}
		}
		out = append(out, p)
	}

	return &dtos.PropertyListResponse{Properties: out, Total: len(out)}, nil
}
