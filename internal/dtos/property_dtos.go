package dtos

import "github.com/vistaimoveis/brokerage-service/internal/models"

type CreatePropertyRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Address     string   `json:"address" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required,len=2"`
	ZipCode     string   `json:"zip_code" validate:"required"`
	Bedrooms    int      `json:"bedrooms" validate:"min=0"`
	Bathrooms   int      `json:"bathrooms" validate:"min=0"`
	GarageSpots int      `json:"garage_spots" validate:"min=0"`
	AreaM2      float64  `json:"area_m2" validate:"min=0"`
	PriceSale   float64  `json:"price_sale" validate:"min=0"`
	PriceRent   *float64 `json:"price_rent" validate:"omitempty,min=0"`
	Purpose     string   `json:"purpose" validate:"required,oneof=SALE RENT SALE_AND_RENT"`
	Status      string   `json:"status" validate:"required,oneof=PENDING AVAILABLE RESERVED SOLD"`
}

// UpdatePropertyRequest mirrors the create payload; updates are full
// replacements of the editable fields.
type UpdatePropertyRequest = CreatePropertyRequest

// PropertySearchRequest is bound from query parameters. Price and radius
// windows are resolved against the listing's active price and geocoded
// coordinates.
type PropertySearchRequest struct {
	City           string   `json:"city"`
	Purpose        *string  `json:"purpose" validate:"omitempty,oneof=SALE RENT SALE_AND_RENT"`
	Status         *string  `json:"status" validate:"omitempty,oneof=PENDING AVAILABLE RESERVED SOLD"`
	MinPrice       *float64 `json:"min_price" validate:"omitempty,min=0"`
	MaxPrice       *float64 `json:"max_price" validate:"omitempty,min=0"`
	MinBedrooms    int      `json:"min_bedrooms" validate:"min=0"`
	MinGarageSpots int      `json:"min_garage_spots" validate:"min=0"`
	Lat            *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng            *float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
	RadiusMiles    *float64 `json:"radius_miles" validate:"omitempty,gt=0"`
}

type PropertyListResponse struct {
	Properties []*models.Property `json:"properties"`
	Total      int                `json:"total"`
}
