package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PropertyStatus int

const (
	PropertyPending PropertyStatus = iota
	PropertyAvailable
	PropertyReserved
	PropertySold
)

func (s PropertyStatus) String() string {
	switch s {
	case PropertyPending:
		return "PENDING"
	case PropertyAvailable:
		return "AVAILABLE"
	case PropertyReserved:
		return "RESERVED"
	case PropertySold:
		return "SOLD"
	default:
		return "UNKNOWN"
	}
}

func ParsePropertyStatus(s string) (PropertyStatus, error) {
	switch s {
	case "PENDING":
		return PropertyPending, nil
	case "AVAILABLE":
		return PropertyAvailable, nil
	case "RESERVED":
		return PropertyReserved, nil
	case "SOLD":
		return PropertySold, nil
	default:
		return -1, fmt.Errorf("invalid property status: %q", s)
	}
}

func (s PropertyStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *PropertyStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParsePropertyStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Purpose int

const (
	PurposeSale Purpose = iota
	PurposeRent
	PurposeSaleAndRent
)

func (p Purpose) String() string {
	switch p {
	case PurposeSale:
		return "SALE"
	case PurposeRent:
		return "RENT"
	case PurposeSaleAndRent:
		return "SALE_AND_RENT"
	default:
		return "UNKNOWN"
	}
}

func ParsePurpose(s string) (Purpose, error) {
	switch s {
	case "SALE":
		return PurposeSale, nil
	case "RENT":
		return PurposeRent, nil
	case "SALE_AND_RENT":
		return PurposeSaleAndRent, nil
	default:
		return -1, fmt.Errorf("invalid purpose: %q", s)
	}
}

// IncludesRent reports whether the listing can be rented.
func (p Purpose) IncludesRent() bool {
	return p == PurposeRent || p == PurposeSaleAndRent
}

func (p Purpose) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

func (p *Purpose) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParsePurpose(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Property is a listing owned by the broker who created it.
type Property struct {
	Versioned

	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	ZipCode     string         `json:"zip_code"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	GarageSpots int            `json:"garage_spots"`
	AreaM2      float64        `json:"area_m2"`
	PriceSale   float64        `json:"price_sale"`
	PriceRent   *float64       `json:"price_rent,omitempty"`
	Purpose     Purpose        `json:"purpose"`
	Status      PropertyStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (p *Property) GetID() string {
	return p.ID.String()
}

// ActivePrice returns the price a range filter compares against. The rent
// price is the target only when the search itself asks for rentals and the
// listing actually carries one; everything else falls back to the sale price.
func (p *Property) ActivePrice(searchPurpose *Purpose) float64 {
	if searchPurpose != nil && *searchPurpose == PurposeRent &&
		p.Purpose.IncludesRent() && p.PriceRent != nil {
		return *p.PriceRent
	}
	return p.PriceSale
}

// HasCoordinates reports whether geocoding has populated the listing.
func (p *Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
