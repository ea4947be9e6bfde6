package services

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/vistaimoveis/brokerage-service/internal/constants"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

// Geocoder resolves a street address to coordinates. Failures are soft:
// callers store nil coordinates and the listing simply opts out of
// proximity search.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng *float64)
}

type mapsGeocoder struct {
	client *maps.Client
}

// NewGeocoder returns a Google Maps backed geocoder, or a no-op one when
// no API key is configured.
func NewGeocoder(apiKey string) Geocoder {
	if apiKey == "" {
		utils.Logger.Warn("GMAPS_API_KEY not set; geocoding disabled")
		return &noopGeocoder{}
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		utils.Logger.WithError(err).Warn("Failed to create Google Maps client; geocoding disabled")
		return &noopGeocoder{}
	}
	return &mapsGeocoder{client: client}
}

func (g *mapsGeocoder) Geocode(ctx context.Context, address string) (*float64, *float64) {
	ctx, cancel := context.WithTimeout(ctx, constants.GeocodeTimeout)
	defer cancel()

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		utils.Logger.WithError(err).Warnf("Geocoding failed for %q", address)
		return nil, nil
	}
	if len(results) == 0 {
		utils.Logger.Warnf("Geocoding returned no results for %q", address)
		return nil, nil
	}

	loc := results[0].Geometry.Location
	return utils.Ptr(loc.Lat), utils.Ptr(loc.Lng)
}

type noopGeocoder struct{}

func (*noopGeocoder) Geocode(context.Context, string) (*float64, *float64) {
	return nil, nil
}

// FormatFullAddress builds the single-line address handed to the geocoder.
func FormatFullAddress(address, city, state, zipCode string) string {
	return fmt.Sprintf("%s, %s, %s %s", address, city, state, zipCode)
}
