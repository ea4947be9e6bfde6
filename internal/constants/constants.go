package constants

import "time"

const (
	AppName = "brokerage-service"

	// Token lifetimes
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour

	// Provisioning passwords handed to new dashboard users
	ProvisioningPasswordLength = 12

	// Geocoding
	GeocodeTimeout = 3 * time.Second

	// Search
	DefaultSearchRadiusMiles = 25.0

	// Database connect retries at startup
	DBMaxRetries     = 5
	DBInitialBackoff = 2 * time.Second
)
