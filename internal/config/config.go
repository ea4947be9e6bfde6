package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/vistaimoveis/brokerage-service/internal/constants"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

// Config holds all application configuration, including secrets.
type Config struct {
	AppPort string
	AppUrl  string
	DBUrl   string

	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	// Outbound notifications. Empty keys disable the integration; the
	// notification layer degrades to a no-op.
	SendGridAPIKey      string
	SendGridFromEmail   string
	SendGridSandboxMode bool
	TwilioAccountSID    string
	TwilioAuthToken     string
	TwilioFromPhone     string

	// Geocoding. Empty key disables it; listings keep nil coordinates.
	GoogleMapsAPIKey string

	// Bootstrap admin seeded when the users table has no ADMIN rows.
	BootstrapAdminEmail    string
	BootstrapAdminPassword string

	CORSAllowedOrigins []string
}

// LoadConfig reads the environment (optionally primed from a .env file)
// and returns a *Config. Missing required values are fatal.
func LoadConfig() *Config {
	//----------------------------------------------------------------------
	// Prime the environment from .env when present (local development).
	//----------------------------------------------------------------------
	if err := godotenv.Load(); err == nil {
		utils.Logger.Debug("Loaded environment from .env file")
	}

	//----------------------------------------------------------------------
	// Required environment variables.
	//----------------------------------------------------------------------
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	//----------------------------------------------------------------------
	// RSA signing keys (base64-wrapped PEM).
	//----------------------------------------------------------------------
	privateKeyBase64 := os.Getenv("RSA_PRIVATE_KEY_BASE64")
	if privateKeyBase64 == "" {
		utils.Logger.Fatal("RSA_PRIVATE_KEY_BASE64 env var is missing")
	}
	privateKeyPEM, err := base64.StdEncoding.DecodeString(privateKeyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 private key")
	}
	if block, _ := pem.Decode(privateKeyPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for private key")
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	publicKeyBase64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if publicKeyBase64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	publicKeyPEM, err := base64.StdEncoding.DecodeString(publicKeyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 public key")
	}
	if block, _ := pem.Decode(publicKeyPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	//----------------------------------------------------------------------
	// Bootstrap admin. Required so a fresh deployment is reachable.
	//----------------------------------------------------------------------
	bootstrapEmail := os.Getenv("BOOTSTRAP_ADMIN_EMAIL")
	if bootstrapEmail == "" {
		utils.Logger.Fatal("BOOTSTRAP_ADMIN_EMAIL env var is missing")
	}
	bootstrapPassword := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if bootstrapPassword == "" {
		utils.Logger.Fatal("BOOTSTRAP_ADMIN_PASSWORD env var is missing")
	}

	//----------------------------------------------------------------------
	// Optional integrations.
	//----------------------------------------------------------------------
	sendGridAPIKey := os.Getenv("SENDGRID_API_KEY")
	sendGridFromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if sendGridAPIKey != "" && sendGridFromEmail == "" {
		utils.Logger.Fatal("SENDGRID_FROM_EMAIL env var is missing (required with SENDGRID_API_KEY)")
	}
	sendGridSandboxMode := os.Getenv("SENDGRID_SANDBOX_MODE") == "true"

	twilioAccountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	twilioAuthToken := os.Getenv("TWILIO_AUTH_TOKEN")
	twilioFromPhone := os.Getenv("TWILIO_FROM_PHONE")
	if twilioAccountSID != "" && (twilioAuthToken == "" || twilioFromPhone == "") {
		utils.Logger.Fatal("TWILIO_AUTH_TOKEN and TWILIO_FROM_PHONE env vars are required with TWILIO_ACCOUNT_SID")
	}

	googleMapsAPIKey := os.Getenv("GMAPS_API_KEY")

	corsOrigins := []string{appUrl}
	if extra := os.Getenv("CORS_ALLOWED_ORIGIN"); extra != "" {
		corsOrigins = append(corsOrigins, extra)
	}

	//----------------------------------------------------------------------
	// Build and return the configuration object.
	//----------------------------------------------------------------------
	return &Config{
		AppPort:                appPort,
		AppUrl:                 appUrl,
		DBUrl:                  dbUrl,
		AccessTokenExpiry:      constants.AccessTokenTTL,
		RefreshTokenExpiry:     constants.RefreshTokenTTL,
		RSAPrivateKey:          privateKey,
		RSAPublicKey:           publicKey,
		SendGridAPIKey:         sendGridAPIKey,
		SendGridFromEmail:      sendGridFromEmail,
		SendGridSandboxMode:    sendGridSandboxMode,
		TwilioAccountSID:       twilioAccountSID,
		TwilioAuthToken:        twilioAuthToken,
		TwilioFromPhone:        twilioFromPhone,
		GoogleMapsAPIKey:       googleMapsAPIKey,
		BootstrapAdminEmail:    bootstrapEmail,
		BootstrapAdminPassword: bootstrapPassword,
		CORSAllowedOrigins:     corsOrigins,
	}
}
