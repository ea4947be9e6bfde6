package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/vistaimoveis/brokerage-service/internal/app"
	"github.com/vistaimoveis/brokerage-service/internal/config"
	"github.com/vistaimoveis/brokerage-service/internal/constants"
	"github.com/vistaimoveis/brokerage-service/internal/controllers"
	"github.com/vistaimoveis/brokerage-service/internal/middleware"
	"github.com/vistaimoveis/brokerage-service/internal/repositories"
	"github.com/vistaimoveis/brokerage-service/internal/routes"
	"github.com/vistaimoveis/brokerage-service/internal/services"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

func main() {
	utils.InitLogger(constants.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize brokerage-service:", err)
	}
	defer application.Close()

	if err := application.Migrate(); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to run migrations")
	}

	userRepo := repositories.NewUserRepository(application.DB)
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	leadRepo := repositories.NewLeadRepository(application.DB)
	visitRepo := repositories.NewVisitRepository(application.DB)
	refreshRepo := repositories.NewRefreshTokenRepository(application.DB)

	if err := application.EnsureBootstrapAdmin(context.Background(), userRepo); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to seed bootstrap admin")
	}

	notifier := services.NewNotificationService(cfg)
	geocoder := services.NewGeocoder(cfg.GoogleMapsAPIKey)

	authService := services.NewAuthService(cfg, userRepo, refreshRepo)
	userService := services.NewUserService(userRepo, refreshRepo, notifier)
	propertyService := services.NewPropertyService(propertyRepo, geocoder)
	leadService := services.NewLeadService(leadRepo, userRepo)
	visitService := services.NewVisitService(visitRepo, propertyRepo, userRepo, notifier)

	healthController := controllers.NewHealthController(application.DB)
	authController := controllers.NewAuthController(authService)
	publicController := controllers.NewPublicController(propertyService, leadService, visitService)
	propertyController := controllers.NewPropertyController(propertyService)
	leadController := controllers.NewLeadController(leadService)
	visitController := controllers.NewVisitController(visitService)
	userController := controllers.NewUserController(userService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.Health).Methods(http.MethodGet)
	router.HandleFunc(routes.PublicProperties, publicController.SearchProperties).Methods(http.MethodGet)
	router.HandleFunc(routes.PublicPropertyByID, publicController.GetProperty).Methods(http.MethodGet)
	router.HandleFunc(routes.PublicLeads, publicController.CreateLead).Methods(http.MethodPost)
	router.HandleFunc(routes.PublicVisits, publicController.CreateVisit).Methods(http.MethodPost)
	router.HandleFunc(routes.PublicMortgageSimulate, publicController.SimulateMortgage).Methods(http.MethodPost)

	// Session
	router.HandleFunc(routes.AuthLogin, authController.Login).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthRefresh, authController.Refresh).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogout, authController.Logout).Methods(http.MethodPost)

	// Password change: authenticated but exempt from the credential gate,
	// otherwise a provisioned account could never clear the flag.
	passwordChange := router.NewRoute().Subrouter()
	passwordChange.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))
	passwordChange.HandleFunc(routes.AuthPassword, authController.ChangePassword).Methods(http.MethodPost)

	// Dashboard
	secured := router.NewRoute().Subrouter()
	secured.Use(
		middleware.AuthMiddleware(cfg.RSAPublicKey),
		middleware.CredentialGate(routes.AuthPassword),
	)

	secured.HandleFunc(routes.DashboardProperties, propertyController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardProperties, propertyController.Create).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardPropertyByID, propertyController.GetByID).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardPropertyByID, propertyController.Update).Methods(http.MethodPut)
	secured.HandleFunc(routes.DashboardPropertyByID, propertyController.Delete).Methods(http.MethodDelete)

	secured.HandleFunc(routes.DashboardVisits, visitController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardVisitByID, visitController.GetByID).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardVisitByID, visitController.Update).Methods(http.MethodPut)
	secured.HandleFunc(routes.DashboardVisitByID, visitController.Delete).Methods(http.MethodDelete)

	secured.HandleFunc(routes.DashboardLeads, leadController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardLeadByID, leadController.GetByID).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardLeadByID, leadController.Update).Methods(http.MethodPut)
	secured.HandleFunc(routes.DashboardLeadByID, leadController.Delete).Methods(http.MethodDelete)

	// Admin-only
	adminOnly := router.NewRoute().Subrouter()
	adminOnly.Use(
		middleware.AuthMiddleware(cfg.RSAPublicKey),
		middleware.CredentialGate(routes.AuthPassword),
		middleware.RequireAdmin(),
	)

	adminOnly.HandleFunc(routes.DashboardVisitAssign, visitController.Assign).Methods(http.MethodPost)
	adminOnly.HandleFunc(routes.DashboardLeadAssign, leadController.Assign).Methods(http.MethodPost)

	adminOnly.HandleFunc(routes.DashboardUsers, userController.Create).Methods(http.MethodPost)
	adminOnly.HandleFunc(routes.DashboardUsers, userController.List).Methods(http.MethodGet)
	adminOnly.HandleFunc(routes.DashboardUserByID, userController.GetByID).Methods(http.MethodGet)
	adminOnly.HandleFunc(routes.DashboardUserByID, userController.Update).Methods(http.MethodPut)
	adminOnly.HandleFunc(routes.DashboardUserByID, userController.Delete).Methods(http.MethodDelete)
	adminOnly.HandleFunc(routes.DashboardUserResetPass, userController.ResetPassword).Methods(http.MethodPost)

	c := cron.New()
	if _, cronErr := c.AddFunc("@hourly", func() {
		authService.CleanupExpiredTokens(context.Background())
	}); cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule token cleanup cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", constants.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("brokerage-service failed to start:", err)
	}
}
