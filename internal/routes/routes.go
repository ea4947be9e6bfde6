package routes

// Route paths, grouped the way the router mounts them.
const (
	Health = "/health"

	// Public surface
	PublicProperties       = "/api/v1/public/properties"
	PublicPropertyByID     = "/api/v1/public/properties/{id}"
	PublicLeads            = "/api/v1/public/leads"
	PublicVisits           = "/api/v1/public/visits"
	PublicMortgageSimulate = "/api/v1/public/mortgage/simulate"

	// Session
	AuthLogin    = "/api/v1/auth/login"
	AuthRefresh  = "/api/v1/auth/refresh"
	AuthLogout   = "/api/v1/auth/logout"
	AuthPassword = "/api/v1/auth/password"

	// Dashboard
	DashboardProperties    = "/api/v1/dashboard/properties"
	DashboardPropertyByID  = "/api/v1/dashboard/properties/{id}"
	DashboardVisits        = "/api/v1/dashboard/visits"
	DashboardVisitByID     = "/api/v1/dashboard/visits/{id}"
	DashboardVisitAssign   = "/api/v1/dashboard/visits/{id}/assign"
	DashboardLeads         = "/api/v1/dashboard/leads"
	DashboardLeadByID      = "/api/v1/dashboard/leads/{id}"
	DashboardLeadAssign    = "/api/v1/dashboard/leads/{id}/assign"
	DashboardUsers         = "/api/v1/dashboard/users"
	DashboardUserByID      = "/api/v1/dashboard/users/{id}"
	DashboardUserResetPass = "/api/v1/dashboard/users/{id}/reset-password"
)
