package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medisphere/care-service/internal/api/http/handlers"
	"github.com/medisphere/care-service/internal/auth"
	"github.com/medisphere/care-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Patients      *handlers.PatientsHandler
	Practitioners *handlers.PractitionersHandler
	Appointments  *handlers.AppointmentsHandler
	Authenticator *auth.Authenticator
	Policy        *auth.Policy
}

// DefaultPolicyRules is the ordered access table. First match wins;
// anything not listed is denied.
func DefaultPolicyRules() []auth.Rule {
	return []auth.Rule{
		{Pattern: "/health/*", Requirement: auth.Public()},
		{Pattern: "/auth/*", Requirement: auth.Public()},
		{Pattern: "/api/admin/*", Requirement: auth.Role(domain.RoleAdmin)},
		{Pattern: "/api/practitioners/*", Requirement: auth.Role(domain.RoleDoctor)},
		{Pattern: "/api/*", Requirement: auth.Authenticated()},
	}
}

// RegisterRoutes wires HTTP routes behind the authenticator and policy.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Authenticator.Handle)
	app.Use(cfg.Policy.Enforce())

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/patients/register", cfg.Patients.Register)
	authGroup.Post("/patients/login", cfg.Patients.Login)
	authGroup.Post("/practitioners/login", cfg.Practitioners.Login)

	api := app.Group("/api")
	api.Get("/profile", cfg.Appointments.Profile)
	api.Post("/appointments", cfg.Appointments.Create)
	api.Get("/appointments", cfg.Appointments.ListMine)
	api.Get("/practitioners/appointments", cfg.Appointments.ListSchedule)
	api.Get("/admin/practitioners", cfg.Appointments.ListPractitioners)
}
