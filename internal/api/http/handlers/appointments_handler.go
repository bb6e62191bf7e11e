package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medisphere/care-service/internal/api/dto"
	"github.com/medisphere/care-service/internal/auth"
	"github.com/medisphere/care-service/internal/service"
	apperrors "github.com/medisphere/care-service/pkg/util/errorutil"
)

// AppointmentsHandler exposes the booking endpoints. The policy table has
// already authorized the request; handlers only resolve the identity.
type AppointmentsHandler struct {
	appointments *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appointmentService}
}

// Create handles POST /api/appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AppointmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PractitionerID == "" || req.ScheduledAt.IsZero() {
		return fiber.NewError(http.StatusBadRequest, "practitioner_id and scheduled_at required")
	}

	appointment, err := h.appointments.Book(c.Context(), identity, req.PractitionerID, req.ScheduledAt, req.Reason)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.FromAppointment(*appointment),
	})
}

// ListMine handles GET /api/appointments.
func (h *AppointmentsHandler) ListMine(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	appointments, err := h.appointments.ListForPatient(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromAppointments(appointments)})
}

// ListSchedule handles GET /api/practitioners/appointments.
func (h *AppointmentsHandler) ListSchedule(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	appointments, err := h.appointments.ListForPractitioner(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromAppointments(appointments)})
}

// Profile handles GET /api/profile.
func (h *AppointmentsHandler) Profile(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	patient, err := h.appointments.GetPatientProfile(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"id":     patient.ID,
			"name":   patient.Name,
			"email":  patient.Email,
			"status": patient.Status,
		},
	})
}

// ListPractitioners handles GET /api/admin/practitioners.
func (h *AppointmentsHandler) ListPractitioners(c *fiber.Ctx) error {
	practitioners, err := h.appointments.ListPractitioners(c.Context())
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(practitioners))
	for _, p := range practitioners {
		out = append(out, fiber.Map{
			"id":        p.ID,
			"name":      p.Name,
			"email":     p.Email,
			"role":      p.Role,
			"specialty": p.Specialty,
			"active":    p.Active,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}
