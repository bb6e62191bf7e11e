package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medisphere/care-service/internal/api/dto"
	"github.com/medisphere/care-service/internal/service"
)

// PatientsHandler exposes auth endpoints for patients.
type PatientsHandler struct {
	auth *service.AuthService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(authService *service.AuthService) *PatientsHandler {
	return &PatientsHandler{auth: authService}
}

// Register handles POST /auth/patients/register.
func (h *PatientsHandler) Register(c *fiber.Ctx) error {
	var req dto.PatientRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	patient, token, exp, err := h.auth.RegisterPatient(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"patient": fiber.Map{
				"id":    patient.ID,
				"name":  patient.Name,
				"email": patient.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/patients/login.
func (h *PatientsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	patient, token, exp, err := h.auth.LoginPatient(c.Context(), req.Email, req.Password)
	if err != nil {
		return loginError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"patient": fiber.Map{
				"id":    patient.ID,
				"name":  patient.Name,
				"email": patient.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
