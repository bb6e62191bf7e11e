package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medisphere/care-service/internal/api/dto"
	"github.com/medisphere/care-service/internal/service"
)

// PractitionersHandler exposes auth endpoints for practitioners.
type PractitionersHandler struct {
	auth *service.AuthService
}

// NewPractitionersHandler constructs handler.
func NewPractitionersHandler(authService *service.AuthService) *PractitionersHandler {
	return &PractitionersHandler{auth: authService}
}

// Login handles POST /auth/practitioners/login.
func (h *PractitionersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	practitioner, token, exp, err := h.auth.LoginPractitioner(c.Context(), req.Email, req.Password)
	if err != nil {
		return loginError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"practitioner": fiber.Map{
				"id":    practitioner.ID,
				"name":  practitioner.Name,
				"email": practitioner.Email,
				"role":  practitioner.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
