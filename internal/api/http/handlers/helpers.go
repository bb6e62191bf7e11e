package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/medisphere/care-service/pkg/util/errorutil"
)

// loginError keeps throttle and conflict responses intact and maps every
// other login failure to 401 without leaking which check failed.
func loginError(err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
}
