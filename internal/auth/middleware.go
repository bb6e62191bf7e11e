package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medisphere/care-service/internal/domain"
)

const identityKey = "auth_identity"

// Authenticator resolves bearer tokens into request identities. It never
// rejects a request itself: an absent, malformed, expired or forged token
// leaves the request anonymous, and the authorization policy decides
// whether anonymous is enough for the path.
type Authenticator struct {
	verifier *Verifier
	logger   *zap.Logger
}

// NewAuthenticator constructs the middleware.
func NewAuthenticator(verifier *Verifier, logger *zap.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, logger: logger}
}

// Handle runs once per request, before any authorization decision.
func (a *Authenticator) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return c.Next()
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	identity, err := a.verifier.Verify(parts[1])
	if err != nil {
		a.logger.Debug("bearer token rejected", zap.Error(err))
		return c.Next()
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller, if any.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
