package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medisphere/care-service/internal/domain"
)

// probe returns the resolved subject so tests can observe what the
// authenticator attached.
func authTestApp(t *testing.T, verifier *Verifier) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(NewAuthenticator(verifier, zap.NewNop()).Handle)
	app.Get("/probe", func(c *fiber.Ctx) error {
		if identity, ok := IdentityFromContext(c); ok {
			return c.SendString(identity.Subject)
		}
		return c.SendString("anonymous")
	})
	return app
}

func probeSubject(t *testing.T, app *fiber.App, authHeader string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestAuthenticator_AnonymousPassThrough(t *testing.T) {
	codec := NewCodec("test-secret")
	app := authTestApp(t, NewVerifier(codec))

	assert.Equal(t, "anonymous", probeSubject(t, app, ""))
	assert.Equal(t, "anonymous", probeSubject(t, app, "Basic dXNlcjpwYXNz"))
	assert.Equal(t, "anonymous", probeSubject(t, app, "Bearer"))
	assert.Equal(t, "anonymous", probeSubject(t, app, "Bearer not-a-token"))
}

func TestAuthenticator_ValidToken(t *testing.T) {
	codec := NewCodec("test-secret")
	issuer := NewIssuer(codec, time.Hour)
	app := authTestApp(t, NewVerifier(codec))

	token, _, err := issuer.Issue(domain.Identity{Subject: "patient@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "patient@example.com", probeSubject(t, app, "Bearer "+token))
	// scheme is case-insensitive
	assert.Equal(t, "patient@example.com", probeSubject(t, app, "bearer "+token))
}

func TestAuthenticator_ExpiredTokenStaysAnonymous(t *testing.T) {
	codec := NewCodec("test-secret")
	app := authTestApp(t, NewVerifier(codec))

	token, err := codec.Encode(domain.Identity{Subject: "patient@example.com"},
		time.Now().Add(-25*time.Hour), time.Now().Add(-time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "anonymous", probeSubject(t, app, "Bearer "+token))
}

func TestAuthenticator_ForgedTokenStaysAnonymous(t *testing.T) {
	codec := NewCodec("test-secret")
	otherCodec := NewCodec("other-secret")
	app := authTestApp(t, NewVerifier(codec))

	token, err := otherCodec.Encode(domain.Identity{Subject: "patient@example.com"},
		time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "anonymous", probeSubject(t, app, "Bearer "+token))
}
