package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medisphere/care-service/internal/auth"
	"github.com/medisphere/care-service/internal/domain"
	"github.com/medisphere/care-service/internal/observability"
)

// newGatedApp wires the real middleware chain (error handling, request
// logging, authenticator, policy) around stub handlers, so these tests
// cover exactly what a request traverses before any business logic.
func newGatedApp(t *testing.T, codec *auth.Codec) *fiber.App {
	t.Helper()
	logger := zap.NewNop()

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	app.Use(auth.NewAuthenticator(auth.NewVerifier(codec), logger).Handle)
	app.Use(auth.NewPolicy(DefaultPolicyRules()).Enforce())

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/health/live", ok)
	app.Post("/auth/patients/login", ok)
	app.Get("/api/profile", ok)
	app.Get("/api/practitioners/appointments", ok)
	app.Get("/api/admin/practitioners", ok)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == nethttp.StatusOK || resp.StatusCode == nethttp.StatusCreated {
		return resp.StatusCode, ""
	}
	var decoded struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded.Error.Code
}

func TestGatedApp_PublicPaths(t *testing.T) {
	codec := auth.NewCodec("test-secret")
	app := newGatedApp(t, codec)

	status, _ := doRequest(t, app, nethttp.MethodGet, "/health/live", "")
	assert.Equal(t, nethttp.StatusOK, status)

	// a tampered token never gates a public path
	token, _, err := auth.NewIssuer(codec, time.Hour).Issue(domain.Identity{Subject: "p@e.c"})
	require.NoError(t, err)
	tampered := token[:len(token)-4] + "AAAA"
	status, _ = doRequest(t, app, nethttp.MethodPost, "/auth/patients/login", tampered)
	assert.Equal(t, nethttp.StatusOK, status)
}

func TestGatedApp_ProtectedPathRequiresToken(t *testing.T) {
	codec := auth.NewCodec("test-secret")
	app := newGatedApp(t, codec)

	status, code := doRequest(t, app, nethttp.MethodGet, "/api/profile", "")
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", code)
}

func TestGatedApp_LoginThenUseThenExpire(t *testing.T) {
	codec := auth.NewCodec("test-secret")
	app := newGatedApp(t, codec)

	// token minted at T0 with a 24h window, presented at T0+1h
	t0 := time.Now().Add(-time.Hour)
	token, err := codec.Encode(domain.Identity{Subject: "patient@example.com"},
		t0, t0.Add(24*time.Hour))
	require.NoError(t, err)

	status, _ := doRequest(t, app, nethttp.MethodGet, "/api/profile", token)
	assert.Equal(t, nethttp.StatusOK, status)

	// the same token replayed after the window has elapsed
	t0 = time.Now().Add(-25 * time.Hour)
	replayed, err := codec.Encode(domain.Identity{Subject: "patient@example.com"},
		t0, t0.Add(24*time.Hour))
	require.NoError(t, err)

	status, code := doRequest(t, app, nethttp.MethodGet, "/api/profile", replayed)
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", code)
}

func TestGatedApp_RoleGates(t *testing.T) {
	codec := auth.NewCodec("test-secret")
	app := newGatedApp(t, codec)
	issuer := auth.NewIssuer(codec, time.Hour)

	doctor := domain.RoleDoctor
	doctorToken, _, err := issuer.Issue(domain.Identity{Subject: "d@c.e", Role: &doctor})
	require.NoError(t, err)

	admin := domain.RoleAdmin
	adminToken, _, err := issuer.Issue(domain.Identity{Subject: "a@c.e", Role: &admin})
	require.NoError(t, err)

	patientToken, _, err := issuer.Issue(domain.Identity{Subject: "p@e.c"})
	require.NoError(t, err)

	status, _ := doRequest(t, app, nethttp.MethodGet, "/api/practitioners/appointments", doctorToken)
	assert.Equal(t, nethttp.StatusOK, status)

	status, code := doRequest(t, app, nethttp.MethodGet, "/api/admin/practitioners", doctorToken)
	assert.Equal(t, nethttp.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", code)

	status, _ = doRequest(t, app, nethttp.MethodGet, "/api/admin/practitioners", adminToken)
	assert.Equal(t, nethttp.StatusOK, status)

	status, code = doRequest(t, app, nethttp.MethodGet, "/api/practitioners/appointments", patientToken)
	assert.Equal(t, nethttp.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", code)
}

func TestGatedApp_UnlistedPathDenied(t *testing.T) {
	codec := auth.NewCodec("test-secret")
	app := newGatedApp(t, codec)

	status, code := doRequest(t, app, nethttp.MethodGet, "/internal/debug", "")
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", code)
}
