package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisphere/care-service/internal/domain"
	apperrors "github.com/medisphere/care-service/pkg/util/errorutil"
)

func testPolicy() *Policy {
	return NewPolicy([]Rule{
		{Pattern: "/health/*", Requirement: Public()},
		{Pattern: "/auth/*", Requirement: Public()},
		{Pattern: "/api/admin/*", Requirement: Role(domain.RoleAdmin)},
		{Pattern: "/api/practitioners/*", Requirement: Role(domain.RoleDoctor)},
		{Pattern: "/api/*", Requirement: Authenticated()},
	})
}

func identityWithRole(subject string, role domain.Role) *domain.Identity {
	return &domain.Identity{Subject: subject, Role: &role}
}

func denialCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestPolicy_PublicPaths(t *testing.T) {
	policy := testPolicy()

	assert.NoError(t, policy.Authorize("/health/live", nil))
	assert.NoError(t, policy.Authorize("/auth/patients/login", nil))

	// public paths are never gated on the caller's identity
	assert.NoError(t, policy.Authorize("/health/ready", identityWithRole("d@c.e", domain.RoleDoctor)))
}

func TestPolicy_AuthenticatedPaths(t *testing.T) {
	policy := testPolicy()

	err := policy.Authorize("/api/profile", nil)
	assert.Equal(t, "UNAUTHORIZED", denialCode(t, err))

	patient := &domain.Identity{Subject: "patient@example.com"}
	assert.NoError(t, policy.Authorize("/api/profile", patient))
	assert.NoError(t, policy.Authorize("/api/appointments", patient))
}

func TestPolicy_RolePaths(t *testing.T) {
	policy := testPolicy()

	// anonymous caller: 401, not 403
	err := policy.Authorize("/api/admin/practitioners", nil)
	assert.Equal(t, "UNAUTHORIZED", denialCode(t, err))

	// authenticated without the role: 403
	patient := &domain.Identity{Subject: "patient@example.com"}
	err = policy.Authorize("/api/admin/practitioners", patient)
	assert.Equal(t, "FORBIDDEN", denialCode(t, err))

	// doctor is not admin
	err = policy.Authorize("/api/admin/practitioners", identityWithRole("d@c.e", domain.RoleDoctor))
	assert.Equal(t, "FORBIDDEN", denialCode(t, err))

	assert.NoError(t, policy.Authorize("/api/admin/practitioners", identityWithRole("a@c.e", domain.RoleAdmin)))
	assert.NoError(t, policy.Authorize("/api/practitioners/appointments", identityWithRole("d@c.e", domain.RoleDoctor)))
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	policy := testPolicy()

	// /api/admin/* is declared before /api/*, so a plain authenticated
	// patient is rejected even though /api/* would permit them
	patient := &domain.Identity{Subject: "patient@example.com"}
	err := policy.Authorize("/api/admin/practitioners", patient)
	assert.Equal(t, "FORBIDDEN", denialCode(t, err))
}

func TestPolicy_DefaultDeny(t *testing.T) {
	policy := testPolicy()

	err := policy.Authorize("/internal/debug", nil)
	assert.Equal(t, "UNAUTHORIZED", denialCode(t, err))

	err = policy.Authorize("/internal/debug", identityWithRole("a@c.e", domain.RoleAdmin))
	assert.Equal(t, "FORBIDDEN", denialCode(t, err))
}

func TestMatchPattern(t *testing.T) {
	assert.True(t, matchPattern("/api/*", "/api/profile"))
	assert.True(t, matchPattern("/api/*", "/api"))
	assert.True(t, matchPattern("/api/*", "/api/admin/practitioners"))
	assert.False(t, matchPattern("/api/*", "/apiary"))
	assert.True(t, matchPattern("/health/live", "/health/live"))
	assert.False(t, matchPattern("/health/live", "/health/ready"))
}
