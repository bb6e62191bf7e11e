package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisphere/care-service/internal/domain"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestVerifier_IssueThenVerify(t *testing.T) {
	codec := NewCodec("test-secret")
	issuer := NewIssuer(codec, 24*time.Hour)
	verifier := NewVerifier(codec)

	role := domain.RoleAdmin
	identity := domain.Identity{Subject: "admin@clinic.example", Role: &role}

	token, expiresAt, err := issuer.Issue(identity)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	verified, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity.Subject, verified.Subject)
	require.NotNil(t, verified.Role)
	assert.Equal(t, role, *verified.Role)
}

func TestVerifier_Expired(t *testing.T) {
	codec := NewCodec("test-secret")
	ttl := 24 * time.Hour

	issuedAt := time.Unix(1700000000, 0)
	issuer := NewIssuer(codec, ttl)
	issuer.now = fixedClock(issuedAt)

	token, expiresAt, err := issuer.Issue(domain.Identity{Subject: "patient@example.com"})
	require.NoError(t, err)

	verifier := NewVerifier(codec)

	// one second inside the window still verifies
	verifier.now = fixedClock(expiresAt.Add(-time.Second))
	_, err = verifier.Verify(token)
	require.NoError(t, err)

	// one second past the window is expired, not invalid
	verifier.now = fixedClock(expiresAt.Add(time.Second))
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// a day later, still expired
	verifier.now = fixedClock(issuedAt.Add(ttl + time.Hour))
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifier_MalformedAndForged(t *testing.T) {
	codec := NewCodec("test-secret")
	verifier := NewVerifier(codec)

	_, err := verifier.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherCodec := NewCodec("other-secret")
	forged, err := otherCodec.Encode(domain.Identity{Subject: "a@b.c"},
		time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = verifier.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifier_EmptySubject(t *testing.T) {
	codec := NewCodec("test-secret")
	verifier := NewVerifier(codec)

	token, err := codec.Encode(domain.Identity{Subject: ""},
		time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifier_MissingExpiry(t *testing.T) {
	codec := NewCodec("test-secret")
	verifier := NewVerifier(codec)

	token, err := codec.Encode(domain.Identity{Subject: "a@b.c"},
		time.Now(), time.Time{})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
