package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisphere/care-service/internal/domain"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	role := domain.RoleDoctor
	identity := domain.Identity{Subject: "doc@clinic.example", Role: &role}
	issuedAt := time.Unix(1700000000, 0)
	expiresAt := issuedAt.Add(24 * time.Hour)

	token, err := codec.Encode(identity, issuedAt, expiresAt)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, gotIssued, gotExpires, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, identity.Subject, decoded.Subject)
	require.NotNil(t, decoded.Role)
	assert.Equal(t, role, *decoded.Role)
	assert.True(t, gotIssued.Equal(issuedAt))
	assert.True(t, gotExpires.Equal(expiresAt))
}

func TestCodec_RoundTripWithoutRole(t *testing.T) {
	codec := NewCodec("test-secret")

	identity := domain.Identity{Subject: "patient@example.com"}
	issuedAt := time.Unix(1700000000, 0)

	token, err := codec.Encode(identity, issuedAt, issuedAt.Add(time.Hour))
	require.NoError(t, err)

	decoded, _, _, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "patient@example.com", decoded.Subject)
	assert.Nil(t, decoded.Role)
}

func TestCodec_DecodeMalformed(t *testing.T) {
	codec := NewCodec("test-secret")

	for _, tokenStr := range []string{"", "garbage", "a.b", "a.b.c.d", "!!!.???.***"} {
		_, _, _, err := codec.Decode(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidFormat, "token %q", tokenStr)
	}
}

func TestCodec_DecodeWrongKey(t *testing.T) {
	issuerCodec := NewCodec("key-one")
	verifierCodec := NewCodec("key-two")

	token, err := issuerCodec.Encode(domain.Identity{Subject: "a@b.c"},
		time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, _, _, err = verifierCodec.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestCodec_DecodeFlippedSignatureBit(t *testing.T) {
	codec := NewCodec("test-secret")

	token, err := codec.Encode(domain.Identity{Subject: "a@b.c"},
		time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	// single-bit mutations across the signature must be rejected
	for byteIdx := 0; byteIdx < len(sig); byteIdx += 7 {
		flipped := make([]byte, len(sig))
		copy(flipped, sig)
		flipped[byteIdx] ^= 0x01

		tampered := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(flipped)
		_, _, _, err := codec.Decode(tampered)
		assert.ErrorIs(t, err, ErrInvalidSignature, "flipped byte %d", byteIdx)
	}
}

func TestCodec_DecodeMutatedPayload(t *testing.T) {
	codec := NewCodec("test-secret")

	token, err := codec.Encode(domain.Identity{Subject: "patient@example.com"},
		time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	forged := strings.Replace(string(payload), "patient@example.com", "someone@example.com", 1)
	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(forged)) + "." + parts[2]

	_, _, _, err = codec.Decode(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
