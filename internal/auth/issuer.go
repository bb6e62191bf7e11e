package auth

import (
	"time"

	"github.com/medisphere/care-service/internal/domain"
)

// Issuer mints tokens for verified identities. Stateless: issued tokens
// are not persisted anywhere.
type Issuer struct {
	codec *Codec
	ttl   time.Duration
	now   func() time.Time
}

// NewIssuer builds an issuer with the configured time-to-live.
func NewIssuer(codec *Codec, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{codec: codec, ttl: ttl, now: time.Now}
}

// Issue signs a fresh token for the identity, valid from now for the
// configured TTL.
func (i *Issuer) Issue(identity domain.Identity) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)
	token, err := i.codec.Encode(identity, issuedAt, expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// TTL returns the configured validity window.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
