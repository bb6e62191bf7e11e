package auth

import (
	"time"

	"github.com/medisphere/care-service/internal/domain"
)

// Verifier validates tokens and extracts the caller identity. Safe for
// unlimited concurrent use: it reads only the codec key and its clock.
type Verifier struct {
	codec *Codec
	now   func() time.Time
}

// NewVerifier builds a verifier over the shared codec.
func NewVerifier(codec *Codec) *Verifier {
	return &Verifier{codec: codec, now: time.Now}
}

// Verify decodes the token and checks its validity window. Returns
// ErrTokenExpired for an authentic token past its window, ErrInvalidToken
// for everything else.
func (v *Verifier) Verify(tokenStr string) (domain.Identity, error) {
	identity, _, expiresAt, err := v.codec.Decode(tokenStr)
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}
	if identity.Subject == "" || expiresAt.IsZero() {
		return domain.Identity{}, ErrInvalidToken
	}
	if v.now().After(expiresAt) {
		return domain.Identity{}, ErrTokenExpired
	}
	return identity, nil
}
