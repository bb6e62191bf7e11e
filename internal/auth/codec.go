package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/medisphere/care-service/internal/domain"
)

// Codec encodes and decodes HMAC-SHA256 signed tokens. It is pure given
// the key: Decode verifies the signature but leaves expiry to the Verifier.
type Codec struct {
	secret []byte
}

// NewCodec builds a codec over the shared signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Claims describes the token payload.
type Claims struct {
	Role *domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Encode signs a token carrying the identity and its validity window.
func (c *Codec) Encode(identity domain.Identity, issuedAt, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: identity.Subject,
		},
	}
	if !issuedAt.IsZero() {
		claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	}
	if !expiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature and returns the embedded identity and
// validity window. Expiry is not checked here. A zero expiresAt means the
// token carried no expiry claim.
func (c *Codec) Decode(tokenStr string) (domain.Identity, time.Time, time.Time, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Identity{}, time.Time{}, time.Time{}, ErrInvalidSignature
		default:
			return domain.Identity{}, time.Time{}, time.Time{}, ErrInvalidFormat
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return domain.Identity{}, time.Time{}, time.Time{}, ErrInvalidFormat
	}

	identity := domain.Identity{Subject: claims.Subject, Role: claims.Role}
	var issuedAt, expiresAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return identity, issuedAt, expiresAt, nil
}
