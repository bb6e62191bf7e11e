package auth

import "errors"

// Codec and verifier failures are values, never panics; the request
// authenticator downgrades all of them to an anonymous request.
var (
	// ErrInvalidFormat means the token string is not a well-formed token.
	ErrInvalidFormat = errors.New("token format invalid")

	// ErrInvalidSignature means the payload does not match its signature.
	ErrInvalidSignature = errors.New("token signature invalid")

	// ErrInvalidToken means a decoded token fails verification for a
	// reason other than expiry (empty subject, missing expiry, bad decode).
	ErrInvalidToken = errors.New("token invalid")

	// ErrTokenExpired means the token is well-formed and authentic but
	// its validity window has elapsed.
	ErrTokenExpired = errors.New("token expired")
)
