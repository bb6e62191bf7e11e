package domain

// Role enumerates privileged account roles carried in tokens.
// Patient tokens carry no role.
type Role string

const (
	RoleDoctor Role = "DOCTOR"
	RoleAdmin  Role = "ADMIN"
)

// Identity is the immutable authenticated caller derived from a token.
// Subject is the account email; Role is nil for patients.
type Identity struct {
	Subject string
	Role    *Role
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role Role) bool {
	return i.Role != nil && *i.Role == role
}
