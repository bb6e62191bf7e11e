package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/medisphere/care-service/internal/domain"
	apperrors "github.com/medisphere/care-service/pkg/util/errorutil"
)

// RequirementKind classifies what a path demands of the caller.
type RequirementKind int

const (
	// RequirePublic permits everyone, token or not.
	RequirePublic RequirementKind = iota
	// RequireAuthenticated permits any resolved identity.
	RequireAuthenticated
	// RequireRole permits only identities carrying a specific role.
	RequireRole
)

// Requirement is the access demand attached to a path pattern.
type Requirement struct {
	Kind RequirementKind
	Role domain.Role
}

// Public builds an always-permit requirement.
func Public() Requirement { return Requirement{Kind: RequirePublic} }

// Authenticated builds a requirement satisfied by any identity.
func Authenticated() Requirement { return Requirement{Kind: RequireAuthenticated} }

// Role builds a requirement satisfied only by the given role.
func Role(role domain.Role) Requirement {
	return Requirement{Kind: RequireRole, Role: role}
}

// Rule binds a path pattern to a requirement. Patterns are either exact
// paths or a prefix followed by "/*".
type Rule struct {
	Pattern     string
	Requirement Requirement
}

// Policy is the ordered access table. The first matching rule wins;
// a path matching no rule is denied.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from rules in declaration order.
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// Authorize evaluates the table for the path. A nil error means permit.
// Denials are DomainErrors: 401 when no identity could satisfy the rule,
// 403 when an identity is present but lacks the required role.
func (p *Policy) Authorize(path string, identity *domain.Identity) error {
	for _, rule := range p.rules {
		if !matchPattern(rule.Pattern, path) {
			continue
		}
		switch rule.Requirement.Kind {
		case RequirePublic:
			return nil
		case RequireAuthenticated:
			if identity != nil {
				return nil
			}
			return apperrors.NewUnauthorized("authentication required")
		case RequireRole:
			if identity == nil {
				return apperrors.NewUnauthorized("authentication required")
			}
			if identity.HasRole(rule.Requirement.Role) {
				return nil
			}
			return apperrors.NewForbidden("insufficient role")
		}
	}

	// fail closed: unlisted paths are never served
	if identity == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return apperrors.NewForbidden("access denied")
}

// Enforce returns the fiber middleware evaluating the table after the
// authenticator has run.
func (p *Policy) Enforce() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var identity *domain.Identity
		if resolved, ok := IdentityFromContext(c); ok {
			identity = &resolved
		}
		if err := p.Authorize(c.Path(), identity); err != nil {
			return err
		}
		return c.Next()
	}
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
