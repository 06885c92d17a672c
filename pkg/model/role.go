package model

import "fmt"

// Role is the internal authorization tag attached to a session.
// The set is closed: every component past login assumes a session role
// is one of these four values.
type Role string

const (
	// RoleAdmin manages accounts, approvals, and the audit trail.
	RoleAdmin Role = "admin"
	// RoleSales handles onboarding and payment follow-up.
	RoleSales Role = "sales"
	// RolePM manages project delivery.
	RolePM Role = "pm"
	// RoleClient is an external customer account.
	RoleClient Role = "client"
)

// externalRoles maps the platform API's role vocabulary to internal tags.
// Exact match only; the table has exactly one entry per role.
var externalRoles = map[string]Role{
	"Admin":  RoleAdmin,
	"Sales":  RoleSales,
	"PM":     RolePM,
	"Client": RoleClient,
}

// landingPaths maps each role to its canonical dashboard path. Used for
// post-login redirection and for sending a user with a mismatched role to
// their own dashboard instead of an error page.
var landingPaths = map[Role]string{
	RoleAdmin:  "/admin",
	RoleSales:  "/sales",
	RolePM:     "/pm",
	RoleClient: "/client",
}

// UnrecognizedRoleError indicates the platform API returned a role outside
// the known vocabulary. It is fatal to the login attempt; callers surface
// it as a generic login failure rather than echoing the raw value.
type UnrecognizedRoleError struct {
	External string
}

func (e *UnrecognizedRoleError) Error() string {
	return fmt.Sprintf("unrecognized role %q", e.External)
}

// ParseExternalRole translates a platform API role identifier into an
// internal Role. The identifier must match the vocabulary exactly.
func ParseExternalRole(external string) (Role, error) {
	role, ok := externalRoles[external]
	if !ok {
		return "", &UnrecognizedRoleError{External: external}
	}
	return role, nil
}

// Valid reports whether r is one of the four known role tags.
func (r Role) Valid() bool {
	_, ok := landingPaths[r]
	return ok
}

// LandingPath returns the canonical dashboard path for r.
// Unknown roles fall back to the login entry point.
func (r Role) LandingPath() string {
	if p, ok := landingPaths[r]; ok {
		return p
	}
	return "/login"
}
