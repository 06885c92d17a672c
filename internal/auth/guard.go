package auth

import (
	"slices"

	"github.com/me/baraza/pkg/model"
)

// Decision is the route guard's access verdict for a protected view.
type Decision int

const (
	// DecisionPending means hydration has not resolved; render a neutral
	// loading state and take no navigation action.
	DecisionPending Decision = iota
	// DecisionLogin means no session exists; redirect to the login entry
	// point.
	DecisionLogin
	// DecisionRedirect means a session exists but its role is not
	// accepted; redirect to that session's own landing path.
	DecisionRedirect
	// DecisionAllow means the protected content may be rendered.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionLogin:
		return "login"
	case DecisionRedirect:
		return "redirect"
	case DecisionAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// LoginPath is the unauthenticated entry point.
const LoginPath = "/login"

// Verdict pairs a Decision with its redirect target, when one applies.
type Verdict struct {
	Decision Decision
	Redirect string
}

// Evaluate decides access for a route given the session state and the
// route's accepted roles. An empty allowed set means any authenticated
// session is accepted.
//
// A mismatched role is sent to its own dashboard rather than an error
// page: a user landing on the wrong route almost always followed a stale
// bookmark or had their role changed, so the guard self-heals navigation
// instead of blocking with a 403.
func Evaluate(state State, sess *model.Session, allowed ...model.Role) Verdict {
	if state == StateHydrating {
		return Verdict{Decision: DecisionPending}
	}
	if sess == nil {
		return Verdict{Decision: DecisionLogin, Redirect: LoginPath}
	}
	if len(allowed) == 0 || slices.Contains(allowed, sess.Role) {
		return Verdict{Decision: DecisionAllow}
	}
	return Verdict{Decision: DecisionRedirect, Redirect: sess.Role.LandingPath()}
}
