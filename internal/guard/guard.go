// Package guard decides whether a command may run given the current session.
// Guards are pure functions of a session snapshot; the same decisions gate
// every entry point, so the precedence rules live in exactly one place.
package guard

import (
	"slices"

	"github.com/wastepay/pspctl/internal/session"
)

// Decision is the outcome of evaluating a guard.
type Decision int

const (
	// DecisionWait means hydration has not completed; show a neutral waiting
	// state, never a premature "logged out".
	DecisionWait Decision = iota
	// DecisionAllow renders the guarded content.
	DecisionAllow
	// DecisionRedirectLogin sends the user to the login flow.
	DecisionRedirectLogin
	// DecisionRedirectPasswordChange forces the temporary-password change.
	DecisionRedirectPasswordChange
	// DecisionRedirectDashboard bounces an authenticated user off a
	// public-only surface.
	DecisionRedirectDashboard
	// DecisionAccessDenied is terminal: authenticated, but the role is not
	// allowed here. The only exit is logging in as someone else.
	DecisionAccessDenied
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionRedirectPasswordChange:
		return "redirect-password-change"
	case DecisionRedirectDashboard:
		return "redirect-dashboard"
	case DecisionAccessDenied:
		return "access-denied"
	default:
		return "unknown"
	}
}

// PublicOnly guards surfaces that only make sense logged out (login, signup,
// password reset). The temporary-password redirect outranks the dashboard
// redirect.
func PublicOnly(s session.Snapshot) Decision {
	if !s.Hydrated {
		return DecisionWait
	}
	switch s.State {
	case session.StateAuthenticatedTempPassword:
		return DecisionRedirectPasswordChange
	case session.StateAuthenticated:
		return DecisionRedirectDashboard
	default:
		return DecisionAllow
	}
}

// Protected guards authenticated surfaces. An empty allowedRoles set admits
// any authenticated role.
func Protected(s session.Snapshot, allowedRoles ...string) Decision {
	if !s.Hydrated {
		return DecisionWait
	}
	switch s.State {
	case session.StateAuthenticatedTempPassword:
		return DecisionRedirectPasswordChange
	case session.StateAuthenticated:
		if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, s.Role) {
			return DecisionAccessDenied
		}
		return DecisionAllow
	default:
		return DecisionRedirectLogin
	}
}

// PasswordChange guards the password-change surface itself: reachable while
// authenticated in either flavor, but never logged out.
func PasswordChange(s session.Snapshot) Decision {
	if !s.Hydrated {
		return DecisionWait
	}
	switch s.State {
	case session.StateAuthenticated, session.StateAuthenticatedTempPassword:
		return DecisionAllow
	default:
		return DecisionRedirectLogin
	}
}
