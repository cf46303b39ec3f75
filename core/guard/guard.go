// Package guard implements the route-authorization check performed before a
// role-scoped view is allowed to render.
package guard

import (
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/nav"
)

type Verdict int

const (
	// Allow lets the requested view render.
	Allow Verdict = iota
	// RedirectToLogin bounces an unauthenticated request to the login view.
	RedirectToLogin
	// RedirectToOwnDashboard bounces an authenticated but under-authorized
	// request to the principal's own default landing view.
	RedirectToOwnDashboard
)

// Decision is the outcome of an authorization check. Target is only set for
// RedirectToOwnDashboard.
type Decision struct {
	Verdict Verdict
	Target  nav.ViewDescriptor
}

// Guard gates navigation to role-scoped views. Decisions are a pure function
// of the session snapshot, the requested view and the required role; a check
// never mutates the session.
type Guard struct {
	views *nav.Registry
}

func NewGuard(views *nav.Registry) *Guard {
	return &Guard{views: views}
}

// Authorize decides whether the current principal may navigate to
// requestedView. `authenticated` reports whether a principal is held by the
// session; an empty requiredRole marks an unguarded view, allowed with or
// without a session.
func (g *Guard) Authorize(principal auth.Principal, authenticated bool, requestedView string, requiredRole auth.Role) Decision {
	if requiredRole == "" {
		return Decision{Verdict: Allow}
	}
	if !authenticated {
		return Decision{Verdict: RedirectToLogin}
	}
	if principal.Role == requiredRole {
		return Decision{Verdict: Allow}
	}
	return Decision{
		Verdict: RedirectToOwnDashboard,
		Target:  g.views.DefaultView(principal.Role),
	}
}
