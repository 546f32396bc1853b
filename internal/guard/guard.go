// Package guard is the access-control checkpoint in front of every
// protected page. The decision logic is a pure function of session
// state and route configuration; the gin middleware in middleware.go
// only interprets its result.
package guard

import (
	"strings"

	"github.com/jobportal/web/internal/models"
	"github.com/jobportal/web/internal/session"
)

// State of one guard evaluation.
type State int

const (
	StateChecking State = iota
	StateAuthenticated
	StateUnauthenticated
	StateForbidden
)

// RouteAccess is the allow-list attached to a route registration. An
// empty list means any authenticated role passes.
type RouteAccess struct {
	AllowedRoles []models.Role
}

// Allow builds a RouteAccess; Allow() with no roles guards a route
// for all authenticated users.
func Allow(roles ...models.Role) RouteAccess {
	return RouteAccess{AllowedRoles: roles}
}

func (r RouteAccess) permits(role models.Role) bool {
	if len(r.AllowedRoles) == 0 {
		return true
	}
	for _, allowed := range r.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// requiredRolesText renders the allow-list for the forbidden notice,
// e.g. "employee or admin".
func (r RouteAccess) requiredRolesText() string {
	names := make([]string, len(r.AllowedRoles))
	for i, role := range r.AllowedRoles {
		names[i] = role.String()
	}
	return strings.Join(names, " or ")
}

// Action is what the rendering layer should do with a decision.
type Action int

const (
	ActionRender Action = iota
	ActionLoading
	ActionRedirect
)

// Decision is the outcome of one guard evaluation. Notice, when set,
// is shown to the user exactly once after the redirect.
type Decision struct {
	State  State
	Action Action
	Path   string
	Notice string
}

const (
	loginPath   = "/login"
	landingPath = "/dashboard"
)

// Evaluate decides what to do with a navigation to a guarded route.
// Pure: no I/O, no clock. Rules, in order:
//
//  1. A cached user skips resolution and goes straight to the role
//     check.
//  2. A token without a cached user means resolution is still
//     pending; the caller resolves and re-evaluates (ActionLoading).
//  3. No token at all redirects to login immediately. Unauthenticated
//     always wins over forbidden: the role check runs only once
//     authentication is confirmed.
//  4. Role check: empty allow-list admits any authenticated role;
//     otherwise exact membership, no hierarchy.
func Evaluate(s *session.Session, route RouteAccess) Decision {
	if !s.Authenticated() {
		if s.HasToken() {
			return Decision{State: StateChecking, Action: ActionLoading}
		}
		return Decision{State: StateUnauthenticated, Action: ActionRedirect, Path: loginPath}
	}

	if !route.permits(s.Role()) {
		return Decision{
			State:  StateForbidden,
			Action: ActionRedirect,
			Path:   landingPath,
			Notice: "Access denied. Required role: " + route.requiredRolesText(),
		}
	}
	return Decision{State: StateAuthenticated, Action: ActionRender}
}
