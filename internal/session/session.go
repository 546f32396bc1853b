// Package session is the single source of truth for "who is the
// current user". The guard, the navigation shell and the profile
// editor all go through the Manager; nothing else touches the store.
package session

import (
	"time"

	"github.com/jobportal/web/internal/models"
)

// Session is one browser session: the bearer token the backend issued
// at login, plus the user record last confirmed for that token. User
// is only a cache of what the backend said; it is never trustworthy
// on its own.
type Session struct {
	ID        string
	Token     string
	User      *models.User
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Authenticated reports whether the session carries a resolved user.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// HasToken reports whether there is a token worth resolving.
func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}

// Role returns the cached user's role, or RoleGuest when no user is
// cached. Never panics.
func (s *Session) Role() models.Role {
	if s == nil || s.User == nil {
		return models.RoleGuest
	}
	return s.User.Role
}

func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
