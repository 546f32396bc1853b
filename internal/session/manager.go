package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jobportal/web/internal/metrics"
	"github.com/jobportal/web/internal/models"
)

// ErrUnauthenticated means there is no usable session: no token, an
// invalid token, or a resolution failure. Callers redirect to login;
// the distinction is deliberately not surfaced.
var ErrUnauthenticated = errors.New("session: unauthenticated")

// Resolver exchanges a bearer token for the user record it belongs
// to. Implemented by backend.Client.
type Resolver interface {
	GetUser(ctx context.Context, token string) (*models.User, error)
}

// Manager is the accessor surface over the session store. All reads
// and writes of session state go through here so a profile save in
// one handler is visible to the guard and the navigation shell on the
// next request.
type Manager struct {
	store    Store
	resolver Resolver
	ttl      time.Duration
	group    singleflight.Group
}

func NewManager(store Store, resolver Resolver, ttl time.Duration) *Manager {
	return &Manager{store: store, resolver: resolver, ttl: ttl}
}

// Create starts a new session after login. The user record may be nil
// when the login response carried only a token; the first guarded
// request resolves it.
func (m *Manager) Create(ctx context.Context, token string, user *models.User) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get loads a session by id. A missing or expired record comes back
// as ErrNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Find(ctx, id)
}

// Resolve makes sure the session carries a confirmed user record.
//
// Fast path: a cached user means zero network calls. Otherwise the
// token is exchanged at the backend; on success the user is written
// through to the store, on any failure the whole session is cleared
// and ErrUnauthenticated returned. Safe to call on every guarded
// request. Concurrent calls for the same session share one in-flight
// backend call.
func (m *Manager) Resolve(ctx context.Context, s *Session) error {
	if s.Authenticated() {
		metrics.CountResolution("cached")
		return nil
	}
	if !s.HasToken() {
		return ErrUnauthenticated
	}

	// The shared result is read by every waiter, so it is finalized
	// here and treated as immutable afterwards.
	v, err, _ := m.group.Do(s.ID, func() (any, error) {
		u, err := m.resolver.GetUser(ctx, s.Token)
		if err != nil {
			return nil, err
		}
		u.Role = models.ParseRole(string(u.Role))
		return u, nil
	})
	if err != nil {
		metrics.CountResolution("failed")
		if clearErr := m.Clear(context.WithoutCancel(ctx), s); clearErr != nil {
			log.Printf("session: clearing after failed resolution: %v", clearErr)
		}
		return ErrUnauthenticated
	}
	// Request canceled while the shared call was in flight: drop the
	// result rather than applying it on behalf of a gone client.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	user := *v.(*models.User)
	if err := m.SetUser(ctx, s, &user); err != nil {
		return err
	}
	metrics.CountResolution("resolved")
	return nil
}

// SetUser writes a user record through to the store. Used after
// resolution and after a successful profile update.
func (m *Manager) SetUser(ctx context.Context, s *Session, user *models.User) error {
	s.User = user
	return m.store.Save(ctx, s)
}

// Clear removes the session entirely: token and cached user, store
// record included. Used by logout and by failed resolution.
func (m *Manager) Clear(ctx context.Context, s *Session) error {
	s.Token = ""
	s.User = nil
	return m.store.Delete(ctx, s.ID)
}

// CurrentRole never errors: RoleGuest when nothing is cached.
func (m *Manager) CurrentRole(s *Session) models.Role {
	return s.Role()
}
