package guard

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobportal/web/internal/models"
	"github.com/jobportal/web/internal/notify"
	"github.com/jobportal/web/internal/session"
)

type fakeResolver struct {
	calls atomic.Int64
	user  *models.User
	err   error
}

func (f *fakeResolver) GetUser(ctx context.Context, token string) (*models.User, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	u := *f.user
	return &u, nil
}

type fixture struct {
	router   *gin.Engine
	sessions *session.Manager
	store    *session.MemoryStore
	resolver *fakeResolver
}

func newFixture(t *testing.T, resolver *fakeResolver) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore()
	sessions := session.NewManager(store, resolver, time.Hour)
	g := &Middleware{Sessions: sessions, CookieName: "jp_session"}

	r := gin.New()
	ok := func(c *gin.Context) { c.String(http.StatusOK, "page rendered") }
	r.GET("/dashboard", g.Require(), ok)
	r.GET("/post-job", g.Require(models.RoleEmployee, models.RoleAdmin), ok)
	r.GET("/create-employee", g.Require(models.RoleAdmin), ok)

	return &fixture{router: r, sessions: sessions, store: store, resolver: resolver}
}

// login seeds a stored session holding only a token, as it is right
// after a login whose response carried no user record.
func (f *fixture) login(t *testing.T, token string) *http.Cookie {
	t.Helper()
	sess, err := f.sessions.Create(context.Background(), token, nil)
	require.NoError(t, err)
	return &http.Cookie{Name: "jp_session", Value: sess.ID}
}

func (f *fixture) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func flashFrom(t *testing.T, w *httptest.ResponseRecorder) *notify.Notice {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name != "jp_flash" || ck.Value == "" {
			continue
		}
		// gin query-escapes cookie values on the way out.
		raw, err := url.QueryUnescape(ck.Value)
		require.NoError(t, err)
		buf, err := base64.URLEncoding.DecodeString(raw)
		require.NoError(t, err)
		var n notify.Notice
		require.NoError(t, json.Unmarshal(buf, &n))
		return &n
	}
	return nil
}

// Token present, backend says role "user", route requires employee or
// admin: redirect to the landing page with exactly one warning naming
// the required roles.
func TestGuardForbiddenRoleRedirectsWithWarning(t *testing.T) {
	f := newFixture(t, &fakeResolver{user: &models.User{ID: "u1", Role: models.RoleUser}})
	cookie := f.login(t, "tok")

	w := f.get("/post-job", cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	flash := flashFrom(t, w)
	require.NotNil(t, flash, "forbidden redirect must carry a notice")
	assert.Equal(t, notify.LevelWarning, flash.Level)
	assert.Contains(t, flash.Message, "employee or admin")
}

// No token: immediate redirect to login, zero resolution calls.
func TestGuardNoTokenRedirectsWithoutNetworkCall(t *testing.T) {
	f := newFixture(t, &fakeResolver{user: &models.User{ID: "u1", Role: models.RoleAdmin}})

	w := f.get("/dashboard")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Zero(t, f.resolver.calls.Load())
	assert.Nil(t, flashFrom(t, w), "login redirect carries no notice")
}

// Token present, backend confirms admin, route has no role
// restriction: the wrapped page renders.
func TestGuardAuthenticatedRendersPage(t *testing.T) {
	f := newFixture(t, &fakeResolver{user: &models.User{ID: "u1", Role: models.RoleAdmin}})
	cookie := f.login(t, "tok")

	w := f.get("/dashboard", cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "page rendered", w.Body.String())
}

func TestGuardFailedResolutionClearsSessionAndRedirects(t *testing.T) {
	f := newFixture(t, &fakeResolver{err: errors.New("invalid token")})
	cookie := f.login(t, "bad-token")

	w := f.get("/dashboard", cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// The stored session is gone: the next request with the same
	// cookie is treated as having no token at all.
	calls := f.resolver.calls.Load()
	w = f.get("/dashboard", cookie)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, calls, f.resolver.calls.Load(), "cleared session must not be re-resolved")
}

func TestGuardResolvesOncePerSession(t *testing.T) {
	f := newFixture(t, &fakeResolver{user: &models.User{ID: "u1", Role: models.RoleAdmin}})
	cookie := f.login(t, "tok")

	for i := 0; i < 3; i++ {
		w := f.get("/create-employee", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.EqualValues(t, 1, f.resolver.calls.Load(), "later navigations must hit the cached user")
}

func TestGuardEmployeeAllowedOnStaffRoute(t *testing.T) {
	f := newFixture(t, &fakeResolver{user: &models.User{ID: "u2", Role: models.RoleEmployee}})
	cookie := f.login(t, "tok")

	assert.Equal(t, http.StatusOK, f.get("/post-job", cookie).Code)

	w := f.get("/create-employee", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	flash := flashFrom(t, w)
	require.NotNil(t, flash)
	assert.Contains(t, flash.Message, "admin")
}

// flakyStore accepts writes while sessions are being seeded, then
// starts failing them, like a store that lost its database.
type flakyStore struct {
	*session.MemoryStore
	failSaves atomic.Bool
}

func (f *flakyStore) Save(ctx context.Context, s *session.Session) error {
	if f.failSaves.Load() {
		return errors.New("store unavailable")
	}
	return f.MemoryStore.Save(ctx, s)
}

// A store failure while saving the resolved user must still end in a
// defined response, not a silently aborted request.
func TestGuardStoreFailureRedirectsToLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &flakyStore{MemoryStore: session.NewMemoryStore()}
	resolver := &fakeResolver{user: &models.User{ID: "u1", Role: models.RoleAdmin}}
	sessions := session.NewManager(store, resolver, time.Hour)
	g := &Middleware{Sessions: sessions, CookieName: "jp_session"}

	r := gin.New()
	r.GET("/dashboard", g.Require(), func(c *gin.Context) { c.String(http.StatusOK, "page rendered") })

	sess, err := sessions.Create(context.Background(), "tok", nil)
	require.NoError(t, err)
	store.failSaves.Store(true)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "jp_session", Value: sess.ID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGuardUnknownCookieRedirectsToLogin(t *testing.T) {
	f := newFixture(t, &fakeResolver{user: &models.User{ID: "u1", Role: models.RoleAdmin}})

	w := f.get("/dashboard", &http.Cookie{Name: "jp_session", Value: "never-issued"})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Zero(t, f.resolver.calls.Load())
}
