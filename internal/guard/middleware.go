package guard

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobportal/web/internal/metrics"
	"github.com/jobportal/web/internal/models"
	"github.com/jobportal/web/internal/notify"
	"github.com/jobportal/web/internal/session"
)

const sessionContextKey = "jp.session"

// Middleware wires the pure Evaluate decision into gin. It owns the
// session cookie and the resolution step.
type Middleware struct {
	Sessions   *session.Manager
	CookieName string
	Secure     bool
}

// Require guards a route. With no roles any authenticated user
// passes; otherwise the resolved role must be in the list.
func (m *Middleware) Require(roles ...models.Role) gin.HandlerFunc {
	route := Allow(roles...)
	return func(c *gin.Context) {
		sess := m.loadSession(c)

		decision := Evaluate(sess, route)
		if decision.Action == ActionLoading {
			// Resolution pending: block the request on it instead of
			// rendering a spinner, then decide again. The guard never
			// lets a resolution failure escape as an error page.
			err := m.Sessions.Resolve(c.Request.Context(), sess)
			switch {
			case err == nil:
				decision = Evaluate(sess, route)
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				// Canceled mid-flight; the client is gone, do not
				// apply or clear anything on its behalf.
				c.Abort()
				return
			default:
				// ErrUnauthenticated, or a store failure while saving
				// the resolved user. Either way the session cannot be
				// trusted: collapse to the login redirect rather than
				// leaving the client an undefined response.
				m.dropCookie(c)
				decision = Decision{State: StateUnauthenticated, Action: ActionRedirect, Path: loginPath}
			}
		}

		switch decision.Action {
		case ActionRender:
			metrics.CountGuardDecision("render")
			c.Set(sessionContextKey, sess)
			c.Next()
		case ActionRedirect:
			if decision.State == StateForbidden {
				metrics.CountGuardDecision("redirect_forbidden")
				notify.Set(c, notify.LevelWarning, decision.Notice)
			} else {
				metrics.CountGuardDecision("redirect_login")
			}
			c.Redirect(http.StatusFound, decision.Path)
			c.Abort()
		}
	}
}

// loadSession turns the session cookie into a Session. A missing or
// unknown cookie yields an empty session, which Evaluate treats as
// unauthenticated without any network call.
func (m *Middleware) loadSession(c *gin.Context) *session.Session {
	id, err := c.Cookie(m.CookieName)
	if err != nil || id == "" {
		return &session.Session{}
	}
	sess, err := m.Sessions.Get(c.Request.Context(), id)
	if err != nil {
		m.dropCookie(c)
		return &session.Session{}
	}
	return sess
}

func (m *Middleware) dropCookie(c *gin.Context) {
	c.SetCookie(m.CookieName, "", -1, "/", "", m.Secure, true)
}

// CurrentSession returns the session the guard attached for this
// request. Only valid inside handlers behind Require.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return &session.Session{}
}
