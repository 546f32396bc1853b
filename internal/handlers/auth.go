package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobportal/web/internal/backend"
	"github.com/jobportal/web/internal/dtos"
	"github.com/jobportal/web/internal/guard"
	"github.com/jobportal/web/internal/notify"
)

// LoginPage renders the login form. A session that already carries a
// resolved user is sent straight to the dashboard; a bare token is
// not resolved here, the guard owns that.
func (h *Handler) LoginPage(c *gin.Context) {
	if id, err := c.Cookie(h.CookieName); err == nil && id != "" {
		if sess, err := h.Sessions.Get(c.Request.Context(), id); err == nil && sess.Authenticated() {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
	}
	h.render(c, http.StatusOK, "login.tmpl", "Login", nil)
}

// Login exchanges credentials at the backend and starts a session.
func (h *Handler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, http.StatusBadRequest, "login.tmpl", "Login", nil, req, fieldErrors(err))
		return
	}

	token, user, err := h.Backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		msg := backendMessage(err, "Login failed. Please try again.")
		if errors.Is(err, backend.ErrUnauthorized) {
			msg = "Invalid email or password"
		}
		notify.Set(c, notify.LevelError, msg)
		h.renderForm(c, http.StatusUnauthorized, "login.tmpl", "Login", nil, req, nil)
		return
	}

	if user != nil && user.ID == "" {
		user = nil
	}
	sess, err := h.Sessions.Create(c.Request.Context(), token, user)
	if err != nil {
		log.Printf("login: creating session: %v", err)
		notify.Set(c, notify.LevelError, "Login failed. Please try again.")
		h.renderForm(c, http.StatusInternalServerError, "login.tmpl", "Login", nil, req, nil)
		return
	}

	c.SetCookie(h.CookieName, sess.ID, 0, "/", "", h.Secure, true)
	notify.Set(c, notify.LevelSuccess, "Welcome back!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// RegisterPage renders the sign-up form.
func (h *Handler) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.tmpl", "Register", nil)
}

// Register creates a regular account, then sends the user to login.
func (h *Handler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, http.StatusBadRequest, "register.tmpl", "Register", nil, req, fieldErrors(err))
		return
	}

	if err := h.Backend.Register(c.Request.Context(), req); err != nil {
		notify.Set(c, notify.LevelError, backendMessage(err, "Registration failed"))
		h.renderForm(c, http.StatusBadGateway, "register.tmpl", "Register", nil, req, nil)
		return
	}

	notify.Set(c, notify.LevelSuccess, "Account created. Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

// Logout clears the session locally. No backend call: the token is
// simply forgotten.
func (h *Handler) Logout(c *gin.Context) {
	sess := guard.CurrentSession(c)
	if sess.ID != "" {
		if err := h.Sessions.Clear(c.Request.Context(), sess); err != nil {
			log.Printf("logout: clearing session: %v", err)
		}
	}
	c.SetCookie(h.CookieName, "", -1, "/", "", h.Secure, true)
	notify.Set(c, notify.LevelSuccess, "Logged out successfully!")
	c.Redirect(http.StatusFound, "/login")
}
