package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jobportal/web/internal/backend"
	"github.com/jobportal/web/internal/guard"
	"github.com/jobportal/web/internal/models"
	"github.com/jobportal/web/internal/nav"
	"github.com/jobportal/web/internal/notify"
	"github.com/jobportal/web/internal/session"
)

// Handler serves every page of the portal. It reaches the backend
// only through the API client and touches session state only through
// the manager.
type Handler struct {
	Backend    *backend.Client
	Sessions   *session.Manager
	CookieName string
	Secure     bool
}

func New(api *backend.Client, sessions *session.Manager, cookieName string, secure bool) *Handler {
	return &Handler{Backend: api, Sessions: sessions, CookieName: cookieName, Secure: secure}
}

// viewData is what every template receives. Nav is recomputed from
// the cached role on each render.
type viewData struct {
	Title  string
	User   *models.User
	Nav    []nav.Section
	Notice *notify.Notice
	Errors map[string]string
	Form   any
	Data   gin.H
}

// render fills in the layout chrome around a page template.
func (h *Handler) render(c *gin.Context, status int, template, title string, data gin.H) {
	h.renderForm(c, status, template, title, data, nil, nil)
}

func (h *Handler) renderForm(c *gin.Context, status int, template, title string, data gin.H, form any, errs map[string]string) {
	sess := guard.CurrentSession(c)
	c.HTML(status, template, viewData{
		Title:  title,
		User:   sess.User,
		Nav:    nav.Visible(sess.Role()),
		Notice: notify.Pop(c),
		Errors: errs,
		Form:   form,
		Data:   data,
	})
}

// fieldErrors flattens validator output into field -> message, the
// shape the form templates expect.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_form"] = "Invalid form submission"
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required"
		case "email":
			out[field] = "Email is invalid"
		case "min":
			out[field] = "Too short (minimum " + fe.Param() + " characters)"
		case "worktype":
			out[field] = "Select a valid work type"
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}

// backendMessage extracts the user-facing text from a backend error.
func backendMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// HealthCheck reports liveness of the frontend itself.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
