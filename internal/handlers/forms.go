package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobportal/web/internal/dtos"
	"github.com/jobportal/web/internal/guard"
	"github.com/jobportal/web/internal/notify"
)

// PostJobPage renders the job posting form (employee and admin only;
// the guard enforces that before we get here).
func (h *Handler) PostJobPage(c *gin.Context) {
	h.render(c, http.StatusOK, "post_job.tmpl", "Post Job", gin.H{"WorkTypes": dtos.WorkTypes})
}

// PostJob validates and forwards a new posting to the backend.
func (h *Handler) PostJob(c *gin.Context) {
	var req dtos.PostJobRequest
	if err := c.ShouldBind(&req); err != nil {
		notify.Set(c, notify.LevelError, "Please fix the errors in the form")
		h.renderForm(c, http.StatusBadRequest, "post_job.tmpl", "Post Job",
			gin.H{"WorkTypes": dtos.WorkTypes}, req, fieldErrors(err))
		return
	}
	if req.Status == "" {
		req.Status = "active"
	}

	sess := guard.CurrentSession(c)
	if err := h.Backend.CreateJob(c.Request.Context(), sess.Token, req); err != nil {
		notify.Set(c, notify.LevelError, backendMessage(err, "Failed to post job"))
		h.renderForm(c, http.StatusBadGateway, "post_job.tmpl", "Post Job",
			gin.H{"WorkTypes": dtos.WorkTypes}, req, nil)
		return
	}

	notify.Set(c, notify.LevelSuccess, "Job posted successfully!")
	c.Redirect(http.StatusFound, "/jobs")
}

// CreateEmployeePage renders the employee account form (admin only).
func (h *Handler) CreateEmployeePage(c *gin.Context) {
	h.render(c, http.StatusOK, "create_employee.tmpl", "Create Employee", nil)
}

// CreateEmployee forwards the new account to the backend.
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req dtos.CreateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		notify.Set(c, notify.LevelError, "Please fix the errors in the form")
		h.renderForm(c, http.StatusBadRequest, "create_employee.tmpl", "Create Employee",
			nil, req, fieldErrors(err))
		return
	}

	sess := guard.CurrentSession(c)
	if err := h.Backend.CreateEmployee(c.Request.Context(), sess.Token, req); err != nil {
		notify.Set(c, notify.LevelError, backendMessage(err, "Failed to create employee"))
		h.renderForm(c, http.StatusBadGateway, "create_employee.tmpl", "Create Employee",
			nil, req, nil)
		return
	}

	notify.Set(c, notify.LevelSuccess, "Employee created successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// ProfilePage renders the profile editor pre-filled from the cache.
func (h *Handler) ProfilePage(c *gin.Context) {
	sess := guard.CurrentSession(c)
	form := dtos.UpdateProfileRequest{}
	if sess.User != nil {
		form.Name = sess.User.Name
		form.LastName = sess.User.LastName
		form.Email = sess.User.Email
	}
	h.renderForm(c, http.StatusOK, "profile.tmpl", "Profile", nil, form, nil)
}

// UpdateProfile saves changes at the backend and writes the returned
// record through the session cache, so the layout picks it up on the
// next render.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req dtos.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		notify.Set(c, notify.LevelError, "Please fix the errors in the form")
		h.renderForm(c, http.StatusBadRequest, "profile.tmpl", "Profile", nil, req, fieldErrors(err))
		return
	}

	sess := guard.CurrentSession(c)
	user, err := h.Backend.UpdateUser(c.Request.Context(), sess.Token, req)
	if err != nil {
		notify.Set(c, notify.LevelError, backendMessage(err, "Failed to update profile"))
		h.renderForm(c, http.StatusBadGateway, "profile.tmpl", "Profile", nil, req, nil)
		return
	}

	if err := h.Sessions.SetUser(c.Request.Context(), sess, user); err != nil {
		notify.Set(c, notify.LevelError, "Profile saved, but refreshing the session failed")
		c.Redirect(http.StatusFound, "/user/profile")
		return
	}

	notify.Set(c, notify.LevelSuccess, "Profile updated successfully!")
	c.Redirect(http.StatusFound, "/user/profile")
}
