package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobportal/web/internal/guard"
	"github.com/jobportal/web/internal/models"
	"github.com/jobportal/web/internal/notify"
)

// Home is the public landing page.
func (h *Handler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "home.tmpl", "Job Portal", nil)
}

// Dashboard shows the most recent postings.
func (h *Handler) Dashboard(c *gin.Context) {
	sess := guard.CurrentSession(c)

	jobs, err := h.Backend.ListJobs(c.Request.Context(), sess.Token)
	if err != nil {
		// Page-level fetch failure: notice plus an empty state, no
		// redirect.
		notify.Set(c, notify.LevelError, "Failed to load jobs. Please try again.")
		h.render(c, http.StatusOK, "dashboard.tmpl", "Dashboard", gin.H{"Jobs": []models.Job{}})
		return
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.After(jobs[j].CreatedAt) })
	if len(jobs) > 6 {
		jobs = jobs[:6]
	}
	h.render(c, http.StatusOK, "dashboard.tmpl", "Dashboard", gin.H{"Jobs": jobs})
}

// Jobs lists postings with search and work-type filtering. Filtering
// is a case-insensitive substring match over position, company and
// location, done here on the fetched list.
func (h *Handler) Jobs(c *gin.Context) {
	sess := guard.CurrentSession(c)
	search := c.Query("search")
	workType := c.Query("workType")

	jobs, err := h.Backend.ListJobs(c.Request.Context(), sess.Token)
	if err != nil {
		notify.Set(c, notify.LevelError, "Failed to load jobs. Please try again.")
		h.render(c, http.StatusOK, "jobs.tmpl", "Latest Jobs", gin.H{
			"Jobs": []models.Job{}, "Search": search, "WorkType": workType,
		})
		return
	}

	filtered := filterJobs(jobs, search, workType)
	h.render(c, http.StatusOK, "jobs.tmpl", "Latest Jobs", gin.H{
		"Jobs":      filtered,
		"Total":     len(jobs),
		"Search":    search,
		"WorkType":  workType,
		"WorkTypes": workTypesOf(jobs),
	})
}

func filterJobs(jobs []models.Job, search, workType string) []models.Job {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if q != "" &&
			!strings.Contains(strings.ToLower(j.Position), q) &&
			!strings.Contains(strings.ToLower(j.Company), q) &&
			!strings.Contains(strings.ToLower(j.WorkLocation), q) {
			continue
		}
		if workType != "" && !strings.EqualFold(j.WorkType, workType) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func workTypesOf(jobs []models.Job) []string {
	seen := make(map[string]bool)
	var out []string
	for _, j := range jobs {
		if j.WorkType == "" || seen[j.WorkType] {
			continue
		}
		seen[j.WorkType] = true
		out = append(out, j.WorkType)
	}
	sort.Strings(out)
	return out
}

// JobDetail shows a single posting.
func (h *Handler) JobDetail(c *gin.Context) {
	sess := guard.CurrentSession(c)

	job, err := h.Backend.GetJob(c.Request.Context(), sess.Token, c.Param("id"))
	if err != nil {
		notify.Set(c, notify.LevelError, backendMessage(err, "Job not found"))
		c.Redirect(http.StatusFound, "/jobs")
		return
	}
	h.render(c, http.StatusOK, "job_detail.tmpl", "Job Details", gin.H{"Job": job})
}

// Apply submits an application for the posting and returns to its
// detail page.
func (h *Handler) Apply(c *gin.Context) {
	sess := guard.CurrentSession(c)
	id := c.Param("id")

	if err := h.Backend.ApplyJob(c.Request.Context(), sess.Token, id); err != nil {
		notify.Set(c, notify.LevelError, backendMessage(err, "Failed to apply. Please try again."))
	} else {
		notify.Set(c, notify.LevelSuccess, "Application submitted!")
	}
	c.Redirect(http.StatusFound, "/jobs/"+id)
}

// NotFound is the catch-all 404 page.
func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "notfound.tmpl", "Page Not Found", nil)
}
