package handlers

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jobportal/web/internal/dtos"
	"github.com/jobportal/web/internal/guard"
	"github.com/jobportal/web/internal/middleware"
	"github.com/jobportal/web/internal/models"
	"github.com/jobportal/web/internal/notify"
	"github.com/jobportal/web/web"
)

var templateFuncs = template.FuncMap{
	"truncate": func(s string, n int) string {
		if len(s) <= n {
			return s
		}
		return s[:n] + "..."
	},
}

// Router assembles the full route table. Access rules live here, next
// to the route registrations, the same way the menu definition tags
// its entries.
func Router(h *Handler, g *guard.Middleware, loginLimiter *middleware.RateLimiter, allowedOrigin string) *gin.Engine {
	registerValidators()
	notify.ConfigureSecure(h.Secure)

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if allowedOrigin == "" || allowedOrigin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{allowedOrigin}
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	tmpl := template.Must(template.New("").Funcs(templateFuncs).ParseFS(web.Templates, "templates/*.tmpl"))
	r.SetHTMLTemplate(tmpl)

	static, _ := fs.Sub(web.Static, "static")
	r.StaticFS("/static", http.FS(static))

	r.GET("/healthz", HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public pages.
	r.GET("/", h.Home)
	r.GET("/login", h.LoginPage)
	r.POST("/login", loginLimiter.Handler(), h.Login)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)

	// Any authenticated role.
	authed := r.Group("/", g.Require())
	{
		authed.GET("/dashboard", h.Dashboard)
		authed.GET("/jobs", h.Jobs)
		authed.GET("/jobs/:id", h.JobDetail)
		authed.POST("/jobs/:id/apply", h.Apply)
		authed.GET("/user/profile", h.ProfilePage)
		authed.POST("/user/profile", h.UpdateProfile)
		authed.GET("/logout", h.Logout)
	}

	// Posting jobs is for staff; hiding the menu entry is not the
	// enforcement point, this is.
	staff := r.Group("/", g.Require(models.RoleEmployee, models.RoleAdmin))
	{
		staff.GET("/post-job", h.PostJobPage)
		staff.POST("/post-job", h.PostJob)
	}

	admin := r.Group("/", g.Require(models.RoleAdmin))
	{
		admin.GET("/create-employee", h.CreateEmployeePage)
		admin.POST("/create-employee", h.CreateEmployee)
	}

	r.NoRoute(h.NotFound)
	return r
}

// registerValidators adds the custom binding rules the form DTOs use.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("worktype", func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, wt := range dtos.WorkTypes {
			if val == wt {
				return true
			}
		}
		return false
	})
}
