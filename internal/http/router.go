package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-admin/internal/monitoring"
)

// Handlers agrupa los handlers de la consola.
type Handlers struct {
	Auth         *AuthHandler
	Doctors      *DoctorHandler
	Specialties  *SpecialtyHandler
	Users        *UserHandler
	Appointments *AppointmentHandler
	Reviews      *ReviewHandler
	Statistics   *StatisticsHandler
	Audit        *AuditHandler
	Health       *HealthHandler
}

// NewRouter configura el router de Gin con middlewares y rutas de la consola.
func NewRouter(logger *zap.Logger, sessions *Sessions, h Handlers) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(Templates())

	// Middlewares basicos: logging, recovery, métricas y errores a Sentry.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), metricsMiddleware(), sentryMiddleware(), errorReporter())

	health := h.Health
	if health == nil {
		health = NewHealthHandler(logger)
	}
	r.GET("/healthz", jsonContentTypeMiddleware(), health.Show)
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	web := r.Group("/", sessions.Middleware())
	web.GET("/", h.Auth.Home)
	web.GET("/login", RedirectAuthenticated(), h.Auth.LoginPage)
	web.POST("/login", RedirectAuthenticated(), h.Auth.Login)
	web.POST("/logout", h.Auth.Logout)
	web.GET("/api/session", jsonContentTypeMiddleware(), h.Auth.SessionInfo)

	admin := web.Group("/admin", RequireAdmin())

	admin.GET("/doctors", h.Doctors.List)
	admin.POST("/doctors", h.Doctors.Create)
	admin.POST("/doctors/:id", h.Doctors.Update)
	admin.GET("/doctors/:id/delete", h.Doctors.ConfirmDelete)
	admin.POST("/doctors/:id/delete", h.Doctors.Delete)

	admin.GET("/specialties", h.Specialties.List)
	admin.POST("/specialties", h.Specialties.Create)
	admin.POST("/specialties/:id", h.Specialties.Update)
	admin.GET("/specialties/:id/delete", h.Specialties.ConfirmDelete)
	admin.POST("/specialties/:id/delete", h.Specialties.Delete)

	admin.GET("/users", h.Users.List)
	admin.POST("/users", h.Users.CreateAdmin)
	admin.POST("/users/:id", h.Users.Update)
	admin.GET("/users/:id/delete", h.Users.ConfirmDelete)
	admin.POST("/users/:id/delete", h.Users.Delete)
	web.GET("/users", RequireAdmin(), h.Users.List)

	admin.GET("/appointments", h.Appointments.List)
	admin.POST("/appointments/:id", h.Appointments.UpdateStatus)
	admin.GET("/appointments/:id/delete", h.Appointments.ConfirmDelete)
	admin.POST("/appointments/:id/delete", h.Appointments.Delete)

	admin.GET("/reviews", h.Reviews.List)
	admin.POST("/reviews/:id", h.Reviews.UpdateStatus)
	admin.GET("/reviews/:id/delete", h.Reviews.ConfirmDelete)
	admin.POST("/reviews/:id/delete", h.Reviews.Delete)

	admin.GET("/statistics", h.Statistics.Show)
	admin.GET("/audit", h.Audit.List)

	return r
}
