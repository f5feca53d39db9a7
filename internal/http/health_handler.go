package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck es una dependencia opcional que /healthz comprueba.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	logger *zap.Logger
	checks []HealthCheck
}

func NewHealthHandler(logger *zap.Logger, checks ...HealthCheck) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{logger: logger, checks: checks}
}

// Show maneja GET /healthz. Sin comprobaciones configuradas siempre responde ok.
func (h *HealthHandler) Show(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok"}
	if len(h.checks) > 0 {
		results := gin.H{}
		for _, hc := range h.checks {
			if err := hc.Check(c.Request.Context()); err != nil {
				h.logger.Warn("health check failed", zap.String("check", hc.Name), zap.Error(err))
				results[hc.Name] = "unavailable"
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				continue
			}
			results[hc.Name] = "ok"
		}
		body["checks"] = results
	}
	c.JSON(status, body)
}
