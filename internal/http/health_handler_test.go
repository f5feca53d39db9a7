package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func serveHealth(h *HealthHandler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", h.Show)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	return w
}

func TestHealthHandler_ReportsChecks(t *testing.T) {
	ok := HealthCheck{Name: "audit_db", Check: func(context.Context) error { return nil }}
	w := serveHealth(NewHealthHandler(zap.NewNop(), ok))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"audit_db":"ok"`) {
		t.Fatalf("unexpected health %d %s", w.Code, w.Body.String())
	}
}

func TestHealthHandler_FailedCheckIsUnavailable(t *testing.T) {
	down := HealthCheck{Name: "audit_db", Check: func(context.Context) error { return errors.New("connection refused") }}
	w := serveHealth(NewHealthHandler(zap.NewNop(), down))
	body := w.Body.String()
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(body, `"degraded"`) || !strings.Contains(body, `"audit_db":"unavailable"`) {
		t.Fatalf("unexpected health %d %s", w.Code, body)
	}
	if strings.Contains(body, "connection refused") {
		t.Fatalf("health must not expose the underlying error")
	}
}
