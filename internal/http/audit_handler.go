package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-admin/internal/audit"
	"clinic-admin/internal/domain"
)

// AuditHandler lista las últimas mutaciones registradas.
type AuditHandler struct {
	logger *zap.Logger
	reader audit.Reader
}

// NewAuditHandler acepta reader nil cuando la auditoría en Postgres está desactivada.
func NewAuditHandler(logger *zap.Logger, reader audit.Reader) *AuditHandler {
	return &AuditHandler{logger: logger, reader: reader}
}

type auditView struct {
	Enabled bool
	Entries []domain.AuditEntry
}

func (h *AuditHandler) List(c *gin.Context) {
	v := newView(c, "Auditoría", "audit")
	if h.reader == nil {
		v.Data = auditView{}
		c.HTML(http.StatusOK, "audit.html", v)
		return
	}
	entries, err := h.reader.ListRecent(c.Request.Context(), 100)
	if err != nil {
		_ = c.Error(err)
		h.logger.Error("list audit failed", zap.Error(err))
		v.Error = "No se pudo leer el registro de auditoría."
		v.Data = auditView{Enabled: true}
		c.HTML(http.StatusInternalServerError, "audit.html", v)
		return
	}
	v.Data = auditView{Enabled: true, Entries: entries}
	c.HTML(http.StatusOK, "audit.html", v)
}
