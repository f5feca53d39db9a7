package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
)

type StatisticsHandler struct {
	logger *zap.Logger
	stats  *service.StatisticsService
}

func NewStatisticsHandler(logger *zap.Logger, stats *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{logger: logger, stats: stats}
}

type statisticsView struct {
	Period    string
	Periods   []string
	Dashboard domain.Dashboard
	Loaded    bool
}

// Show maneja GET /admin/statistics?period=.
func (h *StatisticsHandler) Show(c *gin.Context) {
	sess, _ := CurrentSession(c).Get()
	v := newView(c, "Estadísticas", "statistics")
	data := statisticsView{Period: service.NormalizePeriod(c.Query("period")), Periods: domain.Periods}

	dash, err := h.stats.Dashboard(c.Request.Context(), sess, data.Period)
	if err != nil {
		status, msg := pageFailure(c, h.logger, "statistics", err)
		v.Error = msg
		v.Data = data
		c.HTML(status, "statistics.html", v)
		return
	}
	data.Dashboard = dash
	data.Loaded = true
	v.Data = data
	c.HTML(http.StatusOK, "statistics.html", v)
}
