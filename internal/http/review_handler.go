package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
)

const reviewsPath = "/admin/reviews"

// ReviewHandler atiende la moderación de reseñas.
type ReviewHandler struct {
	logger  *zap.Logger
	reviews *service.ReviewService
}

func NewReviewHandler(logger *zap.Logger, reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{logger: logger, reviews: reviews}
}

type reviewsView struct {
	Reviews    []domain.Review
	Filter     string
	Statuses   []string
	EditID     int64
	EditStatus string
}

func (h *ReviewHandler) List(c *gin.Context) {
	filter := service.NormalizeReviewFilter(c.Query("status"))
	h.render(c, http.StatusOK, "", reviewsView{Filter: filter, EditID: queryID(c, "edit")})
}

// UpdateStatus maneja POST /admin/reviews/:id.
func (h *ReviewHandler) UpdateStatus(c *gin.Context) {
	filter := service.NormalizeReviewFilter(c.PostForm("filter"))
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, reviewsPath)
		return
	}
	var form service.StatusForm
	err := bindForm(c, &form)
	if err == nil {
		sess, _ := CurrentSession(c).Get()
		err = h.reviews.UpdateStatus(c.Request.Context(), sess, id, form)
	}
	if err != nil {
		status, msg := pageFailure(c, h.logger, "update review", err)
		h.render(c, status, msg, reviewsView{Filter: filter, EditID: id, EditStatus: form.Status})
		return
	}
	redirectDone(c, reviewsPath, "updated", url.Values{"status": {filter}})
}

func (h *ReviewHandler) ConfirmDelete(c *gin.Context) {
	renderConfirm(c, "reseña", reviewsPath)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	filter := service.NormalizeReviewFilter(c.PostForm("filter"))
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, reviewsPath)
		return
	}
	sess, _ := CurrentSession(c).Get()
	if err := h.reviews.Delete(c.Request.Context(), sess, id, confirmed(c)); err != nil {
		status, msg := pageFailure(c, h.logger, "delete review", err)
		h.render(c, status, msg, reviewsView{Filter: filter})
		return
	}
	redirectDone(c, reviewsPath, "deleted", url.Values{"status": {filter}})
}

func (h *ReviewHandler) render(c *gin.Context, status int, alert string, data reviewsView) {
	sess, _ := CurrentSession(c).Get()
	v := newView(c, "Reseñas", "reviews")
	v.Alert = alert
	data.Statuses = domain.ReviewStatuses

	list, err := h.reviews.List(c.Request.Context(), sess, data.Filter)
	if err != nil {
		listStatus, msg := pageFailure(c, h.logger, "list reviews", err)
		if status == http.StatusOK {
			status = listStatus
		}
		v.Error = msg
		v.Data = data
		c.HTML(status, "reviews.html", v)
		return
	}
	data.Reviews = list
	if data.EditID > 0 && data.EditStatus == "" {
		for _, r := range list {
			if r.ID == data.EditID {
				data.EditStatus = r.Status
			}
		}
	}
	v.Data = data
	c.HTML(status, "reviews.html", v)
}
