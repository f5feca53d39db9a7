package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
)

const appointmentsPath = "/admin/appointments"

type AppointmentHandler struct {
	logger       *zap.Logger
	appointments *service.AppointmentService
}

func NewAppointmentHandler(logger *zap.Logger, appointments *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{logger: logger, appointments: appointments}
}

type appointmentsView struct {
	Appointments []domain.Appointment
	Filter       string
	Statuses     []string
	EditID       int64
	EditStatus   string
}

// List maneja GET /admin/appointments?status=&edit=.
func (h *AppointmentHandler) List(c *gin.Context) {
	filter := service.NormalizeAppointmentFilter(c.Query("status"))
	h.render(c, http.StatusOK, "", appointmentsView{Filter: filter, EditID: queryID(c, "edit")})
}

// UpdateStatus maneja POST /admin/appointments/:id.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	filter := service.NormalizeAppointmentFilter(c.PostForm("filter"))
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, appointmentsPath)
		return
	}
	var form service.StatusForm
	err := bindForm(c, &form)
	if err == nil {
		sess, _ := CurrentSession(c).Get()
		err = h.appointments.UpdateStatus(c.Request.Context(), sess, id, form)
	}
	if err != nil {
		status, msg := pageFailure(c, h.logger, "update appointment", err)
		h.render(c, status, msg, appointmentsView{Filter: filter, EditID: id, EditStatus: form.Status})
		return
	}
	redirectDone(c, appointmentsPath, "updated", url.Values{"status": {filter}})
}

func (h *AppointmentHandler) ConfirmDelete(c *gin.Context) {
	renderConfirm(c, "cita", appointmentsPath)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	filter := service.NormalizeAppointmentFilter(c.PostForm("filter"))
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, appointmentsPath)
		return
	}
	sess, _ := CurrentSession(c).Get()
	if err := h.appointments.Delete(c.Request.Context(), sess, id, confirmed(c)); err != nil {
		status, msg := pageFailure(c, h.logger, "delete appointment", err)
		h.render(c, status, msg, appointmentsView{Filter: filter})
		return
	}
	redirectDone(c, appointmentsPath, "deleted", url.Values{"status": {filter}})
}

func (h *AppointmentHandler) render(c *gin.Context, status int, alert string, data appointmentsView) {
	sess, _ := CurrentSession(c).Get()
	v := newView(c, "Citas", "appointments")
	v.Alert = alert
	data.Statuses = domain.AppointmentStatuses

	list, err := h.appointments.List(c.Request.Context(), sess, data.Filter)
	if err != nil {
		listStatus, msg := pageFailure(c, h.logger, "list appointments", err)
		if status == http.StatusOK {
			status = listStatus
		}
		v.Error = msg
		v.Data = data
		c.HTML(status, "appointments.html", v)
		return
	}
	data.Appointments = list
	if data.EditID > 0 && data.EditStatus == "" {
		for _, a := range list {
			if a.ID == data.EditID {
				data.EditStatus = a.Status
			}
		}
	}
	v.Data = data
	c.HTML(status, "appointments.html", v)
}
