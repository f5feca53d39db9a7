package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
)

const doctorsPath = "/admin/doctors"

// DoctorHandler atiende la página de médicos.
type DoctorHandler struct {
	logger  *zap.Logger
	doctors *service.DoctorService
}

func NewDoctorHandler(logger *zap.Logger, doctors *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{logger: logger, doctors: doctors}
}

type doctorsView struct {
	Doctors  []domain.Doctor
	Options  []domain.Specialty
	Form     service.DoctorForm
	EditID   int64
	EditForm service.DoctorForm
}

// List maneja GET /admin/doctors; ?edit=<id> abre la fila en modo edición.
func (h *DoctorHandler) List(c *gin.Context) {
	h.render(c, http.StatusOK, "", doctorsView{EditID: queryID(c, "edit")})
}

// Create maneja POST /admin/doctors.
func (h *DoctorHandler) Create(c *gin.Context) {
	var form service.DoctorForm
	err := bindForm(c, &form)
	if err == nil {
		sess, _ := CurrentSession(c).Get()
		err = h.doctors.Create(c.Request.Context(), sess, form)
	}
	if err != nil {
		status, msg := pageFailure(c, h.logger, "create doctor", err)
		h.render(c, status, msg, doctorsView{Form: form})
		return
	}
	redirectDone(c, doctorsPath, "created", nil)
}

// Update maneja POST /admin/doctors/:id.
func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, doctorsPath)
		return
	}
	var form service.DoctorForm
	err := bindForm(c, &form)
	if err == nil {
		sess, _ := CurrentSession(c).Get()
		err = h.doctors.Update(c.Request.Context(), sess, id, form)
	}
	if err != nil {
		status, msg := pageFailure(c, h.logger, "update doctor", err)
		h.render(c, status, msg, doctorsView{EditID: id, EditForm: form})
		return
	}
	redirectDone(c, doctorsPath, "updated", nil)
}

// ConfirmDelete maneja GET /admin/doctors/:id/delete.
func (h *DoctorHandler) ConfirmDelete(c *gin.Context) {
	renderConfirm(c, "médico", doctorsPath)
}

// Delete maneja POST /admin/doctors/:id/delete.
func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, doctorsPath)
		return
	}
	sess, _ := CurrentSession(c).Get()
	if err := h.doctors.Delete(c.Request.Context(), sess, id, confirmed(c)); err != nil {
		status, msg := pageFailure(c, h.logger, "delete doctor", err)
		h.render(c, status, msg, doctorsView{})
		return
	}
	redirectDone(c, doctorsPath, "deleted", nil)
}

// render vuelve a leer el listado y las especialidades y pinta la página.
// Si el listado falla se muestra sólo el error.
func (h *DoctorHandler) render(c *gin.Context, status int, alert string, data doctorsView) {
	ctx := c.Request.Context()
	sess, _ := CurrentSession(c).Get()
	v := newView(c, "Médicos", "doctors")
	v.Alert = alert

	doctors, err := h.doctors.List(ctx, sess)
	if err != nil {
		listStatus, msg := pageFailure(c, h.logger, "list doctors", err)
		if status == http.StatusOK {
			status = listStatus
		}
		v.Error = msg
		c.HTML(status, "doctors.html", v)
		return
	}
	data.Doctors = doctors

	options, err := h.doctors.Options(ctx, sess)
	if err != nil {
		h.logger.Warn("specialty options unavailable", zap.Error(err))
	}
	data.Options = options

	if data.EditID > 0 && data.EditForm == (service.DoctorForm{}) {
		for _, d := range doctors {
			if d.ID == data.EditID {
				data.EditForm = service.FormFromDoctor(d)
			}
		}
	}
	v.Data = data
	c.HTML(status, "doctors.html", v)
}
