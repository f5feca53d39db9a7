package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
)

const specialtiesPath = "/admin/specialties"

type SpecialtyHandler struct {
	logger      *zap.Logger
	specialties *service.SpecialtyService
}

func NewSpecialtyHandler(logger *zap.Logger, specialties *service.SpecialtyService) *SpecialtyHandler {
	return &SpecialtyHandler{logger: logger, specialties: specialties}
}

type specialtiesView struct {
	Specialties []domain.Specialty
	Form        service.SpecialtyForm
	EditID      int64
	EditForm    service.SpecialtyForm
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	h.render(c, http.StatusOK, "", specialtiesView{EditID: queryID(c, "edit")})
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	var form service.SpecialtyForm
	err := bindForm(c, &form)
	if err == nil {
		sess, _ := CurrentSession(c).Get()
		err = h.specialties.Create(c.Request.Context(), sess, form)
	}
	if err != nil {
		status, msg := pageFailure(c, h.logger, "create specialty", err)
		h.render(c, status, msg, specialtiesView{Form: form})
		return
	}
	redirectDone(c, specialtiesPath, "created", nil)
}

func (h *SpecialtyHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, specialtiesPath)
		return
	}
	var form service.SpecialtyForm
	err := bindForm(c, &form)
	if err == nil {
		sess, _ := CurrentSession(c).Get()
		err = h.specialties.Update(c.Request.Context(), sess, id, form)
	}
	if err != nil {
		status, msg := pageFailure(c, h.logger, "update specialty", err)
		h.render(c, status, msg, specialtiesView{EditID: id, EditForm: form})
		return
	}
	redirectDone(c, specialtiesPath, "updated", nil)
}

func (h *SpecialtyHandler) ConfirmDelete(c *gin.Context) {
	renderConfirm(c, "especialidad", specialtiesPath)
}

func (h *SpecialtyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, specialtiesPath)
		return
	}
	sess, _ := CurrentSession(c).Get()
	if err := h.specialties.Delete(c.Request.Context(), sess, id, confirmed(c)); err != nil {
		status, msg := pageFailure(c, h.logger, "delete specialty", err)
		h.render(c, status, msg, specialtiesView{})
		return
	}
	redirectDone(c, specialtiesPath, "deleted", nil)
}

func (h *SpecialtyHandler) render(c *gin.Context, status int, alert string, data specialtiesView) {
	sess, _ := CurrentSession(c).Get()
	v := newView(c, "Especialidades", "specialties")
	v.Alert = alert

	list, err := h.specialties.List(c.Request.Context(), sess)
	if err != nil {
		listStatus, msg := pageFailure(c, h.logger, "list specialties", err)
		if status == http.StatusOK {
			status = listStatus
		}
		v.Error = msg
		c.HTML(status, "specialties.html", v)
		return
	}
	data.Specialties = list
	if data.EditID > 0 && data.EditForm == (service.SpecialtyForm{}) {
		for _, sp := range list {
			if sp.ID == data.EditID {
				data.EditForm = service.FormFromSpecialty(sp)
			}
		}
	}
	v.Data = data
	c.HTML(status, "specialties.html", v)
}
