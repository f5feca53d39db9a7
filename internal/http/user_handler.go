package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
)

const usersPath = "/admin/users"

// UserHandler atiende la página de usuarios y el alta de administradores.
type UserHandler struct {
	logger *zap.Logger
	users  *service.UserService
}

func NewUserHandler(logger *zap.Logger, users *service.UserService) *UserHandler {
	return &UserHandler{logger: logger, users: users}
}

type usersView struct {
	Users    []domain.User
	Form     service.AdminForm
	EditID   int64
	EditForm service.UserForm
	Roles    []string
}

func (h *UserHandler) List(c *gin.Context) {
	h.render(c, http.StatusOK, "", usersView{EditID: queryID(c, "edit")})
}

// CreateAdmin maneja POST /admin/users.
func (h *UserHandler) CreateAdmin(c *gin.Context) {
	var form service.AdminForm
	err := bindForm(c, &form)
	if err == nil {
		sess, _ := CurrentSession(c).Get()
		err = h.users.CreateAdmin(c.Request.Context(), sess, form)
	}
	if err != nil {
		status, msg := pageFailure(c, h.logger, "create admin", err)
		form.Password = ""
		h.render(c, status, msg, usersView{Form: form})
		return
	}
	redirectDone(c, usersPath, "created", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, usersPath)
		return
	}
	var form service.UserForm
	err := bindForm(c, &form)
	if err == nil {
		sess, _ := CurrentSession(c).Get()
		err = h.users.Update(c.Request.Context(), sess, id, form)
	}
	if err != nil {
		status, msg := pageFailure(c, h.logger, "update user", err)
		h.render(c, status, msg, usersView{EditID: id, EditForm: form})
		return
	}
	redirectDone(c, usersPath, "updated", nil)
}

func (h *UserHandler) ConfirmDelete(c *gin.Context) {
	renderConfirm(c, "usuario", usersPath)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, usersPath)
		return
	}
	sess, _ := CurrentSession(c).Get()
	if err := h.users.Delete(c.Request.Context(), sess, id, confirmed(c)); err != nil {
		status, msg := pageFailure(c, h.logger, "delete user", err)
		h.render(c, status, msg, usersView{})
		return
	}
	redirectDone(c, usersPath, "deleted", nil)
}

func (h *UserHandler) render(c *gin.Context, status int, alert string, data usersView) {
	sess, _ := CurrentSession(c).Get()
	v := newView(c, "Usuarios", "users")
	v.Alert = alert

	list, err := h.users.List(c.Request.Context(), sess)
	if err != nil {
		listStatus, msg := pageFailure(c, h.logger, "list users", err)
		if status == http.StatusOK {
			status = listStatus
		}
		v.Error = msg
		c.HTML(status, "users.html", v)
		return
	}
	data.Users = list
	data.Roles = []string{domain.RolePatient, domain.RoleAdmin}
	if data.EditID > 0 && data.EditForm == (service.UserForm{}) {
		for _, u := range list {
			if u.ID == data.EditID {
				data.EditForm = service.FormFromUser(u)
			}
		}
	}
	v.Data = data
	c.HTML(status, "users.html", v)
}
