package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"clinic-admin/internal/clinicapi"
	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
	"clinic-admin/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parsea las vistas embebidas de la consola.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"idstr":       func(id int64) string { return strconv.FormatInt(id, 10) },
		"statusLabel": statusLabel,
		"periodLabel": periodLabel,
		"actionLabel": actionLabel,
		"roleLabel":   roleLabel,
		"doneLabel":   doneLabel,
		"filterLink":  filterLink,
	}).ParseFS(templatesFS, "templates/*.html"))
}

// view es el modelo común a todas las páginas.
type view struct {
	Title    string
	Nav      string
	Session  domain.Session
	LoggedIn bool
	Notice   string
	Alert    string
	Error    string
	Data     any
}

func newView(c *gin.Context, title, nav string) view {
	sess, ok := CurrentSession(c).Get()
	return view{
		Title:    title,
		Nav:      nav,
		Session:  sess,
		LoggedIn: ok,
		Notice:   doneLabel(c.Query("done")),
	}
}

// confirmView alimenta la página genérica de confirmación de borrado.
type confirmView struct {
	Resource string
	ID       int64
	Action   string
	Back     string
}

// userMessage traduce un error a un texto para el usuario. Los mensajes del
// servidor se muestran tal cual.
func userMessage(err error) string {
	var vErr *domain.ValidationError
	var apiErr *clinicapi.APIError
	var authErr *session.AuthenticationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, clinicapi.ErrNetwork):
		return "No se pudo conectar con el servidor. Inténtalo de nuevo."
	case errors.Is(err, session.ErrNotAdmin):
		return "Acceso restringido a administradores."
	case errors.Is(err, service.ErrNoToken):
		return "La sesión no tiene token. Vuelve a iniciar sesión."
	case errors.Is(err, service.ErrNotConfirmed):
		return "Confirma la eliminación para continuar."
	default:
		return "Ocurrió un error inesperado."
	}
}

func statusFor(err error) int {
	var vErr *domain.ValidationError
	var apiErr *clinicapi.APIError
	var authErr *session.AuthenticationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
			return apiErr.Status
		}
		if apiErr.Status >= 500 {
			return http.StatusBadGateway
		}
		return http.StatusUnprocessableEntity
	case errors.Is(err, clinicapi.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrNotConfirmed):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoToken), errors.Is(err, session.ErrNotAdmin):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// reportable indica si el error merece llegar a Sentry.
func reportable(err error) bool {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) || errors.Is(err, service.ErrNotConfirmed) {
		return false
	}
	return statusFor(err) >= 500
}

// pageFailure registra el error y devuelve el status y el texto a mostrar.
func pageFailure(c *gin.Context, logger *zap.Logger, op string, err error) (int, string) {
	if reportable(err) {
		_ = c.Error(err)
		logger.Error(op+" failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	} else {
		logger.Info(op+" rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	return statusFor(err), userMessage(err)
}

// redirectDone vuelve al listado con un aviso y los filtros que se conserven.
func redirectDone(c *gin.Context, path, done string, keep url.Values) {
	q := url.Values{}
	for k, v := range keep {
		if len(v) > 0 && v[0] != "" {
			q.Set(k, v[0])
		}
	}
	q.Set("done", done)
	c.Redirect(http.StatusSeeOther, path+"?"+q.Encode())
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, key string) int64 {
	id, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func statusLabel(status string) string {
	switch status {
	case domain.AppointmentScheduled:
		return "Programada"
	case domain.AppointmentCompleted:
		return "Completada"
	case domain.AppointmentCancelled:
		return "Cancelada"
	case domain.ReviewPending:
		return "Pendiente"
	case domain.ReviewApproved:
		return "Aprobada"
	case domain.ReviewRejected:
		return "Rechazada"
	case "":
		return "Todas"
	}
	return status
}

func periodLabel(period string) string {
	switch period {
	case domain.PeriodDay:
		return "Día"
	case domain.PeriodWeek:
		return "Semana"
	case domain.PeriodMonth:
		return "Mes"
	case domain.PeriodYear:
		return "Año"
	}
	return period
}

func actionLabel(action string) string {
	switch action {
	case domain.AuditCreate:
		return "Alta"
	case domain.AuditUpdate:
		return "Edición"
	case domain.AuditDelete:
		return "Baja"
	}
	return action
}

func roleLabel(role string) string {
	switch role {
	case domain.RoleAdmin:
		return "Administrador"
	case domain.RolePatient:
		return "Paciente"
	}
	return role
}

func doneLabel(done string) string {
	switch done {
	case "created":
		return "Registro creado."
	case "updated":
		return "Cambios guardados."
	case "deleted":
		return "Registro eliminado."
	}
	return ""
}

func filterLink(path, key, value string) string {
	if value == "" {
		return path
	}
	return path + "?" + url.Values{key: {value}}.Encode()
}

func confirmed(c *gin.Context) bool {
	return c.PostForm("confirm") == "yes"
}

// renderConfirm pinta la confirmación de borrado para :id.
func renderConfirm(c *gin.Context, resource, listPath string) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, listPath)
		return
	}
	back := listPath
	if q := c.Request.URL.RawQuery; q != "" {
		back += "?" + q
	}
	v := newView(c, "Confirmar eliminación", "")
	v.Data = confirmView{
		Resource: resource,
		ID:       id,
		Action:   listPath + "/" + strconv.FormatInt(id, 10) + "/delete",
		Back:     back,
	}
	c.HTML(http.StatusOK, "confirm.html", v)
}

// bindForm lee el cuerpo urlencoded en form. La validación de campos la hacen
// los servicios; aquí sólo falla un cuerpo ilegible.
func bindForm(c *gin.Context, form any) error {
	if err := c.ShouldBindWith(form, binding.Form); err != nil {
		return domain.Invalid("", "the form could not be read")
	}
	return nil
}
