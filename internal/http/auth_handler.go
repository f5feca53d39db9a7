package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/session"
)

// AuthHandler atiende inicio, login y logout.
type AuthHandler struct {
	logger   *zap.Logger
	sessions *Sessions
}

func NewAuthHandler(logger *zap.Logger, sessions *Sessions) *AuthHandler {
	return &AuthHandler{logger: logger, sessions: sessions}
}

type homeView struct {
	TokenExpiry time.Time
	HasExpiry   bool
	Expired     bool
}

// Home maneja GET /.
func (h *AuthHandler) Home(c *gin.Context) {
	v := newView(c, "Inicio", "home")
	var data homeView
	if v.LoggedIn {
		if exp, ok := session.TokenExpiry(v.Session.Token); ok {
			data = homeView{TokenExpiry: exp, HasExpiry: true, Expired: exp.Before(time.Now())}
		}
	}
	v.Data = data
	c.HTML(http.StatusOK, "home.html", v)
}

type loginView struct {
	Email string
}

// LoginPage maneja GET /login.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	v := newView(c, "Iniciar sesión", "login")
	v.Data = loginView{}
	c.HTML(http.StatusOK, "login.html", v)
}

// Login maneja POST /login. La sesión nueva se crea bajo una clave nueva y,
// sólo si tiene éxito, reemplaza a la anterior.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds domain.Credentials
	err := bindForm(c, &creds)
	next := h.sessions.Bind()
	var sess domain.Session
	if err == nil {
		sess, err = next.Login(c.Request.Context(), creds)
	}
	if err != nil {
		status, msg := pageFailure(c, h.logger, "login", err)
		v := newView(c, "Iniciar sesión", "login")
		v.Alert = msg
		v.Data = loginView{Email: creds.Email}
		c.HTML(status, "login.html", v)
		return
	}

	if prev := CurrentSession(c); prev.Key() != "" {
		if err := prev.Logout(c.Request.Context()); err != nil {
			h.logger.Warn("drop previous session failed", zap.Error(err))
		}
	}
	h.sessions.Activate(c, next)
	h.logger.Info("admin logged in", zap.Int64("account_id", sess.ID))
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout maneja POST /logout. Siempre termina en /login.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := CurrentSession(c).Logout(c.Request.Context()); err != nil {
		h.logger.Warn("logout failed", zap.Error(err))
	}
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// SessionInfo maneja GET /api/session. Nunca expone el token.
func (h *AuthHandler) SessionInfo(c *gin.Context) {
	sess, ok := CurrentSession(c).Get()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	user := gin.H{
		"id":        sess.ID,
		"firstName": sess.FirstName,
		"lastName":  sess.LastName,
		"email":     sess.Email,
		"role":      sess.Role,
	}
	resp := gin.H{"authenticated": true, "user": user}
	if exp, ok := session.TokenExpiry(sess.Token); ok {
		resp["tokenExpiresAt"] = exp.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
