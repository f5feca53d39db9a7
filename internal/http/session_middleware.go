package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clinic-admin/internal/session"
)

const currentSessionKey = "current_session"

// CookieConfig describe la cookie que identifica la sesión del navegador.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Sessions liga cada request con su sesión persistida.
type Sessions struct {
	manager *session.Manager
	cookie  CookieConfig
}

func NewSessions(manager *session.Manager, cookie CookieConfig) *Sessions {
	if cookie.Name == "" {
		cookie.Name = "clinic_admin_session"
	}
	return &Sessions{manager: manager, cookie: cookie}
}

// Middleware restaura la sesión de la cookie y la guarda en el contexto.
// Una cookie con formato inválido se trata como ausente.
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ""
		if raw, err := c.Cookie(s.cookie.Name); err == nil {
			if _, err := uuid.Parse(raw); err == nil {
				key = raw
			}
		}
		cur := s.manager.Bind(key)
		cur.Init(c.Request.Context())
		c.Set(currentSessionKey, cur)
		c.Next()
	}
}

// Bind crea un contexto de sesión nuevo con una clave recién generada.
func (s *Sessions) Bind() *session.Current {
	return s.manager.Bind(uuid.NewString())
}

// Activate reemplaza la sesión del request y escribe la cookie.
func (s *Sessions) Activate(c *gin.Context, cur *session.Current) {
	c.Set(currentSessionKey, cur)
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    cur.Key(),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear borra la cookie de sesión.
func (s *Sessions) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentSession obtiene la sesión del request. Nunca devuelve nil.
func CurrentSession(c *gin.Context) *session.Current {
	val, ok := c.Get(currentSessionKey)
	if ok {
		if cur, ok := val.(*session.Current); ok && cur != nil {
			return cur
		}
	}
	return session.Anonymous()
}
