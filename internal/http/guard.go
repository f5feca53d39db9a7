package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-admin/internal/domain"
)

// RouteKind clasifica las rutas para el guard.
type RouteKind int

const (
	RoutePublic RouteKind = iota
	RouteLogin
	RouteProtected
)

// SessionReader es lo único que el guard necesita de la sesión.
type SessionReader interface {
	Get() (domain.Session, bool)
}

// Decision es el resultado del guard: renderizar o redirigir.
type Decision struct {
	Allow    bool
	Redirect string
}

// Decide aplica las reglas de navegación. Es sólo UX: la API remota es la
// que autoriza cada petición.
func Decide(kind RouteKind, cur SessionReader) Decision {
	sess, active := cur.Get()
	switch kind {
	case RouteLogin:
		if active {
			return Decision{Redirect: "/"}
		}
	case RouteProtected:
		if !active || !sess.IsAdmin() {
			return Decision{Redirect: "/login"}
		}
	}
	return Decision{Allow: true}
}

func guard(kind RouteKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := Decide(kind, CurrentSession(c))
		if !d.Allow {
			c.Redirect(http.StatusSeeOther, d.Redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin protege las páginas de administración.
func RequireAdmin() gin.HandlerFunc {
	return guard(RouteProtected)
}

// RedirectAuthenticated saca de la página de login a quien ya tiene sesión.
func RedirectAuthenticated() gin.HandlerFunc {
	return guard(RouteLogin)
}
