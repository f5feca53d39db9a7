package session

import (
	"context"
	"sync"

	"clinic-admin/internal/domain"
)

// Current es el contexto de sesión que se inyecta en cada componente que lo
// necesita. La copia en memoria y la persistida se mantienen sincronizadas:
// toda mutación escribe en el Store o lo limpia.
type Current struct {
	mgr *Manager
	key string

	mu     sync.RWMutex
	sess   domain.Session
	active bool
}

// Init restaura la sesión persistida, si existe.
func (c *Current) Init(ctx context.Context) bool {
	sess, ok := c.mgr.Restore(ctx, c.key)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess, c.active = sess, ok
	return ok
}

// Login reemplaza la sesión activa si la autenticación tiene éxito. Ante un
// error la sesión previa no cambia.
func (c *Current) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	sess, err := c.mgr.Login(ctx, c.key, creds)
	if err != nil {
		return domain.Session{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess, c.active = sess, true
	return sess, nil
}

// Logout limpia la memoria siempre y después el registro persistido.
func (c *Current) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.sess, c.active = domain.Session{}, false
	c.mu.Unlock()
	return c.mgr.Logout(ctx, c.key)
}

func (c *Current) Get() (domain.Session, bool) {
	if c == nil {
		return domain.Session{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess, c.active
}

// Token devuelve el bearer token activo o "" si no hay sesión.
func (c *Current) Token() string {
	sess, ok := c.Get()
	if !ok {
		return ""
	}
	return sess.Token
}

// IsAdmin indica si hay sesión activa con rol de administrador.
func (c *Current) IsAdmin() bool {
	sess, ok := c.Get()
	return ok && sess.IsAdmin()
}

func (c *Current) Key() string {
	if c == nil {
		return ""
	}
	return c.key
}

// Anonymous devuelve un contexto sin sesión y sin almacenamiento.
func Anonymous() *Current {
	return NewManager(nil, nil, nil).Bind("")
}
