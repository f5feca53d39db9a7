package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"clinic-admin/internal/clinicapi"
	"clinic-admin/internal/domain"
	"clinic-admin/internal/monitoring"
)

// ErrNotAdmin indica credenciales válidas de una cuenta sin rol de administrador.
var ErrNotAdmin = errors.New("access is restricted to administrators")

// AuthenticationError es un rechazo del endpoint de login; Message es el texto del servidor.
type AuthenticationError struct {
	Status  int
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Authenticator autentica credenciales contra la API de la clínica.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (clinicapi.LoginResult, error)
}

// Manager crea, restaura y destruye sesiones sobre un Store.
type Manager struct {
	store  Store
	auth   Authenticator
	logger *zap.Logger
}

func NewManager(store Store, auth Authenticator, logger *zap.Logger) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, auth: auth, logger: logger}
}

// Restore lee la sesión persistida bajo key. Un registro ausente o corrupto
// equivale a no tener sesión; el corrupto además se borra.
func (m *Manager) Restore(ctx context.Context, key string) (domain.Session, bool) {
	if strings.TrimSpace(key) == "" {
		return domain.Session{}, false
	}
	sess, err := m.store.Load(ctx, key)
	switch {
	case err == nil:
		monitoring.SessionEvent("restore", "ok")
		return sess, true
	case errors.Is(err, ErrNotFound):
		return domain.Session{}, false
	case errors.Is(err, ErrMalformed):
		m.logger.Warn("discarding malformed session", zap.Error(err))
		monitoring.SessionEvent("restore", "malformed")
		if delErr := m.store.Delete(ctx, key); delErr != nil {
			m.logger.Warn("delete malformed session failed", zap.Error(delErr))
		}
		return domain.Session{}, false
	default:
		m.logger.Error("load session failed", zap.Error(err))
		monitoring.SessionEvent("restore", "error")
		return domain.Session{}, false
	}
}

// Login autentica creds y, sólo si la cuenta es de administrador, persiste la
// sesión bajo key.
func (m *Manager) Login(ctx context.Context, key string, creds domain.Credentials) (domain.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validateCredentials(creds); err != nil {
		return domain.Session{}, err
	}
	if m.auth == nil {
		return domain.Session{}, errors.New("session manager not configured")
	}

	res, err := m.auth.Login(ctx, creds)
	if err != nil {
		var apiErr *clinicapi.APIError
		if errors.As(err, &apiErr) {
			monitoring.SessionEvent("login", "rejected")
			return domain.Session{}, &AuthenticationError{Status: apiErr.Status, Message: apiErr.Message}
		}
		monitoring.SessionEvent("login", "error")
		return domain.Session{}, err
	}

	if res.Account.Role != domain.RoleAdmin {
		m.logger.Info("non-admin login refused", zap.Int64("account_id", res.Account.ID))
		monitoring.SessionEvent("login", "not_admin")
		return domain.Session{}, ErrNotAdmin
	}

	sess := domain.Session{
		ID:        res.Account.ID,
		FirstName: res.Account.FirstName,
		LastName:  res.Account.LastName,
		Email:     res.Account.Email,
		Role:      res.Account.Role,
		Token:     res.Token,
	}
	if !sess.Valid() {
		return domain.Session{}, &AuthenticationError{Message: "login response without token"}
	}
	if err := m.store.Save(ctx, key, sess); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	monitoring.SessionEvent("login", "ok")
	return sess, nil
}

// Logout borra la sesión persistida. Es idempotente y no llama a la API.
func (m *Manager) Logout(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	monitoring.SessionEvent("logout", "ok")
	return m.store.Delete(ctx, key)
}

// Bind devuelve el contexto de sesión ligado a key, todavía sin restaurar.
func (m *Manager) Bind(key string) *Current {
	return &Current{mgr: m, key: key}
}

func validateCredentials(creds domain.Credentials) error {
	return domain.Validate(creds)
}
