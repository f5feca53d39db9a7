package main

import (
	"errors"

	"clinic-admin/internal/clinicapi"
	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
	"clinic-admin/internal/session"
)

// describe traduce los errores conocidos al texto que ve el usuario.
func describe(err error) string {
	var vErr *domain.ValidationError
	var apiErr *clinicapi.APIError
	var authErr *session.AuthenticationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, clinicapi.ErrNetwork):
		return "no se pudo conectar con el servidor"
	case errors.Is(err, session.ErrNotAdmin):
		return "acceso restringido a administradores"
	case errors.Is(err, service.ErrNoToken):
		return "la sesión no tiene token; vuelve a iniciar sesión"
	}
	return err.Error()
}
