package domain

import "strings"

// RoleAdmin es el único rol con acceso a la consola.
const RoleAdmin = "admin"

// RolePatient es el rol por defecto de las cuentas de la clínica.
const RolePatient = "patient"

// Session es la identidad del administrador autenticado junto con su bearer token.
type Session struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// IsAdmin indica si la sesión pertenece a un administrador.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Valid indica si el registro persistido está completo.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != "" && strings.TrimSpace(s.Role) != ""
}

// DisplayName devuelve nombre y apellido para la cabecera.
func (s Session) DisplayName() string {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		return s.Email
	}
	return name
}

// Credentials son los datos del formulario de login.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"notblank"`
}
