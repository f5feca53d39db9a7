package clinicapi

import (
	"context"
	"net/http"

	"clinic-admin/internal/domain"
)

// Account es la identidad que devuelve el endpoint de login.
type Account struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// LoginResult es la respuesta de POST /api/auth/login.
type LoginResult struct {
	Account Account `json:"patient"`
	Token   string  `json:"token"`
}

// Login envía las credenciales al endpoint de autenticación.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/api/auth/login",
		endpoint: "auth.login",
		body:     creds,
	}, &out)
	if err != nil {
		return LoginResult{}, err
	}
	return out, nil
}
