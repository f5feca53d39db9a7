package clinicapi

import (
	"context"
	"net/http"

	"clinic-admin/internal/domain"
)

const usersPath = "/api/admin/users"

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, request{method: http.MethodGet, path: usersPath, endpoint: "users.list", token: token}, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, token string, in domain.UserInput) error {
	return c.do(ctx, request{method: http.MethodPost, path: usersPath, endpoint: "users.create", token: token, body: in}, nil)
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int64, in domain.UserInput) error {
	return c.do(ctx, request{method: http.MethodPut, path: idPath(usersPath, id), endpoint: "users.update", token: token, body: in}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: idPath(usersPath, id), endpoint: "users.delete", token: token}, nil)
}
