package clinicapi

import (
	"context"
	"net/http"

	"clinic-admin/internal/domain"
)

const doctorsPath = "/api/admin/doctors"

func (c *Client) ListDoctors(ctx context.Context, token string) ([]domain.Doctor, error) {
	var out []domain.Doctor
	err := c.do(ctx, request{method: http.MethodGet, path: doctorsPath, endpoint: "doctors.list", token: token}, &out)
	return out, err
}

func (c *Client) CreateDoctor(ctx context.Context, token string, in domain.DoctorInput) error {
	return c.do(ctx, request{method: http.MethodPost, path: doctorsPath, endpoint: "doctors.create", token: token, body: in}, nil)
}

func (c *Client) UpdateDoctor(ctx context.Context, token string, id int64, in domain.DoctorInput) error {
	return c.do(ctx, request{method: http.MethodPut, path: idPath(doctorsPath, id), endpoint: "doctors.update", token: token, body: in}, nil)
}

func (c *Client) DeleteDoctor(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: idPath(doctorsPath, id), endpoint: "doctors.delete", token: token}, nil)
}
