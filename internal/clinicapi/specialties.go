package clinicapi

import (
	"context"
	"net/http"

	"clinic-admin/internal/domain"
)

const specialtiesPath = "/api/admin/specialties"

// ListSpecialties lista la colección administrable de especialidades.
func (c *Client) ListSpecialties(ctx context.Context, token string) ([]domain.Specialty, error) {
	var out []domain.Specialty
	err := c.do(ctx, request{method: http.MethodGet, path: specialtiesPath, endpoint: "specialties.list", token: token}, &out)
	return out, err
}

// SpecialtyOptions obtiene la lista pública usada para elegir la especialidad de un médico.
func (c *Client) SpecialtyOptions(ctx context.Context, token string) ([]domain.Specialty, error) {
	var out []domain.Specialty
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/specialties", endpoint: "specialties.lookup", token: token}, &out)
	return out, err
}

func (c *Client) CreateSpecialty(ctx context.Context, token string, in domain.SpecialtyInput) error {
	return c.do(ctx, request{method: http.MethodPost, path: specialtiesPath, endpoint: "specialties.create", token: token, body: in}, nil)
}

func (c *Client) UpdateSpecialty(ctx context.Context, token string, id int64, in domain.SpecialtyInput) error {
	return c.do(ctx, request{method: http.MethodPut, path: idPath(specialtiesPath, id), endpoint: "specialties.update", token: token, body: in}, nil)
}

func (c *Client) DeleteSpecialty(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: idPath(specialtiesPath, id), endpoint: "specialties.delete", token: token}, nil)
}
