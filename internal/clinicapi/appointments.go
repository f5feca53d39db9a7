package clinicapi

import (
	"context"
	"net/http"

	"clinic-admin/internal/domain"
)

const appointmentsPath = "/api/admin/appointments"

func (c *Client) ListAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := c.do(ctx, request{method: http.MethodGet, path: appointmentsPath, endpoint: "appointments.list", token: token}, &out)
	return out, err
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, token string, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, request{method: http.MethodPut, path: idPath(appointmentsPath, id), endpoint: "appointments.update", token: token, body: body}, nil)
}

func (c *Client) DeleteAppointment(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: idPath(appointmentsPath, id), endpoint: "appointments.delete", token: token}, nil)
}
