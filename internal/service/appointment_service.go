package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"clinic-admin/internal/audit"
	"clinic-admin/internal/domain"
)

type AppointmentAPI interface {
	ListAppointments(ctx context.Context, token string) ([]domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, token string, id int64, status string) error
	DeleteAppointment(ctx context.Context, token string, id int64) error
}

// AppointmentService coordina la página de citas.
type AppointmentService struct {
	resource
	api AppointmentAPI
}

func NewAppointmentService(logger *zap.Logger, api AppointmentAPI, recorder audit.Recorder) *AppointmentService {
	return &AppointmentService{resource: newResource("appointments", logger, recorder), api: api}
}

// NormalizeAppointmentFilter devuelve el filtro si es un estado conocido y
// vacío (todas) en cualquier otro caso.
func NormalizeAppointmentFilter(status string) string {
	status = strings.TrimSpace(status)
	if domain.IsAppointmentStatus(status) {
		return status
	}
	return ""
}

// List hace una única lectura y filtra por estado sobre el resultado.
func (s *AppointmentService) List(ctx context.Context, actor domain.Session, status string) ([]domain.Appointment, error) {
	tok, err := token(actor)
	if err != nil {
		return nil, err
	}
	all, err := s.api.ListAppointments(ctx, tok)
	if err != nil {
		return nil, s.fail("list", 0, err)
	}
	status = NormalizeAppointmentFilter(status)
	if status == "" {
		return all, nil
	}
	out := make([]domain.Appointment, 0, len(all))
	for _, a := range all {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, actor domain.Session, id int64, form StatusForm) error {
	tok, err := token(actor)
	if err != nil {
		return err
	}
	form.Status = strings.TrimSpace(form.Status)
	if err := domain.Validate(form); err != nil {
		return err
	}
	status := form.Status
	if !domain.IsAppointmentStatus(status) {
		return domain.Invalid("status", "status must be scheduled, completed or cancelled")
	}
	if id <= 0 {
		return domain.Invalid("id", "id is invalid")
	}
	if err := s.api.UpdateAppointmentStatus(ctx, tok, id, status); err != nil {
		return s.fail("update", id, err)
	}
	s.record(ctx, actor, domain.AuditUpdate, id)
	return nil
}

func (s *AppointmentService) Delete(ctx context.Context, actor domain.Session, id int64, confirmed bool) error {
	return s.deleteWith(ctx, actor, id, confirmed, s.api.DeleteAppointment)
}
