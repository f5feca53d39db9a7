package service

import (
	"context"

	"go.uber.org/zap"

	"clinic-admin/internal/audit"
	"clinic-admin/internal/domain"
)

// DoctorAPI es la parte de la API de la clínica que usa la página de médicos.
type DoctorAPI interface {
	ListDoctors(ctx context.Context, token string) ([]domain.Doctor, error)
	SpecialtyOptions(ctx context.Context, token string) ([]domain.Specialty, error)
	CreateDoctor(ctx context.Context, token string, in domain.DoctorInput) error
	UpdateDoctor(ctx context.Context, token string, id int64, in domain.DoctorInput) error
	DeleteDoctor(ctx context.Context, token string, id int64) error
}

// DoctorService coordina la página de médicos.
type DoctorService struct {
	resource
	api DoctorAPI
}

func NewDoctorService(logger *zap.Logger, api DoctorAPI, recorder audit.Recorder) *DoctorService {
	return &DoctorService{resource: newResource("doctors", logger, recorder), api: api}
}

func (s *DoctorService) List(ctx context.Context, actor domain.Session) ([]domain.Doctor, error) {
	tok, err := token(actor)
	if err != nil {
		return nil, err
	}
	doctors, err := s.api.ListDoctors(ctx, tok)
	if err != nil {
		return nil, s.fail("list", 0, err)
	}
	return doctors, nil
}

// Options devuelve las especialidades seleccionables en el formulario.
func (s *DoctorService) Options(ctx context.Context, actor domain.Session) ([]domain.Specialty, error) {
	tok, err := token(actor)
	if err != nil {
		return nil, err
	}
	options, err := s.api.SpecialtyOptions(ctx, tok)
	if err != nil {
		return nil, s.fail("specialty options", 0, err)
	}
	return options, nil
}

// Create valida los campos sin red y luego comprueba que la especialidad
// elegida exista antes de crear el médico.
func (s *DoctorService) Create(ctx context.Context, actor domain.Session, form DoctorForm) error {
	in, err := s.input(ctx, actor, form)
	if err != nil {
		return err
	}
	if err := s.api.CreateDoctor(ctx, actor.Token, in); err != nil {
		return s.fail("create", 0, err)
	}
	s.record(ctx, actor, domain.AuditCreate, 0)
	return nil
}

func (s *DoctorService) Update(ctx context.Context, actor domain.Session, id int64, form DoctorForm) error {
	if id <= 0 {
		return domain.Invalid("id", "id is invalid")
	}
	in, err := s.input(ctx, actor, form)
	if err != nil {
		return err
	}
	if err := s.api.UpdateDoctor(ctx, actor.Token, id, in); err != nil {
		return s.fail("update", id, err)
	}
	s.record(ctx, actor, domain.AuditUpdate, id)
	return nil
}

func (s *DoctorService) Delete(ctx context.Context, actor domain.Session, id int64, confirmed bool) error {
	return s.deleteWith(ctx, actor, id, confirmed, s.api.DeleteDoctor)
}

func (s *DoctorService) input(ctx context.Context, actor domain.Session, form DoctorForm) (domain.DoctorInput, error) {
	if _, err := token(actor); err != nil {
		return domain.DoctorInput{}, err
	}
	if _, _, err := form.fields(); err != nil {
		return domain.DoctorInput{}, err
	}
	options, err := s.Options(ctx, actor)
	if err != nil {
		return domain.DoctorInput{}, err
	}
	return form.Input(options)
}
