package service

import (
	"context"

	"go.uber.org/zap"

	"clinic-admin/internal/audit"
	"clinic-admin/internal/domain"
)

type SpecialtyAPI interface {
	ListSpecialties(ctx context.Context, token string) ([]domain.Specialty, error)
	CreateSpecialty(ctx context.Context, token string, in domain.SpecialtyInput) error
	UpdateSpecialty(ctx context.Context, token string, id int64, in domain.SpecialtyInput) error
	DeleteSpecialty(ctx context.Context, token string, id int64) error
}

// SpecialtyService coordina la página de especialidades.
type SpecialtyService struct {
	resource
	api SpecialtyAPI
}

func NewSpecialtyService(logger *zap.Logger, api SpecialtyAPI, recorder audit.Recorder) *SpecialtyService {
	return &SpecialtyService{resource: newResource("specialties", logger, recorder), api: api}
}

func (s *SpecialtyService) List(ctx context.Context, actor domain.Session) ([]domain.Specialty, error) {
	tok, err := token(actor)
	if err != nil {
		return nil, err
	}
	out, err := s.api.ListSpecialties(ctx, tok)
	if err != nil {
		return nil, s.fail("list", 0, err)
	}
	return out, nil
}

func (s *SpecialtyService) Create(ctx context.Context, actor domain.Session, form SpecialtyForm) error {
	tok, err := token(actor)
	if err != nil {
		return err
	}
	in, err := form.Input()
	if err != nil {
		return err
	}
	if err := s.api.CreateSpecialty(ctx, tok, in); err != nil {
		return s.fail("create", 0, err)
	}
	s.record(ctx, actor, domain.AuditCreate, 0)
	return nil
}

func (s *SpecialtyService) Update(ctx context.Context, actor domain.Session, id int64, form SpecialtyForm) error {
	tok, err := token(actor)
	if err != nil {
		return err
	}
	if id <= 0 {
		return domain.Invalid("id", "id is invalid")
	}
	in, err := form.Input()
	if err != nil {
		return err
	}
	if err := s.api.UpdateSpecialty(ctx, tok, id, in); err != nil {
		return s.fail("update", id, err)
	}
	s.record(ctx, actor, domain.AuditUpdate, id)
	return nil
}

func (s *SpecialtyService) Delete(ctx context.Context, actor domain.Session, id int64, confirmed bool) error {
	return s.deleteWith(ctx, actor, id, confirmed, s.api.DeleteSpecialty)
}
