package service

import (
	"context"

	"go.uber.org/zap"

	"clinic-admin/internal/audit"
	"clinic-admin/internal/domain"
)

type UserAPI interface {
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	CreateUser(ctx context.Context, token string, in domain.UserInput) error
	UpdateUser(ctx context.Context, token string, id int64, in domain.UserInput) error
	DeleteUser(ctx context.Context, token string, id int64) error
}

// UserService coordina la página de usuarios.
type UserService struct {
	resource
	api UserAPI
}

func NewUserService(logger *zap.Logger, api UserAPI, recorder audit.Recorder) *UserService {
	return &UserService{resource: newResource("users", logger, recorder), api: api}
}

func (s *UserService) List(ctx context.Context, actor domain.Session) ([]domain.User, error) {
	tok, err := token(actor)
	if err != nil {
		return nil, err
	}
	out, err := s.api.ListUsers(ctx, tok)
	if err != nil {
		return nil, s.fail("list", 0, err)
	}
	return out, nil
}

// CreateAdmin da de alta un administrador.
func (s *UserService) CreateAdmin(ctx context.Context, actor domain.Session, form AdminForm) error {
	tok, err := token(actor)
	if err != nil {
		return err
	}
	in, err := form.Input()
	if err != nil {
		return err
	}
	if err := s.api.CreateUser(ctx, tok, in); err != nil {
		return s.fail("create", 0, err)
	}
	s.record(ctx, actor, domain.AuditCreate, 0)
	return nil
}

func (s *UserService) Update(ctx context.Context, actor domain.Session, id int64, form UserForm) error {
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
	if err := s.api.UpdateUser(ctx, tok, id, in); err != nil {
		return s.fail("update", id, err)
	}
	s.record(ctx, actor, domain.AuditUpdate, id)
	return nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Session, id int64, confirmed bool) error {
	return s.deleteWith(ctx, actor, id, confirmed, s.api.DeleteUser)
}
