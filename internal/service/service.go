package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"clinic-admin/internal/audit"
	"clinic-admin/internal/domain"
)

// resource agrupa lo común a todos los servicios de página: logger, auditoría
// y el nombre del recurso que se registra en cada mutación.
type resource struct {
	name     string
	logger   *zap.Logger
	recorder audit.Recorder
}

func newResource(name string, logger *zap.Logger, recorder audit.Recorder) resource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = audit.Nop()
	}
	return resource{name: name, logger: logger.With(zap.String("resource", name)), recorder: recorder}
}

func token(actor domain.Session) (string, error) {
	t := strings.TrimSpace(actor.Token)
	if t == "" {
		return "", ErrNoToken
	}
	return t, nil
}

// record deja constancia de una mutación exitosa. Un fallo de auditoría se
// registra en el log pero no revierte la operación.
func (r resource) record(ctx context.Context, actor domain.Session, action string, id int64) {
	entry := audit.NewEntry(actor, action, r.name, id)
	if err := r.recorder.Record(ctx, entry); err != nil {
		r.logger.Warn("audit record failed", zap.String("action", action), zap.Int64("target_id", id), zap.Error(err))
	}
}

func (r resource) fail(op string, id int64, err error) error {
	r.logger.Warn(op+" failed", zap.Int64("target_id", id), zap.Error(err))
	return err
}

// deleteWith aplica la confirmación obligatoria y audita el borrado.
func (r resource) deleteWith(ctx context.Context, actor domain.Session, id int64, confirmed bool, del func(ctx context.Context, token string, id int64) error) error {
	tok, err := token(actor)
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrNotConfirmed
	}
	if id <= 0 {
		return domain.Invalid("id", "id is invalid")
	}
	if err := del(ctx, tok, id); err != nil {
		return r.fail("delete", id, err)
	}
	r.record(ctx, actor, domain.AuditDelete, id)
	return nil
}
