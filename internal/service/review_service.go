package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"clinic-admin/internal/audit"
	"clinic-admin/internal/domain"
)

type ReviewAPI interface {
	ListReviews(ctx context.Context, token, status string) ([]domain.Review, error)
	UpdateReviewStatus(ctx context.Context, token string, id int64, status string) error
	DeleteReview(ctx context.Context, token string, id int64) error
}

// ReviewService coordina la moderación de reseñas.
type ReviewService struct {
	resource
	api ReviewAPI
}

func NewReviewService(logger *zap.Logger, api ReviewAPI, recorder audit.Recorder) *ReviewService {
	return &ReviewService{resource: newResource("reviews", logger, recorder), api: api}
}

func NormalizeReviewFilter(status string) string {
	status = strings.TrimSpace(status)
	if domain.IsReviewStatus(status) {
		return status
	}
	return ""
}

// List delega el filtro en la API (?status=).
func (s *ReviewService) List(ctx context.Context, actor domain.Session, status string) ([]domain.Review, error) {
	tok, err := token(actor)
	if err != nil {
		return nil, err
	}
	out, err := s.api.ListReviews(ctx, tok, NormalizeReviewFilter(status))
	if err != nil {
		return nil, s.fail("list", 0, err)
	}
	return out, nil
}

func (s *ReviewService) UpdateStatus(ctx context.Context, actor domain.Session, id int64, form StatusForm) error {
	tok, err := token(actor)
	if err != nil {
		return err
	}
	form.Status = strings.TrimSpace(form.Status)
	if err := domain.Validate(form); err != nil {
		return err
	}
	status := form.Status
	if !domain.IsReviewStatus(status) {
		return domain.Invalid("status", "status must be pending, approved or rejected")
	}
	if id <= 0 {
		return domain.Invalid("id", "id is invalid")
	}
	if err := s.api.UpdateReviewStatus(ctx, tok, id, status); err != nil {
		return s.fail("update", id, err)
	}
	s.record(ctx, actor, domain.AuditUpdate, id)
	return nil
}

func (s *ReviewService) Delete(ctx context.Context, actor domain.Session, id int64, confirmed bool) error {
	return s.deleteWith(ctx, actor, id, confirmed, s.api.DeleteReview)
}
