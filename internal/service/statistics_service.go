package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"clinic-admin/internal/domain"
)

type StatisticsAPI interface {
	GeneralStatistics(ctx context.Context, token string) (domain.GeneralStats, error)
	AppointmentAnalytics(ctx context.Context, token, period string) ([]domain.AppointmentAnalyticsRow, error)
	DoctorPerformance(ctx context.Context, token string) ([]domain.DoctorPerformance, error)
	PopularSpecialties(ctx context.Context, token string) ([]domain.PopularSpecialty, error)
}

// StatisticsService arma el tablero de estadísticas.
type StatisticsService struct {
	logger *zap.Logger
	api    StatisticsAPI
}

func NewStatisticsService(logger *zap.Logger, api StatisticsAPI) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{logger: logger.With(zap.String("resource", "statistics")), api: api}
}

// NormalizePeriod devuelve period si es conocido y el periodo por defecto si no.
func NormalizePeriod(period string) string {
	period = strings.TrimSpace(period)
	if domain.IsPeriod(period) {
		return period
	}
	return domain.DefaultPeriod
}

// Dashboard lanza las cuatro lecturas en paralelo. Si una falla, se cancelan
// las demás y no se devuelve nada parcial.
func (s *StatisticsService) Dashboard(ctx context.Context, actor domain.Session, period string) (domain.Dashboard, error) {
	tok, err := token(actor)
	if err != nil {
		return domain.Dashboard{}, err
	}
	out := domain.Dashboard{Period: NormalizePeriod(period)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		general, err := s.api.GeneralStatistics(gctx, tok)
		out.General = general
		return err
	})
	g.Go(func() error {
		rows, err := s.api.AppointmentAnalytics(gctx, tok, out.Period)
		out.Appointments = rows
		return err
	})
	g.Go(func() error {
		doctors, err := s.api.DoctorPerformance(gctx, tok)
		out.Doctors = doctors
		return err
	})
	g.Go(func() error {
		specialties, err := s.api.PopularSpecialties(gctx, tok)
		out.Specialties = specialties
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard failed", zap.String("period", out.Period), zap.Error(err))
		return domain.Dashboard{}, err
	}
	return out, nil
}
