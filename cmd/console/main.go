package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"clinic-admin/internal/audit"
	"clinic-admin/internal/clinicapi"
	"clinic-admin/internal/config"
	"clinic-admin/internal/db"
	consolehttp "clinic-admin/internal/http"
	"clinic-admin/internal/monitoring"
	"clinic-admin/internal/repository"
	"clinic-admin/internal/service"
	"clinic-admin/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	monitoring.Init()
	if enabled, err := monitoring.InitSentry(cfg.SentryDSN, cfg.AppEnv, cfg.AppVersion); err != nil {
		logger.Warn("sentry init failed", zap.Error(err))
	} else if enabled {
		defer monitoring.FlushSentry()
	}

	api := clinicapi.NewClient(cfg.ClinicAPIURL, cfg.APITimeout(), logger)

	store := session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, sessions kept in memory", zap.Error(err))
		} else {
			store = session.NewRedisStore(redisClient)
			defer redisClient.Close()
		}
		cancel()
	} else {
		logger.Warn("redis not configured, sessions kept in memory")
	}

	var (
		recorders    []audit.Recorder
		auditReader  audit.Reader
		healthChecks []consolehttp.HealthCheck
	)
	if cfg.AuditDatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.AuditDatabaseURL)
		if err != nil {
			logger.Warn("audit db connect failed", zap.Error(err))
		} else {
			defer pool.Close()
			healthChecks = append(healthChecks, consolehttp.HealthCheck{
				Name:  "audit_db",
				Check: func(ctx context.Context) error { return db.Ping(ctx, pool) },
			})
			auditRepo := repository.NewPgAuditRepository(pool)
			if err := auditRepo.EnsureSchema(ctx); err != nil {
				logger.Warn("audit schema failed", zap.Error(err))
			} else {
				recorders = append(recorders, audit.NewRepositoryRecorder(auditRepo))
				auditReader = auditRepo
			}
		}
	}
	if len(cfg.KafkaBrokers) > 0 {
		writer := audit.NewKafkaWriter(cfg.KafkaBrokers)
		defer writer.Close()
		recorders = append(recorders, audit.NewKafkaRecorder(writer, cfg.KafkaAuditTopic))
	}
	recorder := audit.Multi(recorders...)

	sessions := consolehttp.NewSessions(
		session.NewManager(store, api, logger),
		consolehttp.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.SessionCookieSecure},
	)
	router := consolehttp.NewRouter(logger, sessions, consolehttp.Handlers{
		Auth:         consolehttp.NewAuthHandler(logger, sessions),
		Doctors:      consolehttp.NewDoctorHandler(logger, service.NewDoctorService(logger, api, recorder)),
		Specialties:  consolehttp.NewSpecialtyHandler(logger, service.NewSpecialtyService(logger, api, recorder)),
		Users:        consolehttp.NewUserHandler(logger, service.NewUserService(logger, api, recorder)),
		Appointments: consolehttp.NewAppointmentHandler(logger, service.NewAppointmentService(logger, api, recorder)),
		Reviews:      consolehttp.NewReviewHandler(logger, service.NewReviewService(logger, api, recorder)),
		Statistics:   consolehttp.NewStatisticsHandler(logger, service.NewStatisticsService(logger, api)),
		Audit:        consolehttp.NewAuditHandler(logger, auditReader),
		Health:       consolehttp.NewHealthHandler(logger, healthChecks...),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting console", zap.String("port", cfg.HTTPPort), zap.String("clinic_api", cfg.ClinicAPIURL))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
