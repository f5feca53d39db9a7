package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clinic-admin/internal/clinicapi"
	"clinic-admin/internal/config"
	"clinic-admin/internal/service"
	"clinic-admin/internal/session"
)

const defaultSessionKey = "default"

var sessionKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	if os.Getenv("ADMINCTL_DEBUG") == "" {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	dir, key, err := sessionLocation(cfg.CLISessionFile)
	if err != nil {
		log.Fatal(err)
	}
	store, err := session.NewFileStore(dir)
	if err != nil {
		log.Fatal(err)
	}

	api := clinicapi.NewClient(cfg.ClinicAPIURL, cfg.APITimeout(), logger)
	cur := session.NewManager(store, api, logger).Bind(key)
	cur.Init(ctx)

	app := &cli{
		current:      cur,
		doctors:      service.NewDoctorService(logger, api, nil),
		specialties:  service.NewSpecialtyService(logger, api, nil),
		users:        service.NewUserService(logger, api, nil),
		appointments: service.NewAppointmentService(logger, api, nil),
		reviews:      service.NewReviewService(logger, api, nil),
		stats:        service.NewStatisticsService(logger, api),
		in:           bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}
	os.Exit(app.run(ctx, os.Args[1:]))
}

// sessionLocation separa ADMINCTL_SESSION_FILE en directorio y clave. Sin
// valor usa ~/.config/clinic-admin/default.json.
func sessionLocation(file string) (string, string, error) {
	if strings.TrimSpace(file) == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", "", err
		}
		return filepath.Join(base, "clinic-admin"), defaultSessionKey, nil
	}
	key := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if !sessionKeyPattern.MatchString(key) {
		key = defaultSessionKey
	}
	return filepath.Dir(file), key, nil
}
