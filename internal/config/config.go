package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración de la consola y del cliente CLI.
type Config struct {
	HTTPPort            string   `env:"HTTP_PORT" envDefault:"8080"`
	ClinicAPIURL        string   `env:"CLINIC_API_URL" envDefault:"http://localhost:5000"`
	ClinicAPITimeout    int      `env:"CLINIC_API_TIMEOUT_SECONDS" envDefault:"15"`
	SessionCookieName   string   `env:"SESSION_COOKIE_NAME" envDefault:"clinic_admin_session"`
	SessionCookieSecure bool     `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	RedisAddr           string   `env:"REDIS_ADDR"`
	RedisPassword       string   `env:"REDIS_PASSWORD"`
	RedisDB             int      `env:"REDIS_DB" envDefault:"0"`
	AuditDatabaseURL    string   `env:"AUDIT_DATABASE_URL"`
	KafkaBrokers        []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaAuditTopic     string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"clinic-admin.audit"`
	SentryDSN           string   `env:"SENTRY_DSN"`
	AppEnv              string   `env:"APP_ENV" envDefault:"local"`
	AppVersion          string   `env:"APP_VERSION" envDefault:"dev"`
	CLISessionFile      string   `env:"ADMINCTL_SESSION_FILE"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// APITimeout devuelve el timeout del cliente HTTP hacia la API de la clínica.
func (c *Config) APITimeout() time.Duration {
	if c.ClinicAPITimeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.ClinicAPITimeout) * time.Second
}
