package monitoring

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configura el cliente de Sentry. Con dsn vacío no hace nada.
func InitSentry(dsn, environment, version string) (bool, error) {
	if dsn == "" {
		return false, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          "clinic-admin@" + version,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return false, fmt.Errorf("sentry initialization failed: %w", err)
	}
	return true, nil
}

// FlushSentry vacía los eventos pendientes antes de terminar el proceso.
func FlushSentry() {
	sentry.Flush(2 * time.Second)
}

// CaptureError envía err a Sentry con contexto adicional.
func CaptureError(err error, extra map[string]interface{}) {
	if err == nil {
		return
	}
	if hub := sentry.CurrentHub(); hub != nil && hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for k, v := range extra {
				scope.SetExtra(k, v)
			}
			hub.CaptureException(err)
		})
	}
}
