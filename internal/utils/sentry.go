package utils

import (
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// InitSentry initializes Sentry for error tracking. Without SENTRY_DSN the
// process runs with error tracking disabled.
func InitSentry() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		logrus.Info("SENTRY_DSN not set, error tracking disabled")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      os.Getenv("SENTRY_ENVIRONMENT"),
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		logrus.Fatalf("sentry.Init: %s", err)
	}

	logrus.Info("Sentry initialized")
}
