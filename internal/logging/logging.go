package logging

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporting constants
const (
	LogFlags     = log.LstdFlags | log.Lmicroseconds
	FlushTimeout = 2 * time.Second

	TagOperation = "op"
	TagRequestID = "request_id"
)

var sentryEnabled atomic.Bool

// Setup configures log flags and, when dsn is non-empty, Sentry reporting.
// A Sentry init failure is logged and reporting stays disabled.
func Setup(dsn, environment string) {
	log.SetFlags(LogFlags)

	if dsn == "" {
		sentryEnabled.Store(false)
		return
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	}); err != nil {
		log.Printf("sentry init failed: %v", err)
		sentryEnabled.Store(false)
		return
	}

	sentryEnabled.Store(true)
	log.Printf("Sentry error reporting enabled (env: %s)", environment)
}

// SentryEnabled reports whether causes are forwarded to Sentry
func SentryEnabled() bool {
	return sentryEnabled.Load()
}

// ReportError logs the technical cause of a failed operation and forwards it
// to Sentry when enabled.
func ReportError(op, requestID string, err error) {
	if err == nil {
		return
	}

	log.Printf("%s failed (request %s): %v", op, requestID, err)

	if !sentryEnabled.Load() {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag(TagOperation, op)
		if requestID != "" {
			scope.SetTag(TagRequestID, requestID)
		}
		sentry.CaptureException(err)
	})
}

// Flush waits for buffered Sentry events; a no-op when reporting is disabled
func Flush() {
	if sentryEnabled.Load() {
		sentry.Flush(FlushTimeout)
	}
}
