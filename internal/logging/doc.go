package logging

// Package logging configures the process logger and optional Sentry error
// reporting. Gateway failures are logged here with their request id; the user
// only ever sees the fixed messages defined by the gateway.
