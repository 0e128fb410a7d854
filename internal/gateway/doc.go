package gateway

// Package gateway implements all network I/O against the remote donation API:
// listing donations and creating a donation from a multipart form. Transport
// failures are normalized into LoadError and SubmitError, which carry fixed
// user-facing messages; the technical cause is logged and reported only.
