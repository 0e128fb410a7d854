package gateway

// User-facing failure messages
const (
	LoadErrorMessage   = "Failed to load donations. Please try again."
	SubmitErrorMessage = "Failed to submit donation. Please try again."
)

// LoadError is returned when the donation list could not be fetched.
// The cause is intentionally not wrapped.
type LoadError struct {
	RequestID string
}

func (e *LoadError) Error() string {
	return LoadErrorMessage
}

// SubmitError is returned when a donation could not be created.
// The cause is intentionally not wrapped.
type SubmitError struct {
	RequestID string
}

func (e *SubmitError) Error() string {
	return SubmitErrorMessage
}
