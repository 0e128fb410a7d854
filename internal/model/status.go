package model

// SubmissionStatus represents where the donation form is in its submit lifecycle
type SubmissionStatus string

const (
	// SubmissionIdle means nothing is being submitted and no banner is shown
	SubmissionIdle SubmissionStatus = "Idle"

	// SubmissionSubmitting means a create request is in flight
	SubmissionSubmitting SubmissionStatus = "Submitting"

	// SubmissionSucceeded means the last submit was accepted; reverts to Idle
	SubmissionSucceeded SubmissionStatus = "Succeeded"

	// SubmissionFailed means the last submit failed; cleared by the next attempt
	SubmissionFailed SubmissionStatus = "Failed"
)

// String returns the string representation of SubmissionStatus
func (s SubmissionStatus) String() string {
	return string(s)
}

// IsActive returns true while a submission is in flight
func (s SubmissionStatus) IsActive() bool {
	return s == SubmissionSubmitting
}

// IsFinished returns true if the last submission reached a terminal outcome
func (s SubmissionStatus) IsFinished() bool {
	return s == SubmissionSucceeded || s == SubmissionFailed
}
