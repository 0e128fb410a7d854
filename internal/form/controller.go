package form

import (
	"context"
	"errors"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/ytget/donation-board/internal/gateway"
	"github.com/ytget/donation-board/internal/model"
	"github.com/ytget/donation-board/internal/platform"
)

// SuccessDisplayWindow is how long Succeeded is shown before reverting to Idle
const SuccessDisplayWindow = 5 * time.Second

// User-facing notices for rejected attachments
const (
	NoticeUnsupportedType = "Please upload a valid image file (JPEG or PNG)"
	NoticeFileTooLarge    = "File size should not exceed 5MB"
)

// DefaultSubmitErrorMessage is shown when a submit error carries no message
const DefaultSubmitErrorMessage = "An error occurred while submitting your donation"

var (
	ErrInvalidForm     = errors.New("donation form is invalid")
	ErrSubmitInFlight  = errors.New("a donation submission is already in flight")
	ErrUnsupportedType = errors.New("attachment is not a JPEG or PNG image")
	ErrFileTooLarge    = errors.New("attachment exceeds 5MB")
)

// Notice returns the user-facing notice for an attachment rejection, or ""
func Notice(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return NoticeUnsupportedType
	case errors.Is(err, ErrFileTooLarge):
		return NoticeFileTooLarge
	}
	return ""
}

// URLOpener hands a URL to whatever can display it (browser, OS handler)
type URLOpener func(u *url.URL) error

// Options configures a Controller
type Options struct {
	Rules Rules
	// Clock defaults to RealClock()
	Clock Clock
	// OpenURL defaults to platform.OpenURL
	OpenURL URLOpener
}

// Snapshot is a copy of the controller state for rendering
type Snapshot struct {
	Donations  []model.Donation
	Fields     model.DonationFields
	Errors     Errors
	Touched    map[model.Field]bool
	Attachment *model.Attachment
	Status     model.SubmissionStatus
	// SubmitError is set while Status is Failed
	SubmitError string
	LoadError   string
	// PickerGeneration changes whenever the view must clear its file picker
	PickerGeneration int
}

// VisibleErrors returns the failed rules of field, but only once it was touched
func (s Snapshot) VisibleErrors(field model.Field) []string {
	if !s.Touched[field] {
		return nil
	}
	return s.Errors[field]
}

// IsSubmitting reports whether a submission is in flight
func (s Snapshot) IsSubmitting() bool {
	return s.Status.IsActive()
}

// Controller owns the donation form and list state
type Controller struct {
	gw      gateway.Gateway
	rules   Rules
	clock   Clock
	openURL URLOpener

	mu               sync.RWMutex
	donations        []model.Donation
	fields           model.DonationFields
	touched          map[model.Field]bool
	attachment       *model.Attachment
	status           model.SubmissionStatus
	submitErr        string
	loadErr          string
	pickerGeneration int
	successTimer     Timer
	successSeq       int
	loadSeq          int // bumped per list fetch and per applied create response
	closed           bool

	onUpdate func(Snapshot) // callback for UI updates
}

// NewController creates a controller backed by gw
func NewController(gw gateway.Gateway, opts Options) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = RealClock()
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = platform.OpenURL
	}

	return &Controller{
		gw:        gw,
		rules:     opts.Rules,
		clock:     clock,
		openURL:   openURL,
		donations: []model.Donation{},
		touched:   make(map[model.Field]bool),
		status:    model.SubmissionIdle,
	}
}

// SetUpdateCallback sets callback for state updates
func (c *Controller) SetUpdateCallback(callback func(Snapshot)) {
	c.mu.Lock()
	c.onUpdate = callback
	c.mu.Unlock()
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Validate returns the failed rules for the current field values
func (c *Controller) Validate() Errors {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Validate(c.fields, c.rules)
}

// FieldErrors returns the failed rules of a single field
func (c *Controller) FieldErrors(field model.Field) []string {
	return c.Validate()[field]
}

// Touched reports whether the user has interacted with field
func (c *Controller) Touched(field model.Field) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.touched[field]
}

// SetField updates a text field value
func (c *Controller) SetField(field model.Field, value string) {
	c.mu.Lock()
	c.fields = c.fields.Set(field, value)
	c.mu.Unlock()
	c.notifyUpdate()
}

// MarkTouched marks field as interacted with
func (c *Controller) MarkTouched(field model.Field) {
	c.mu.Lock()
	if c.touched[field] {
		c.mu.Unlock()
		return
	}
	c.touched[field] = true
	c.mu.Unlock()
	c.notifyUpdate()
}

// Load fetches the donation list. On failure the list is left unchanged
// and the load error message is recorded. A result that arrives after a
// newer Load or a successful Submit is discarded.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadSeq++
	ticket := c.loadSeq
	c.mu.Unlock()

	donations, err := c.gw.ListDonations(ctx)

	c.mu.Lock()
	if ticket != c.loadSeq {
		// A newer fetch or a create response already replaced the list
		c.mu.Unlock()
		log.Printf("Discarding stale donation list (fetch %d superseded)", ticket)
		return err
	}
	if err != nil {
		c.loadErr = errorMessage(err, gateway.LoadErrorMessage)
	} else {
		c.donations = donations
		c.loadErr = ""
	}
	c.mu.Unlock()

	c.notifyUpdate()
	return err
}

// SelectFile validates att and makes it the pending attachment. A rejected
// file leaves the previous attachment in place. A nil att is ignored.
func (c *Controller) SelectFile(att *model.Attachment) error {
	if att == nil {
		return nil
	}
	if !att.IsAllowedType() {
		log.Printf("Rejected attachment %q: unsupported type %q", att.Name, att.MIMEType)
		return ErrUnsupportedType
	}
	if att.ExceedsSizeLimit() {
		log.Printf("Rejected attachment %q: %s exceeds limit", att.Name, att.GetSizeString())
		return ErrFileTooLarge
	}

	c.mu.Lock()
	c.attachment = att
	c.mu.Unlock()

	c.notifyUpdate()
	return nil
}

// RemoveFile clears the pending attachment and resets the picker
func (c *Controller) RemoveFile() {
	c.mu.Lock()
	if c.attachment == nil {
		c.mu.Unlock()
		return
	}
	c.attachment = nil
	c.pickerGeneration++
	c.mu.Unlock()

	c.notifyUpdate()
}

// Submit sends the form. It returns ErrInvalidForm without any network call
// when validation fails and ErrSubmitInFlight while another submit runs.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.status.IsActive() {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if errs := Validate(c.fields, c.rules); !errs.Valid() {
		for _, field := range model.AllFields {
			c.touched[field] = true
		}
		c.mu.Unlock()
		c.notifyUpdate()
		return ErrInvalidForm
	}

	c.stopSuccessTimerLocked()
	c.status = model.SubmissionSubmitting
	c.submitErr = ""
	fields := c.fields
	attachment := c.attachment
	c.mu.Unlock()
	c.notifyUpdate()

	defer c.leaveSubmitting()

	donations, err := c.gw.CreateDonation(ctx, fields, attachment)
	if err != nil {
		c.mu.Lock()
		c.status = model.SubmissionFailed
		c.submitErr = errorMessage(err, DefaultSubmitErrorMessage)
		c.mu.Unlock()
		c.notifyUpdate()
		return err
	}

	c.mu.Lock()
	c.donations = donations
	c.loadSeq++
	c.fields = model.DonationFields{}
	c.touched = make(map[model.Field]bool)
	c.attachment = nil
	c.pickerGeneration++
	c.status = model.SubmissionSucceeded
	c.scheduleSuccessRevertLocked()
	c.mu.Unlock()
	c.notifyUpdate()

	// Refresh failures only affect the list, the submit itself succeeded
	_ = c.Load(ctx)
	return nil
}

// OpenLocationOnMap opens a map search for location. Failures are logged.
func (c *Controller) OpenLocationOnMap(location string) {
	u, err := platform.MapSearchURL(location)
	if err != nil {
		log.Printf("Failed to build map URL for %q: %v", location, err)
		return
	}
	if err := c.openURL(u); err != nil {
		log.Printf("Failed to open map for %q: %v", location, err)
	}
}

// OpenImage opens the image of a donation
func (c *Controller) OpenImage(d model.Donation) error {
	if !d.HasImage() {
		return errors.New("donation has no image")
	}
	u, err := c.gw.ResolveImageURL(d.ImageURL)
	if err != nil {
		return err
	}
	if err := c.openURL(u); err != nil {
		log.Printf("Failed to open image %s: %v", u, err)
		return err
	}
	return nil
}

// Close cancels the pending success timer. Later timer callbacks are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopSuccessTimerLocked()
	c.mu.Unlock()
}

// leaveSubmitting runs after every submission so Submitting is never stuck
func (c *Controller) leaveSubmitting() {
	c.mu.Lock()
	if !c.status.IsActive() {
		c.mu.Unlock()
		return
	}
	c.status = model.SubmissionIdle
	c.mu.Unlock()
	c.notifyUpdate()
}

func (c *Controller) scheduleSuccessRevertLocked() {
	if c.closed {
		return
	}
	c.successSeq++
	seq := c.successSeq
	c.successTimer = c.clock.AfterFunc(SuccessDisplayWindow, func() {
		c.revertSuccess(seq)
	})
}

func (c *Controller) revertSuccess(seq int) {
	c.mu.Lock()
	if c.closed || seq != c.successSeq || c.status != model.SubmissionSucceeded {
		c.mu.Unlock()
		return
	}
	c.status = model.SubmissionIdle
	c.successTimer = nil
	c.mu.Unlock()
	c.notifyUpdate()
}

func (c *Controller) stopSuccessTimerLocked() {
	if c.successTimer != nil {
		c.successTimer.Stop()
		c.successTimer = nil
	}
	c.successSeq++
}

func (c *Controller) snapshotLocked() Snapshot {
	donations := make([]model.Donation, len(c.donations))
	copy(donations, c.donations)

	touched := make(map[model.Field]bool, len(c.touched))
	for k, v := range c.touched {
		touched[k] = v
	}

	return Snapshot{
		Donations:        donations,
		Fields:           c.fields,
		Errors:           Validate(c.fields, c.rules),
		Touched:          touched,
		Attachment:       c.attachment,
		Status:           c.status,
		SubmitError:      c.submitErr,
		LoadError:        c.loadErr,
		PickerGeneration: c.pickerGeneration,
	}
}

// notifyUpdate calls the update callback outside the lock
func (c *Controller) notifyUpdate() {
	c.mu.RLock()
	callback := c.onUpdate
	snap := c.snapshotLocked()
	c.mu.RUnlock()

	if callback != nil {
		callback(snap)
	}
}

func errorMessage(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
