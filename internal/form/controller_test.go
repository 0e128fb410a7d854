package form

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/donation-board/internal/gateway"
	"github.com/ytget/donation-board/internal/model"
)

type fakeGateway struct {
	mu sync.Mutex

	listResults [][]model.Donation
	listErrs    []error
	listCalls   int

	createResult []model.Donation
	createErr    error
	createCalls  int
	lastFields   model.DonationFields
	lastFile     *model.Attachment

	// When set, CreateDonation signals started and waits for release
	started chan struct{}
	release chan struct{}

	// When set, the first ListDonations call does the same
	firstListStarted chan struct{}
	firstListRelease chan struct{}
}

func (g *fakeGateway) ListDonations(ctx context.Context) ([]model.Donation, error) {
	g.mu.Lock()
	i := g.listCalls
	g.listCalls++
	g.mu.Unlock()

	if i == 0 && g.firstListStarted != nil {
		g.firstListStarted <- struct{}{}
		<-g.firstListRelease
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if i < len(g.listErrs) && g.listErrs[i] != nil {
		return nil, g.listErrs[i]
	}
	if i < len(g.listResults) {
		return g.listResults[i], nil
	}
	return []model.Donation{}, nil
}

func (g *fakeGateway) CreateDonation(ctx context.Context, fields model.DonationFields, attachment *model.Attachment) ([]model.Donation, error) {
	if g.started != nil {
		g.started <- struct{}{}
		<-g.release
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	g.lastFields = fields
	g.lastFile = attachment
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResult, nil
}

func (g *fakeGateway) ResolveImageURL(imageURL string) (*url.URL, error) {
	return url.Parse("https://api.test/" + strings.TrimPrefix(imageURL, "/"))
}

func (g *fakeGateway) calls() (list, create int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listCalls, g.createCalls
}

type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func intPtr(v int) *int { return &v }

func newTestController(gw *fakeGateway) (*Controller, *manualClock) {
	clock := &manualClock{}
	c := NewController(gw, Options{Clock: clock, OpenURL: func(*url.URL) error { return nil }})
	return c, clock
}

func fillForm(c *Controller, f model.DonationFields) {
	for _, field := range []model.Field{model.FieldItemName, model.FieldDescription, model.FieldLocation, model.FieldContact} {
		c.SetField(field, f.Get(field))
	}
}

func jpeg(size int64) *model.Attachment {
	return &model.Attachment{Name: "photo.jpg", MIMEType: model.MIMETypeJPEG, Size: size, Content: []byte("jpeg")}
}

func TestNewController(t *testing.T) {
	c, _ := newTestController(&fakeGateway{})
	snap := c.Snapshot()

	if snap.Status != model.SubmissionIdle {
		t.Errorf("Expected status Idle, got %s", snap.Status)
	}
	if len(snap.Donations) != 0 {
		t.Errorf("Expected empty donation list, got %d", len(snap.Donations))
	}
	if snap.Attachment != nil {
		t.Error("Expected no attachment")
	}
	if snap.SubmitError != "" || snap.LoadError != "" {
		t.Errorf("Expected no errors, got %q / %q", snap.SubmitError, snap.LoadError)
	}
}

func TestLoad(t *testing.T) {
	chair := model.Donation{ID: intPtr(1), ItemName: "Chair"}
	gw := &fakeGateway{listResults: [][]model.Donation{{chair}}}
	c, _ := newTestController(gw)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Donations) != 1 || snap.Donations[0].ItemName != "Chair" {
		t.Errorf("Expected [Chair], got %+v", snap.Donations)
	}
}

func TestLoadFailureKeepsList(t *testing.T) {
	chair := model.Donation{ID: intPtr(1), ItemName: "Chair"}
	gw := &fakeGateway{
		listResults: [][]model.Donation{{chair}},
		listErrs:    []error{nil, &gateway.LoadError{RequestID: "r"}},
	}
	c, _ := newTestController(gw)

	_ = c.Load(context.Background())
	err := c.Load(context.Background())

	var loadErr *gateway.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected *gateway.LoadError, got %v", err)
	}

	snap := c.Snapshot()
	if snap.LoadError != gateway.LoadErrorMessage {
		t.Errorf("Expected load error %q, got %q", gateway.LoadErrorMessage, snap.LoadError)
	}
	if len(snap.Donations) != 1 {
		t.Errorf("Expected list to be unchanged, got %d donations", len(snap.Donations))
	}
}

func TestSelectFile(t *testing.T) {
	tests := []struct {
		name    string
		file    *model.Attachment
		wantErr error
	}{
		{"jpeg", jpeg(1024), nil},
		{"png", &model.Attachment{Name: "a.png", MIMEType: model.MIMETypePNG, Size: 10}, nil},
		{"jpg alias", &model.Attachment{Name: "a.jpg", MIMEType: model.MIMETypeJPG, Size: 10}, nil},
		{"exactly 5MB", jpeg(model.MaxAttachmentSize), nil},
		{"one byte over 5MB", jpeg(model.MaxAttachmentSize + 1), ErrFileTooLarge},
		{"gif", &model.Attachment{Name: "a.gif", MIMEType: "image/gif", Size: 10}, ErrUnsupportedType},
		{"pdf", &model.Attachment{Name: "a.pdf", MIMEType: "application/pdf", Size: 10}, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(&fakeGateway{})
			previous := &model.Attachment{Name: "prev.png", MIMEType: model.MIMETypePNG, Size: 1}
			if err := c.SelectFile(previous); err != nil {
				t.Fatalf("Expected previous file to be accepted, got %v", err)
			}

			err := c.SelectFile(tt.file)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}

			snap := c.Snapshot()
			want := tt.file
			if tt.wantErr != nil {
				want = previous
			}
			if snap.Attachment != want {
				t.Errorf("Expected attachment %q, got %+v", want.Name, snap.Attachment)
			}
			if len(snap.Errors[model.FieldFile]) != 0 {
				t.Errorf("Expected no file field error, got %v", snap.Errors[model.FieldFile])
			}
		})
	}
}

func TestNotice(t *testing.T) {
	if got := Notice(ErrUnsupportedType); got != NoticeUnsupportedType {
		t.Errorf("Expected %q, got %q", NoticeUnsupportedType, got)
	}
	if got := Notice(ErrFileTooLarge); got != NoticeFileTooLarge {
		t.Errorf("Expected %q, got %q", NoticeFileTooLarge, got)
	}
	if got := Notice(ErrInvalidForm); got != "" {
		t.Errorf("Expected empty notice, got %q", got)
	}
}

func TestRemoveFile(t *testing.T) {
	c, _ := newTestController(&fakeGateway{})

	// No file selected: no-op
	updates := 0
	c.SetUpdateCallback(func(Snapshot) { updates++ })
	c.RemoveFile()
	if updates != 0 {
		t.Errorf("Expected no update for removing nothing, got %d", updates)
	}
	if gen := c.Snapshot().PickerGeneration; gen != 0 {
		t.Errorf("Expected picker generation 0, got %d", gen)
	}

	if err := c.SelectFile(jpeg(10)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	c.RemoveFile()

	snap := c.Snapshot()
	if snap.Attachment != nil {
		t.Error("Expected attachment to be cleared")
	}
	if snap.PickerGeneration != 1 {
		t.Errorf("Expected picker generation 1, got %d", snap.PickerGeneration)
	}
}

func TestFieldErrorsAndTouched(t *testing.T) {
	c, _ := newTestController(&fakeGateway{})

	c.SetField(model.FieldItemName, "ab")
	if !c.Validate().Has(model.FieldItemName, TagMin) {
		t.Errorf("Expected min error for item name, got %v", c.FieldErrors(model.FieldItemName))
	}
	if c.Touched(model.FieldItemName) {
		t.Error("Expected item name to be untouched")
	}
	if errs := c.Snapshot().VisibleErrors(model.FieldItemName); errs != nil {
		t.Errorf("Expected no visible errors before touch, got %v", errs)
	}

	c.MarkTouched(model.FieldItemName)
	if errs := c.Snapshot().VisibleErrors(model.FieldItemName); len(errs) != 1 || errs[0] != TagMin {
		t.Errorf("Expected visible [min], got %v", errs)
	}

	c.SetField(model.FieldItemName, "abc")
	if errs := c.FieldErrors(model.FieldItemName); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestSubmitInvalidForm(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := newTestController(gw)
	c.SetField(model.FieldItemName, "Chair")

	err := c.Submit(context.Background())
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("Expected ErrInvalidForm, got %v", err)
	}

	if _, creates := gw.calls(); creates != 0 {
		t.Errorf("Expected no create call, got %d", creates)
	}

	snap := c.Snapshot()
	if snap.Status != model.SubmissionIdle {
		t.Errorf("Expected status Idle, got %s", snap.Status)
	}
	for _, field := range model.AllFields {
		if !snap.Touched[field] {
			t.Errorf("Expected %s to be touched", field)
		}
	}
	if snap.Fields.ItemName != "Chair" {
		t.Errorf("Expected values kept, got %+v", snap.Fields)
	}
}

func TestSubmitSuccess(t *testing.T) {
	x := model.Donation{ID: intPtr(1), ItemName: "Chair"}
	y := model.Donation{ID: intPtr(2), ItemName: "Lamp"}
	gw := &fakeGateway{
		createResult: []model.Donation{x},
		listResults:  [][]model.Donation{{x, y}},
	}
	c, clock := newTestController(gw)

	var statuses []model.SubmissionStatus
	c.SetUpdateCallback(func(s Snapshot) {
		if n := len(statuses); n == 0 || statuses[n-1] != s.Status {
			statuses = append(statuses, s.Status)
		}
	})

	fields := validFields()
	fillForm(c, fields)
	if err := c.SelectFile(jpeg(2048)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	c.MarkTouched(model.FieldItemName)

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gw.lastFields != fields {
		t.Errorf("Expected fields %+v sent, got %+v", fields, gw.lastFields)
	}
	if gw.lastFile == nil || gw.lastFile.Name != "photo.jpg" {
		t.Errorf("Expected attachment to be sent, got %+v", gw.lastFile)
	}
	if lists, creates := gw.calls(); lists != 1 || creates != 1 {
		t.Errorf("Expected 1 list and 1 create call, got %d and %d", lists, creates)
	}

	snap := c.Snapshot()
	if len(snap.Donations) != 2 {
		t.Errorf("Expected refreshed list of 2, got %+v", snap.Donations)
	}
	if snap.Fields != (model.DonationFields{}) {
		t.Errorf("Expected fields reset, got %+v", snap.Fields)
	}
	if len(snap.Touched) != 0 {
		t.Errorf("Expected touched reset, got %v", snap.Touched)
	}
	if snap.Attachment != nil {
		t.Error("Expected attachment cleared")
	}
	if snap.PickerGeneration != 1 {
		t.Errorf("Expected picker reset, got generation %d", snap.PickerGeneration)
	}
	if snap.Status != model.SubmissionSucceeded {
		t.Fatalf("Expected status Succeeded, got %s", snap.Status)
	}

	want := []model.SubmissionStatus{model.SubmissionIdle, model.SubmissionSubmitting, model.SubmissionSucceeded}
	if len(statuses) != len(want) {
		t.Fatalf("Expected status sequence %v, got %v", want, statuses)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("Expected status sequence %v, got %v", want, statuses)
			break
		}
	}

	clock.Advance(SuccessDisplayWindow - time.Millisecond)
	if s := c.Snapshot().Status; s != model.SubmissionSucceeded {
		t.Errorf("Expected Succeeded just before the window ends, got %s", s)
	}

	clock.Advance(time.Millisecond)
	if s := c.Snapshot().Status; s != model.SubmissionIdle {
		t.Errorf("Expected Idle after %v, got %s", SuccessDisplayWindow, s)
	}
}

func TestSubmitRefreshFailure(t *testing.T) {
	x := model.Donation{ID: intPtr(1), ItemName: "Chair"}
	gw := &fakeGateway{
		createResult: []model.Donation{x},
		listErrs:     []error{&gateway.LoadError{}},
	}
	c, _ := newTestController(gw)
	fillForm(c, validFields())

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	snap := c.Snapshot()
	if snap.Status != model.SubmissionSucceeded {
		t.Errorf("Expected status Succeeded, got %s", snap.Status)
	}
	if len(snap.Donations) != 1 || snap.Donations[0].ItemName != "Chair" {
		t.Errorf("Expected create response to stay, got %+v", snap.Donations)
	}
	if snap.LoadError != gateway.LoadErrorMessage {
		t.Errorf("Expected load error recorded, got %q", snap.LoadError)
	}
}

func TestSubmitFailure(t *testing.T) {
	gw := &fakeGateway{createErr: &gateway.SubmitError{RequestID: "r"}}
	c, _ := newTestController(gw)
	fields := validFields()
	fillForm(c, fields)
	file := jpeg(10)
	_ = c.SelectFile(file)

	err := c.Submit(context.Background())
	var submitErr *gateway.SubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("Expected *gateway.SubmitError, got %v", err)
	}

	snap := c.Snapshot()
	if snap.Status != model.SubmissionFailed {
		t.Errorf("Expected status Failed, got %s", snap.Status)
	}
	if snap.SubmitError != gateway.SubmitErrorMessage {
		t.Errorf("Expected %q, got %q", gateway.SubmitErrorMessage, snap.SubmitError)
	}
	if snap.Fields != fields {
		t.Errorf("Expected fields kept, got %+v", snap.Fields)
	}
	if snap.Attachment != file {
		t.Error("Expected attachment kept")
	}
	if lists, _ := gw.calls(); lists != 0 {
		t.Errorf("Expected no refresh after failure, got %d list calls", lists)
	}

	// A new attempt clears the error
	gw.mu.Lock()
	gw.createErr = nil
	gw.mu.Unlock()
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if snap := c.Snapshot(); snap.SubmitError != "" || snap.Status != model.SubmissionSucceeded {
		t.Errorf("Expected cleared error and Succeeded, got %q / %s", snap.SubmitError, snap.Status)
	}
}

func TestSubmitSingleFlight(t *testing.T) {
	gw := &fakeGateway{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c, _ := newTestController(gw)
	fillForm(c, validFields())

	done := make(chan error, 1)
	go func() {
		done <- c.Submit(context.Background())
	}()

	<-gw.started
	if s := c.Snapshot(); !s.IsSubmitting() {
		t.Errorf("Expected Submitting while in flight, got %s", s.Status)
	}
	if err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("Expected ErrSubmitInFlight, got %v", err)
	}

	close(gw.release)
	if err := <-done; err != nil {
		t.Fatalf("Expected first submit to succeed, got %v", err)
	}

	if _, creates := gw.calls(); creates != 1 {
		t.Errorf("Expected exactly 1 create call, got %d", creates)
	}
}

func TestNewSubmitCancelsSuccessTimer(t *testing.T) {
	gw := &fakeGateway{}
	c, clock := newTestController(gw)

	fillForm(c, validFields())
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	clock.Advance(3 * time.Second)

	fillForm(c, validFields())
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n := clock.pending(); n != 1 {
		t.Errorf("Expected 1 pending timer, got %d", n)
	}

	clock.Advance(3 * time.Second)
	if s := c.Snapshot().Status; s != model.SubmissionSucceeded {
		t.Errorf("Expected second success to still show, got %s", s)
	}

	clock.Advance(2 * time.Second)
	if s := c.Snapshot().Status; s != model.SubmissionIdle {
		t.Errorf("Expected Idle, got %s", s)
	}
}

func TestCloseCancelsSuccessTimer(t *testing.T) {
	c, clock := newTestController(&fakeGateway{})
	fillForm(c, validFields())
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c.Close()
	if n := clock.pending(); n != 0 {
		t.Errorf("Expected no pending timers after Close, got %d", n)
	}

	updates := 0
	c.SetUpdateCallback(func(Snapshot) { updates++ })
	clock.Advance(SuccessDisplayWindow)
	if updates != 0 {
		t.Errorf("Expected no updates after Close, got %d", updates)
	}
}

func TestOpenLocationOnMap(t *testing.T) {
	var opened []*url.URL
	c := NewController(&fakeGateway{}, Options{
		Clock: &manualClock{},
		OpenURL: func(u *url.URL) error {
			opened = append(opened, u)
			return errors.New("no browser")
		},
	})

	// Opener errors are swallowed
	c.OpenLocationOnMap("Rua Augusta 10, Lisbon")

	if len(opened) != 1 {
		t.Fatalf("Expected 1 opened URL, got %d", len(opened))
	}
	u := opened[0]
	if u.Host != "www.google.com" || u.Path != "/maps/search/" {
		t.Errorf("Unexpected map URL %s", u)
	}
	if q := u.Query(); q.Get("api") != "1" || q.Get("query") != "Rua Augusta 10, Lisbon" {
		t.Errorf("Unexpected map query %s", u.RawQuery)
	}
}

func TestOpenImage(t *testing.T) {
	var opened *url.URL
	c := NewController(&fakeGateway{}, Options{
		Clock:   &manualClock{},
		OpenURL: func(u *url.URL) error { opened = u; return nil },
	})

	if err := c.OpenImage(model.Donation{ItemName: "Chair"}); err == nil {
		t.Error("Expected error for donation without image")
	}

	if err := c.OpenImage(model.Donation{ImageURL: "/uploads/chair.png"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if opened == nil || opened.String() != "https://api.test/uploads/chair.png" {
		t.Errorf("Unexpected opened URL %v", opened)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	gw := &fakeGateway{listResults: [][]model.Donation{{{ItemName: "Chair"}}}}
	c, _ := newTestController(gw)
	_ = c.Load(context.Background())

	snap := c.Snapshot()
	snap.Donations[0].ItemName = "changed"
	snap.Touched[model.FieldItemName] = true

	again := c.Snapshot()
	if again.Donations[0].ItemName != "Chair" {
		t.Error("Expected snapshot donations to be a copy")
	}
	if again.Touched[model.FieldItemName] {
		t.Error("Expected snapshot touched set to be a copy")
	}
}

func TestLateLoadDoesNotOverwriteSubmitResult(t *testing.T) {
	chair := model.Donation{ID: intPtr(1), ItemName: "Chair"}
	gw := &fakeGateway{
		createResult:     []model.Donation{chair},
		listResults:      [][]model.Donation{{}, {chair}},
		firstListStarted: make(chan struct{}),
		firstListRelease: make(chan struct{}),
	}
	c, _ := newTestController(gw)

	loaded := make(chan error, 1)
	go func() {
		loaded <- c.Load(context.Background())
	}()
	<-gw.firstListStarted

	fillForm(c, validFields())
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n := len(c.Snapshot().Donations); n != 1 {
		t.Fatalf("Expected 1 donation after submit, got %d", n)
	}

	// The initial fetch returns an empty list after the submit was applied
	close(gw.firstListRelease)
	if err := <-loaded; err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Donations) != 1 || snap.Donations[0].ItemName != "Chair" {
		t.Errorf("Expected the post-submit list to survive, got %+v", snap.Donations)
	}
}

func TestOlderLoadIsDiscarded(t *testing.T) {
	chair := model.Donation{ID: intPtr(1), ItemName: "Chair"}
	lamp := model.Donation{ID: intPtr(2), ItemName: "Lamp"}
	gw := &fakeGateway{
		listResults:      [][]model.Donation{{chair}, {chair, lamp}},
		firstListStarted: make(chan struct{}),
		firstListRelease: make(chan struct{}),
	}
	c, _ := newTestController(gw)

	loaded := make(chan error, 1)
	go func() {
		loaded <- c.Load(context.Background())
	}()
	<-gw.firstListStarted

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	close(gw.firstListRelease)
	<-loaded

	if n := len(c.Snapshot().Donations); n != 2 {
		t.Errorf("Expected the newer list of 2, got %d", n)
	}
}

func TestOpenLocationOnMapBlank(t *testing.T) {
	var opened *url.URL
	c := NewController(&fakeGateway{}, Options{
		Clock:   &manualClock{},
		OpenURL: func(u *url.URL) error { opened = u; return nil },
	})

	c.OpenLocationOnMap("")

	if opened == nil {
		t.Fatal("Expected the map search to open for a blank location")
	}
	if opened.RawQuery != "api=1&query=" {
		t.Errorf("Expected empty query, got %q", opened.RawQuery)
	}
}
