package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/donation-board/internal/logging"
	"github.com/ytget/donation-board/internal/model"
)

// API constants
const (
	DefaultBaseURL = "https://localhost:7276/api"

	ListPath   = "/Donation"
	CreatePath = "/Donation/create"

	HeaderRequestID = "X-Request-ID"
	HeaderAccept    = "Accept"
	ContentTypeJSON = "application/json"

	// Bytes of an error response body kept for diagnostics
	ErrorBodyLimit = 512
)

// Multipart part names expected by the backend
const (
	PartItemName      = "ItemName"
	PartDescription   = "Description"
	PartLocation      = "Location"
	PartContactNumber = "ContactNumber"
	PartFile          = "File"
)

// Operation names used in logs and error reports
const (
	OpListDonations  = "list donations"
	OpCreateDonation = "create donation"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Options configures a Service
type Options struct {
	BaseURL string
	// Timeout bounds each request; zero means no timeout
	Timeout    time.Duration
	HTTPClient *http.Client
}

var _ Gateway = (*Service)(nil)

// Service talks to the donation REST API over HTTP
type Service struct {
	baseURL      string
	timeout      time.Duration
	httpClient   *http.Client
	newRequestID func() string
}

// NewService creates a new gateway service
func NewService(opts Options) *Service {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Service{
		baseURL:      baseURL,
		timeout:      opts.Timeout,
		httpClient:   client,
		newRequestID: uuid.NewString,
	}
}

// BaseURL returns the API base the service was configured with
func (s *Service) BaseURL() string {
	return s.baseURL
}

// ListDonations fetches all donations
func (s *Service) ListDonations(ctx context.Context) ([]model.Donation, error) {
	requestID := s.newRequestID()

	req, err := http.NewRequest(http.MethodGet, s.baseURL+ListPath, nil)
	if err != nil {
		logging.ReportError(OpListDonations, requestID, err)
		return nil, &LoadError{RequestID: requestID}
	}

	donations, err := s.do(ctx, req, requestID)
	if err != nil {
		logging.ReportError(OpListDonations, requestID, err)
		return nil, &LoadError{RequestID: requestID}
	}

	return donations, nil
}

// CreateDonation submits a donation as multipart/form-data
func (s *Service) CreateDonation(ctx context.Context, fields model.DonationFields, attachment *model.Attachment) ([]model.Donation, error) {
	requestID := s.newRequestID()

	body, contentType, err := encodeDonation(fields, attachment)
	if err != nil {
		logging.ReportError(OpCreateDonation, requestID, err)
		return nil, &SubmitError{RequestID: requestID}
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+CreatePath, body)
	if err != nil {
		logging.ReportError(OpCreateDonation, requestID, err)
		return nil, &SubmitError{RequestID: requestID}
	}
	req.Header.Set("Content-Type", contentType)

	donations, err := s.do(ctx, req, requestID)
	if err != nil {
		logging.ReportError(OpCreateDonation, requestID, err)
		return nil, &SubmitError{RequestID: requestID}
	}

	log.Printf("Donation submitted successfully (request %s, %d donations returned)", requestID, len(donations))
	return donations, nil
}

// ResolveImageURL resolves a possibly relative imageUrl against the API origin
func (s *Service) ResolveImageURL(imageURL string) (*url.URL, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, fmt.Errorf("image url is empty")
	}

	ref, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("parse image url %q: %w", imageURL, err)
	}
	if ref.IsAbs() {
		return ref, nil
	}

	base, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", s.baseURL, err)
	}
	origin := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}
	return origin.ResolveReference(ref), nil
}

// do executes req and decodes a JSON array of donations from a 2xx response
func (s *Service) do(ctx context.Context, req *http.Request, requestID string) ([]model.Donation, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	req = req.WithContext(ctx)
	req.Header.Set(HeaderAccept, ContentTypeJSON)
	req.Header.Set(HeaderRequestID, requestID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, ErrorBodyLimit))
		return nil, fmt.Errorf("%s %s: unexpected status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var donations []model.Donation
	if err := json.NewDecoder(resp.Body).Decode(&donations); err != nil {
		return nil, fmt.Errorf("%s %s decode: %w", req.Method, req.URL.Path, err)
	}
	if donations == nil {
		donations = []model.Donation{}
	}
	return donations, nil
}

// encodeDonation builds the multipart body; the File part is omitted when
// attachment is nil.
func encodeDonation(fields model.DonationFields, attachment *model.Attachment) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	textParts := []struct {
		name  string
		value string
	}{
		{PartItemName, fields.ItemName},
		{PartDescription, fields.Description},
		{PartLocation, fields.Location},
		{PartContactNumber, fields.Contact},
	}
	for _, p := range textParts {
		if err := w.WriteField(p.name, p.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", p.name, err)
		}
	}

	if attachment != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			PartFile, quoteEscaper.Replace(attachment.Name)))
		contentType := attachment.MIMEType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(attachment.Content); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
