package gateway

import (
	"context"
	"net/url"

	"github.com/ytget/donation-board/internal/model"
)

// Gateway defines the interface for the donation API client.
type Gateway interface {
	// ListDonations fetches every donation. Fails only with *LoadError.
	ListDonations(ctx context.Context) ([]model.Donation, error)

	// CreateDonation submits one donation and returns the updated list the
	// backend replies with. attachment may be nil. Fails only with *SubmitError.
	CreateDonation(ctx context.Context, fields model.DonationFields, attachment *model.Attachment) ([]model.Donation, error)

	// ResolveImageURL turns a donation imageUrl into an absolute URL
	ResolveImageURL(imageURL string) (*url.URL, error)
}
