package model

import (
	"strconv"
	"strings"
)

// Donation represents a single donation record owned by the backend
type Donation struct {
	ID          *int   `json:"id,omitempty"`
	ItemName    string `json:"itemName"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Contact     string `json:"contact,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// DonationFields holds the text values entered in the donation form
type DonationFields struct {
	ItemName    string `validate:"required,min=3"`
	Description string `validate:"required,min=10"`
	Location    string `validate:"required"`
	Contact     string `validate:"required"`
}

// Field names a single input of the donation form
type Field string

const (
	FieldItemName    Field = "itemName"
	FieldDescription Field = "description"
	FieldLocation    Field = "location"
	FieldContact     Field = "contact"
	FieldFile        Field = "file"
)

// AllFields lists every form field in display order
var AllFields = []Field{FieldItemName, FieldDescription, FieldLocation, FieldContact, FieldFile}

// Key returns a stable identifier for list rendering; persisted donations use their ID
func (d Donation) Key() string {
	if d.ID != nil {
		return strconv.Itoa(*d.ID)
	}
	return d.ItemName + "|" + d.Location
}

// HasImage reports whether the backend stored an image for this donation
func (d Donation) HasImage() bool {
	return strings.TrimSpace(d.ImageURL) != ""
}

// GetDisplayTitle returns the item name, or "—" when the backend sent none
func (d Donation) GetDisplayTitle() string {
	title := strings.Join(strings.Fields(d.ItemName), " ")
	if title == "" {
		return "—"
	}
	return title
}

// Get returns the value of a text field; FieldFile has no text value
func (f DonationFields) Get(field Field) string {
	switch field {
	case FieldItemName:
		return f.ItemName
	case FieldDescription:
		return f.Description
	case FieldLocation:
		return f.Location
	case FieldContact:
		return f.Contact
	default:
		return ""
	}
}

// Set returns a copy of f with the given text field replaced
func (f DonationFields) Set(field Field, value string) DonationFields {
	switch field {
	case FieldItemName:
		f.ItemName = value
	case FieldDescription:
		f.Description = value
	case FieldLocation:
		f.Location = value
	case FieldContact:
		f.Contact = value
	}
	return f
}
