package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/donation-board/internal/model"
)

// DonationRow renders one donation in the list
type DonationRow struct {
	widget.BaseWidget

	donation     model.Donation
	localization *Localization

	// UI components
	titleLabel       *widget.Label
	descriptionLabel *widget.Label
	contactLabel     *widget.Label
	locationBtn      *widget.Button // opens a map search for the location
	imageBtn         *widget.Button

	// Callbacks
	onOpenLocation func(location string)
	onOpenImage    func(donation model.Donation)
}

// NewDonationRow creates a new donation row widget
func NewDonationRow(localization *Localization) *DonationRow {
	r := &DonationRow{localization: localization}
	r.ExtendBaseWidget(r)
	r.createUI()
	return r
}

// SetCallbacks sets the action callbacks
func (r *DonationRow) SetCallbacks(onOpenLocation func(location string), onOpenImage func(donation model.Donation)) {
	r.onOpenLocation = onOpenLocation
	r.onOpenImage = onOpenImage
}

// UpdateDonation shows d in the row
func (r *DonationRow) UpdateDonation(d model.Donation) {
	r.donation = d
	r.updateFromDonation()
	r.Refresh()
}

func (r *DonationRow) createUI() {
	r.titleLabel = widget.NewLabel("")
	r.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.titleLabel.Truncation = fyne.TextTruncateEllipsis

	r.descriptionLabel = widget.NewLabel("")
	r.descriptionLabel.Wrapping = fyne.TextWrapWord

	r.contactLabel = widget.NewLabel("")
	r.contactLabel.TextStyle = fyne.TextStyle{Monospace: true}

	r.locationBtn = widget.NewButton("", func() {
		// Read the current donation, rows are recycled by the list
		location := r.donation.Location
		if r.onOpenLocation == nil || location == "" {
			log.Printf("Open location ignored for donation %s", r.donation.Key())
			return
		}
		r.onOpenLocation(location)
	})
	r.locationBtn.Importance = widget.LowImportance
	r.locationBtn.Alignment = widget.ButtonAlignLeading

	r.imageBtn = widget.NewButtonWithIcon(r.localization.GetText(KeyOpenImage), theme.MediaPhotoIcon(), func() {
		if r.onOpenImage != nil && r.donation.HasImage() {
			r.onOpenImage(r.donation)
		}
	})
	r.imageBtn.Importance = widget.LowImportance
	r.imageBtn.Hide()
}

func (r *DonationRow) updateFromDonation() {
	d := r.donation
	r.titleLabel.SetText(d.GetDisplayTitle())
	r.descriptionLabel.SetText(d.Description)
	r.locationBtn.SetText(fmt.Sprintf("%s %s", IconPin, valueOrDash(d.Location)))
	r.imageBtn.SetText(r.localization.GetText(KeyOpenImage))

	if d.Contact != "" {
		r.contactLabel.SetText(fmt.Sprintf("%s %s", IconContact, d.Contact))
		r.contactLabel.Show()
	} else {
		r.contactLabel.Hide()
	}

	if d.HasImage() {
		r.imageBtn.Show()
	} else {
		r.imageBtn.Hide()
	}
}

// MinSize keeps rows readable in narrow windows
func (r *DonationRow) MinSize() fyne.Size {
	min := r.BaseWidget.MinSize()
	return fyne.NewSize(fyne.Max(min.Width, RowMinWidth), fyne.Max(min.Height, RowMinHeight))
}

// CreateRenderer creates the widget renderer
func (r *DonationRow) CreateRenderer() fyne.WidgetRenderer {
	footer := container.NewHBox(r.locationBtn, r.contactLabel, r.imageBtn)
	content := container.NewVBox(r.titleLabel, r.descriptionLabel, footer, widget.NewSeparator())
	return widget.NewSimpleRenderer(content)
}

func valueOrDash(s string) string {
	if s == "" {
		return DashPlaceholder
	}
	return s
}
