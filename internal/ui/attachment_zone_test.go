package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/donation-board/internal/model"
)

func TestAttachmentZoneTaps(t *testing.T) {
	test.NewApp()

	browsed, removed := 0, 0
	z := NewAttachmentZone(NewLocalization(), func() { browsed++ }, func() { removed++ })
	w := test.NewWindow(z)
	defer w.Close()

	test.Tap(z)
	if browsed != 1 {
		t.Errorf("Expected tapping the zone to browse, got %d", browsed)
	}

	z.SetAttachment(&model.Attachment{Name: "chair.png", MIMEType: model.MIMETypePNG, Size: 2048})
	if !z.removeBtn.Visible() || z.hintLabel.Visible() {
		t.Error("Expected remove button and file name once a file is set")
	}

	test.Tap(z.removeBtn)
	if removed != 1 || browsed != 1 {
		t.Errorf("Expected remove only, got removed=%d browsed=%d", removed, browsed)
	}

	z.SetAttachment(nil)
	if z.removeBtn.Visible() || !z.hintLabel.Visible() {
		t.Error("Expected the drop hint after clearing")
	}
}

func TestDonationRow(t *testing.T) {
	test.NewApp()

	var openedLocation string
	var openedImage model.Donation
	row := NewDonationRow(NewLocalization())
	row.SetCallbacks(
		func(location string) { openedLocation = location },
		func(d model.Donation) { openedImage = d },
	)
	w := test.NewWindow(row)
	defer w.Close()

	row.UpdateDonation(model.Donation{ItemName: "Chair", Description: "Oak", Location: "Lisbon"})
	if row.titleLabel.Text != "Chair" {
		t.Errorf("Expected title Chair, got %s", row.titleLabel.Text)
	}
	if row.imageBtn.Visible() {
		t.Error("Expected no image button without image")
	}
	if row.contactLabel.Visible() {
		t.Error("Expected no contact label without contact")
	}

	test.Tap(row.locationBtn)
	if openedLocation != "Lisbon" {
		t.Errorf("Expected map for Lisbon, got %q", openedLocation)
	}

	row.UpdateDonation(model.Donation{ItemName: "Lamp", Location: "Porto", ImageURL: "/img/lamp.png"})
	if !row.imageBtn.Visible() {
		t.Error("Expected image button")
	}
	test.Tap(row.imageBtn)
	if openedImage.ImageURL != "/img/lamp.png" {
		t.Errorf("Expected lamp image, got %+v", openedImage)
	}

	// A recycled row opens its current donation
	test.Tap(row.locationBtn)
	if openedLocation != "Porto" {
		t.Errorf("Expected map for Porto, got %q", openedLocation)
	}
}
