package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/donation-board/internal/model"
)

// AttachmentZone is the tappable area that picks the donation image.
// Tapping it browses for a file; the remove button handles its own taps
// so removing never reopens the picker.
type AttachmentZone struct {
	widget.BaseWidget

	localization *Localization
	attachment   *model.Attachment

	border    *canvas.Rectangle
	hintLabel *widget.Label
	fileLabel *widget.Label
	removeBtn *widget.Button

	onBrowse func()
	onRemove func()
}

var _ fyne.Tappable = (*AttachmentZone)(nil)

// NewAttachmentZone creates an empty attachment zone
func NewAttachmentZone(localization *Localization, onBrowse, onRemove func()) *AttachmentZone {
	z := &AttachmentZone{
		localization: localization,
		onBrowse:     onBrowse,
		onRemove:     onRemove,
	}
	z.ExtendBaseWidget(z)

	z.border = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	z.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
	z.border.StrokeWidth = 1
	z.border.CornerRadius = theme.Size(theme.SizeNameInputRadius)

	z.hintLabel = widget.NewLabel(localization.GetText(KeyDropImage))
	z.hintLabel.Alignment = fyne.TextAlignCenter
	z.hintLabel.Wrapping = fyne.TextWrapWord

	z.fileLabel = widget.NewLabel("")
	z.fileLabel.Truncation = fyne.TextTruncateEllipsis
	z.fileLabel.Hide()

	z.removeBtn = widget.NewButtonWithIcon(localization.GetText(KeyRemove), theme.DeleteIcon(), func() {
		if z.onRemove != nil {
			z.onRemove()
		}
	})
	z.removeBtn.Importance = widget.DangerImportance
	z.removeBtn.Hide()

	return z
}

// Tapped opens the file picker
func (z *AttachmentZone) Tapped(*fyne.PointEvent) {
	if z.onBrowse != nil {
		z.onBrowse()
	}
}

// SetAttachment shows att, or the drop hint when att is nil
func (z *AttachmentZone) SetAttachment(att *model.Attachment) {
	if att == z.attachment {
		return
	}
	z.attachment = att

	if att == nil {
		z.fileLabel.Hide()
		z.removeBtn.Hide()
		z.hintLabel.Show()
	} else {
		z.fileLabel.SetText(fmt.Sprintf("%s %s%s%s", IconUpload, att.Name, MiddleDotSeparator, att.GetSizeString()))
		z.hintLabel.Hide()
		z.fileLabel.Show()
		z.removeBtn.Show()
	}
	z.Refresh()
}

// RefreshTexts re-reads localized strings
func (z *AttachmentZone) RefreshTexts() {
	z.hintLabel.SetText(z.localization.GetText(KeyDropImage))
	z.removeBtn.SetText(z.localization.GetText(KeyRemove))
}

// MinSize keeps the drop target comfortably large
func (z *AttachmentZone) MinSize() fyne.Size {
	min := z.BaseWidget.MinSize()
	return fyne.NewSize(min.Width, fyne.Max(min.Height, DropZoneMinHeight))
}

// CreateRenderer creates the widget renderer
func (z *AttachmentZone) CreateRenderer() fyne.WidgetRenderer {
	selected := container.NewBorder(nil, nil, nil, z.removeBtn, z.fileLabel)
	content := container.NewStack(
		z.border,
		container.NewPadded(container.NewVBox(z.hintLabel, selected)),
	)
	return widget.NewSimpleRenderer(content)
}
