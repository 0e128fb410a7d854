package ui

import (
	"context"
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/donation-board/internal/config"
	"github.com/ytget/donation-board/internal/form"
	"github.com/ytget/donation-board/internal/model"
	"github.com/ytget/donation-board/internal/platform"
)

// textFields are the form fields backed by an entry, in display order
var textFields = []model.Field{
	model.FieldItemName,
	model.FieldDescription,
	model.FieldLocation,
	model.FieldContact,
}

// fieldEntry is an entry that reports when it loses focus
type fieldEntry struct {
	widget.Entry
	onFocusLost func()
}

func newFieldEntry(multiLine bool) *fieldEntry {
	e := &fieldEntry{}
	e.MultiLine = multiLine
	if multiLine {
		e.Wrapping = fyne.TextWrapWord
		e.SetMinRowsVisible(DescriptionMinLines)
	}
	e.ExtendBaseWidget(e)
	return e
}

// FocusLost marks the field touched
func (e *fieldEntry) FocusLost() {
	e.Entry.FocusLost()
	if e.onFocusLost != nil {
		e.onFocusLost()
	}
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	controller   *form.Controller
	settings     *config.Settings
	localization *Localization

	// Form
	formTitle      *widget.Label
	fieldLabels    map[model.Field]*widget.Label
	entries        map[model.Field]*fieldEntry
	errorLabels    map[model.Field]*widget.Label
	attachmentZone *AttachmentZone
	submitBtn      *widget.Button

	// Status panel under the submit button
	submitSpinner *widget.ProgressBarInfinite
	successLabel  *widget.Label
	errorLabel    *widget.Label

	// Donation list
	listTitle      *widget.Label
	loadErrorLabel *widget.Label
	emptyLabel     *widget.Label
	donationList   *widget.List

	// Last rendered state; only touched on the UI goroutine
	snapshot         form.Snapshot
	pickerGeneration int
	lastPickedDir    fyne.ListableURI
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, controller *form.Controller, settings *config.Settings) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		controller:   controller,
		settings:     settings,
		localization: localization,
		fieldLabels:  make(map[model.Field]*widget.Label),
		entries:      make(map[model.Field]*fieldEntry),
		errorLabels:  make(map[model.Field]*widget.Label),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()

	// Updates may come from any goroutine. Rendering re-reads the latest state
	// so a queued older snapshot never overwrites newer typing.
	controller.SetUpdateCallback(func(form.Snapshot) {
		fyne.Do(func() { ui.render(ui.controller.Snapshot()) })
	})
	ui.render(controller.Snapshot())

	return ui
}

// Start loads the donation list in the background
func (ui *RootUI) Start(ctx context.Context) {
	go func() {
		if err := ui.controller.Load(ctx); err != nil {
			log.Printf("Initial donation load failed: %v", err)
		}
	}()
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.formTitle = widget.NewLabel(ui.localization.GetText(KeyNewDonation))
	ui.formTitle.TextStyle = fyne.TextStyle{Bold: true}

	formBox := container.NewVBox(ui.formTitle)
	for _, field := range textFields {
		formBox.Add(ui.createFieldBlock(field))
	}

	ui.attachmentZone = NewAttachmentZone(ui.localization, ui.onBrowseFile, ui.controller.RemoveFile)
	formBox.Add(ui.attachmentZone)

	ui.submitBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeySubmit), theme.UploadIcon(), ui.onSubmit)
	ui.submitBtn.Importance = widget.HighImportance

	ui.submitSpinner = widget.NewProgressBarInfinite()
	ui.submitSpinner.Hide()

	ui.successLabel = widget.NewLabel("")
	ui.successLabel.Importance = widget.SuccessImportance
	ui.successLabel.Wrapping = fyne.TextWrapWord
	ui.successLabel.Hide()

	ui.errorLabel = widget.NewLabel("")
	ui.errorLabel.Importance = widget.DangerImportance
	ui.errorLabel.Wrapping = fyne.TextWrapWord
	ui.errorLabel.Hide()

	formBox.Add(ui.submitBtn)
	formBox.Add(ui.submitSpinner)
	formBox.Add(ui.successLabel)
	formBox.Add(ui.errorLabel)

	ui.listTitle = widget.NewLabel(ui.localization.GetText(KeyDonations))
	ui.listTitle.TextStyle = fyne.TextStyle{Bold: true}

	ui.loadErrorLabel = widget.NewLabel("")
	ui.loadErrorLabel.Importance = widget.DangerImportance
	ui.loadErrorLabel.Hide()

	ui.emptyLabel = widget.NewLabel(ui.localization.GetText(KeyNoDonations))
	ui.emptyLabel.Alignment = fyne.TextAlignCenter

	ui.donationList = widget.NewList(
		func() int { return len(ui.snapshot.Donations) },
		func() fyne.CanvasObject { return ui.createDonationItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateDonationItem(id, obj) },
	)

	listPanel := container.NewBorder(
		container.NewVBox(ui.listTitle, ui.loadErrorLabel),
		nil, nil, nil,
		container.NewStack(ui.emptyLabel, ui.donationList),
	)

	formScroll := container.NewVScroll(container.NewPadded(formBox))
	formScroll.SetMinSize(fyne.NewSize(FormMinWidth, 0))

	split := container.NewHSplit(formScroll, listPanel)
	split.Offset = SplitOffset

	ui.window.SetContent(split)
	ui.window.SetOnDropped(ui.onDropped)

	log.Printf("UI setup completed successfully")
}

// createFieldBlock builds label, entry and error line for one field
func (ui *RootUI) createFieldBlock(field model.Field) fyne.CanvasObject {
	label := widget.NewLabel(ui.localization.FieldLabel(field))
	ui.fieldLabels[field] = label

	entry := newFieldEntry(field == model.FieldDescription)
	entry.OnChanged = func(text string) {
		ui.controller.SetField(field, text)
	}
	entry.onFocusLost = func() {
		ui.controller.MarkTouched(field)
	}
	ui.entries[field] = entry

	errLabel := widget.NewLabel("")
	errLabel.Importance = widget.DangerImportance
	errLabel.Wrapping = fyne.TextWrapWord
	errLabel.Hide()
	ui.errorLabels[field] = errLabel

	return container.NewVBox(label, entry, errLabel)
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	refreshItem := fyne.NewMenuItem(ui.localization.GetText(KeyRefresh), func() {
		ui.Start(context.Background())
	})

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), refreshItem, fyne.NewMenuItemSeparator(), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.formTitle.SetText(l.GetText(KeyNewDonation))
	ui.listTitle.SetText(l.GetText(KeyDonations))
	ui.emptyLabel.SetText(l.GetText(KeyNoDonations))
	for field, label := range ui.fieldLabels {
		label.SetText(l.FieldLabel(field))
	}
	ui.attachmentZone.RefreshTexts()
	ui.render(ui.snapshot)
}

func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.onLanguageChange(ui.settings.GetLanguage())
		dialog.ShowInformation(
			ui.localization.GetText(KeySettings),
			ui.localization.GetText(KeySettingsSaved)+"\n"+ui.localization.GetText(KeySettingsOnRestart),
			ui.window,
		)
	})
}

func (ui *RootUI) onSubmit() {
	go func() {
		err := ui.controller.Submit(context.Background())
		switch {
		case err == nil:
		case errors.Is(err, form.ErrInvalidForm):
			log.Printf("Submit blocked: form is invalid")
		case errors.Is(err, form.ErrSubmitInFlight):
			log.Printf("Submit ignored: a submission is already in flight")
		default:
			log.Printf("Submit failed: %v", err)
		}
	}()
}

func (ui *RootUI) onBrowseFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return // cancelled
		}
		defer reader.Close()

		if parent, err := storage.Parent(reader.URI()); err == nil {
			if dir, err := storage.ListerForURI(parent); err == nil {
				ui.lastPickedDir = dir
			}
		}

		att, err := platform.AttachmentFromReader(reader.URI().Name(), reader, -1)
		ui.selectAttachment(att, err)
	}, ui.window)

	fd.SetFilter(storage.NewExtensionFileFilter(ImageExtensions))
	if ui.lastPickedDir != nil {
		fd.SetLocation(ui.lastPickedDir)
	}
	fd.Show()
}

// onDropped handles files dragged onto the window; only the first is used
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	uri := uris[0]
	if uri.Scheme() != "file" {
		log.Printf("Ignoring dropped non-file URI %s", uri)
		return
	}

	go func() {
		att, err := platform.LoadAttachment(uri.Path())
		fyne.Do(func() { ui.selectAttachment(att, err) })
	}()
}

// selectAttachment hands a picked file to the controller and reports rejections
func (ui *RootUI) selectAttachment(att *model.Attachment, readErr error) {
	if readErr != nil {
		log.Printf("Failed to read attachment: %v", readErr)
		dialog.ShowInformation(ui.localization.GetText(KeyNotice), ui.localization.GetText(KeyCannotReadFile), ui.window)
		return
	}

	if err := ui.controller.SelectFile(att); err != nil {
		if notice := ui.localization.Notice(err); notice != "" {
			dialog.ShowInformation(ui.localization.GetText(KeyNotice), notice, ui.window)
			return
		}
		log.Printf("Attachment rejected: %v", err)
	}
}

func (ui *RootUI) createDonationItem() fyne.CanvasObject {
	row := NewDonationRow(ui.localization)
	row.SetCallbacks(ui.controller.OpenLocationOnMap, ui.onOpenImage)
	return row
}

func (ui *RootUI) updateDonationItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id >= len(ui.snapshot.Donations) {
		return
	}
	if row, ok := item.(*DonationRow); ok {
		row.UpdateDonation(ui.snapshot.Donations[id])
	}
}

func (ui *RootUI) onOpenImage(d model.Donation) {
	if err := ui.controller.OpenImage(d); err != nil {
		log.Printf("Failed to open image for donation %s: %v", d.Key(), err)
	}
}

// render applies a controller snapshot to the widgets
func (ui *RootUI) render(s form.Snapshot) {
	ui.snapshot = s
	l := ui.localization

	for _, field := range textFields {
		entry := ui.entries[field]
		if value := s.Fields.Get(field); entry.Text != value {
			entry.SetText(value)
		}
		ui.renderFieldErrors(field, s.VisibleErrors(field))
	}

	if s.PickerGeneration != ui.pickerGeneration {
		ui.pickerGeneration = s.PickerGeneration
		ui.lastPickedDir = nil
	}
	ui.attachmentZone.SetAttachment(s.Attachment)

	if s.IsSubmitting() {
		ui.submitBtn.SetText(l.GetText(KeySubmitting))
		ui.submitBtn.Disable()
		ui.submitSpinner.Show()
	} else {
		ui.submitBtn.SetText(l.GetText(KeySubmit))
		ui.submitBtn.Enable()
		ui.submitSpinner.Hide()
	}

	ui.renderOutcome(s)

	if s.LoadError != "" {
		ui.loadErrorLabel.SetText(l.ErrorMessage(s.LoadError))
		ui.loadErrorLabel.Show()
	} else {
		ui.loadErrorLabel.Hide()
	}

	if len(s.Donations) == 0 {
		ui.emptyLabel.Show()
	} else {
		ui.emptyLabel.Hide()
	}
	ui.donationList.Refresh()
}

// renderOutcome shows the banner of a finished submission and hides both
// banners otherwise
func (ui *RootUI) renderOutcome(s form.Snapshot) {
	ui.successLabel.Hide()
	ui.errorLabel.Hide()
	if !s.Status.IsFinished() {
		return
	}

	l := ui.localization
	switch s.Status {
	case model.SubmissionSucceeded:
		ui.successLabel.SetText(IconSuccess + " " + l.GetText(KeySubmitSuccess))
		ui.successLabel.Show()
	case model.SubmissionFailed:
		message := s.SubmitError
		if message == "" {
			message = form.DefaultSubmitErrorMessage
		}
		ui.errorLabel.SetText(IconError + " " + l.ErrorMessage(message))
		ui.errorLabel.Show()
	}
}

func (ui *RootUI) renderFieldErrors(field model.Field, tags []string) {
	label := ui.errorLabels[field]
	if len(tags) == 0 {
		label.Hide()
		return
	}
	// One message at a time, the first failed rule
	label.SetText(ui.localization.FieldError(field, tags[0]))
	label.Show()
}
