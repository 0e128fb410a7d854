package ui

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/donation-board/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.FormDialog
	onSaved      func()

	// UI components
	apiURLEntry    *widget.Entry
	timeoutEntry   *widget.Entry
	strictCheck    *widget.Check
	languageSelect *widget.Select

	// language display name -> code
	languageCodes map[string]string
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs
// after the values were stored.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		localization:  localization,
		window:        window,
		onSaved:       onSaved,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder(config.DefaultAPIBaseURL)

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder("0")
	sd.timeoutEntry.Validator = validateTimeout

	sd.strictCheck = widget.NewCheck(l.GetText(KeyStrictContact), nil)

	var names []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		names = append(names, name)
	}
	sort.Strings(names)
	sd.languageSelect = widget.NewSelect(names, nil)

	items := []*widget.FormItem{
		sd.overridableItem(l.GetText(KeyAPIBaseURL), config.EnvAPIURL, sd.apiURLEntry),
		sd.overridableItem(l.GetText(KeyRequestTimeout), config.EnvAPITimeout, sd.timeoutEntry),
		sd.overridableItem("", config.EnvStrictContact, sd.strictCheck),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
	}

	sd.dialog = dialog.NewForm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		items,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogW, SettingsDialogH))
}

// overridableItem disables a field whose value currently comes from env
func (sd *SettingsDialog) overridableItem(label, env string, w fyne.CanvasObject) *widget.FormItem {
	item := widget.NewFormItem(label, w)
	if sd.settings.IsOverridden(env) {
		item.HintText = sd.localization.GetText(KeyFromEnvironment) + " (" + env + ")"
		if d, ok := w.(fyne.Disableable); ok {
			d.Disable()
		}
	}
	return item
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.apiURLEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout() / time.Second)))
	sd.strictCheck.SetChecked(sd.settings.GetStrictContactLength())

	lang := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == lang {
			sd.languageSelect.SetSelected(name)
			break
		}
	}
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if !sd.apiURLEntry.Disabled() {
		sd.settings.SetAPIBaseURL(sd.apiURLEntry.Text)
	}
	if !sd.timeoutEntry.Disabled() {
		text := strings.TrimSpace(sd.timeoutEntry.Text)
		if text == "" {
			sd.settings.SetRequestTimeoutSeconds(config.DefaultRequestTimeout)
		} else if seconds, err := strconv.Atoi(text); err == nil {
			sd.settings.SetRequestTimeoutSeconds(seconds)
		}
	}
	if !sd.strictCheck.Disabled() {
		sd.settings.SetStrictContactLength(sd.strictCheck.Checked)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

func validateTimeout(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	_, err := strconv.Atoi(text)
	return err
}
