package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconError    = "❌"
	IconSuccess  = "✔"
	IconPin      = "📍"
	IconImage    = "🖼"
	IconContact  = "☎"
	IconUpload   = "📎"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	FormMinWidth        float32 = 340
	DescriptionMinLines         = 3
	RowMinWidth         float32 = 320
	RowMinHeight        float32 = 72
	DropZoneMinHeight   float32 = 64
	SettingsDialogW     float32 = 480
	SettingsDialogH     float32 = 360
	SplitOffset                 = 0.42
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 72
	ToastMargin   float32 = 20
	ToastAutoHide         = 3 * time.Second
)

// Image extensions offered by the file dialog
var ImageExtensions = []string{".jpg", ".jpeg", ".png"}
