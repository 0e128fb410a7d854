package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	successGreen = color.NRGBA{R: 46, G: 125, B: 50, A: 255}
	errorRed     = color.NRGBA{R: 198, G: 40, B: 40, A: 255}
	primaryTeal  = color.NRGBA{R: 0, G: 121, B: 107, A: 255}
)

// compactSizes overrides default theme sizes; anything missing falls through
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:        3,
	theme.SizeNameInnerPadding:   6,
	theme.SizeNameLineSpacing:    2,
	theme.SizeNameText:           13,
	theme.SizeNameHeadingText:    17,
	theme.SizeNameSubHeadingText: 14,
	theme.SizeNameCaptionText:    11,
	theme.SizeNameInputRadius:    4,
}

// CompactTheme is the default theme with tighter spacing and status colors
// for the submission banners
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return successGreen
	case theme.ColorNameError:
		return errorRed
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		return primaryTeal
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := compactSizes[name]; ok {
		return size
	}
	return theme.DefaultTheme().Size(name)
}
