package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It binds the donation form, the attachment drop zone and the donation list
// to the form controller. All UI strings are localized via Localization.
