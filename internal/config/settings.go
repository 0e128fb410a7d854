package config

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/donation-board/internal/gateway"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL     = "api_base_url"
	KeyLanguage       = "app_language"
	KeyStrictContact  = "strict_contact_length"
	KeyRequestTimeout = "request_timeout_seconds"
)

// Default values
const (
	DefaultAPIBaseURL     = gateway.DefaultBaseURL
	DefaultLanguage       = "system"
	DefaultStrictContact  = false
	DefaultRequestTimeout = 0
	MaxRequestTimeout     = 300
)

// Settings manages application configuration. Environment variables take
// precedence over the values stored in preferences.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetAPIBaseURL returns the donation API base URL
func (s *Settings) GetAPIBaseURL() string {
	if value, ok := lookupEnv(EnvAPIURL); ok {
		return value
	}
	return s.app.Preferences().StringWithFallback(KeyAPIBaseURL, DefaultAPIBaseURL)
}

// SetAPIBaseURL stores the API base URL; empty restores the default
func (s *Settings) SetAPIBaseURL(baseURL string) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, baseURL)
}

// GetRequestTimeout returns the per-request timeout, zero meaning none
func (s *Settings) GetRequestTimeout() time.Duration {
	seconds, ok := getEnvInt(EnvAPITimeout)
	if !ok {
		seconds = s.app.Preferences().IntWithFallback(KeyRequestTimeout, DefaultRequestTimeout)
	}
	return time.Duration(clampTimeout(seconds)) * time.Second
}

// SetRequestTimeoutSeconds stores the request timeout in seconds
func (s *Settings) SetRequestTimeoutSeconds(seconds int) {
	s.app.Preferences().SetInt(KeyRequestTimeout, clampTimeout(seconds))
}

// GetStrictContactLength returns whether contacts must be 10 characters long
func (s *Settings) GetStrictContactLength() bool {
	if strict, ok := getEnvBool(EnvStrictContact); ok {
		return strict
	}
	return s.app.Preferences().BoolWithFallback(KeyStrictContact, DefaultStrictContact)
}

// SetStrictContactLength sets whether contacts must be 10 characters long
func (s *Settings) SetStrictContactLength(strict bool) {
	s.app.Preferences().SetBool(KeyStrictContact, strict)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// IsOverridden reports whether the environment variable env currently
// overrides the stored preference
func (s *Settings) IsOverridden(env string) bool {
	_, ok := lookupEnv(env)
	return ok
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func clampTimeout(seconds int) int {
	if seconds < 0 {
		return 0
	}
	if seconds > MaxRequestTimeout {
		return MaxRequestTimeout
	}
	return seconds
}
