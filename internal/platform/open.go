package platform

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// Command constants
const (
	OpenCommand     = "open"
	XDGOpenCommand  = "xdg-open"
	RunDLLCommand   = "rundll32"
	URLHandlerParam = "url.dll,FileProtocolHandler"
	AMCommand       = "am"
)

// Map search endpoint and its query parameters
const (
	MapSearchBaseURL  = "https://www.google.com/maps/search/"
	MapSearchAPIParam = "api"
	MapSearchAPIValue = "1"
	MapSearchQuery    = "query"
)

// MapSearchURL builds a map search link for a free-form location. A blank
// location still yields a link with an empty query.
func MapSearchURL(location string) (*url.URL, error) {
	location = strings.TrimSpace(location)

	u, err := url.Parse(MapSearchBaseURL)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set(MapSearchAPIParam, MapSearchAPIValue)
	q.Set(MapSearchQuery, location)
	u.RawQuery = q.Encode()
	return u, nil
}

// OpenURL opens u with the system handler (usually the browser)
func OpenURL(u *url.URL) error {
	if u == nil {
		return fmt.Errorf("url is nil")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: unsupported scheme", u.Scheme)
	}

	cmd, err := openCommand(runtime.GOOS, u.String())
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	// Reap the handler process; its exit status is not interesting
	go func() { _ = cmd.Wait() }()
	return nil
}

// openCommand returns the command that opens target on goos
func openCommand(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case OSDarwin:
		return exec.Command(OpenCommand, target), nil
	case OSWindows:
		return exec.Command(RunDLLCommand, URLHandlerParam, target), nil
	case OSLinux:
		return exec.Command(XDGOpenCommand, target), nil
	case OSAndroid:
		return exec.Command(AMCommand, "start", "-a", "android.intent.action.VIEW", "-d", target), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
