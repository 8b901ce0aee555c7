package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL   = "https://mpv.io/installation/"
	YtDlpInstallURL = "https://github.com/yt-dlp/yt-dlp#installation"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
	Purpose    string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found (%s). Install from: %s", e.Name, e.Purpose, e.InstallURL)
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

func check(name, url, purpose string) error {
	if _, err := lookPath(name); err != nil {
		return &DependencyError{Name: name, InstallURL: url, Purpose: purpose}
	}
	return nil
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return check("mpv", MpvInstallURL, "plays the recordings")
}

// CheckYtDlp checks if yt-dlp is installed. mpv needs it to open YouTube URLs.
func CheckYtDlp() error {
	return check("yt-dlp", YtDlpInstallURL, "lets mpv stream YouTube")
}

// CheckAll checks all dependencies and returns a slice of errors for missing ones
func CheckAll() []error {
	var errs []error
	for _, fn := range []func() error{CheckMpv, CheckYtDlp} {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
