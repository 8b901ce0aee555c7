// Package export writes the archive out of the catalog: the performances
// document as JSON and rendered pages as SVG files.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/user/setlist-archive-cli/archive"
)

// unsafeChars matches characters not safe for filenames: / \ : * ? < > | and spaces
var unsafeChars = regexp.MustCompile(`[/\\:*?<>|\s]`)

// sanitize replaces unsafe filename characters with underscores.
func sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// SVGFileName returns the file name a rendered route is saved under:
// setlist-{date}.svg, setlist-song-{slug}.svg, or setlist.svg.
func SVGFileName(r archive.Route) string {
	switch {
	case r.Date != "":
		return fmt.Sprintf("setlist-%s.svg", sanitize(r.Date))
	case r.Song != "":
		return fmt.Sprintf("setlist-song-%s.svg", sanitize(r.Song))
	default:
		return "setlist.svg"
	}
}

// OutputPath resolves where a rendered route goes. An existing directory
// receives the file under SVGFileName; anything else is used as given.
func OutputPath(output string, r archive.Route) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, SVGFileName(r))
	}
	return output
}

// WriteFile writes data to path, creating the parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes a as an indented performances document. Dates come out
// in ascending order.
func WriteJSON(w io.Writer, a *archive.Archive) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode performances: %w", err)
	}
	return nil
}
