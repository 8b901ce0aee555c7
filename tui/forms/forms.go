// Package forms provides huh-based form components for the TUI.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/user/setlist-archive-cli/archive"
)

// DateOptions turns the tab strip into select options. Pending dates are
// left out since they have nothing to show.
func DateOptions(tabs []archive.Tab, headings map[string]string) []huh.Option[string] {
	var opts []huh.Option[string]
	for i := len(tabs) - 1; i >= 0; i-- {
		t := tabs[i]
		if t.Disabled {
			continue
		}
		label := t.Date
		if h := headings[t.Date]; h != "" {
			label = fmt.Sprintf("%s  %s", t.Date, h)
		}
		opts = append(opts, huh.NewOption(label, t.Date))
	}
	return opts
}

// NewDatePicker creates a select form for the performance to open first,
// newest first. The chosen date is written to date.
func NewDatePicker(tabs []archive.Tab, headings map[string]string, date *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Performance").
				Description("Pick the show to open").
				Options(DateOptions(tabs, headings)...).
				Height(12).
				Value(date),
		),
	).WithTheme(Theme())
}
