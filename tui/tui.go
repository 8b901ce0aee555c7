package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/tui/components"
	"github.com/user/setlist-archive-cli/tui/styles"
	"github.com/user/setlist-archive-cli/view"
)

const (
	// tickInterval is how often the view state is refreshed.
	tickInterval = 250 * time.Millisecond
	// resultDisplayDuration is how long to show an error notice.
	resultDisplayDuration = 3 * time.Second
)

// Session is the part of the view controller the TUI drives.
type Session interface {
	Snapshot() (view.Snapshot, error)
	ActivateCard(date string) error
	ApplyFilter(q string) error
	ClearFilter() error
	ClickEntry(id string) error
	HoverEntry(id string) error
	LeaveEntry(id string) error
	Autocomplete(q string) []archive.Suggestion
}

// tickMsg is a message sent on every tick interval to refresh the snapshot.
type tickMsg time.Time

// clearResultMsg is sent to clear the notice.
type clearResultMsg struct{}

// Model is the Bubbletea model of the play command.
type Model struct {
	session Session
	snap    view.Snapshot
	err     error

	quitting bool
	showHelp bool
	width    int
	height   int

	focus       FocusTarget
	filter      textinput.Model
	suggestions []archive.Suggestion
	// selected is the entry under the cursor; the cursor also hovers it.
	selected string
	message  string
}

// NewModel creates a model over session.
func NewModel(session Session) *Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "song, venue, city or country"
	ti.CharLimit = 80
	ti.PromptStyle = styles.Key
	ti.TextStyle = styles.PrimaryText
	ti.PlaceholderStyle = styles.DimText

	m := &Model{session: session, filter: ti}
	m.refresh()
	return m
}

// Init starts the refresh ticker.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refresh()
		if m.err != nil {
			return m, nil
		}
		return m, tickCmd()

	case clearResultMsg:
		m.message = ""
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.focus == FocusFilter {
			return m.handleFilterInput(msg)
		}
		return m.handleSetlistInput(msg)
	}
	return m, nil
}

func (m *Model) handleSetlistInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?":
		m.showHelp = true
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		return m, m.stepDate(-1)
	case "right", "l":
		return m, m.stepDate(1)
	case "up", "k":
		return m, m.moveSelection(-1)
	case "down", "j":
		return m, m.moveSelection(1)
	case "enter", " ":
		if m.selected == "" {
			return m, nil
		}
		return m, m.do(m.session.ClickEntry(m.selected))
	case "/":
		m.focus = FocusFilter
		m.filter.SetValue(m.snap.Query)
		m.filter.CursorEnd()
		m.suggestions = m.session.Autocomplete(m.filter.Value())
		return m, m.filter.Focus()
	case "esc":
		if m.snap.Filtering() {
			return m, m.do(m.session.ClearFilter())
		}
	}
	return m, nil
}

func (m *Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurFilter()
		m.filter.SetValue("")
		return m, m.do(m.session.ClearFilter())
	case "enter":
		m.blurFilter()
		return m, nil
	case "tab":
		if len(m.suggestions) == 0 {
			return m, nil
		}
		m.filter.SetValue(m.suggestions[0].Text)
		m.filter.CursorEnd()
		m.suggestions = nil
		return m, m.do(m.session.ApplyFilter(m.filter.Value()))
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() == before {
		return m, cmd
	}
	m.suggestions = m.session.Autocomplete(m.filter.Value())
	return m, tea.Batch(cmd, m.do(m.session.ApplyFilter(m.filter.Value())))
}

func (m *Model) blurFilter() {
	m.focus = FocusSetlist
	m.filter.Blur()
	m.suggestions = nil
}

// do refreshes after a session call and turns its error into a notice.
func (m *Model) do(err error) tea.Cmd {
	m.refresh()
	if err == nil {
		return nil
	}
	m.message = err.Error()
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{}
	})
}

// refresh pulls a new snapshot and keeps the selection on a visible entry.
func (m *Model) refresh() {
	snap, err := m.session.Snapshot()
	if err != nil {
		m.err = err
		return
	}
	m.snap = snap
	entries := m.visibleEntries()
	for _, e := range entries {
		if e.ID == m.selected {
			return
		}
	}
	m.selected = ""
	if m.snap.Playing != nil {
		for _, e := range entries {
			if e.ID == m.snap.Playing.ID {
				m.selected = e.ID
				return
			}
		}
	}
	if len(entries) > 0 {
		m.selected = entries[0].ID
	}
}

func (m *Model) visibleEntries() []*archive.Entry {
	var out []*archive.Entry
	for _, c := range m.snap.Cards {
		out = append(out, c.Entries...)
	}
	return out
}

// moveSelection moves the cursor by delta entries, moving the hover along.
func (m *Model) moveSelection(delta int) tea.Cmd {
	entries := m.visibleEntries()
	if len(entries) == 0 {
		return nil
	}
	idx := 0
	for i, e := range entries {
		if e.ID == m.selected {
			idx = i
			break
		}
	}
	next := min(max(idx+delta, 0), len(entries)-1)
	if entries[next].ID == m.selected {
		return nil
	}
	if m.selected != "" {
		if err := m.session.LeaveEntry(m.selected); err != nil {
			return m.do(err)
		}
	}
	m.selected = entries[next].ID
	return m.do(m.session.HoverEntry(m.selected))
}

// stepDate activates the previous or next performance with a card.
func (m *Model) stepDate(delta int) tea.Cmd {
	var dates []string
	for _, t := range m.snap.Tabs {
		if !t.Disabled {
			dates = append(dates, t.Date)
		}
	}
	if len(dates) == 0 {
		return nil
	}
	idx := -1
	for i, d := range dates {
		if d == m.snap.ActiveDate {
			idx = i
		}
	}
	next := idx + delta
	if idx < 0 {
		next = 0
		if delta < 0 {
			next = len(dates) - 1
		}
	}
	if next < 0 || next >= len(dates) {
		return nil
	}
	m.selected = ""
	return m.do(m.session.ActivateCard(dates[next]))
}

// View renders the status bar, the tab strip, the filter and the columns.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	status := components.StatusBar(m.statusBarState(), m.width)
	if m.err != nil {
		return status + "\n\nError: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	tabs := components.TabStrip(components.TabStripState{
		Tabs:    m.snap.Tabs,
		Active:  m.snap.ActiveDate,
		Matched: m.matchedDates(),
	}, m.width)

	top := []string{status, tabs, m.filterLine()}
	if s := components.Suggestions(m.suggestions, m.width); s != "" {
		top = append(top, s)
	}
	if m.snap.Filter != nil && m.snap.Filter.Message != "" {
		top = append(top, styles.Warning.Render(m.snap.Filter.Message))
	}
	header := strings.Join(top, "\n")
	keyBar := components.KeyBar(m.width)

	colHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(keyBar), 3)
	return header + "\n" + m.renderColumns(colHeight) + "\n" + keyBar
}

func (m *Model) filterLine() string {
	if m.focus == FocusFilter {
		return m.filter.View()
	}
	if m.snap.Query != "" {
		return styles.Key.Render("/ ") + styles.PrimaryText.Render(m.snap.Query) +
			styles.DimText.Render(fmt.Sprintf("  %d shows  esc clears", len(m.snap.Cards)))
	}
	return styles.DimText.Render("/ filter")
}

func (m *Model) matchedDates() map[string]bool {
	if !m.snap.Filtering() {
		return nil
	}
	matched := make(map[string]bool, len(m.snap.Cards))
	for _, c := range m.snap.Cards {
		matched[c.Date] = true
	}
	return matched
}

func (m *Model) statusBarState() components.StatusBarState {
	state := components.StatusBarState{
		Route:   "/" + m.snap.Route.String(),
		Message: m.message,
	}
	if e := m.snap.Playing; e != nil {
		state.Title = e.DisplayTitle()
		state.Start = e.Start
		state.Position = m.snap.Position
		if c, ok := m.snap.Scene.Playing(); ok {
			state.ColorIndex = c.ColorIndex
		}
	}
	return state
}

// Run starts the Bubbletea program over session.
func Run(session Session) error {
	p := tea.NewProgram(NewModel(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
