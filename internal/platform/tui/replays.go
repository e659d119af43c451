package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-classics/internal/registry"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

// maxReplays is how many rows the browser loads per filter.
const maxReplays = 100

// ReplayBrowserModel lists recorded rounds with a game filter.
type ReplayBrowserModel struct {
	filters  []registry.GameInfo // Empty ID means all games
	filter   int
	store    *storage.Store
	logger   *log.Logger
	replays  []storage.ReplaySummary
	table    table.Model
	help     help.Model
	keys     ListKeyMap
	width    int
	height   int
	status   string
	quitting bool
	back     bool
	selected int64 // Replay chosen for playback, 0 if none
}

// NewReplayBrowserModel creates a browser showing the newest replays first.
func NewReplayBrowserModel(store *storage.Store, logger *log.Logger, width, height int) ReplayBrowserModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	filters := append([]registry.GameInfo{{Title: "All games"}}, registry.List()...)

	keys := DefaultListKeyMap()
	keys.Tab.SetHelp("tab", "next game")
	keys.Select.SetHelp("enter", "watch")

	m := ReplayBrowserModel{
		filters: filters,
		store:   store,
		logger:  logger,
		keys:    keys,
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Game", Width: 12},
		{Title: "Outcome", Width: 12},
		{Title: "Length", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Title, filter line, borders, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays queries the store for the current filter.
func (m *ReplayBrowserModel) loadReplays() {
	m.replays = nil
	if m.store != nil {
		replays, err := m.store.RecentReplays(m.filters[m.filter].ID, maxReplays)
		if err != nil {
			m.logger.Warn("could not load replays", "error", err)
			m.status = "Could not load replays"
		} else {
			m.replays = replays
		}
	}

	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.GameID,
			r.Outcome,
			fmt.Sprintf("%.1fs", float64(r.Ticks)/60),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.filter = (m.filter + 1) % len(m.filters)
			m.loadReplays()
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.filter = (m.filter + len(m.filters) - 1) % len(m.filters)
			m.loadReplays()
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if r, ok := m.current(); ok {
				m.selected = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteCurrent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.loadReplays()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReplayBrowserModel) current() (storage.ReplaySummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.ReplaySummary{}, false
	}
	return m.replays[i], true
}

func (m *ReplayBrowserModel) deleteCurrent() {
	r, ok := m.current()
	if !ok || m.store == nil {
		return
	}
	if err := m.store.DeleteReplay(r.ID); err != nil {
		m.logger.Warn("could not delete replay", "id", r.ID, "error", err)
		m.status = fmt.Sprintf("Could not delete replay %d", r.ID)
		return
	}
	m.logger.Info("replay deleted", "id", r.ID)
	m.status = fmt.Sprintf("Deleted replay %d", r.ID)
	m.loadReplays()
}

// ShortHelp returns the bindings shown in the footer.
func (m ReplayBrowserModel) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Tab, m.keys.Delete, m.keys.Back}
}

// FullHelp returns the full help.
func (m ReplayBrowserModel) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp(), {m.keys.ShiftTab, m.keys.Quit}}
}

// View renders the browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.back || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(centerText(titleStyle.Render("REPLAYS"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.filters))
	for i, f := range m.filters {
		if i == m.filter {
			tabs[i] = selectedStyle.Render("[" + f.Title + "]")
		} else {
			tabs[i] = dimStyle.Render(" " + f.Title + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n")

	var content string
	switch {
	case m.store == nil:
		content = dimStyle.Italic(true).Render("Replay storage is unavailable.")
	case len(m.replays) == 0:
		content = dimStyle.Italic(true).Render("No replays recorded yet.\nFinished rounds show up here.")
	default:
		content = m.table.View()
	}
	b.WriteString(panelStyle.Render(content))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m)))

	return b.String()
}

// Selected returns the replay chosen for playback, or 0.
func (m ReplayBrowserModel) Selected() int64 {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplayBrowserModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBrowserModel) IsQuitting() bool {
	return m.quitting
}

// BrowserResult holds the outcome of the replay browser.
type BrowserResult struct {
	ReplayID int64
	Back     bool
	Quit     bool
}

// RunReplayBrowser runs the replay browser screen.
func RunReplayBrowser(store *storage.Store, logger *log.Logger, width, height int) (BrowserResult, error) {
	p := tea.NewProgram(NewReplayBrowserModel(store, logger, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return BrowserResult{}, fmt.Errorf("replay browser: %w", err)
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return BrowserResult{Quit: true}, nil
	}
	return BrowserResult{
		ReplayID: m.Selected(),
		Back:     m.IsGoingBack(),
		Quit:     m.IsQuitting(),
	}, nil
}
