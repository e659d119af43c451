package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-classics/internal/replay"
)

// Playback speeds, in simulation steps per tick
var watchSpeeds = []int{1, 2, 4, 8}

// WatchKeyMap defines the key bindings of replay playback.
type WatchKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultWatchKeyMap returns default playback bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("right", "+", "l"),
			key.WithHelp("→/+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("left", "-", "h"),
			key.WithHelp("←/-", "slower"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// WatchModel plays a recorded round back in real time.
type WatchModel struct {
	player   *replay.Player
	tickID   int64
	tickRate int
	speed    int // index into watchSpeeds
	paused   bool
	keys     WatchKeyMap
	help     help.Model
	quitting bool
	back     bool
}

// NewWatchModel creates a playback model for a recording.
func NewWatchModel(rec replay.Recording, tickRate int) (WatchModel, error) {
	player, err := replay.NewPlayer(rec)
	if err != nil {
		return WatchModel{}, err
	}
	return WatchModel{
		player:   player,
		tickID:   nextTickID(),
		tickRate: tickRate,
		keys:     DefaultWatchKeyMap(),
		help:     help.New(),
	}, nil
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.tickID, m.tickRate)
}

// Update handles messages for playback.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed+1, len(watchSpeeds)-1)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed-1, 0)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		if !m.paused {
			for range watchSpeeds[m.speed] {
				if !m.player.Advance() {
					break
				}
			}
		}
		return m, tickCmd(m.tickID, m.tickRate)
	}

	return m, nil
}

// View renders the replayed frame with a status line.
func (m WatchModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	rec := m.player.Recording()
	status := fmt.Sprintf("Replay #%d  %s  tick %d/%d  x%d",
		rec.ID, rec.GameID, m.player.Tick(), rec.Ticks, watchSpeeds[m.speed])
	switch {
	case m.player.Done():
		status += "  finished: " + replay.Result{State: m.player.State()}.Outcome()
	case m.paused:
		status += "  paused"
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.player.Screen()))
	b.WriteString("\n")
	b.WriteString(selectedStyle.Render(status))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Done reports whether playback reached the end of the recording.
func (m WatchModel) Done() bool {
	return m.player.Done()
}

// IsGoingBack returns true if user wants to go back to the browser.
func (m WatchModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// RunWatch plays a recording in the terminal.
// It returns true if the player asked to go back rather than quit.
func RunWatch(rec replay.Recording, tickRate int) (back bool, err error) {
	model, err := NewWatchModel(rec, tickRate)
	if err != nil {
		return false, err
	}

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, fmt.Errorf("replay: %w", err)
	}
	if m, ok := finalModel.(WatchModel); ok {
		return m.IsGoingBack(), nil
	}
	return false, nil
}
