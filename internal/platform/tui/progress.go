package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/portalhop/internal/storage"
)

// Progress screen layout constants
const (
	maxClears      = 100 // clears loaded into the table
	progressChrome = 9   // rows used by title, summary, borders and help
)

// ProgressKeyMap defines the key bindings for the progress screen.
type ProgressKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Reset, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Refresh, k.Reset, k.Quit},
	}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "reload"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x x", "reset best stage"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel shows the best stage and the recent clear history.
type ProgressModel struct {
	store      storage.Progress
	summary    storage.Summary
	loadErr    error
	table      table.Model
	help       help.Model
	keys       ProgressKeyMap
	width      int
	height     int
	confirming bool
	quitting   bool
}

// NewProgressModel creates a progress screen backed by store.
func NewProgressModel(store storage.Progress, width, height int) ProgressModel {
	h := help.New()
	h.Width = width

	m := ProgressModel{
		store:  store,
		keys:   DefaultProgressKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized to the current window.
func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Stage", Width: 7},
		{Title: "Seed", Width: 12},
		{Title: "Cleared", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-progressChrome)),
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

// load reads the summary from the store and refreshes the table.
func (m *ProgressModel) load() {
	if m.store == nil {
		m.summary = storage.Summary{HighestStage: 1}
		m.loadErr = nil
		m.updateTableRows()
		return
	}
	m.summary, m.loadErr = storage.Summarize(m.store, maxClears)
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded summary.
func (m *ProgressModel) updateTableRows() {
	rows := make([]table.Row, len(m.summary.Recent))
	for i, c := range m.summary.Recent {
		rows[i] = ClearRow(c)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// ClearRow formats a clear entry as a table row.
func ClearRow(c storage.ClearEntry) table.Row {
	return table.Row{
		fmt.Sprintf("%d", c.ID),
		fmt.Sprintf("%d", c.Stage),
		fmt.Sprintf("%d", c.Seed),
		storage.FormatClearedAt(c.ClearedAt),
	}
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress screen.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Reset) {
			if m.confirming {
				m.resetBest()
				m.confirming = false
			} else {
				m.confirming = true
			}
			return m, nil
		}
		m.confirming = false

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// resetBest clears the stored best stage. The clear history stays.
func (m *ProgressModel) resetBest() {
	if m.store == nil {
		return
	}
	if err := m.store.ClearHighestStage(); err != nil {
		m.loadErr = err
		return
	}
	m.load()
}

// Summary returns the loaded progress.
func (m ProgressModel) Summary() storage.Summary {
	return m.summary
}

// Confirming reports whether a reset is waiting for confirmation.
func (m ProgressModel) Confirming() bool {
	return m.confirming
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText("PORTAL HOP PROGRESS", m.width)))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("Best stage: %d   Recent clears: %d", m.summary.HighestStage, len(m.summary.Recent))
	b.WriteString(centerText(summary, m.width))
	b.WriteString("\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(centerText(errorStyle.Render("Error: "+m.loadErr.Error()), m.width))
	case m.confirming:
		b.WriteString(centerText(warnStyle.Render("Press x again to reset the best stage"), m.width))
	}
	b.WriteString("\n")

	b.WriteString(centerText(panelStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ProgressModel) renderTableContent() string {
	if len(m.summary.Recent) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No stages cleared yet.\nReach a portal to record a clear!")
	}
	return m.table.View()
}

// centerText centers each line of text within width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunProgress runs the interactive progress screen.
func RunProgress(store storage.Progress, width, height int) error {
	p := tea.NewProgram(
		NewProgressModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
