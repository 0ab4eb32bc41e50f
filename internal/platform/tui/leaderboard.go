package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Leaderboard layout constants
const (
	maxLocalRuns  = 100
	tableMinWidth = 40
)

// LeaderboardTab selects which list is shown.
type LeaderboardTab int

const (
	TabRemote LeaderboardTab = iota
	TabLocal
)

func (t LeaderboardTab) String() string {
	if t == TabLocal {
		return "Local"
	}
	return "Online"
}

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Switch  key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "online/local"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
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

// scoresMsg carries the result of a remote fetch.
type scoresMsg struct {
	entries []leaderboard.Entry
	err     error
}

// LeaderboardModel shows the remote top scores and the local run history.
type LeaderboardModel struct {
	client  *leaderboard.Client
	store   *storage.Store
	tab     LeaderboardTab
	loading bool
	remote  []leaderboard.Entry
	failed  bool
	local   []storage.Run
	table   table.Model
	help    help.Model
	keys    LeaderboardKeyMap
	width   int
	height  int

	quitting  bool
	goingBack bool
}

// NewLeaderboardModel creates a leaderboard screen opened on the given tab.
func NewLeaderboardModel(client *leaderboard.Client, store *storage.Store, tab LeaderboardTab, width, height int) LeaderboardModel {
	h := help.New()
	h.ShowAll = false

	m := LeaderboardModel{
		client: client,
		store:  store,
		tab:    tab,
		keys:   DefaultLeaderboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
		// The first fetch is started by Init
		loading: client != nil,
		failed:  client == nil,
	}
	m.loadLocal()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// Init starts the remote fetch.
func (m LeaderboardModel) Init() tea.Cmd {
	return m.fetch()
}

// fetch returns a command that loads the remote scores.
func (m LeaderboardModel) fetch() tea.Cmd {
	if m.client == nil {
		return nil
	}
	client := m.client
	return func() tea.Msg {
		entries, err := client.Fetch(context.Background())
		return scoresMsg{entries: entries, err: err}
	}
}

// loadLocal reads the run history from storage.
func (m *LeaderboardModel) loadLocal() {
	m.local = nil
	if m.store == nil {
		return
	}
	runs, err := m.store.TopRuns("", maxLocalRuns)
	if err == nil {
		m.local = runs
	}
}

// createTable creates a new table with columns for the current tab.
func (m *LeaderboardModel) createTable() table.Model {
	tableWidth := max(m.width-8, tableMinWidth)

	var columns []table.Column
	if m.tab == TabRemote {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: min(tableWidth-20, 30)},
			{Title: "Score", Width: 8},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: 16},
			{Title: "Mode", Width: 8},
			{Title: "Score", Width: 7},
			{Title: "Date", Width: 13},
			{Title: "Sent", Width: 4},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, tabs and help
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

// updateTableRows fills the table from the current tab's data.
func (m *LeaderboardModel) updateTableRows() {
	var rows []table.Row
	if m.tab == TabRemote {
		rows = make([]table.Row, len(m.remote))
		for i, e := range m.remote {
			rows[i] = table.Row{fmt.Sprintf("#%d", i+1), e.Name, fmt.Sprintf("%d", e.Score)}
		}
	} else {
		rows = make([]table.Row, len(m.local))
		for i, r := range m.local {
			sent := ""
			if r.Submitted {
				sent = "✓"
			}
			name := r.Name
			if name == "" {
				name = "-"
			}
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				name,
				r.Mode,
				fmt.Sprintf("%d", r.Score),
				r.CreatedAt.Local().Format("Jan 02 15:04"),
				sent,
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case scoresMsg:
		m.loading = false
		m.failed = msg.err != nil
		m.remote = msg.entries
		if m.tab == TabRemote {
			m.updateTableRows()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Switch):
			if m.tab == TabRemote {
				m.tab = TabLocal
				m.loadLocal()
			} else {
				m.tab = TabRemote
			}
			m.table = m.createTable()
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if m.tab == TabLocal {
				m.loadLocal()
				m.updateTableRows()
				return m, nil
			}
			if m.client != nil {
				m.loading = true
			}
			return m, m.fetch()

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

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("LEADERBOARD", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	box := boxStyle.Render(m.renderTableContent())

	pad := max((m.width-lipgloss.Width(box))/2, 0)
	b.WriteString(lipgloss.NewStyle().MarginLeft(pad).Render(box))

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m LeaderboardModel) renderTabs() string {
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, t := range []LeaderboardTab{TabRemote, TabLocal} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or a status message.
func (m LeaderboardModel) renderTableContent() string {
	emptyStyle := mutedStyle.Italic(true).Padding(2, 4)

	if m.tab == TabRemote {
		switch {
		case m.loading:
			return emptyStyle.Render("Loading...")
		case m.failed:
			return errorStyle.Padding(2, 4).Render(leaderboard.PlaceholderText)
		case len(m.remote) == 0:
			return emptyStyle.Render("No scores on the server yet.")
		}
		return m.table.View()
	}

	if len(m.local) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// Tab returns the tab currently shown.
func (m LeaderboardModel) Tab() LeaderboardTab {
	return m.tab
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LeaderboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LeaderboardModel) IsQuitting() bool {
	return m.quitting
}
