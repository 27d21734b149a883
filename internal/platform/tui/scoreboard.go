package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chicago-loop/internal/levels"
	"github.com/vovakirdan/chicago-loop/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show level list sidebar
	sidebarWidth       = 22  // Width of level list sidebar
	maxRuns            = 100 // Max runs to load per level
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
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

// ScoreboardModel lists the recorded runs of each level, best first.
type ScoreboardModel struct {
	levels      []levels.Level
	cursor      int
	store       *storage.Store
	runs        []storage.RunRecord
	stats       *storage.LevelStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	done        bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard over the given catalog, opened
// on startLevel when it is part of the catalog.
func NewScoreboardModel(store *storage.Store, catalog []levels.Level, startLevel string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		levels:      catalog,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, l := range catalog {
		if l.ID == startLevel {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	if len(m.levels) > 0 {
		m.loadRuns(m.levels[m.cursor].ID)
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Result", Width: 11},
		{Title: "Gens", Width: 5},
		{Title: "Rules", Width: 14},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// loadRuns loads runs and statistics for the given level.
func (m *ScoreboardModel) loadRuns(levelID string) {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.runs, m.loadErr = m.store.BestRuns(levelID, maxRuns)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.LevelStats(levelID)
		}
	}
	m.updateTableRows()
}

// updateTableRows refreshes the table from the loaded runs.
func (m *ScoreboardModel) updateTableRows() {
	m.table.SetRows(scoreRows(m.runs))
	m.table.GotoTop()
}

func scoreRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Outcome,
			fmt.Sprintf("%d", r.Generations),
			r.Rules,
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel):
			m.moveCursor(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.moveCursor(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) moveCursor(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.levels)) % len(m.levels)
	m.loadRuns(m.levels[m.cursor].ID)
}

// Selected returns the level currently shown.
func (m ScoreboardModel) Selected() (levels.Level, bool) {
	return levels.ByIndex(m.levels, m.cursor)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "BEST RUNS"
	if l, ok := m.Selected(); ok {
		title = fmt.Sprintf("BEST RUNS - %s", l.Name)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "no runs yet"
	}
	line := fmt.Sprintf("%d runs, %d won (%.0f%%)", m.stats.Runs, m.stats.Wins, m.stats.WinRate()*100)
	if m.stats.BestGenerations > 0 {
		line += fmt.Sprintf(", best escape in %d generations", m.stats.BestGenerations)
	}
	return line
}

// renderWideLayout renders the scoreboard with a sidebar for level selection.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, l := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(l.Name, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout shows the current level between arrows above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	if l, ok := m.Selected(); ok {
		tab := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1).
			Render(l.Name)
		b.WriteString(centerText("< "+tab+" >", m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("No run database available.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay this level to set a record!")
	}
	return m.table.View()
}

// centerText pads text so that it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "."
}

// RunScoreboard runs the scoreboard screen until the user leaves it.
func RunScoreboard(store *storage.Store, catalog []levels.Level, startLevel string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, catalog, startLevel, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
