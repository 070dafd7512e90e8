package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nya3jp/icfpc2015/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show problem list sidebar
	sidebarWidth       = 16  // Width of problem list sidebar
	maxScores          = 100 // Max solutions to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextProblem key.Binding
	PrevProblem key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextProblem, k.PrevProblem, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextProblem, k.PrevProblem},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextProblem: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next problem"),
		),
		PrevProblem: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev problem"),
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

// ScoreboardModel lists stored solutions per problem.
type ScoreboardModel struct {
	problemIDs  []int
	cursor      int
	store       *storage.Store
	solutions   []storage.SolutionEntry
	stats       *storage.ProblemStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	quitOnBack  bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard over the given problems.
func NewScoreboardModel(env Env) ScoreboardModel {
	ids := make([]int, len(env.Problems))
	for i, p := range env.Problems {
		ids[i] = p.ID
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		problemIDs:  ids,
		store:       env.Store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       env.Config.ScreenW,
		height:      env.Config.ScreenH,
		showSidebar: env.Config.ScreenW >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(ids) > 0 {
		m.load(ids[0])
	}
	return m
}

// createTable creates a table sized to the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Seed", Width: 8},
		{Title: "Score", Width: 9},
		{Title: "Power", Width: 7},
		{Title: "Moves", Width: 6},
		{Title: "End", Width: 10},
		{Title: "Tag", Width: 14},
		{Title: "When", Width: 14},
	}

	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4
	}
	fixed := 0
	for _, c := range columns[:len(columns)-2] {
		fixed += c.Width + 2
	}
	if rest := tableWidth - fixed; rest > 20 {
		columns[6].Width = min(rest-16, 36)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
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

// load reads solutions and stats for a problem.
func (m *ScoreboardModel) load(problemID int) {
	m.solutions, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.solutions, m.loadErr = m.store.TopSolutions(problemID, maxScores)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetProblemStats(problemID)
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded solutions.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.solutions))
	for i, s := range m.solutions {
		when := "-"
		if !s.CreatedAt.IsZero() {
			when = humanize.Time(s.CreatedAt)
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Seed),
			humanize.Comma(int64(s.Score)),
			humanize.Comma(int64(s.PowerScore)),
			fmt.Sprintf("%d", len(s.Solution)),
			s.Reason,
			s.Tag,
			when,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
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
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.quitOnBack {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextProblem):
			if len(m.problemIDs) > 0 {
				m.cursor = (m.cursor + 1) % len(m.problemIDs)
				m.load(m.problemIDs[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevProblem):
			if len(m.problemIDs) > 0 {
				m.cursor = (m.cursor - 1 + len(m.problemIDs)) % len(m.problemIDs)
				m.load(m.problemIDs[m.cursor])
			}
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

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "SOLUTIONS"
	if len(m.problemIDs) > 0 {
		title = fmt.Sprintf("SOLUTIONS - Problem %d", m.problemIDs[m.cursor])
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary describes the aggregate stats of the current problem.
func (m ScoreboardModel) summary() string {
	switch {
	case m.loadErr != nil:
		return "error: " + m.loadErr.Error()
	case m.stats == nil || m.stats.Solutions == 0:
		return ""
	}
	s := m.stats
	line := fmt.Sprintf("%s solutions on %d seeds · best %s · average %s",
		humanize.Comma(int64(s.Solutions)), s.Seeds,
		humanize.Comma(int64(s.HighScore)), humanize.CommafWithDigits(s.AvgScore, 1))
	if !s.LastPlayed.IsZero() {
		line += " · last " + humanize.Time(s.LastPlayed)
	}
	return line
}

// renderWideLayout renders the problem list beside the table.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Problems\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, id := range m.problemIDs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(fmt.Sprintf("%s%d", cursor, id)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders a problem switcher above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.problemIDs) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< problem %d >", m.problemIDs[m.cursor]), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.solutions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No solutions recorded yet.\nPlay a problem to store one!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own.
func RunScoreboard(env Env) error {
	m := NewScoreboardModel(env)
	m.quitOnBack = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
