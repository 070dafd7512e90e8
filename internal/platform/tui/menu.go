package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems"
	"github.com/nya3jp/icfpc2015/internal/storage"
)

// MenuItem is one problem in the picker with the seed currently chosen.
type MenuItem struct {
	Problem   *problems.Problem
	SeedIndex int
	best      map[uint32]storage.SolutionEntry
}

// Seed returns the chosen seed value.
func (it MenuItem) Seed() uint32 {
	return it.Problem.SourceSeeds[it.SeedIndex]
}

// Best returns the best stored solution for the chosen seed.
func (it MenuItem) Best() (storage.SolutionEntry, bool) {
	e, ok := it.best[it.Seed()]
	return e, ok
}

// MenuModel is the Bubble Tea model for the problem picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	keyMapper      *KeyMapper
	message        string
	quitting       bool
	selected       *MenuItem
	replay         bool // selected item should be replayed, not played
	openScoreboard bool
}

// NewMenuModel creates a picker over env.Problems, annotated with the best
// stored score per seed.
func NewMenuModel(env Env) MenuModel {
	items := make([]MenuItem, 0, len(env.Problems))
	for i := range env.Problems {
		p := &env.Problems[i]
		if len(p.SourceSeeds) == 0 {
			continue
		}
		item := MenuItem{Problem: p, best: make(map[uint32]storage.SolutionEntry)}
		if env.Store != nil {
			if entries, err := env.Store.BestPerSeed(p.ID); err == nil {
				for _, e := range entries {
					item.best[e.Seed] = e
				}
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     env.Config.ScreenW,
		height:    env.Config.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if len(m.items) > 0 && m.items[m.cursor].SeedIndex > 0 {
			m.items[m.cursor].SeedIndex--
		}

	case MenuActionRight:
		if len(m.items) > 0 {
			it := &m.items[m.cursor]
			if it.SeedIndex < len(it.Problem.SourceSeeds)-1 {
				it.SeedIndex++
			}
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionReplay:
		if len(m.items) == 0 {
			break
		}
		if _, ok := m.items[m.cursor].Best(); !ok {
			m.message = "no stored solution for this seed"
			break
		}
		selected := m.items[m.cursor]
		m.selected = &selected
		m.replay = true

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("H E X F A L L", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a problem and seed", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(menuDimStyle.Render(centerText("No problems found.", m.width)))
		b.WriteString("\n")
	}

	for i, it := range m.items {
		line := formatMenuItem(it)
		if i == m.cursor {
			b.WriteString(menuSelectedStyle.Render(centerText("> "+line, m.width)))
		} else {
			b.WriteString(centerText("  "+line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(centerText(m.message, m.width))
		b.WriteString("\n")
	}
	controls := "↑/↓ problem  ←/→ seed  enter play  v replay best  tab scores  q quit"
	b.WriteString(menuDimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

func formatMenuItem(it MenuItem) string {
	p := it.Problem
	line := fmt.Sprintf("Problem %-3d %3dx%-3d %2d units  seed %d/%d (%d)",
		p.ID, p.Width, p.Height, len(p.Units), it.SeedIndex+1, len(p.SourceSeeds), it.Seed())
	if best, ok := it.Best(); ok {
		line += "  best " + humanize.Comma(int64(best.Score))
	}
	return line
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// WantsReplay reports whether the selection should be replayed.
func (m MenuModel) WantsReplay() bool {
	return m.replay
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
