package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nya3jp/icfpc2015/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveW, false},
		{"a", runeKey("a"), core.ActionMoveW, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveE, false},
		{"z", runeKey("z"), core.ActionMoveSW, false},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionMoveSE, false},
		{"e", runeKey("e"), core.ActionRotateCW, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCCW, false},
		{"u", runeKey("u"), core.ActionUndo, false},
		{"ctrl+z", tea.KeyMsg{Type: tea.KeyCtrlZ}, core.ActionUndo, false},
		{"ctrl+r", tea.KeyMsg{Type: tea.KeyCtrlR}, core.ActionRedo, false},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, core.ActionUndoAll, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionPause, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("y"), core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.expected {
				t.Errorf("MapKey(%q) action = %v, expected %v", tt.msg.String(), action, tt.expected)
			}
			if quit != tt.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tt.msg.String(), quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrameKeepsOrder(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyDown}, runeKey("y"), runeKey("z"), runeKey("u")} {
		if km.MapKeyToFrame(msg, &frame) {
			t.Fatalf("MapKeyToFrame(%q) reported quit", msg.String())
		}
	}

	expected := []core.Action{core.ActionMoveSE, core.ActionMoveSW, core.ActionUndo}
	if len(frame.Actions) != len(expected) {
		t.Fatalf("Actions = %v, expected %v", frame.Actions, expected)
	}
	for i, a := range expected {
		if frame.Actions[i] != a {
			t.Errorf("Actions[%d] = %v, expected %v", i, frame.Actions[i], a)
		}
	}

	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("MapKeyToFrame(q) = false, expected quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("h"), MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey("v"), MenuActionReplay},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
				t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}
