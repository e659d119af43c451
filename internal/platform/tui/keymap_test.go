package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey("w"), core.ActionUp},
		{runeKey("k"), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{runeKey("s"), core.ActionDown},
		{runeKey("j"), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey("a"), core.ActionLeft},
		{runeKey("h"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey("d"), core.ActionRight},
		{runeKey("l"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm},
		{runeKey("p"), core.ActionPause},
		{runeKey("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey("b"), core.ActionBack},
		{runeKey("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey("z"), core.ActionNone},
		{runeKey("5"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %s, expected %s", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestDigit(t *testing.T) {
	for d := 1; d <= 9; d++ {
		if got := Digit(runeKey(string(rune('0' + d)))); got != d {
			t.Errorf("Digit(%d) = %d", d, got)
		}
	}
	for _, s := range []string{"0", "a", "12"} {
		if got := Digit(runeKey(s)); got != 0 {
			t.Errorf("Digit(%q) = %d, expected 0", s, got)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	keys := DefaultGameKeyMap()
	frame := core.NewInputFrame()

	keys.MapKeyToFrame(runeKey("7"), &frame)
	keys.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame)

	if frame.Digit != 7 {
		t.Errorf("Digit = %d, expected 7", frame.Digit)
	}
	if !frame.Has(core.ActionLeft) {
		t.Error("left not recorded")
	}
	if frame.Has(core.ActionNone) {
		t.Error("ActionNone should never be set")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	frame := core.NewInputFrame()

	release := tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if MapMouseToFrame(release, &frame) || frame.Click != nil {
		t.Error("release should be ignored")
	}

	right := tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	if MapMouseToFrame(right, &frame) || frame.Click != nil {
		t.Error("right button should be ignored")
	}

	press := tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !MapMouseToFrame(press, &frame) {
		t.Fatal("left press should be recorded")
	}
	if frame.Click == nil || *frame.Click != (core.Point{X: 10, Y: 4}) {
		t.Errorf("Click = %+v", frame.Click)
	}
}
