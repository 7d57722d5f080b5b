package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/santa-delivery/internal/core"
)

func TestMapKeyString(t *testing.T) {
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{" ", core.ActionJump, false},
		{"up", core.ActionJump, false},
		{"w", core.ActionJump, false},
		{"enter", core.ActionConfirm, false},
		{"n", core.ActionConfirm, false},
		{"r", core.ActionRestart, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := mapKeyString(tt.key)
		if action != tt.action || quit != tt.quit {
			t.Errorf("mapKeyString(%q) = %v, %v, expected %v, %v", tt.key, action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, &frame) {
		t.Error("space should not quit")
	}
	if !frame.Has(core.ActionJump) {
		t.Error("space should set the tap action")
	}

	if !km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlC}, &frame) {
		t.Error("ctrl+c should quit")
	}
}

func TestMapMenuKeyString(t *testing.T) {
	tests := []struct {
		key  string
		want MenuAction
	}{
		{"up", MenuActionUp},
		{"j", MenuActionDown},
		{"left", MenuActionLeft},
		{"l", MenuActionRight},
		{"enter", MenuActionSelect},
		{"b", MenuActionBack},
		{"q", MenuActionQuit},
		{"z", MenuActionNone},
	}

	for _, tt := range tests {
		if got := mapMenuKeyString(tt.key); got != tt.want {
			t.Errorf("mapMenuKeyString(%q) = %v, expected %v", tt.key, got, tt.want)
		}
	}
}
