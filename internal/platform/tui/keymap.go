package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/santa-delivery/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates an in-game key press. The second result is true for
// quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	return mapKeyString(msg.String())
}

func mapKeyString(key string) (core.Action, bool) {
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "up", "w", "k":
		return core.ActionJump, false
	case "enter", "n":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame adds the action of a key press to frame. It returns true
// for quit keys.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, quit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return quit
}

// MenuAction is a navigation action in the menus.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key press in a menu.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return mapMenuKeyString(msg.String())
}

func mapMenuKeyString(key string) MenuAction {
	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
