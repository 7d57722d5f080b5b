package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionPause)
	f.Set(ActionNone)

	if !f.Has(ActionJump) || !f.Has(ActionPause) {
		t.Errorf("Has() = false for a set action")
	}
	if f.Has(ActionQuit) {
		t.Errorf("Has(ActionQuit) = true, expected false")
	}
	got := f.Actions()
	if len(got) != 2 || got[0] != ActionJump || got[1] != ActionPause {
		t.Errorf("Actions() = %v, expected [Tap Pause]", got)
	}

	snapshot := f
	f.Clear()
	if !f.Empty() {
		t.Error("Clear() should empty the frame")
	}
	if !snapshot.Has(ActionJump) {
		t.Error("a copied frame should not be affected by Clear()")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionJump, "Tap"},
		{ActionQuit, "Quit"},
		{Action(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, expected %q", tt.action, got, tt.want)
		}
	}
}
