package santa

import "github.com/vovakirdan/santa-delivery/internal/core"

// Goal is the static target near the top of the playfield.
type Goal struct {
	rect core.Rect
}

// Rect returns the goal's bounding box.
func (g Goal) Rect() core.Rect {
	return g.rect
}
