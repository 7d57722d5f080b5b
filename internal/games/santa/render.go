package santa

import (
	"fmt"
	"math"

	"github.com/vovakirdan/santa-delivery/internal/core"
)

// Visual characters for rendering.
const (
	PlayerChar   = '▲'
	ObstacleChar = '▓'
	GoalChar     = '♣'
	WallChar     = '│'
)

// cellView maps logical playfield coordinates onto a block of screen cells.
type cellView struct {
	dst    *core.Screen
	x0, y0 int
	cols   int
	rows   int
	sx, sy float64
}

// newCellView fits field below the HUD row. Terminal cells are about twice
// as tall as they are wide, so columns are doubled to keep the aspect ratio.
func newCellView(dst *core.Screen, field core.Rect) cellView {
	rows := dst.Height() - 1
	if rows < 1 {
		rows = 1
	}
	cols := int(math.Round(float64(rows) * field.W / field.H * 2))
	if cols > dst.Width()-2 {
		cols = dst.Width() - 2
	}
	if cols < 1 {
		cols = 1
	}
	return cellView{
		dst:  dst,
		x0:   (dst.Width() - cols) / 2,
		y0:   1,
		cols: cols,
		rows: rows,
		sx:   float64(cols) / field.W,
		sy:   float64(rows) / field.H,
	}
}

// Draw implements Renderer by filling the cells a box covers. Every box
// covers at least one cell.
func (v cellView) Draw(kind EntityKind, r core.Rect) {
	cx0 := int(math.Floor(r.X * v.sx))
	cx1 := int(math.Ceil(r.Right() * v.sx))
	cy0 := int(math.Floor(r.Y * v.sy))
	cy1 := int(math.Ceil(r.Bottom() * v.sy))
	if cx1 <= cx0 {
		cx1 = cx0 + 1
	}
	if cy1 <= cy0 {
		cy1 = cy0 + 1
	}
	cx0, cx1 = core.Clamp(cx0, 0, v.cols), core.Clamp(cx1, 0, v.cols)
	cy0, cy1 = core.Clamp(cy0, 0, v.rows), core.Clamp(cy1, 0, v.rows)

	glyph, color := glyphFor(kind)
	v.dst.FillRect(v.x0+cx0, v.y0+cy0, cx1-cx0, cy1-cy0, glyph, color)
}

func glyphFor(kind EntityKind) (rune, core.Color) {
	switch kind {
	case EntityPlayer:
		return PlayerChar, core.ColorBrightRed
	case EntityGoal:
		return GoalChar, core.ColorBrightGreen
	default:
		return ObstacleChar, core.ColorBrightCyan
	}
}

func (v cellView) drawWalls() {
	for y := v.y0; y < v.y0+v.rows; y++ {
		v.dst.SetColored(v.x0-1, y, WallChar, core.ColorGray)
		v.dst.SetColored(v.x0+v.cols, y, WallChar, core.ColorGray)
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.setupErr != nil {
		drawMessageBox(dst, "STAGE UNAVAILABLE", g.setupErr.Error(), "ENTER: back to menu", core.ColorBrightRed)
		return
	}
	if g.runtime == nil {
		return
	}

	view := newCellView(dst, g.runtime.params.Field)
	view.drawWalls()
	g.runtime.Render(view)

	total := g.session.Catalog().Len()
	dst.DrawTextColored(1, 0, fmt.Sprintf(" Stage %d/%d ", g.session.Current(), total), core.ColorBrightYellow)
	hint := "SPACE: fly  P: pause  R: retry  Q: quit"
	dst.DrawTextColored(dst.Width()-len(hint)-1, 0, hint, core.ColorGray)

	if g.noticeTicks > 0 && g.notice != "" {
		dst.DrawTextCentered(dst.Height()-1, " "+g.notice+" ", core.ColorYellow)
	}

	switch {
	case g.allCleared:
		drawMessageBox(dst, "MERRY CHRISTMAS!", AllClearedMessage, "ENTER: back to menu", core.ColorBrightGreen)
	case g.paused:
		drawMessageBox(dst, "PAUSED", "Santa is catching a breath.", "P: resume", core.ColorWhite)
	case g.runtime.State() == StateFailed && g.banner != nil:
		drawMessageBox(dst, "OUCH!", g.banner.Message, "R/ENTER: retry  Q: quit", core.ColorBrightRed)
	case g.runtime.State() == StateCleared && g.banner != nil:
		next := "ENTER: next stage"
		if g.session.Current() >= total {
			next = "ENTER: finish"
		}
		drawMessageBox(dst, fmt.Sprintf("STAGE %d CLEAR!", g.session.Current()), g.banner.Message, next, core.ColorBrightGreen)
	}
}

// drawMessageBox draws a centered box with a title, a body line and a hint.
func drawMessageBox(dst *core.Screen, title, body, hint string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	lines := []string{title, body, hint}
	boxW := 0
	for i, l := range lines {
		if limit := w - 4; len([]rune(l)) > limit && limit > 3 {
			lines[i] = string([]rune(l)[:limit-3]) + "..."
		}
		boxW = core.Max(boxW, len([]rune(lines[i]))+4)
	}
	boxW = core.Min(boxW, w)
	boxH := 7
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawBox(boxX, boxY, boxW, boxH, c)
	for i, l := range lines {
		dst.DrawTextColored(boxX+(boxW-len([]rune(l)))/2, boxY+1+i*2, l, lineColor(i, c))
	}
}

func lineColor(i int, c core.Color) core.Color {
	switch i {
	case 0:
		return c
	case 2:
		return core.ColorGray
	default:
		return core.ColorWhite
	}
}
