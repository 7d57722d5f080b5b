package core

import (
	"strings"
	"unicode/utf8"
)

// Color is a foreground color for a screen cell. Backends map it to their
// own palettes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
)

// Cell is one character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' '}

// Screen is a row-major grid of cells that games paint into. Backends copy
// it to the real terminal.
type Screen struct {
	w, h  int
	cells []Cell
}

func NewScreen(width, height int) *Screen {
	s := &Screen{w: width, h: height, cells: make([]Cell, width*height)}
	s.Clear()
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.w && y < s.h
}

// Resize changes the grid size. The overlapping top-left region keeps its
// content; new cells are blank.
func (s *Screen) Resize(width, height int) {
	if width == s.w && height == s.h {
		return
	}
	next := &Screen{w: width, h: height, cells: make([]Cell, width*height)}
	next.Clear()
	cols := Min(s.w, width)
	for y := 0; y < Min(s.h, height); y++ {
		copy(next.cells[y*width:y*width+cols], s.cells[y*s.w:y*s.w+cols])
	}
	*s = *next
}

func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// Set writes r in the default color. Writes outside the grid are dropped,
// as they are for every drawing method.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if s.inside(x, y) {
		s.cells[y*s.w+x] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space outside the grid.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blankCell
	}
	return s.cells[y*s.w+x]
}

func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes text left to right from (x, y), one rune per cell,
// clipping at the edges.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered centers text on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawTextColored((s.w-utf8.RuneCountInString(text))/2, y, text, c)
}

// FillRect paints the cells [x, x+w) × [y, y+h).
func (s *Screen) FillRect(x, y, w, h int, r rune, c Color) {
	for dy := 0; dy < h; dy++ {
		s.DrawHLine(x, y+dy, w, r, c)
	}
}

// DrawBox outlines a w×h box with box-drawing runes and blanks its inside.
// Boxes smaller than 2×2 are not drawn.
func (s *Screen) DrawBox(x, y, w, h int, c Color) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1

	s.FillRect(x+1, y+1, w-2, h-2, ' ', ColorDefault)
	s.DrawHLine(x+1, y, w-2, '─', c)
	s.DrawHLine(x+1, bottom, w-2, '─', c)
	for row := y + 1; row < bottom; row++ {
		s.SetColored(x, row, '│', c)
		s.SetColored(right, row, '│', c)
	}
	s.SetColored(x, y, '┌', c)
	s.SetColored(right, y, '┐', c)
	s.SetColored(x, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for end := x + length; x < end; x++ {
		s.SetColored(x, y, r, c)
	}
}

// String renders the runes row by row, separated by newlines, without
// colors.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Row returns row y as text. Rows outside the grid read as spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	var b strings.Builder
	b.Grow(s.w)
	for _, c := range s.cells[y*s.w : (y+1)*s.w] {
		b.WriteRune(c.Rune)
	}
	return b.String()
}
