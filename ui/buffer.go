package ui

import "github.com/gdamore/tcell/v2"

// Canvas is the drawing surface a panel renders to; tcell.Screen satisfies it
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// Cell is one buffered terminal cell
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Buffer is an off-screen canvas flushed to the terminal in one pass
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Style: StyleDefault}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// SetContent implements Canvas. Combining runes are ignored.
func (b *Buffer) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: primary, Style: style}
	b.touched[idx] = true
}

// Size implements Canvas
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Get returns the cell at x, y; out of bounds returns a blank cell
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{Rune: ' ', Style: StyleDefault}
	}
	return b.cells[y*b.width+x]
}

// Row returns the runes of line y as a string
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, b.width)
	for x := 0; x < b.width; x++ {
		runes[x] = b.cells[y*b.width+x].Rune
	}
	return string(runes)
}

// Flush copies the buffer to dst; untouched cells are written blank
func (b *Buffer) Flush(dst Canvas) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			if b.touched[idx] {
				c := b.cells[idx]
				dst.SetContent(x, y, c.Rune, nil, c.Style)
			} else {
				dst.SetContent(x, y, ' ', nil, StyleDefault)
			}
		}
	}
}
