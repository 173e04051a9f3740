package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ambience/catalog"
)

// listLine is one row of the scrolling sound list
type listLine struct {
	header string // Category title, empty for sound rows
	sound  int    // Index into view.Sounds, -1 for headers
}

// Draw renders the panel onto c
func (p *Panel) Draw(c Canvas) {
	width, height := c.Size()
	if width <= 0 || height <= 0 {
		return
	}

	fill(c, 0, 0, width, height, StyleDefault)

	p.drawHeader(c, width)

	if !p.view.Synced {
		drawText(c, 2, headerRows, "Waiting for mixer state...", StyleDim)
	} else {
		p.drawList(c, width, height)
	}

	if p.status != "" {
		drawText(c, 0, height-2, p.status, StyleStatus)
	}
	drawText(c, 0, height-1, "j/k move  space toggle  h/l volume  -/+ master  p play  s shuffle  x stop  [/] preset  w save  d delete  q quit", StyleDim)
}

func (p *Panel) drawHeader(c Canvas, width int) {
	drawText(c, 0, 0, p.title, StyleTitle)

	state, style := "▶ Playing", StylePlaying
	if !p.view.Playing {
		state, style = "❚❚ Paused", StylePaused
	}
	drawText(c, width-len([]rune(state)), 0, state, style)

	x := drawText(c, 0, 1, "Master ", StyleDefault)
	x = drawBar(c, x, 1, p.view.Master)
	drawText(c, x+1, 1, percent(p.view.Master), StyleDefault)

	x = drawText(c, 0, 2, "Preset ", StyleDefault)
	if name := p.view.presetName(); name != "" {
		x = drawText(c, x, 2, name, StylePreset)
	} else {
		x = drawText(c, x, 2, "none", StyleDim)
	}
	drawText(c, x+2, 2, fmt.Sprintf("%d active", p.view.activeCount()), StyleDim)
}

// lines groups sounds under their category titles
func (p *Panel) lines() []listLine {
	titles := make(map[string]string)
	for _, cat := range catalog.Categories() {
		titles[cat.ID] = cat.Title
	}

	var out []listLine
	last := ""
	for i, s := range p.view.Sounds {
		if s.Category != last {
			title := titles[s.Category]
			if title == "" {
				title = s.Category
			}
			out = append(out, listLine{header: title, sound: -1})
			last = s.Category
		}
		out = append(out, listLine{sound: i})
	}
	return out
}

func (p *Panel) drawList(c Canvas, width, height int) {
	visible := height - headerRows - footerRows
	if visible <= 0 {
		return
	}

	lines := p.lines()

	// Keep the cursor row on screen
	cursorLine := 0
	for i, l := range lines {
		if l.sound == p.cursor {
			cursorLine = i
			break
		}
	}
	if cursorLine < p.offset {
		p.offset = cursorLine
		if p.offset > 0 && lines[p.offset-1].sound < 0 {
			p.offset-- // Show the category title with its first sound
		}
	}
	if cursorLine >= p.offset+visible {
		p.offset = cursorLine - visible + 1
	}

	for row := 0; row < visible && p.offset+row < len(lines); row++ {
		y := headerRows + row
		l := lines[p.offset+row]

		if l.sound < 0 {
			drawText(c, 0, y, l.header, StyleCategory)
			continue
		}

		s := p.view.Sounds[l.sound]
		base := StyleDefault
		if l.sound == p.cursor {
			base = base.Background(RgbCursorBg)
			fill(c, 0, y, width, 1, base)
			c.SetContent(1, y, GlyphCursor, nil, base.Foreground(RgbTitle))
		}

		glyph, style := GlyphOff, base.Foreground(RgbDim)
		if s.Active {
			glyph, style = GlyphOn, base.Foreground(RgbActive)
		}
		c.SetContent(3, y, glyph, nil, style)

		labelStyle := base
		if s.Active {
			labelStyle = base.Foreground(RgbActive)
		}
		drawText(c, 5, y, s.Label, labelStyle)

		x := drawBar(c, 5+labelWidth, y, s.Volume)
		drawText(c, x+1, y, percent(s.Volume), base)
	}
}

// drawText writes s at x, y and returns the column after it
func drawText(c Canvas, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		c.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// drawBar draws a volume bar and returns the column after it
func drawBar(c Canvas, x, y int, v float64) int {
	filled := int(v*BarWidth + 0.5)
	for i := 0; i < BarWidth; i++ {
		if i < filled {
			c.SetContent(x+i, y, GlyphBarFull, nil, StyleActive)
		} else {
			c.SetContent(x+i, y, GlyphBarEmpty, nil, StyleDim)
		}
	}
	return x + BarWidth
}

func fill(c Canvas, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.SetContent(col, row, ' ', nil, style)
		}
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%3d%%", int(v*100+0.5))
}
