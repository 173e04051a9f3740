package ui

import "github.com/gdamore/tcell/v2"

// RGB color definitions for the panel
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbText       = tcell.NewRGBColor(192, 202, 245) // Foreground
	RgbDim        = tcell.NewRGBColor(86, 95, 137)   // Comments gray
	RgbTitle      = tcell.NewRGBColor(122, 162, 247) // Blue
	RgbCategory   = tcell.NewRGBColor(187, 154, 247) // Purple
	RgbActive     = tcell.NewRGBColor(158, 206, 106) // Green
	RgbCursorBg   = tcell.NewRGBColor(41, 46, 66)    // Selection
	RgbPlaying    = tcell.NewRGBColor(158, 206, 106) // Green
	RgbPaused     = tcell.NewRGBColor(255, 158, 100) // Orange
	RgbPreset     = tcell.NewRGBColor(224, 175, 104) // Yellow
	RgbStatus     = tcell.NewRGBColor(125, 207, 255) // Cyan
)

// Styles
var (
	StyleDefault  = tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	StyleDim      = StyleDefault.Foreground(RgbDim)
	StyleTitle    = StyleDefault.Foreground(RgbTitle).Bold(true)
	StyleCategory = StyleDefault.Foreground(RgbCategory).Bold(true)
	StyleActive   = StyleDefault.Foreground(RgbActive)
	StylePlaying  = StyleDefault.Foreground(RgbPlaying).Bold(true)
	StylePaused   = StyleDefault.Foreground(RgbPaused).Bold(true)
	StylePreset   = StyleDefault.Foreground(RgbPreset)
	StyleStatus   = StyleDefault.Foreground(RgbStatus)
)

// Glyphs
const (
	GlyphBarFull  = '█'
	GlyphBarEmpty = '░'
	GlyphOn       = '●'
	GlyphOff      = '○'
	GlyphCursor   = '▸'

	BarWidth = 10
)
