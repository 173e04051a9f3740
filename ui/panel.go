// Package ui renders the mixer panel shared by both surfaces and maps keys to commands
package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ambience/catalog"
	"github.com/lixenwraith/ambience/constant"
)

// Controller is the command surface a panel drives
// Implemented by *mixer.Store in the main process and *relay.Remote in the secondary panel
type Controller interface {
	ToggleSound(id string)
	SetSoundVolume(id string, v float64)
	SetMasterVolume(v float64)
	TogglePlayPause()
	LoadPresetByID(id string) bool
	Shuffle()
	StopAll()
}

// PresetEditor manages custom presets; only the mixer owner has one
type PresetEditor interface {
	SaveCustomPreset(name, description string) (catalog.Preset, bool)
	DeleteCustomPreset(id string) bool
}

// Layout rows outside the sound list
const (
	headerRows = 4
	footerRows = 2
	labelWidth = 18
)

// Panel is the interactive sound list
// Not safe for concurrent use; the owning loop calls Update, HandleEvent and Draw
type Panel struct {
	title  string
	ctrl   Controller
	editor PresetEditor

	view   View
	cursor int // Index into view.Sounds
	offset int // First visible list line
	status string
}

// NewPanel creates a panel sending commands to ctrl
func NewPanel(title string, ctrl Controller) *Panel {
	return &Panel{
		title: title,
		ctrl:  ctrl,
	}
}

// SetEditor enables saving and deleting custom presets
func (p *Panel) SetEditor(e PresetEditor) {
	p.editor = e
}

// Update replaces the displayed state
func (p *Panel) Update(v View) {
	p.view = v
	if p.cursor >= len(v.Sounds) {
		p.cursor = max(len(v.Sounds)-1, 0)
	}
}

// Cursor returns the ID of the selected sound
func (p *Panel) Cursor() string {
	if p.cursor < len(p.view.Sounds) {
		return p.view.Sounds[p.cursor].ID
	}
	return ""
}

// Status returns the last feedback message
func (p *Panel) Status() string {
	return p.status
}

// HandleEvent processes a tcell event and returns false if the panel should exit
func (p *Panel) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		return p.handleKey(ev.Key(), ev.Rune())
	}
	return true
}

// handleKey maps one key press to a command
func (p *Panel) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape:
		return false
	case tcell.KeyUp:
		p.move(-1)
		return true
	case tcell.KeyDown:
		p.move(1)
		return true
	case tcell.KeyLeft:
		p.nudgeSound(-constant.VolumeStep)
		return true
	case tcell.KeyRight:
		p.nudgeSound(constant.VolumeStep)
		return true
	case tcell.KeyEnter:
		p.toggle()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case 'k':
		p.move(-1)
	case 'j':
		p.move(1)
	case 'g':
		p.cursor = 0
	case 'G':
		p.cursor = max(len(p.view.Sounds)-1, 0)
	case ' ':
		p.toggle()
	case 'h':
		p.nudgeSound(-constant.VolumeStep)
	case 'l':
		p.nudgeSound(constant.VolumeStep)
	case '-':
		p.nudgeMaster(-constant.VolumeStep)
	case '+', '=':
		p.nudgeMaster(constant.VolumeStep)
	case 'p':
		p.ctrl.TogglePlayPause()
		p.status = ""
	case 's':
		p.ctrl.Shuffle()
		p.status = "Shuffled"
	case 'x':
		p.ctrl.StopAll()
		p.status = "Stopped all sounds"
	case ']':
		p.cyclePreset(1)
	case '[':
		p.cyclePreset(-1)
	case 'w':
		p.savePreset()
	case 'd':
		p.deletePreset()
	}
	return true
}

func (p *Panel) move(delta int) {
	n := len(p.view.Sounds)
	if n == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), n-1)
}

func (p *Panel) toggle() {
	if id := p.Cursor(); id != "" {
		p.ctrl.ToggleSound(id)
		p.status = ""
	}
}

func (p *Panel) nudgeSound(delta float64) {
	if p.cursor >= len(p.view.Sounds) {
		return
	}
	s := p.view.Sounds[p.cursor]
	p.ctrl.SetSoundVolume(s.ID, stepVolume(s.Volume, delta))
}

func (p *Panel) nudgeMaster(delta float64) {
	p.ctrl.SetMasterVolume(stepVolume(p.view.Master, delta))
}

// stepVolume applies delta and snaps to the step grid so repeated presses do not drift
func stepVolume(v, delta float64) float64 {
	steps := math.Round((v + delta) / constant.VolumeStep)
	return min(max(steps*constant.VolumeStep, 0), 1)
}

func (p *Panel) cyclePreset(dir int) {
	presets := p.view.Presets
	if len(presets) == 0 {
		return
	}

	idx := -1
	for i, pr := range presets {
		if pr.ID == p.view.CurrentPreset {
			idx = i
			break
		}
	}

	switch {
	case idx < 0 && dir > 0:
		idx = 0
	case idx < 0:
		idx = len(presets) - 1
	default:
		idx = (idx + dir + len(presets)) % len(presets)
	}

	pr := presets[idx]
	if p.ctrl.LoadPresetByID(pr.ID) {
		p.status = "Loaded " + pr.Name
	} else {
		p.status = "Preset unavailable: " + pr.Name
	}
}

func (p *Panel) savePreset() {
	if p.editor == nil {
		p.status = "Presets are saved from the main window"
		return
	}

	var labels []string
	for _, s := range p.view.Sounds {
		if s.Active {
			labels = append(labels, s.Label)
		}
	}

	name := fmt.Sprintf("My Mix %d", len(p.view.Custom)+1)
	if pr, ok := p.editor.SaveCustomPreset(name, strings.Join(labels, ", ")); ok {
		p.status = "Saved " + pr.Name
	} else {
		p.status = "Nothing to save"
	}
}

func (p *Panel) deletePreset() {
	if p.editor == nil {
		p.status = "Presets are deleted from the main window"
		return
	}
	if !p.view.Custom[p.view.CurrentPreset] {
		p.status = "Select a custom preset to delete"
		return
	}
	name := p.view.presetName()
	if p.editor.DeleteCustomPreset(p.view.CurrentPreset) {
		p.status = "Deleted " + name
	}
}
