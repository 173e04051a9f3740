// Package catalog holds the static sound collection and built-in presets
// Data is immutable: accessors return copies
package catalog

// Sound describes one looping ambient track
type Sound struct {
	ID       string
	Label    string
	Source   string // Path relative to the sounds directory
	Category string
	Icon     string
}

// Category groups sounds for display
type Category struct {
	ID     string
	Title  string
	Icon   string
	Sounds []Sound
}

// PresetSound is one (sound, volume) pair of a preset
type PresetSound struct {
	ID     string  `json:"id"`
	Volume float64 `json:"volume"`
}

// Preset is a named bundle of sound volumes
type Preset struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Sounds      []PresetSound `json:"sounds"`
}

// Clone returns a deep copy of the preset
func (p Preset) Clone() Preset {
	c := p
	if p.Sounds != nil {
		c.Sounds = make([]PresetSound, len(p.Sounds))
		copy(c.Sounds, p.Sounds)
	}
	return c
}

// flat is every sound in category order, index maps ID to position in flat
var flat, index = func() ([]Sound, map[string]int) {
	var all []Sound
	idx := make(map[string]int)
	for _, cat := range categories {
		for _, s := range cat.Sounds {
			idx[s.ID] = len(all)
			all = append(all, s)
		}
	}
	return all, idx
}()

// Categories returns all categories in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, cat := range categories {
		out[i] = cat
		out[i].Sounds = make([]Sound, len(cat.Sounds))
		copy(out[i].Sounds, cat.Sounds)
	}
	return out
}

// All returns every sound flattened in category order
func All() []Sound {
	out := make([]Sound, len(flat))
	copy(out, flat)
	return out
}

// Lookup finds a sound by ID
func Lookup(id string) (Sound, bool) {
	i, ok := index[id]
	if !ok {
		return Sound{}, false
	}
	return flat[i], true
}

// BuiltinPresets returns the curated presets in display order
func BuiltinPresets() []Preset {
	out := make([]Preset, len(builtinPresets))
	for i, p := range builtinPresets {
		out[i] = p.Clone()
	}
	return out
}

// LookupPreset finds a built-in preset by ID
func LookupPreset(id string) (Preset, bool) {
	for _, p := range builtinPresets {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return Preset{}, false
}
