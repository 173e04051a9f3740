package mixer

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/ambience/catalog"
	"github.com/lixenwraith/ambience/constant"
)

// LoadPreset replaces the mix with the preset's sounds and records it as current
// Unknown sound IDs in the preset are skipped; a sound that later fails to load
// stays active but silent and the rest of the preset is unaffected
func (s *Store) LoadPreset(p catalog.Preset) {
	if s.destroyed {
		return
	}

	s.stopAll()
	for _, ps := range p.Sounds {
		if _, ok := s.sounds[ps.ID]; !ok {
			continue
		}
		s.activate(ps.ID, ps.Volume)
	}

	s.current = p.ID
	s.notify()
}

// LoadPresetByID loads a built-in or custom preset; unknown IDs are ignored
func (s *Store) LoadPresetByID(id string) bool {
	p, ok := s.findPreset(id)
	if !ok {
		return false
	}
	s.LoadPreset(p)
	return true
}

func (s *Store) findPreset(id string) (catalog.Preset, bool) {
	for _, p := range s.builtin {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	for _, p := range s.custom {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return catalog.Preset{}, false
}

// Shuffle replaces the mix with 3 or 4 distinct random sounds at random volumes
func (s *Store) Shuffle() {
	if s.destroyed {
		return
	}

	s.stopAll()

	span := constant.ShuffleMaxSounds - constant.ShuffleMinSounds + 1
	count := min(constant.ShuffleMinSounds+s.intN(span), len(s.order))

	// Rejection sampling over the full catalog
	selected := make([]string, 0, count)
	for len(selected) < count {
		id := s.order[s.intN(len(s.order))]
		if !slices.Contains(selected, id) {
			selected = append(selected, id)
		}
	}

	volSpan := constant.ShuffleMaxVolume - constant.ShuffleMinVolume
	for _, id := range selected {
		s.activate(id, constant.ShuffleMinVolume+s.float()*volSpan)
	}

	s.current = ""
	s.notify()
}

// SaveCustomPreset stores the active sounds as a new custom preset
// Returns false without changes when no sound is active
func (s *Store) SaveCustomPreset(name, description string) (catalog.Preset, bool) {
	if s.destroyed {
		return catalog.Preset{}, false
	}

	var sounds []catalog.PresetSound
	for _, id := range s.order {
		st := s.sounds[id]
		if st.Active {
			sounds = append(sounds, catalog.PresetSound{ID: id, Volume: st.Volume})
		}
	}
	if len(sounds) == 0 {
		return catalog.Preset{}, false
	}

	p := catalog.Preset{
		ID:          s.newPresetID(),
		Name:        name,
		Description: description,
		Sounds:      sounds,
	}
	s.custom = append(s.custom, p)

	s.notify()
	return p.Clone(), true
}

// newPresetID derives an ID from the clock, bumping the millisecond until unused
func (s *Store) newPresetID() string {
	ms := s.now().UnixMilli()
	for {
		id := fmt.Sprintf("%s%d", constant.CustomPresetPrefix, ms)
		if _, taken := s.findPreset(id); !taken {
			return id
		}
		ms++
	}
}

// DeleteCustomPreset removes a custom preset, clearing it as current if needed
// Built-in presets cannot be deleted
func (s *Store) DeleteCustomPreset(id string) bool {
	if s.destroyed {
		return false
	}

	i := slices.IndexFunc(s.custom, func(p catalog.Preset) bool { return p.ID == id })
	if i < 0 {
		return false
	}
	s.custom = slices.Delete(s.custom, i, i+1)
	if s.current == id {
		s.current = ""
	}

	s.notify()
	return true
}
