package ui

import (
	"github.com/lixenwraith/ambience/catalog"
	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/mixer"
)

// View is the display state a panel renders
type View struct {
	Sounds        []mixer.SoundView
	Master        float64
	Playing       bool
	CurrentPreset string
	Presets       []catalog.Preset // Built-in then custom
	Custom        map[string]bool  // IDs of custom presets
	Synced        bool             // False until a secondary panel has received state
}

// StoreView reads the display state of a store owned by the caller's goroutine
func StoreView(s *mixer.Store) View {
	v := View{
		Sounds:        s.Sounds(),
		Master:        s.MasterVolume(),
		Playing:       s.IsPlaying(),
		CurrentPreset: s.CurrentPreset(),
		Presets:       s.AllPresets(),
		Synced:        true,
	}
	v.Custom = customIDs(s.CustomPresets())
	return v
}

// SnapshotView builds the display state from a relayed snapshot
// Sounds follow catalog order; sounds missing from the snapshot show defaults
func SnapshotView(snap mixer.Snapshot, sounds []catalog.Sound) View {
	v := View{
		Sounds:        make([]mixer.SoundView, 0, len(sounds)),
		Master:        snap.MasterVolume,
		Playing:       snap.IsPlaying,
		CurrentPreset: snap.CurrentPreset,
		Presets:       append(catalog.BuiltinPresets(), snap.CustomPresets...),
		Custom:        customIDs(snap.CustomPresets),
		Synced:        true,
	}

	for _, s := range sounds {
		st, ok := snap.Sounds[s.ID]
		if !ok {
			st = mixer.SoundSnapshot{Volume: constant.DefaultSoundVolume}
		}
		v.Sounds = append(v.Sounds, mixer.SoundView{
			ID:       s.ID,
			Label:    s.Label,
			Category: s.Category,
			Active:   st.IsActive,
			Volume:   st.Volume,
			Playing:  st.IsActive && snap.IsPlaying,
		})
	}
	return v
}

func customIDs(presets []catalog.Preset) map[string]bool {
	ids := make(map[string]bool, len(presets))
	for _, p := range presets {
		ids[p.ID] = true
	}
	return ids
}

// presetName returns the display name of the current preset
func (v View) presetName() string {
	if v.CurrentPreset == "" {
		return ""
	}
	for _, p := range v.Presets {
		if p.ID == v.CurrentPreset {
			return p.Name
		}
	}
	return v.CurrentPreset
}

func (v View) activeCount() int {
	n := 0
	for _, s := range v.Sounds {
		if s.Active {
			n++
		}
	}
	return n
}
