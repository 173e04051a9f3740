package mixer

import (
	"encoding/json"

	"github.com/lixenwraith/ambience/catalog"
	"github.com/lixenwraith/ambience/constant"
)

// SoundSnapshot is the persisted state of one sound
type SoundSnapshot struct {
	IsActive bool    `json:"isActive"`
	Volume   float64 `json:"volume"`
}

// Snapshot is the serializable mixer state; players are never included
// CurrentPreset "" is encoded as null
type Snapshot struct {
	Sounds        map[string]SoundSnapshot
	MasterVolume  float64
	IsPlaying     bool
	CurrentPreset string
	CustomPresets []catalog.Preset
}

// DefaultSnapshot returns the state of a freshly constructed store with no sounds listed
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Sounds:        map[string]SoundSnapshot{},
		MasterVolume:  constant.DefaultMasterVolume,
		IsPlaying:     constant.DefaultIsPlaying,
		CustomPresets: []catalog.Preset{},
	}
}

// ActiveCount returns the number of active sounds in the snapshot
func (snap Snapshot) ActiveCount() int {
	n := 0
	for _, ss := range snap.Sounds {
		if ss.IsActive {
			n++
		}
	}
	return n
}

type snapshotJSON struct {
	Sounds        map[string]SoundSnapshot `json:"sounds"`
	MasterVolume  float64                  `json:"masterVolume"`
	IsPlaying     bool                     `json:"isPlaying"`
	CurrentPreset *string                  `json:"currentPreset"`
	CustomPresets []catalog.Preset         `json:"customPresets"`
}

// MarshalJSON implements json.Marshaler
func (snap Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{
		Sounds:        snap.Sounds,
		MasterVolume:  snap.MasterVolume,
		IsPlaying:     snap.IsPlaying,
		CustomPresets: snap.CustomPresets,
	}
	if out.Sounds == nil {
		out.Sounds = map[string]SoundSnapshot{}
	}
	if out.CustomPresets == nil {
		out.CustomPresets = []catalog.Preset{}
	}
	if snap.CurrentPreset != "" {
		cp := snap.CurrentPreset
		out.CurrentPreset = &cp
	}
	return json.Marshal(out)
}

// Absent fields are detected through pointers so they keep defaults
type soundWire struct {
	IsActive *bool    `json:"isActive"`
	Volume   *float64 `json:"volume"`
}

type snapshotWire struct {
	Sounds        map[string]soundWire `json:"sounds"`
	MasterVolume  *float64             `json:"masterVolume"`
	IsPlaying     *bool                `json:"isPlaying"`
	CurrentPreset *string              `json:"currentPreset"`
	CustomPresets []catalog.Preset     `json:"customPresets"`
}

// UnmarshalJSON implements json.Unmarshaler
// Missing keys fall back to defaults and unknown keys are ignored
func (snap *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotWire
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	out := DefaultSnapshot()
	for id, sw := range in.Sounds {
		ss := SoundSnapshot{Volume: constant.DefaultSoundVolume}
		if sw.IsActive != nil {
			ss.IsActive = *sw.IsActive
		}
		if sw.Volume != nil {
			ss.Volume = *sw.Volume
		}
		out.Sounds[id] = ss
	}
	if in.MasterVolume != nil {
		out.MasterVolume = *in.MasterVolume
	}
	if in.IsPlaying != nil {
		out.IsPlaying = *in.IsPlaying
	}
	if in.CurrentPreset != nil {
		out.CurrentPreset = *in.CurrentPreset
	}
	if in.CustomPresets != nil {
		out.CustomPresets = in.CustomPresets
	}

	*snap = out
	return nil
}

// Snapshot returns the serializable state of the store
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Sounds:        make(map[string]SoundSnapshot, len(s.order)),
		MasterVolume:  s.master,
		IsPlaying:     s.playing,
		CurrentPreset: s.current,
		CustomPresets: clonePresets(s.custom),
	}
	for _, id := range s.order {
		st := s.sounds[id]
		snap.Sounds[id] = SoundSnapshot{IsActive: st.Active, Volume: st.Volume}
	}
	return snap
}

// Restore replaces the store state with snap
// Master volume and the play switch are applied before sounds are reactivated
// Sounds missing from snap reset to inactive at the default volume, unknown IDs are ignored
func (s *Store) Restore(snap Snapshot) {
	if s.destroyed {
		return
	}

	s.master = clamp(snap.MasterVolume)
	s.playing = snap.IsPlaying

	for _, id := range s.order {
		st := s.sounds[id]
		ss, ok := snap.Sounds[id]
		if !ok {
			ss = SoundSnapshot{Volume: constant.DefaultSoundVolume}
		}

		wasActive := st.Active
		st.Active = ss.IsActive
		st.Volume = clamp(ss.Volume)

		if !st.Active {
			if wasActive && st.player != nil {
				st.player.Pause()
			}
			continue
		}

		p, created := s.ensurePlayer(id)
		if !created {
			p.SetVolume(s.effective(st))
		}
		if s.playing {
			p.Play()
		} else {
			p.Pause()
		}
	}

	s.current = snap.CurrentPreset
	s.custom = s.custom[:0]
	for _, p := range snap.CustomPresets {
		if p.ID == "" {
			continue
		}
		s.custom = append(s.custom, p.Clone())
	}

	s.notify()
}
