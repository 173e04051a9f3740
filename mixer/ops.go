package mixer

// ToggleSound flips a sound on or off and clears the current preset
// Deactivation pauses the player and keeps it loaded for a quick re-toggle
func (s *Store) ToggleSound(id string) {
	st, ok := s.sounds[id]
	if !ok || s.destroyed {
		return
	}

	if st.Active {
		st.Active = false
		if st.player != nil {
			st.player.Pause()
		}
	} else {
		st.Active = true
		p, created := s.ensurePlayer(id)
		if !created {
			// Master changes skip inactive sounds, so the player may hold a stale level
			p.SetVolume(s.effective(st))
		}
		if s.playing {
			p.Play()
		}
	}

	s.current = ""
	s.notify()
}

// SetSoundVolume stores a clamped volume and pushes the effective level to an existing player
func (s *Store) SetSoundVolume(id string, v float64) {
	st, ok := s.sounds[id]
	if !ok || s.destroyed {
		return
	}

	st.Volume = clamp(v)
	if st.player != nil {
		st.player.SetVolume(s.effective(st))
	}

	s.current = ""
	s.notify()
}

// SetMasterVolume stores a clamped master volume and pushes new levels to active sounds only
// The current preset is kept: master volume is orthogonal to the mix identity
func (s *Store) SetMasterVolume(v float64) {
	if s.destroyed {
		return
	}

	s.master = clamp(v)
	for _, id := range s.order {
		st := s.sounds[id]
		if st.Active && st.player != nil {
			st.player.SetVolume(s.effective(st))
		}
	}

	s.notify()
}

// TogglePlayPause flips the global play switch and resumes or pauses every active sound
func (s *Store) TogglePlayPause() {
	if s.destroyed {
		return
	}

	s.playing = !s.playing
	for _, id := range s.order {
		st := s.sounds[id]
		if !st.Active || st.player == nil {
			continue
		}
		if s.playing {
			st.player.Play()
		} else {
			st.player.Pause()
		}
	}

	s.notify()
}

// StopAll deactivates every sound and rewinds its player
func (s *Store) StopAll() {
	if s.destroyed {
		return
	}

	s.stopAll()
	s.notify()
}
