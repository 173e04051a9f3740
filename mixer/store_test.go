package mixer

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/ambience/catalog"
	"github.com/lixenwraith/ambience/constant"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func src(id string) string {
	s, ok := catalog.Lookup(id)
	if !ok {
		panic("unknown sound " + id)
	}
	return s.Source
}

func rainyCafe(t *testing.T) catalog.Preset {
	t.Helper()
	p, ok := catalog.LookupPreset("rainy-cafe")
	if !ok {
		t.Fatal("rainy-cafe preset missing")
	}
	return p
}

func activeSet(snap Snapshot) map[string]float64 {
	out := make(map[string]float64)
	for id, ss := range snap.Sounds {
		if ss.IsActive {
			out[id] = ss.Volume
		}
	}
	return out
}

// TestStoreDefaults verifies a new store starts with every sound inactive
func TestStoreDefaults(t *testing.T) {
	e := newFakeEngine()
	s := New(e)

	if s.MasterVolume() != constant.DefaultMasterVolume {
		t.Errorf("Expected master %f, got %f", constant.DefaultMasterVolume, s.MasterVolume())
	}
	if !s.IsPlaying() {
		t.Error("Expected store to start playing")
	}
	if s.CurrentPreset() != "" {
		t.Errorf("Expected no current preset, got %q", s.CurrentPreset())
	}
	if s.ActiveSoundCount() != 0 {
		t.Errorf("Expected 0 active sounds, got %d", s.ActiveSoundCount())
	}

	views := s.Sounds()
	if len(views) != len(catalog.All()) {
		t.Fatalf("Expected %d sounds, got %d", len(catalog.All()), len(views))
	}
	for _, v := range views {
		if v.Active || v.Volume != constant.DefaultSoundVolume {
			t.Errorf("Sound %s: expected inactive at default volume, got %+v", v.ID, v)
		}
	}

	// No player is created until first activation
	for _, snd := range catalog.All() {
		if e.opened(snd.Source) != 0 {
			t.Errorf("Expected no handle for %s before activation", snd.ID)
		}
	}
}

// TestToggleSoundTwice verifies a double toggle restores state and pauses without destroying
func TestToggleSoundTwice(t *testing.T) {
	e := newFakeEngine()
	s := New(e)

	s.ToggleSound("river")
	h := e.handle(src("river"))
	if h == nil {
		t.Fatal("Expected player to be created on activation")
	}
	if !h.Playing() {
		t.Error("Expected river to play while globally playing")
	}
	if !approx(h.opts.Volume, 0.5*0.7) {
		t.Errorf("Expected player created at effective volume 0.35, got %f", h.opts.Volume)
	}

	s.ToggleSound("river")
	v, _ := s.Sound("river")
	if v.Active {
		t.Error("Expected river inactive after second toggle")
	}
	if h.Playing() {
		t.Error("Expected player paused")
	}
	if h.unloaded {
		t.Error("Expected player kept loaded after deactivation")
	}

	s.ToggleSound("river")
	if e.opened(src("river")) != 1 {
		t.Errorf("Expected player reuse on re-toggle, opened %d", e.opened(src("river")))
	}
}

// TestToggleWhilePaused verifies activation respects the global play switch
func TestToggleWhilePaused(t *testing.T) {
	e := newFakeEngine()
	s := New(e)

	s.TogglePlayPause()
	s.ToggleSound("waves")

	h := e.handle(src("waves"))
	if h == nil {
		t.Fatal("Expected player to be created")
	}
	if h.Playing() {
		t.Error("Expected no playback while globally paused")
	}

	s.TogglePlayPause()
	if !h.Playing() {
		t.Error("Expected playback after resume")
	}
}

// TestUnknownIDsAreNoOps verifies lookups that miss change nothing
func TestUnknownIDsAreNoOps(t *testing.T) {
	e := newFakeEngine()
	s := New(e)
	s.LoadPreset(rainyCafe(t))

	notified := 0
	s.Subscribe(func(Snapshot) { notified++ })
	before := s.Snapshot()

	s.ToggleSound("nope")
	s.SetSoundVolume("nope", 0.9)
	if s.LoadPresetByID("nope") {
		t.Error("Expected unknown preset load to report false")
	}
	if s.DeleteCustomPreset("nope") {
		t.Error("Expected unknown preset delete to report false")
	}

	if notified != 0 {
		t.Errorf("Expected no notifications, got %d", notified)
	}
	if s.CurrentPreset() != before.CurrentPreset {
		t.Error("Expected current preset unchanged")
	}
}

// TestVolumeClamping verifies out-of-range volumes are clamped
func TestVolumeClamping(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -1, 0},
		{"above one", 2.5, 1},
		{"in range", 0.42, 0.42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(newFakeEngine())

			s.SetSoundVolume("clock", tt.in)
			if v, _ := s.Sound("clock"); v.Volume != tt.want {
				t.Errorf("Sound volume: expected %f, got %f", tt.want, v.Volume)
			}

			s.SetMasterVolume(tt.in)
			if s.MasterVolume() != tt.want {
				t.Errorf("Master volume: expected %f, got %f", tt.want, s.MasterVolume())
			}
		})
	}
}

// TestEffectiveVolumePushedOnce verifies each volume change reaches an active player exactly once
func TestEffectiveVolumePushedOnce(t *testing.T) {
	volumes := []float64{0, 0.25, 0.5, 0.8, 1}
	masters := []float64{0, 0.3, 0.7, 1}

	for _, v := range volumes {
		for _, m := range masters {
			e := newFakeEngine()
			s := New(e)

			s.ToggleSound("birds")
			s.ToggleSound("crickets")
			s.ToggleSound("crickets") // inactive but holds a player
			birds, crickets := e.handle(src("birds")), e.handle(src("crickets"))
			birds.takePushes()
			crickets.takePushes()

			s.SetSoundVolume("birds", v)
			if p := birds.takePushes(); len(p) != 1 || !approx(p[0], v*constant.DefaultMasterVolume) {
				t.Errorf("v=%f: expected one push of %f after sound volume, got %v", v, v*constant.DefaultMasterVolume, p)
			}

			s.SetMasterVolume(m)
			if p := birds.takePushes(); len(p) != 1 || !approx(p[0], v*m) {
				t.Errorf("v=%f m=%f: expected one push of %f after master volume, got %v", v, m, v*m, p)
			}
			if p := crickets.takePushes(); len(p) != 0 {
				t.Errorf("Expected no pushes to inactive sound, got %v", p)
			}
		}
	}
}

// TestReactivationUsesCurrentMaster verifies a sound skipped by a master change catches up on activation
func TestReactivationUsesCurrentMaster(t *testing.T) {
	e := newFakeEngine()
	s := New(e)

	s.ToggleSound("clock")
	s.ToggleSound("clock")
	s.SetMasterVolume(0.2)
	s.ToggleSound("clock")

	h := e.handle(src("clock"))
	if !approx(h.Volume(), 0.5*0.2) {
		t.Errorf("Expected effective volume 0.1, got %f", h.Volume())
	}
}

// TestSetSoundVolumeInactiveWithoutPlayer verifies no player is created by a volume change
func TestSetSoundVolumeInactiveWithoutPlayer(t *testing.T) {
	e := newFakeEngine()
	s := New(e)

	s.SetSoundVolume("typewriter", 0.9)
	if e.opened(src("typewriter")) != 0 {
		t.Error("Expected no player for a volume change on an untouched sound")
	}

	s.ToggleSound("typewriter")
	h := e.handle(src("typewriter"))
	if !approx(h.opts.Volume, 0.9*0.7) {
		t.Errorf("Expected player created at 0.63, got %f", h.opts.Volume)
	}
}

// TestTogglePlayPause verifies only active sounds follow the global switch
func TestTogglePlayPause(t *testing.T) {
	e := newFakeEngine()
	s := New(e)

	s.ToggleSound("cafe")
	s.ToggleSound("library")
	s.ToggleSound("library")
	cafe, library := e.handle(src("cafe")), e.handle(src("library"))

	s.TogglePlayPause()
	if s.IsPlaying() || cafe.Playing() {
		t.Error("Expected everything paused")
	}

	s.TogglePlayPause()
	if !s.IsPlaying() || !cafe.Playing() {
		t.Error("Expected active sound resumed")
	}
	if library.Playing() {
		t.Error("Expected inactive sound to stay paused")
	}
	if v, _ := s.Sound("cafe"); !v.Active || v.Volume != 0.5 {
		t.Errorf("Expected play/pause to leave activity and volume untouched, got %+v", v)
	}
}

// TestStopAll verifies every sound is deactivated and rewound
func TestStopAll(t *testing.T) {
	e := newFakeEngine()
	s := New(e)

	s.LoadPreset(rainyCafe(t))
	s.ToggleSound("river")
	s.StopAll()

	if s.ActiveSoundCount() != 0 {
		t.Errorf("Expected 0 active sounds, got %d", s.ActiveSoundCount())
	}
	if s.CurrentPreset() != "" {
		t.Error("Expected current preset cleared")
	}
	for _, id := range []string{"cafe", "light-rain", "keyboard", "river"} {
		h := e.handle(src(id))
		if h.Playing() || h.stops == 0 {
			t.Errorf("Expected %s stopped, playing=%v stops=%d", id, h.Playing(), h.stops)
		}
	}

	// From defaults too
	s2 := New(newFakeEngine())
	s2.StopAll()
	if s2.ActiveSoundCount() != 0 {
		t.Error("Expected 0 active sounds from defaults")
	}
}

// TestLoadPresetSnapshot verifies the resulting active set equals the preset exactly
func TestLoadPresetSnapshot(t *testing.T) {
	for _, p := range catalog.BuiltinPresets() {
		t.Run(p.ID, func(t *testing.T) {
			s := New(newFakeEngine())

			// Start from an unrelated mix
			s.ToggleSound("white-noise")
			s.SetSoundVolume("waterfall", 0.1)

			s.LoadPreset(p)
			snap := s.Snapshot()

			got := activeSet(snap)
			if len(got) != len(p.Sounds) {
				t.Fatalf("Expected %d active sounds, got %v", len(p.Sounds), got)
			}
			for _, ps := range p.Sounds {
				if vol, ok := got[ps.ID]; !ok || vol != ps.Volume {
					t.Errorf("Expected %s active at %f, got %v (active=%v)", ps.ID, ps.Volume, vol, ok)
				}
			}
			if snap.CurrentPreset != p.ID {
				t.Errorf("Expected current preset %s, got %s", p.ID, snap.CurrentPreset)
			}
		})
	}
}

// TestLoadPresetReusesPlayers verifies an existing player gets one volume push and no reopen
func TestLoadPresetReusesPlayers(t *testing.T) {
	e := newFakeEngine()
	s := New(e)

	s.ToggleSound("cafe")
	cafe := e.handle(src("cafe"))
	cafe.takePushes()

	s.LoadPreset(rainyCafe(t))

	if e.opened(src("cafe")) != 1 {
		t.Errorf("Expected cafe player reused, opened %d", e.opened(src("cafe")))
	}
	if p := cafe.takePushes(); len(p) != 1 || !approx(p[0], 0.7*0.7) {
		t.Errorf("Expected one push of 0.49, got %v", p)
	}
	if !cafe.Playing() {
		t.Error("Expected cafe playing")
	}

	light := e.handle(src("light-rain"))
	if !approx(light.opts.Volume, 0.5*0.7) || len(light.takePushes()) != 0 {
		t.Error("Expected new player created at effective volume without extra pushes")
	}
}

// TestLoadPresetSkipsUnknownSounds verifies foreign IDs in a preset are ignored
func TestLoadPresetSkipsUnknownSounds(t *testing.T) {
	s := New(newFakeEngine())
	s.LoadPreset(catalog.Preset{
		ID: "mixed",
		Sounds: []catalog.PresetSound{
			{ID: "ghost", Volume: 0.5},
			{ID: "river", Volume: 1.4},
		},
	})

	got := activeSet(s.Snapshot())
	if len(got) != 1 || got["river"] != 1 {
		t.Errorf("Expected only river at clamped 1.0, got %v", got)
	}
	if s.CurrentPreset() != "mixed" {
		t.Errorf("Expected current preset mixed, got %s", s.CurrentPreset())
	}
}

// TestLoadPresetPartialFailure verifies a failing track does not abort the preset
func TestLoadPresetPartialFailure(t *testing.T) {
	e := newFakeEngine()
	loadErr := errors.New("corrupt file")
	e.failOnLoad[src("light-rain")] = loadErr

	var failedID string
	var gotErr error
	s := New(e, WithLoadErrorHandler(func(id string, err error) {
		failedID, gotErr = id, err
	}))

	s.LoadPreset(rainyCafe(t))

	if failedID != "light-rain" || !errors.Is(gotErr, loadErr) {
		t.Errorf("Expected light-rain load error, got %s %v", failedID, gotErr)
	}
	if !e.handle(src("cafe")).Playing() || !e.handle(src("keyboard")).Playing() {
		t.Error("Expected other preset sounds to keep playing")
	}
	if v, _ := s.Sound("light-rain"); v.Loaded || v.Playing {
		t.Errorf("Expected failed sound inert, got %+v", v)
	}
	if s.CurrentPreset() != "rainy-cafe" {
		t.Error("Expected preset recorded despite partial failure")
	}
}

// TestLoadPresetByID verifies built-in and custom lookup
func TestLoadPresetByID(t *testing.T) {
	s := New(newFakeEngine(), WithClock(func() time.Time { return time.UnixMilli(1700000000000) }))

	if !s.LoadPresetByID("forest-walk") {
		t.Fatal("Expected built-in preset to load")
	}
	p, ok := s.SaveCustomPreset("Mine", "")
	if !ok {
		t.Fatal("Expected custom preset saved")
	}

	s.StopAll()
	if !s.LoadPresetByID(p.ID) {
		t.Fatal("Expected custom preset to load")
	}
	if s.CurrentPreset() != p.ID || s.ActiveSoundCount() != 2 {
		t.Errorf("Expected custom preset active with 2 sounds, got %s/%d", s.CurrentPreset(), s.ActiveSoundCount())
	}
}

// TestShuffle verifies count, distinctness and volume range
func TestShuffle(t *testing.T) {
	e := newFakeEngine()
	s := New(e)
	s.LoadPreset(rainyCafe(t))

	counts := map[int]int{}
	for i := 0; i < 200; i++ {
		s.Shuffle()

		got := activeSet(s.Snapshot())
		n := len(got)
		counts[n]++
		if n < constant.ShuffleMinSounds || n > constant.ShuffleMaxSounds {
			t.Fatalf("Expected 3 or 4 sounds, got %d", n)
		}
		if s.ActiveSoundCount() != n {
			t.Fatalf("Expected active count %d, got %d", n, s.ActiveSoundCount())
		}
		for id, vol := range got {
			if vol < constant.ShuffleMinVolume || vol > constant.ShuffleMaxVolume {
				t.Errorf("Sound %s volume %f outside shuffle range", id, vol)
			}
			if !e.handle(src(id)).Playing() {
				t.Errorf("Expected shuffled sound %s playing", id)
			}
		}
		if s.CurrentPreset() != "" {
			t.Error("Expected shuffle to clear current preset")
		}
	}

	if counts[3] == 0 || counts[4] == 0 {
		t.Errorf("Expected both 3 and 4 sound mixes over 200 shuffles, got %v", counts)
	}
}

// TestShuffleSmallCatalog verifies shuffle terminates when the catalog is smaller than the draw
func TestShuffleSmallCatalog(t *testing.T) {
	sounds := catalog.All()[:2]
	s := New(newFakeEngine(), WithSounds(sounds))

	s.Shuffle()
	if s.ActiveSoundCount() != 2 {
		t.Errorf("Expected both sounds active, got %d", s.ActiveSoundCount())
	}
}

// TestShuffleDeterministic verifies the draw through injected randomness
func TestShuffleDeterministic(t *testing.T) {
	s := New(newFakeEngine())

	// Count draw picks 4, then indices with one duplicate to exercise rejection
	draws := []int{1, 0, 0, 5, 10, 21}
	s.intN = func(n int) int {
		v := draws[0]
		draws = draws[1:]
		return v
	}
	s.float = func() float64 { return 0.5 }

	s.Shuffle()

	all := catalog.All()
	got := activeSet(s.Snapshot())
	want := []string{all[0].ID, all[5].ID, all[10].ID, all[21].ID}
	if len(got) != 4 {
		t.Fatalf("Expected 4 sounds, got %v", got)
	}
	for _, id := range want {
		if !approx(got[id], 0.6) {
			t.Errorf("Expected %s at 0.6, got %v", id, got[id])
		}
	}
}

// TestSaveCustomPreset verifies ID derivation, contents and the empty-mix no-op
func TestSaveCustomPreset(t *testing.T) {
	now := time.UnixMilli(1712345678901)
	s := New(newFakeEngine(), WithClock(func() time.Time { return now }))

	if _, ok := s.SaveCustomPreset("Empty", ""); ok {
		t.Error("Expected save with no active sounds to be rejected")
	}
	if len(s.CustomPresets()) != 0 {
		t.Fatal("Expected custom presets unchanged")
	}

	s.ToggleSound("river")
	s.SetSoundVolume("river", 0.8)
	s.ToggleSound("birds")

	p1, ok := s.SaveCustomPreset("Morning", "river and birds")
	if !ok {
		t.Fatal("Expected preset saved")
	}
	if p1.ID != "custom-1712345678901" {
		t.Errorf("Expected time-derived ID, got %s", p1.ID)
	}
	if p1.Name != "Morning" || p1.Description != "river and birds" {
		t.Errorf("Unexpected preset metadata %+v", p1)
	}
	want := []catalog.PresetSound{{ID: "river", Volume: 0.8}, {ID: "birds", Volume: 0.5}}
	if len(p1.Sounds) != len(want) {
		t.Fatalf("Expected %v, got %v", want, p1.Sounds)
	}
	for i := range want {
		if p1.Sounds[i] != want[i] {
			t.Errorf("Sound %d: expected %v, got %v", i, want[i], p1.Sounds[i])
		}
	}

	// Same millisecond bumps the ID
	p2, _ := s.SaveCustomPreset("Again", "")
	if p2.ID != "custom-1712345678902" {
		t.Errorf("Expected bumped ID, got %s", p2.ID)
	}

	all := s.AllPresets()
	builtin := catalog.BuiltinPresets()
	if len(all) != len(builtin)+2 || all[len(builtin)].ID != p1.ID {
		t.Errorf("Expected built-in presets followed by custom, got %d presets", len(all))
	}
}

// TestDeleteCustomPreset verifies removal and current preset clearing
func TestDeleteCustomPreset(t *testing.T) {
	s := New(newFakeEngine())
	s.ToggleSound("clock")
	p, _ := s.SaveCustomPreset("Tick", "")

	s.LoadPreset(p)
	if s.CurrentPreset() != p.ID {
		t.Fatal("Expected custom preset current")
	}

	if !s.DeleteCustomPreset(p.ID) {
		t.Fatal("Expected delete to succeed")
	}
	if s.CurrentPreset() != "" {
		t.Error("Expected current preset cleared after delete")
	}
	if len(s.CustomPresets()) != 0 {
		t.Error("Expected no custom presets")
	}

	if s.DeleteCustomPreset("rainy-cafe") {
		t.Error("Expected built-in preset delete to be refused")
	}
}

// TestRoundTrip verifies restore reproduces the observable state
func TestRoundTrip(t *testing.T) {
	e := newFakeEngine()
	s := New(e)
	s.LoadPreset(rainyCafe(t))
	s.SetSoundVolume("keyboard", 0.15)
	s.ToggleSound("heavy-rain")
	s.SetMasterVolume(0.4)
	s.SaveCustomPreset("Saved", "desc")
	s.TogglePlayPause()
	snap := s.Snapshot()

	// Through JSON like the persistence bridge
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	e2 := newFakeEngine()
	s2 := New(e2)
	s2.Restore(decoded)
	got := s2.Snapshot()

	if len(got.Sounds) != len(snap.Sounds) {
		t.Fatalf("Expected %d sounds, got %d", len(snap.Sounds), len(got.Sounds))
	}
	for id, want := range snap.Sounds {
		if got.Sounds[id] != want {
			t.Errorf("Sound %s: expected %+v, got %+v", id, want, got.Sounds[id])
		}
	}
	if got.MasterVolume != 0.4 || got.IsPlaying || got.CurrentPreset != "" {
		t.Errorf("Unexpected globals %+v", got)
	}
	if len(got.CustomPresets) != 1 || got.CustomPresets[0].Name != "Saved" {
		t.Errorf("Expected custom preset restored, got %v", got.CustomPresets)
	}

	// Restored paused: players exist at the effective volume but are silent
	h := e2.handle(src("cafe"))
	if h == nil || h.Playing() {
		t.Fatal("Expected cafe player created and paused")
	}
	if !approx(h.opts.Volume, 0.7*0.4) {
		t.Errorf("Expected master applied before reactivation, got %f", h.opts.Volume)
	}
}

// TestRestoreOntoExistingMix verifies sounds absent from the snapshot are reset
func TestRestoreOntoExistingMix(t *testing.T) {
	e := newFakeEngine()
	s := New(e)
	s.ToggleSound("waves")
	s.SetSoundVolume("waves", 0.9)

	snap := DefaultSnapshot()
	snap.Sounds["river"] = SoundSnapshot{IsActive: true, Volume: 0.3}
	snap.CurrentPreset = "forest-walk"
	s.Restore(snap)

	if v, _ := s.Sound("waves"); v.Active || v.Volume != constant.DefaultSoundVolume {
		t.Errorf("Expected waves reset, got %+v", v)
	}
	if e.handle(src("waves")).Playing() {
		t.Error("Expected waves paused")
	}
	if !e.handle(src("river")).Playing() {
		t.Error("Expected river playing")
	}
	if s.CurrentPreset() != "forest-walk" {
		t.Errorf("Expected current preset restored, got %s", s.CurrentPreset())
	}
}

// TestSubscribe verifies one notification per operation and unsubscribe
func TestSubscribe(t *testing.T) {
	s := New(newFakeEngine())

	var snaps []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) { snaps = append(snaps, snap) })

	s.LoadPreset(rainyCafe(t))
	s.Shuffle()
	s.SetMasterVolume(0.2)
	s.StopAll()

	if len(snaps) != 4 {
		t.Fatalf("Expected 4 notifications, got %d", len(snaps))
	}
	if snaps[0].CurrentPreset != "rainy-cafe" || snaps[0].ActiveCount() != 3 {
		t.Errorf("Expected first notification after preset, got %+v", snaps[0])
	}
	if snaps[2].MasterVolume != 0.2 {
		t.Errorf("Expected master 0.2 in third notification, got %f", snaps[2].MasterVolume)
	}

	unsubscribe()
	s.ToggleSound("river")
	if len(snaps) != 4 {
		t.Error("Expected no notification after unsubscribe")
	}
}

// TestDestroy verifies players are released and the store goes inert
func TestDestroy(t *testing.T) {
	e := newFakeEngine()
	s := New(e)
	s.LoadPreset(rainyCafe(t))
	s.Destroy()

	for _, id := range []string{"cafe", "light-rain", "keyboard"} {
		if !e.handle(src(id)).unloaded {
			t.Errorf("Expected %s unloaded", id)
		}
	}

	s.ToggleSound("river")
	s.Shuffle()
	if e.opened(src("river")) != 0 {
		t.Error("Expected no players after Destroy")
	}
	s.Destroy()
}

// TestRainyCafeScenario walks the preset, master change and manual toggle sequence
func TestRainyCafeScenario(t *testing.T) {
	e := newFakeEngine()
	s := New(e)

	s.LoadPreset(rainyCafe(t))

	got := activeSet(s.Snapshot())
	want := map[string]float64{"cafe": 0.7, "light-rain": 0.5, "keyboard": 0.3}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for id, vol := range want {
		if got[id] != vol {
			t.Errorf("Expected %s at %f, got %f", id, vol, got[id])
		}
	}
	if s.CurrentPreset() != "rainy-cafe" {
		t.Fatalf("Expected rainy-cafe current, got %q", s.CurrentPreset())
	}

	cafe := e.handle(src("cafe"))
	cafe.takePushes()
	s.SetMasterVolume(0.5)
	if p := cafe.takePushes(); len(p) != 1 || !approx(p[0], 0.35) {
		t.Errorf("Expected cafe pushed 0.35, got %v", p)
	}
	if s.CurrentPreset() != "rainy-cafe" {
		t.Error("Expected master change to keep current preset")
	}

	s.ToggleSound("cafe")
	if v, _ := s.Sound("cafe"); v.Active {
		t.Error("Expected cafe inactive")
	}
	if s.CurrentPreset() != "" {
		t.Error("Expected toggle to clear current preset")
	}
}
