package constant

// Mixer Defaults
const (
	DefaultMasterVolume = 0.7
	DefaultSoundVolume  = 0.5
	DefaultIsPlaying    = true
)

// Shuffle Bounds
const (
	ShuffleMinSounds = 3
	ShuffleMaxSounds = 4
	ShuffleMinVolume = 0.3
	ShuffleMaxVolume = 0.9
)

// Custom Presets
const (
	CustomPresetPrefix = "custom-"
)

// Panel Controls
const (
	// VolumeStep is the increment applied by a single volume key press
	VolumeStep = 0.05
)
