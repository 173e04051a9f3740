package audio

import (
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/ambience/constant"
)

// AudioConfig holds engine and mixer startup settings
type AudioConfig struct {
	Enabled      bool
	SampleRate   int
	BufferSize   time.Duration
	SoundsDir    string
	MasterVolume float64
}

// DefaultAudioConfig returns the configuration used when no overrides are set
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		SampleRate:   constant.AudioSampleRate,
		BufferSize:   constant.AudioBufferDelay,
		SoundsDir:    "assets/sounds",
		MasterVolume: constant.DefaultMasterVolume,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("AMBIENCE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is given as 0-100
	if volume := os.Getenv("AMBIENCE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("AMBIENCE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if bufferMs := os.Getenv("AMBIENCE_BUFFER_MS"); bufferMs != "" {
		if val, err := strconv.Atoi(bufferMs); err == nil && val > 0 {
			cfg.BufferSize = time.Duration(val) * time.Millisecond
		}
	}

	if dir := os.Getenv("AMBIENCE_SOUNDS_DIR"); dir != "" {
		cfg.SoundsDir = dir
	}

	return cfg
}
