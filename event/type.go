package event

// CommandType identifies a mixer command relayed from another surface
type CommandType int

const (
	// CommandToggleSound flips one sound on or off
	// Trigger: Secondary panel | Fields: SoundID
	CommandToggleSound CommandType = iota

	// CommandSetSoundVolume changes one sound's volume
	// Trigger: Secondary panel | Fields: SoundID, Volume
	CommandSetSoundVolume

	// CommandSetMasterVolume changes the mix-wide volume
	// Trigger: Secondary panel | Fields: Volume
	CommandSetMasterVolume

	// CommandTogglePlayPause flips the global play switch
	// Trigger: Secondary panel, tray | Fields: none
	CommandTogglePlayPause

	// CommandLoadPreset applies a built-in or custom preset
	// Trigger: Secondary panel | Fields: PresetID
	CommandLoadPreset

	// CommandShuffle replaces the mix with random sounds
	// Trigger: Secondary panel | Fields: none
	CommandShuffle

	// CommandStopAll deactivates every sound
	// Trigger: Secondary panel | Fields: none
	CommandStopAll

	// CommandRequestState asks the owner to broadcast its snapshot
	// Trigger: Secondary panel open | Fields: none
	CommandRequestState
)

var commandNames = map[CommandType]string{
	CommandToggleSound:     "toggle-sound",
	CommandSetSoundVolume:  "set-sound-volume",
	CommandSetMasterVolume: "set-master-volume",
	CommandTogglePlayPause: "toggle-play-pause",
	CommandLoadPreset:      "load-preset",
	CommandShuffle:         "shuffle",
	CommandStopAll:         "stop-all",
	CommandRequestState:    "request-state",
}

// String returns the command name used in logs
func (t CommandType) String() string {
	if name, ok := commandNames[t]; ok {
		return name
	}
	return "unknown"
}

// Command is one queued mixer instruction
// Sender identifies the originating surface for logs only
type Command struct {
	Type     CommandType
	SoundID  string
	PresetID string
	Volume   float64
	Sender   string
}
