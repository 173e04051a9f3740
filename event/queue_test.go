package event

import (
	"fmt"
	"sync"
	"testing"

	"github.com/lixenwraith/ambience/constant"
)

// TestCommandQueueFIFO verifies commands come out in push order
func TestCommandQueueFIFO(t *testing.T) {
	q := NewCommandQueue()

	q.Push(Command{Type: CommandToggleSound, SoundID: "cafe"})
	q.Push(Command{Type: CommandSetSoundVolume, SoundID: "cafe", Volume: 0.3})
	q.Push(Command{Type: CommandLoadPreset, PresetID: "rainy-cafe"})

	if q.Len() != 3 {
		t.Errorf("Expected Len 3, got %d", q.Len())
	}

	cmds := q.Consume()
	if len(cmds) != 3 {
		t.Fatalf("Expected 3 commands, got %d", len(cmds))
	}
	if cmds[0].Type != CommandToggleSound || cmds[0].SoundID != "cafe" {
		t.Errorf("Command 0 mismatch: %+v", cmds[0])
	}
	if cmds[1].Type != CommandSetSoundVolume || cmds[1].Volume != 0.3 {
		t.Errorf("Command 1 mismatch: %+v", cmds[1])
	}
	if cmds[2].Type != CommandLoadPreset || cmds[2].PresetID != "rainy-cafe" {
		t.Errorf("Command 2 mismatch: %+v", cmds[2])
	}

	if again := q.Consume(); len(again) != 0 {
		t.Errorf("Expected empty second consume, got %d", len(again))
	}
	if q.Len() != 0 {
		t.Errorf("Expected Len 0, got %d", q.Len())
	}
}

// TestCommandQueueConcurrentProducers verifies no command is lost and per-producer order holds
func TestCommandQueueConcurrentProducers(t *testing.T) {
	q := NewCommandQueue()
	producers := 8
	perProducer := 16 // 128 total, below capacity

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Command{
					Type:    CommandSetSoundVolume,
					Sender:  fmt.Sprintf("p%d", id),
					Volume:  float64(i),
					SoundID: "river",
				})
			}
		}(p)
	}
	wg.Wait()

	cmds := q.Consume()
	if len(cmds) != producers*perProducer {
		t.Fatalf("Expected %d commands, got %d", producers*perProducer, len(cmds))
	}

	last := make(map[string]float64)
	for _, c := range cmds {
		prev, seen := last[c.Sender]
		if seen && c.Volume <= prev {
			t.Errorf("Sender %s out of order: %f after %f", c.Sender, c.Volume, prev)
		}
		last[c.Sender] = c.Volume
	}
}

// TestCommandQueueOverflow verifies the oldest commands are dropped when full
func TestCommandQueueOverflow(t *testing.T) {
	q := NewCommandQueue()
	extra := 10

	overwrites := 0
	for i := 0; i < constant.CommandQueueSize+extra; i++ {
		if q.Push(Command{Type: CommandSetMasterVolume, Volume: float64(i)}) {
			if i < constant.CommandQueueSize {
				t.Fatalf("Push %d reported an overwrite below capacity", i)
			}
			overwrites++
		}
	}

	if overwrites != extra || q.Dropped() != uint64(extra) {
		t.Errorf("Expected %d overwrites, got %d (Dropped=%d)", extra, overwrites, q.Dropped())
	}

	if q.Len() != constant.CommandQueueSize {
		t.Errorf("Expected Len capped at %d, got %d", constant.CommandQueueSize, q.Len())
	}

	cmds := q.Consume()
	if len(cmds) != constant.CommandQueueSize {
		t.Fatalf("Expected %d commands, got %d", constant.CommandQueueSize, len(cmds))
	}
	if cmds[0].Volume != float64(extra) {
		t.Errorf("Expected oldest surviving command %d, got %f", extra, cmds[0].Volume)
	}
	if cmds[len(cmds)-1].Volume != float64(constant.CommandQueueSize+extra-1) {
		t.Errorf("Expected newest command last, got %f", cmds[len(cmds)-1].Volume)
	}
}

// TestCommandTypeString verifies log names match relay topics
func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		typ  CommandType
		want string
	}{
		{CommandToggleSound, "toggle-sound"},
		{CommandSetMasterVolume, "set-master-volume"},
		{CommandRequestState, "request-state"},
		{CommandType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %s, want %s", tt.typ, got, tt.want)
		}
	}
}
