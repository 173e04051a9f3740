package relay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

// collector records payloads delivered to a handler
type collector struct {
	mu   sync.Mutex
	msgs []string
}

func (c *collector) handler(payload []byte) {
	c.mu.Lock()
	c.msgs = append(c.msgs, string(payload))
	c.mu.Unlock()
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.msgs...)
}

func TestPipeOrdering(t *testing.T) {
	a, b := NewPipe()
	defer a.Close()
	defer b.Close()

	var got collector
	b.On("topic", got.handler)

	want := []string{`1`, `2`, `3`, `4`, `5`}
	for _, m := range want {
		if err := a.Send("topic", []byte(m)); err != nil {
			t.Fatalf("Send failed: %v", err)
		}
	}

	waitFor(t, "delivery", func() bool { return len(got.snapshot()) == len(want) })
	for i, m := range got.snapshot() {
		if m != want[i] {
			t.Errorf("Message %d: got %s, want %s", i, m, want[i])
		}
	}
}

func TestPipeTopicsAndOff(t *testing.T) {
	a, b := NewPipe()
	defer a.Close()
	defer b.Close()

	var first, second, other collector
	off := b.On("x", first.handler)
	b.On("x", second.handler)
	b.On("y", other.handler)

	a.Send("x", []byte(`"one"`))
	waitFor(t, "first delivery", func() bool { return len(second.snapshot()) == 1 })

	off()
	a.Send("x", []byte(`"two"`))
	waitFor(t, "second delivery", func() bool { return len(second.snapshot()) == 2 })

	if n := len(first.snapshot()); n != 1 {
		t.Errorf("Removed handler received %d messages, want 1", n)
	}
	if n := len(other.snapshot()); n != 0 {
		t.Errorf("Handler for other topic received %d messages", n)
	}
}

func TestPipeSendCopiesPayload(t *testing.T) {
	a, b := NewPipe()
	defer a.Close()
	defer b.Close()

	var got collector
	b.On("t", got.handler)

	buf := []byte(`"abc"`)
	a.Send("t", buf)
	buf[1] = 'z'

	waitFor(t, "delivery", func() bool { return len(got.snapshot()) == 1 })
	if got.snapshot()[0] != `"abc"` {
		t.Errorf("Payload aliased sender buffer: %s", got.snapshot()[0])
	}
}

func TestPipeInvoke(t *testing.T) {
	a, b := NewPipe()
	defer a.Close()
	defer b.Close()

	b.Handle("echo", func(p []byte) ([]byte, error) {
		return append([]byte(`{"echo":`), append(p, '}')...), nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := a.Invoke(ctx, "echo", []byte(`42`))
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if string(resp) != `{"echo":42}` {
		t.Errorf("Reply = %s", resp)
	}

	if _, err := a.Invoke(ctx, "missing", nil); !errors.Is(err, ErrNoResponder) {
		t.Errorf("Invoke without responder: got %v, want ErrNoResponder", err)
	}

	b.Handle("echo", nil)
	if _, err := a.Invoke(ctx, "echo", nil); !errors.Is(err, ErrNoResponder) {
		t.Errorf("Invoke after responder removed: got %v, want ErrNoResponder", err)
	}
}

func TestPipeInvokeContext(t *testing.T) {
	a, b := NewPipe()
	defer a.Close()
	defer b.Close()

	release := make(chan struct{})
	b.Handle("slow", func([]byte) ([]byte, error) {
		<-release
		return []byte(`true`), nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := a.Invoke(ctx, "slow", nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want DeadlineExceeded", err)
	}
	close(release)

	// Late reply is discarded and the pipe stays usable
	b.Handle("fast", func([]byte) ([]byte, error) { return []byte(`1`), nil })
	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	resp, err := a.Invoke(ctx2, "fast", nil)
	if err != nil || string(resp) != `1` {
		t.Errorf("Invoke after timeout: %s, %v", resp, err)
	}
}

func TestPipeClose(t *testing.T) {
	a, b := NewPipe()

	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}

	if err := b.Send("t", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Send on closed end: got %v, want ErrClosed", err)
	}
	if err := a.Send("t", nil); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send to closed peer: got %v, want ErrNotConnected", err)
	}
	if _, err := a.Invoke(context.Background(), "t", nil); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Invoke to closed peer: got %v, want ErrNotConnected", err)
	}

	a.Close()
	if _, err := a.Invoke(context.Background(), "t", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Invoke on closed end: got %v, want ErrClosed", err)
	}
}

func TestPipeCloseDuringInvoke(t *testing.T) {
	a, b := NewPipe()
	defer b.Close()

	block := make(chan struct{})
	defer close(block)
	b.Handle("hang", func([]byte) ([]byte, error) {
		<-block
		return nil, nil
	})

	errc := make(chan error, 1)
	go func() {
		_, err := a.Invoke(context.Background(), "hang", nil)
		errc <- err
	}()

	time.Sleep(10 * time.Millisecond)
	a.Close()

	select {
	case err := <-errc:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("got %v, want ErrClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Invoke did not return after Close")
	}
}
