package event

import (
	"sync/atomic"

	"github.com/lixenwraith/ambience/constant"
)

// CommandQueue carries relayed mixer commands from the relay delivery
// goroutines to the loop that owns the mixer store
//
// Producers never block. When remote panels send faster than the owner loop
// drains, the oldest unapplied commands are overwritten: later commands carry
// the panel's newer intent (a volume drag emits many set-volume commands and
// only the last matters). Push reports each overwrite and Dropped counts them
// so the host can log that remote input was lost.
//
// Push is safe from any number of goroutines; Consume has one caller, the
// owner loop. A slot is read only after its published flag is set.
type CommandQueue struct {
	commands  [constant.CommandQueueSize]Command
	published [constant.CommandQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                          // Read index
	tail      atomic.Uint64                          // Write index
	dropped   atomic.Uint64                          // Commands overwritten before Consume
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Push appends cmd; it returns true when an unread command was overwritten to make room
func (q *CommandQueue) Push(cmd Command) bool {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & constant.CommandBufferMask

			q.commands[idx] = cmd
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread commands
			currentHead := q.head.Load()
			if nextTail-currentHead <= constant.CommandQueueSize {
				return false
			}
			q.head.CompareAndSwap(currentHead, nextTail-constant.CommandQueueSize)
			q.dropped.Add(1)
			return true
		}
	}
}

// Consume returns all pending commands in FIFO order and advances head
func (q *CommandQueue) Consume() []Command {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > constant.CommandQueueSize {
			available = constant.CommandQueueSize
			currentHead = currentTail - constant.CommandQueueSize
		}

		result := make([]Command, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & constant.CommandBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.commands[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Dropped returns how many commands were overwritten before being consumed
func (q *CommandQueue) Dropped() uint64 {
	return q.dropped.Load()
}

// Len returns approximate pending command count
func (q *CommandQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > constant.CommandQueueSize {
		return constant.CommandQueueSize
	}
	return diff
}
