package session

import (
	"github.com/brensch/gridsnake/game"
)

// Mailbox holds at most one pending direction. A newer Put overwrites an
// unconsumed older one, so bursts of input between ticks collapse to the
// latest. Put is safe from any goroutine; Take expects a single consumer.
type Mailbox struct {
	ch chan game.Direction
}

func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan game.Direction, 1)}
}

// Put stores d, replacing whatever was pending.
func (m *Mailbox) Put(d game.Direction) {
	for {
		select {
		case m.ch <- d:
			return
		default:
		}
		// Full: drop the stale value and retry.
		select {
		case <-m.ch:
		default:
		}
	}
}

// Take empties the slot and returns its value, or None if nothing was pending.
func (m *Mailbox) Take() game.Direction {
	select {
	case d := <-m.ch:
		return d
	default:
		return game.None
	}
}

// Clear drops any pending direction.
func (m *Mailbox) Clear() {
	m.Take()
}
