package session

import (
	"sync"
	"testing"

	"github.com/brensch/gridsnake/game"
)

func TestMailbox_EmptyTakeIsNone(t *testing.T) {
	m := NewMailbox()
	if got := m.Take(); got != game.None {
		t.Fatalf("take=%s want=NONE", got)
	}
}

func TestMailbox_OverwritesPending(t *testing.T) {
	m := NewMailbox()
	m.Put(game.Up)
	m.Put(game.Left)
	m.Put(game.Down)

	if got := m.Take(); got != game.Down {
		t.Fatalf("take=%s want=DOWN", got)
	}
	if got := m.Take(); got != game.None {
		t.Fatalf("second take=%s want=NONE (consumed once)", got)
	}
}

func TestMailbox_Clear(t *testing.T) {
	m := NewMailbox()
	m.Put(game.Right)
	m.Clear()
	if got := m.Take(); got != game.None {
		t.Fatalf("take=%s want=NONE", got)
	}
}

func TestMailbox_ConcurrentPutsNeverBlock(t *testing.T) {
	m := NewMailbox()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(d game.Direction) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Put(d)
			}
		}(game.Directions[i%len(game.Directions)])
	}
	wg.Wait()

	if got := m.Take(); !got.Valid() {
		t.Fatalf("take=%s want a real direction", got)
	}
	if got := m.Take(); got != game.None {
		t.Fatalf("slot holds more than one value")
	}
}
