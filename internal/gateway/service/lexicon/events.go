package lexicon

import (
	"context"
	"sync"
	"time"
)

type EventKind string

const (
	EventRootAdded     EventKind = "root.added"
	EventRootDeleted   EventKind = "root.deleted"
	EventSchemeAdded   EventKind = "scheme.added"
	EventSchemeRemoved EventKind = "scheme.removed"
	EventWordVerified  EventKind = "word.verified"
	EventReloaded      EventKind = "lexicon.reloaded"
)

// Event describes one change to the lexicon.
type Event struct {
	Kind     EventKind `json:"kind"`
	Root     string    `json:"root,omitempty"`
	Scheme   string    `json:"scheme,omitempty"`
	Category string    `json:"category,omitempty"`
	Word     string    `json:"word,omitempty"`
	At       time.Time `json:"at"`
}

// Broker fans events out to subscribers. Slow subscribers lose their oldest
// pending event rather than blocking publishers.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber until ctx is done or cancel is called.
func (b *Broker) Subscribe(ctx context.Context) (<-chan Event, func()) {
	ch := make(chan Event, 16)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
			close(done)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel
}

func (b *Broker) Publish(ev Event) {
	if b == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		pushEvent(ch, ev)
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func pushEvent(out chan Event, ev Event) {
	select {
	case out <- ev:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	select {
	case out <- ev:
	default:
	}
}
