package notify

import (
	"sync"

	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
	"github.com/LachyC123/bloodline-arena-sub000/internal/engine"
)

// Event kinds. Input events are emitted by the controller's input callback
// and are the authoritative input-arming signal; update events carry the
// richer post-operation snapshot (phase, turn, outcome).
const (
	EventInput  = "input"
	EventUpdate = "update"
)

// Event is pushed to the presentation layer on every phase transition and
// resolution outcome. InputEnabled is the authoritative input-arming signal:
// clients enable combat controls only while it is true.
type Event struct {
	Type         string          `json:"type"`
	FightCode    string          `json:"fight_code"`
	Phase        combat.Phase    `json:"phase"`
	InputEnabled bool            `json:"input_enabled"`
	Turn         combat.Turn     `json:"turn"`
	Winner       combat.Turn     `json:"winner,omitempty"`
	Outcome      *engine.Outcome `json:"outcome,omitempty"`
}

// Broadcaster fans fight events out to WebSocket subscribers. A fight may
// have several subscribers (multiple tabs, spectators, debug overlays).
type Broadcaster struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan Event
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[string]map[int]chan Event)}
}

// Subscribe registers a listener for one fight and returns its id together
// with the receive channel. The channel is buffered; slow consumers drop
// events rather than block the fight.
func (b *Broadcaster) Subscribe(fightCode string) (int, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	ch := make(chan Event, 16)
	if b.subs[fightCode] == nil {
		b.subs[fightCode] = make(map[int]chan Event)
	}
	b.subs[fightCode][id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (b *Broadcaster) Unsubscribe(fightCode string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if chans, ok := b.subs[fightCode]; ok {
		if ch, ok := chans[id]; ok {
			close(ch)
			delete(chans, id)
		}
		if len(chans) == 0 {
			delete(b.subs, fightCode)
		}
	}
}

// Publish sends an event to every subscriber of the fight without blocking.
func (b *Broadcaster) Publish(fightCode string, ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[fightCode] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// CloseFight drops every subscriber of a finished fight.
func (b *Broadcaster) CloseFight(fightCode string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[fightCode] {
		close(ch)
	}
	delete(b.subs, fightCode)
}

// SubscriberCount returns the number of active listeners for a fight.
func (b *Broadcaster) SubscriberCount(fightCode string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[fightCode])
}
