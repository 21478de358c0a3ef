package session

import (
	"sync"
	"time"

	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
)

// Fight is one live combat session: the authoritative CombatState plus the
// controller layered on top of it. The controller's lock is the single owner
// of the state; every read and write outside the controller goes through
// WithState or Snapshot so nothing ever touches the live reference unlocked.
type Fight struct {
	JoinCode  string
	ClientKey string
	CreatedAt time.Time

	Controller *combat.Controller

	mu     sync.Mutex
	rounds int
}

// WithState runs fn with exclusive access to the fight's combat state. The
// resolution engine mutates state only inside this.
func (f *Fight) WithState(fn func(*combat.CombatState)) {
	f.Controller.WithState(fn)
}

// Snapshot returns a locked copy of the combat state for serialization and
// persistence.
func (f *Fight) Snapshot() combat.CombatState {
	return f.Controller.StateSnapshot()
}

// AddRound records one completed player/enemy exchange.
func (f *Fight) AddRound() {
	f.mu.Lock()
	f.rounds++
	f.mu.Unlock()
}

// Rounds returns how many exchanges have completed.
func (f *Fight) Rounds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rounds
}
