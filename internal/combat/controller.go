package combat

import (
	"sync"
	"time"

	"github.com/LachyC123/bloodline-arena-sub000/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub000/internal/logging"
)

// Phase is the controller's fine-grained combat phase, the sole arbiter of
// which code path may advance the fight at any moment.
type Phase string

const (
	PhaseInit       Phase = "init"
	PhasePlayerTurn Phase = "player_turn"
	PhaseResolving  Phase = "resolving"
	PhaseEnemyTurn  Phase = "enemy_turn"
	PhaseEnded      Phase = "ended"
)

// Rejection reasons surfaced to the presentation layer. These are results,
// not errors: a rejected action is an expected outcome.
const (
	ReasonStarting      = "Starting..."
	ReasonResolving     = "Resolving..."
	ReasonEnemyTurn     = "Enemy turn"
	ReasonCombatEnded   = "Combat ended"
	ReasonNotPlayerTurn = "Not player turn"
	ReasonNoStamina     = "Not enough stamina"
	ReasonNoFocus       = "Not enough focus"
	ReasonUnknownAction = "Unknown action"
)

// Result is the outcome of an action submission.
type Result struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// DebugState is a read-only snapshot for diagnostic overlays. It has no
// effect on control flow.
type DebugState struct {
	Phase              Phase  `json:"phase"`
	Turn               Turn   `json:"turn"`
	Marker             Marker `json:"marker"`
	PlayerHP           int    `json:"player_hp"`
	EnemyHP            int    `json:"enemy_hp"`
	MillisSinceChange  int64  `json:"ms_since_phase_change"`
	Winner             Turn   `json:"winner"`
	SoftlockRecoveries int    `json:"softlock_recoveries"`
}

// Config tunes a Controller. The zero value selects the defaults used in
// production; tests inject a fake clock and shorter watchdog timings.
type Config struct {
	// StaminaCosts overrides DefaultStaminaCosts when non-nil.
	StaminaCosts map[ActionType]int
	// WatchdogInterval is how often the watchdog polls (default 1s).
	WatchdogInterval time.Duration
	// SoftlockTimeout is how long a resolution may run before the watchdog
	// force-recovers (default 3s).
	SoftlockTimeout time.Duration
	// DebugLog enables verbose phase-transition logging.
	DebugLog bool
	// Clock reports the current time (default time.Now).
	Clock func() time.Time
}

const (
	defaultWatchdogInterval = time.Second
	defaultSoftlockTimeout  = 3 * time.Second
)

// Controller layers the explicit phase state machine on top of a CombatState.
// One controller lives per fight; it gates every player-initiated action and
// runs the softlock watchdog. All methods are safe for concurrent use.
//
// The input callback fires synchronously inside every phase transition, while
// the controller's lock is held, so it must not call back into the controller.
type Controller struct {
	mu              sync.Mutex
	phase           Phase
	lastPhaseChange time.Time

	// state is a live accessor, never a cached copy: the resolution engine
	// mutates the fight underneath us and the controller must always observe
	// the latest values.
	state   func() *CombatState
	onInput func(enabled bool)

	costs           map[ActionType]int
	debug           bool
	now             func() time.Time
	softlockTimeout time.Duration
	softlocks       int

	destroyed bool
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewController builds the controller for one fight and starts its watchdog.
// The state accessor must return the same CombatState instance the resolution
// engine mutates. Call Destroy when the fight ends.
func NewController(state func() *CombatState, onInput func(enabled bool), cfg Config) *Controller {
	if cfg.StaminaCosts == nil {
		cfg.StaminaCosts = DefaultStaminaCosts
	}
	if cfg.WatchdogInterval <= 0 {
		cfg.WatchdogInterval = defaultWatchdogInterval
	}
	if cfg.SoftlockTimeout <= 0 {
		cfg.SoftlockTimeout = defaultSoftlockTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	c := &Controller{
		phase:           PhaseInit,
		state:           state,
		onInput:         onInput,
		costs:           cfg.StaminaCosts,
		debug:           cfg.DebugLog,
		now:             cfg.Clock,
		softlockTimeout: cfg.SoftlockTimeout,
		stop:            make(chan struct{}),
	}
	c.lastPhaseChange = c.now()

	c.mu.Lock()
	st := c.state()
	switch {
	case st.HasWinner():
		c.transitionLocked(PhaseEnded)
	case st.Turn == TurnEnemy:
		c.transitionLocked(PhaseEnemyTurn)
	default:
		c.transitionLocked(PhasePlayerTurn)
	}
	c.mu.Unlock()

	go c.runWatchdog(cfg.WatchdogInterval)
	return c
}

// transitionLocked is the single place the phase changes. ENDED is terminal:
// once reached, nothing leaves it. Every transition stamps lastPhaseChange
// and arms or disarms presentation-layer input through the callback; no other
// code path may enable input.
func (c *Controller) transitionLocked(to Phase) {
	if c.phase == PhaseEnded {
		return
	}
	from := c.phase
	c.phase = to
	c.lastPhaseChange = c.now()
	if c.debug {
		logging.Debug("combat phase transition", logging.Fields{
			"from": string(from),
			"to":   string(to),
		})
	}
	if c.onInput != nil {
		c.onInput(to == PhasePlayerTurn)
	}
}

// SubmitAction is the only entry point through which the presentation layer
// requests a combat action. Validation short-circuits on the first failing
// check; on success the phase moves to RESOLVING and input is disabled. The
// controller never performs the numeric resolution itself.
func (c *Controller) SubmitAction(action ActionType, target Zone) Result {
	_ = target // validated and consumed by the resolution engine

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhasePlayerTurn {
		return Result{Reason: reasonForPhase(c.phase)}
	}

	st := c.state()

	// Defensive re-sync: the phase machine and the resource state must never
	// drift, but CombatState is ground truth if they ever do.
	if st.HasWinner() {
		c.transitionLocked(PhaseEnded)
		return Result{Reason: ReasonCombatEnded}
	}
	if st.Turn != TurnPlayer {
		c.transitionLocked(PhaseEnemyTurn)
		return Result{Reason: ReasonNotPlayerTurn}
	}

	cost, ok := c.costs[action]
	if !ok {
		return Result{Reason: ReasonUnknownAction}
	}
	if st.Player.CurrentStamina < cost {
		return Result{Reason: ReasonNoStamina}
	}
	if action == ActionSpecial && st.Player.CurrentFocus < SpecialFocusCost {
		return Result{Reason: ReasonNoFocus}
	}

	c.transitionLocked(PhaseResolving)
	return Result{Success: true}
}

// EndActionResolution is called by the presentation layer once the action's
// resolution pipeline has finished. The controller re-reads CombatState and
// moves to whichever phase is now correct. Returns false when no resolution
// was in progress.
func (c *Controller) EndActionResolution() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseResolving {
		return false
	}

	st := c.state()
	switch {
	case st.HasWinner():
		c.transitionLocked(PhaseEnded)
	case st.Turn == TurnEnemy:
		c.transitionLocked(PhaseEnemyTurn)
	default:
		c.transitionLocked(PhasePlayerTurn)
	}
	return true
}

// BeginEnemyTurn marks the explicit start of the enemy's turn. Idempotent
// when already in ENEMY_TURN; a fight with a decided winner goes terminal
// instead.
func (c *Controller) BeginEnemyTurn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseEnded {
		return false
	}
	if c.state().HasWinner() {
		c.transitionLocked(PhaseEnded)
		return false
	}
	c.transitionLocked(PhaseEnemyTurn)
	return true
}

// EndEnemyTurn hands control back to the player, or ends the fight when the
// enemy's turn decided a winner.
func (c *Controller) EndEnemyTurn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseEnded {
		return false
	}
	if c.state().HasWinner() {
		c.transitionLocked(PhaseEnded)
		return false
	}
	c.transitionLocked(PhasePlayerTurn)
	return true
}

// ForceEndResolution breaks out of a stuck resolution. The watchdog invokes
// it automatically; debug panels may invoke it manually. Returns false when
// no resolution is in progress.
func (c *Controller) ForceEndResolution() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forceEndResolutionLocked("manual", c.now().Sub(c.lastPhaseChange))
}

func (c *Controller) forceEndResolutionLocked(source string, elapsed time.Duration) bool {
	if c.phase != PhaseResolving {
		return false
	}

	st := c.state()
	c.softlocks++
	logging.Error("combat stuck in resolution; forcing recovery", nil, logging.Fields{
		"source":                    source,
		constants.LogFieldElapsedMS: elapsed.Milliseconds(),
		constants.LogFieldPhase:     string(c.phase),
		constants.LogFieldTurn:      string(st.Turn),
		"marker":                    string(st.Phase),
		"player_hp":                 st.Player.CurrentHP,
		"enemy_hp":                  st.Enemy.CurrentHP,
		constants.LogFieldWinner:    string(st.Winner),
	})

	if st.HasWinner() {
		c.transitionLocked(PhaseEnded)
		return true
	}
	// No other actor can break the deadlock, so hand the turn back to the
	// player even though CombatState is externally owned.
	st.EmergencyOverrideTurn(TurnPlayer)
	c.transitionLocked(PhasePlayerTurn)
	return true
}

// GetPhase returns the controller's current phase.
func (c *Controller) GetPhase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// CanPlayerAct reports whether an action submission would pass the phase and
// turn checks, with the reason it would not. Read-only: unlike SubmitAction
// it performs no self-healing transitions.
func (c *Controller) CanPlayerAct() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state()
	if st.HasWinner() || c.phase == PhaseEnded {
		return false, ReasonCombatEnded
	}
	if c.phase != PhasePlayerTurn {
		return false, reasonForPhase(c.phase)
	}
	if st.Turn != TurnPlayer {
		return false, ReasonNotPlayerTurn
	}
	return true, ""
}

// SoftlockRecoveries returns how many times this fight was force-recovered.
func (c *Controller) SoftlockRecoveries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.softlocks
}

// GetDebugState returns the diagnostic snapshot served to debug overlays.
func (c *Controller) GetDebugState() DebugState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state()
	return DebugState{
		Phase:              c.phase,
		Turn:               st.Turn,
		Marker:             st.Phase,
		PlayerHP:           st.Player.CurrentHP,
		EnemyHP:            st.Enemy.CurrentHP,
		MillisSinceChange:  c.now().Sub(c.lastPhaseChange).Milliseconds(),
		Winner:             st.Winner,
		SoftlockRecoveries: c.softlocks,
	}
}

// WithState runs fn with exclusive access to the live combat state. Every
// mutation outside the controller (the resolution engine, test setup) must go
// through here so state writes and controller reads share one lock. fn must
// not call back into the controller.
func (c *Controller) WithState(fn func(*CombatState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.state())
}

// StateSnapshot returns a copy of the combat state taken under the
// controller's lock. Readers that outlive the lock (JSON encoding,
// persistence) use this instead of the live reference.
func (c *Controller) StateSnapshot() CombatState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.state()
}

// Destroy cancels the watchdog. Idempotent; the watchdog never fires after
// Destroy returns — a tick already queued when the stop channel closes finds
// the destroyed flag and does nothing.
func (c *Controller) Destroy() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.destroyed = true
		c.mu.Unlock()
		close(c.stop)
	})
}

func reasonForPhase(p Phase) string {
	switch p {
	case PhaseInit:
		return ReasonStarting
	case PhaseResolving:
		return ReasonResolving
	case PhaseEnemyTurn:
		return ReasonEnemyTurn
	case PhaseEnded:
		return ReasonCombatEnded
	default:
		return ReasonNotPlayerTurn
	}
}
