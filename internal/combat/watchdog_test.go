package combat

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func newClockedController(st *CombatState, rec *inputRecorder) (*Controller, *fakeClock) {
	clock := newFakeClock()
	var onInput func(bool)
	if rec != nil {
		onInput = rec.record
	}
	c := NewController(func() *CombatState { return st }, onInput, Config{
		WatchdogInterval: time.Hour,
		SoftlockTimeout:  3 * time.Second,
		Clock:            clock.Now,
	})
	return c, clock
}

func TestWatchdog_RecoversStuckResolution(t *testing.T) {
	st := newTestState()
	c, clock := newClockedController(st, nil)
	defer c.Destroy()

	if res := c.SubmitAction(ActionLightAttack, ZoneNone); !res.Success {
		t.Fatalf("expected submission to succeed: %+v", res)
	}
	st.Turn = TurnEnemy // mid-resolution state; the completion signal never arrives

	clock.Advance(2999 * time.Millisecond)
	if c.checkSoftlock() {
		t.Fatalf("watchdog fired before the timeout")
	}
	if got := c.GetPhase(); got != PhaseResolving {
		t.Fatalf("expected resolving, got %v", got)
	}

	clock.Advance(time.Millisecond)
	if !c.checkSoftlock() {
		t.Fatalf("watchdog did not fire at the timeout")
	}
	if got := c.GetPhase(); got != PhasePlayerTurn {
		t.Fatalf("expected forced player_turn, got %v", got)
	}
	if st.Turn != TurnPlayer {
		t.Fatalf("expected the turn to be forced back to the player, got %v", st.Turn)
	}
	if got := c.SoftlockRecoveries(); got != 1 {
		t.Fatalf("expected 1 recorded recovery, got %d", got)
	}
}

func TestWatchdog_WinnerGoesTerminal(t *testing.T) {
	st := newTestState()
	c, clock := newClockedController(st, nil)
	defer c.Destroy()

	if res := c.SubmitAction(ActionHeavyAttack, ZoneNone); !res.Success {
		t.Fatalf("expected submission to succeed: %+v", res)
	}
	st.SetWinner(TurnPlayer)

	clock.Advance(4 * time.Second)
	if !c.checkSoftlock() {
		t.Fatalf("watchdog did not fire")
	}
	if got := c.GetPhase(); got != PhaseEnded {
		t.Fatalf("expected ended, got %v", got)
	}
	if st.Turn != TurnPlayer {
		t.Fatalf("turn must not be overridden once a winner is set")
	}
}

func TestForceEndResolution_Manual(t *testing.T) {
	st := newTestState()
	c, _ := newClockedController(st, nil)
	defer c.Destroy()

	if c.ForceEndResolution() {
		t.Fatalf("force end must be a no-op outside resolving")
	}

	if res := c.SubmitAction(ActionDodge, ZoneNone); !res.Success {
		t.Fatalf("expected submission to succeed: %+v", res)
	}
	if !c.ForceEndResolution() {
		t.Fatalf("expected manual force end to recover")
	}
	if got := c.GetPhase(); got != PhasePlayerTurn {
		t.Fatalf("expected player_turn, got %v", got)
	}
}

func TestDestroy_StopsWatchdog(t *testing.T) {
	st := newTestState()
	rec := &inputRecorder{}
	c := NewController(func() *CombatState { return st }, rec.record, Config{
		WatchdogInterval: 5 * time.Millisecond,
		SoftlockTimeout:  time.Millisecond,
	})

	if res := c.SubmitAction(ActionGuard, ZoneNone); !res.Success {
		t.Fatalf("expected submission to succeed: %+v", res)
	}
	c.Destroy()
	c.Destroy() // idempotent

	calls := len(rec.calls)
	time.Sleep(40 * time.Millisecond)
	if len(rec.calls) != calls {
		t.Fatalf("watchdog fired after destroy: %v", rec.calls[calls:])
	}
	if got := c.GetPhase(); got != PhaseResolving {
		t.Fatalf("expected phase untouched after destroy, got %v", got)
	}
}

// A tick that was already queued when Destroy closed the stop channel may
// still be delivered; it must find the controller destroyed and do nothing.
func TestDestroy_QueuedTickDoesNotRecover(t *testing.T) {
	st := newTestState()
	rec := &inputRecorder{}
	c, clock := newClockedController(st, rec)

	if res := c.SubmitAction(ActionLightAttack, ZoneNone); !res.Success {
		t.Fatalf("expected submission to succeed: %+v", res)
	}
	calls := len(rec.calls)

	c.Destroy()
	clock.Advance(4 * time.Second)

	if c.checkSoftlock() {
		t.Fatalf("watchdog recovered after destroy")
	}
	if got := c.GetPhase(); got != PhaseResolving {
		t.Fatalf("expected phase untouched after destroy, got %v", got)
	}
	if st.Turn != TurnPlayer {
		t.Fatalf("turn must not be overridden after destroy, got %v", st.Turn)
	}
	if len(rec.calls) != calls {
		t.Fatalf("input callback fired after destroy: %v", rec.calls[calls:])
	}
	if got := c.SoftlockRecoveries(); got != 0 {
		t.Fatalf("expected no recorded recoveries, got %d", got)
	}
}

func TestDebugState(t *testing.T) {
	st := newTestState()
	c, clock := newClockedController(st, nil)
	defer c.Destroy()

	clock.Advance(1500 * time.Millisecond)
	ds := c.GetDebugState()
	if ds.Phase != PhasePlayerTurn || ds.Turn != TurnPlayer || ds.Marker != MarkerActive {
		t.Fatalf("unexpected snapshot: %+v", ds)
	}
	if ds.PlayerHP != 100 || ds.EnemyHP != 80 {
		t.Fatalf("unexpected HP snapshot: %+v", ds)
	}
	if ds.MillisSinceChange != 1500 {
		t.Fatalf("expected 1500ms since change, got %d", ds.MillisSinceChange)
	}
	if ds.Winner != "" {
		t.Fatalf("expected no winner, got %q", ds.Winner)
	}
}
