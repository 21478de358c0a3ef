package service

import (
	"errors"

	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
	"github.com/LachyC123/bloodline-arena-sub000/internal/engine"
	"github.com/LachyC123/bloodline-arena-sub000/internal/notify"
	"github.com/LachyC123/bloodline-arena-sub000/internal/session"
)

var (
	ErrFightNotFound          = errors.New("fight not found")
	ErrNoResolutionInProgress = errors.New("no resolution in progress")
	ErrEnemyTurnNotOpen       = errors.New("enemy turn is not open")
)

// SubmitAction gates a player action through the fight's controller and, when
// accepted, applies the numeric resolution server-side. The phase stays
// RESOLVING until the client reports animation completion via its
// resolution-complete call (or the watchdog unsticks the fight).
func SubmitAction(m *session.Manager, code string, action combat.ActionType, zone combat.Zone) (combat.Result, *engine.Outcome, error) {
	f, ok := m.GetFight(code)
	if !ok {
		return combat.Result{}, nil, ErrFightNotFound
	}

	res := f.Controller.SubmitAction(action, zone)
	if !res.Success {
		return res, nil, nil
	}

	var out engine.Outcome
	f.WithState(func(st *combat.CombatState) {
		out = engine.ResolvePlayerAction(st, action, zone)
	})

	publishUpdate(m, f, &out)
	snap := f.Snapshot()
	if snap.HasWinner() {
		m.PersistOutcome(f)
	}
	return res, &out, nil
}

// EndActionResolution is the client's resolution-complete signal: the
// controller re-reads the combat state and settles on the correct next phase.
func EndActionResolution(m *session.Manager, code string) error {
	f, ok := m.GetFight(code)
	if !ok {
		return ErrFightNotFound
	}
	if !f.Controller.EndActionResolution() {
		return ErrNoResolutionInProgress
	}
	publishUpdate(m, f, nil)
	return nil
}

// ForceEndResolution is the manual form of the watchdog's recovery, exposed
// for debug panels.
func ForceEndResolution(m *session.Manager, code string) error {
	f, ok := m.GetFight(code)
	if !ok {
		return ErrFightNotFound
	}
	if !f.Controller.ForceEndResolution() {
		return ErrNoResolutionInProgress
	}
	publishUpdate(m, f, nil)
	return nil
}

func publishUpdate(m *session.Manager, f *session.Fight, out *engine.Outcome) {
	st := f.Snapshot()
	m.Events().Publish(f.JoinCode, notify.Event{
		Type:         notify.EventUpdate,
		FightCode:    f.JoinCode,
		Phase:        f.Controller.GetPhase(),
		InputEnabled: f.Controller.GetPhase() == combat.PhasePlayerTurn,
		Turn:         st.Turn,
		Winner:       st.Winner,
		Outcome:      out,
	})
}
