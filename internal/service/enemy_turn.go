package service

import (
	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
	"github.com/LachyC123/bloodline-arena-sub000/internal/engine"
	"github.com/LachyC123/bloodline-arena-sub000/internal/session"
)

// BeginEnemyTurn opens the enemy's turn and applies its action server-side.
// The client animates the returned outcome and then calls EndEnemyTurn.
func BeginEnemyTurn(m *session.Manager, code string) (*engine.Outcome, error) {
	f, ok := m.GetFight(code)
	if !ok {
		return nil, ErrFightNotFound
	}
	if !f.Controller.BeginEnemyTurn() {
		return nil, ErrEnemyTurnNotOpen
	}

	var out engine.Outcome
	f.WithState(func(st *combat.CombatState) {
		out = engine.ResolveEnemyAction(st)
	})
	f.AddRound()

	publishUpdate(m, f, &out)
	snap := f.Snapshot()
	if snap.HasWinner() {
		m.PersistOutcome(f)
	}
	return &out, nil
}

// EndEnemyTurn closes the enemy's turn once the client finishes animating it.
func EndEnemyTurn(m *session.Manager, code string) error {
	f, ok := m.GetFight(code)
	if !ok {
		return ErrFightNotFound
	}
	// A decided fight goes terminal here instead of handing the turn back;
	// that is the expected path, not a rejection.
	f.Controller.EndEnemyTurn()
	publishUpdate(m, f, nil)
	return nil
}
