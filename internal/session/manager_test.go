package session

import (
	"sync"
	"testing"

	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
	"github.com/LachyC123/bloodline-arena-sub000/internal/config"
	"github.com/LachyC123/bloodline-arena-sub000/internal/notify"
	"github.com/LachyC123/bloodline-arena-sub000/internal/storage"
)

type mockRepo struct {
	mu      sync.Mutex
	records map[string]*storage.FightRecord
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[string]*storage.FightRecord)}
}

func (m *mockRepo) CreateFightRecord(r *storage.FightRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.JoinCode] = r
	return nil
}

func (m *mockRepo) GetFightRecordByJoinCode(code string) (*storage.FightRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[code], nil
}

func (m *mockRepo) UpdateFightRecord(r *storage.FightRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.JoinCode] = r
	return nil
}

func (m *mockRepo) ListRecentFights(limit int) ([]storage.FightRecord, error) { return nil, nil }

func newTestManager(repo storage.Repository) *Manager {
	return NewManager(repo, notify.NewBroadcaster(), config.Defaults())
}

func TestCreateFight_StartsInPlayerTurn(t *testing.T) {
	m := newTestManager(newMockRepo())
	f, err := m.CreateFight("client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.EndFight(f.JoinCode)

	if got := f.Controller.GetPhase(); got != combat.PhasePlayerTurn {
		t.Fatalf("expected player_turn, got %v", got)
	}
	if st := f.Snapshot(); st.Player.CurrentHP != 100 || st.Enemy.CurrentHP != 80 {
		t.Fatalf("unexpected starting stats: %+v", st)
	}
	if got, ok := m.GetFight(f.JoinCode); !ok || got != f {
		t.Fatalf("fight not retrievable by join code")
	}
}

func TestCreateFight_ReplacesExistingFight(t *testing.T) {
	repo := newMockRepo()
	m := newTestManager(repo)

	first, err := m.CreateFight("client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := m.CreateFight("client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.EndFight(second.JoinCode)

	if first.JoinCode == second.JoinCode {
		t.Fatalf("expected a fresh fight, got the same join code")
	}
	if _, ok := m.GetFight(first.JoinCode); ok {
		t.Fatalf("expected the first fight to be torn down")
	}
	rec := repo.records[first.JoinCode]
	if rec == nil || rec.Status != storage.FightStatusAbandoned {
		t.Fatalf("expected abandoned record for the first fight, got %+v", rec)
	}
}

func TestCreateFight_ConcurrentCreatesLeaveOneFight(t *testing.T) {
	m := newTestManager(newMockRepo())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.CreateFight("client-1"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.fights) != 1 {
		t.Fatalf("expected exactly one live fight, got %d", len(m.fights))
	}
}

func TestEndFight(t *testing.T) {
	repo := newMockRepo()
	m := newTestManager(repo)
	f, err := m.CreateFight("client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.WithState(func(st *combat.CombatState) { st.SetWinner(combat.TurnPlayer) })
	if err := m.EndFight(f.JoinCode); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.GetFight(f.JoinCode); ok {
		t.Fatalf("fight still live after end")
	}
	rec := repo.records[f.JoinCode]
	if rec == nil || rec.Status != storage.FightStatusFinished || rec.Winner != string(combat.TurnPlayer) {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if err := m.EndFight(f.JoinCode); err != ErrFightNotFound {
		t.Fatalf("expected ErrFightNotFound, got %v", err)
	}
}
