package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
	"github.com/LachyC123/bloodline-arena-sub000/internal/config"
	"github.com/LachyC123/bloodline-arena-sub000/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub000/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub000/internal/notify"
	"github.com/LachyC123/bloodline-arena-sub000/internal/storage"
)

var ErrFightNotFound = errors.New("fight not found")

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// generateJoinCode creates a short alphanumeric code identifying a fight.
func generateJoinCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

// Manager owns every live fight. Fights are session objects created and
// destroyed here; there is no process-wide combat singleton, so multiple
// concurrent fights (and tests) coexist without defensive global teardown.
type Manager struct {
	mu       sync.RWMutex
	fights   map[string]*Fight
	byClient map[string]string

	repo   storage.Repository
	events *notify.Broadcaster
	cfg    *config.LoadedConfig

	// createGroup deduplicates concurrent create requests from the same
	// client (double-clicks, tab races) into one fight.
	createGroup singleflight.Group
}

func NewManager(repo storage.Repository, events *notify.Broadcaster, cfg *config.LoadedConfig) *Manager {
	return &Manager{
		fights:   make(map[string]*Fight),
		byClient: make(map[string]string),
		repo:     repo,
		events:   events,
		cfg:      cfg,
	}
}

// CreateFight starts a new fight for the client. An existing fight owned by
// the same client is torn down first, so a client never leaks a running
// watchdog across restarts of its fight scene.
func (m *Manager) CreateFight(clientKey string) (*Fight, error) {
	v, err, _ := m.createGroup.Do(clientKey, func() (interface{}, error) {
		return m.createFight(clientKey)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Fight), nil
}

func (m *Manager) createFight(clientKey string) (*Fight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if code, ok := m.byClient[clientKey]; ok {
		m.endFightLocked(code, storage.FightStatusAbandoned)
	}

	st := &combat.CombatState{
		Turn:  combat.TurnPlayer,
		Phase: combat.MarkerActive,
		Player: combat.Fighter{
			CurrentHP: m.cfg.Player.HP, MaxHP: m.cfg.Player.HP,
			CurrentStamina: m.cfg.Player.Stamina, MaxStamina: m.cfg.Player.Stamina,
			CurrentFocus: m.cfg.Player.Focus, MaxFocus: m.cfg.Player.Focus,
		},
		Enemy: combat.Fighter{
			CurrentHP: m.cfg.Enemy.HP, MaxHP: m.cfg.Enemy.HP,
			CurrentStamina: m.cfg.Enemy.Stamina, MaxStamina: m.cfg.Enemy.Stamina,
			CurrentFocus: m.cfg.Enemy.Focus, MaxFocus: m.cfg.Enemy.Focus,
		},
	}

	f := &Fight{
		JoinCode:  generateJoinCode(),
		ClientKey: clientKey,
		CreatedAt: time.Now(),
	}

	code := f.JoinCode
	f.Controller = combat.NewController(func() *combat.CombatState { return st }, func(enabled bool) {
		m.events.Publish(code, notify.Event{
			Type:         notify.EventInput,
			FightCode:    code,
			InputEnabled: enabled,
		})
	}, combat.Config{
		StaminaCosts:     m.cfg.StaminaCosts,
		WatchdogInterval: m.cfg.WatchdogInterval,
		SoftlockTimeout:  m.cfg.SoftlockTimeout,
		DebugLog:         m.cfg.DebugCombatLog,
	})

	if err := m.repo.CreateFightRecord(&storage.FightRecord{
		JoinCode:  code,
		ClientKey: clientKey,
		Status:    storage.FightStatusInProgress,
	}); err != nil {
		f.Controller.Destroy()
		return nil, err
	}

	m.fights[code] = f
	m.byClient[clientKey] = code
	logging.Info("fight created", logging.Fields{
		constants.LogFieldFightCode: code,
		constants.LogFieldClientKey: clientKey,
	})
	return f, nil
}

// GetFight returns the live fight with the given join code.
func (m *Manager) GetFight(code string) (*Fight, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.fights[code]
	return f, ok
}

// EndFight tears a fight down: the watchdog is cancelled, subscribers are
// dropped and the outcome is persisted. Ending an unknown fight is an error.
func (m *Manager) EndFight(code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fights[code]; !ok {
		return ErrFightNotFound
	}
	m.endFightLocked(code, "")
	return nil
}

func (m *Manager) endFightLocked(code, forcedStatus string) {
	f, ok := m.fights[code]
	if !ok {
		return
	}
	f.Controller.Destroy()
	m.events.CloseFight(code)
	delete(m.fights, code)
	delete(m.byClient, f.ClientKey)

	status := forcedStatus
	if status == "" {
		snap := f.Snapshot()
		if snap.HasWinner() {
			status = storage.FightStatusFinished
		} else {
			status = storage.FightStatusAbandoned
		}
	}
	m.persistOutcome(f, status)
}

// PersistOutcome records the fight's current result without tearing it down.
// The service layer calls this when a winner is decided so the journal is
// written even if the client never sends the explicit teardown.
func (m *Manager) PersistOutcome(f *Fight) {
	m.persistOutcome(f, storage.FightStatusFinished)
}

func (m *Manager) persistOutcome(f *Fight, status string) {
	rec, err := m.repo.GetFightRecordByJoinCode(f.JoinCode)
	if err != nil || rec == nil {
		logging.Error("failed to load fight record for outcome", err, logging.Fields{
			constants.LogFieldFightCode: f.JoinCode,
		})
		return
	}
	rec.Status = status
	rec.Winner = string(f.Snapshot().Winner)
	rec.Rounds = f.Rounds()
	rec.SoftlockRecoveries = f.Controller.SoftlockRecoveries()
	rec.EndedAt = time.Now()
	if err := m.repo.UpdateFightRecord(rec); err != nil {
		logging.Error("failed to persist fight outcome", err, logging.Fields{
			constants.LogFieldFightCode: f.JoinCode,
		})
	}
}

// Events exposes the broadcaster for the API layer's WebSocket endpoint.
func (m *Manager) Events() *notify.Broadcaster { return m.events }
