package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
)

type statEntry struct {
	HP      int `json:"hp"`
	Stamina int `json:"stamina"`
	Focus   int `json:"focus"`
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	DBPath string `json:"db_path"`
	Combat *struct {
		DebugLog           bool           `json:"debug_log"`
		WatchdogIntervalMS int            `json:"watchdog_interval_ms"`
		SoftlockTimeoutMS  int            `json:"softlock_timeout_ms"`
		StaminaCosts       map[string]int `json:"stamina_costs"`
	} `json:"combat"`
	Fighters *struct {
		Player *statEntry `json:"player"`
		Enemy  *statEntry `json:"enemy"`
	} `json:"fighters"`
}

// StatBlock is a fighter's starting resource pool.
type StatBlock struct {
	HP      int
	Stamina int
	Focus   int
}

// LoadedConfig is the fully-resolved server configuration.
type LoadedConfig struct {
	ServerAddress    string
	DBPath           string
	DebugCombatLog   bool
	WatchdogInterval time.Duration
	SoftlockTimeout  time.Duration
	// StaminaCosts is nil when the config does not override the defaults.
	StaminaCosts map[combat.ActionType]int
	Player       StatBlock
	Enemy        StatBlock
}

// Defaults returns the configuration used when no config file is present.
func Defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:    ":8080",
		DBPath:           "./data/arena.db",
		WatchdogInterval: time.Second,
		SoftlockTimeout:  3 * time.Second,
		Player:           StatBlock{HP: 100, Stamina: 100, Focus: 50},
		Enemy:            StatBlock{HP: 80, Stamina: 60, Focus: 30},
	}
}

// LoadConfig reads the configuration file at path on top of the defaults.
// Stamina-cost overrides must name known actions; fighter stat blocks must be
// positive.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Defaults()
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.DBPath != "" {
		cfg.DBPath = rc.DBPath
	}

	if rc.Combat != nil {
		cfg.DebugCombatLog = rc.Combat.DebugLog
		if rc.Combat.WatchdogIntervalMS > 0 {
			cfg.WatchdogInterval = time.Duration(rc.Combat.WatchdogIntervalMS) * time.Millisecond
		}
		if rc.Combat.SoftlockTimeoutMS > 0 {
			cfg.SoftlockTimeout = time.Duration(rc.Combat.SoftlockTimeoutMS) * time.Millisecond
		}
		if len(rc.Combat.StaminaCosts) > 0 {
			costs := make(map[combat.ActionType]int, len(combat.DefaultStaminaCosts))
			for a, c := range combat.DefaultStaminaCosts {
				costs[a] = c
			}
			for name, cost := range rc.Combat.StaminaCosts {
				a := combat.ActionType(name)
				if !combat.KnownAction(a) {
					return nil, fmt.Errorf("config file %s: unknown action %q in stamina_costs", path, name)
				}
				if cost < 0 {
					return nil, fmt.Errorf("config file %s: negative stamina cost for %q", path, name)
				}
				costs[a] = cost
			}
			cfg.StaminaCosts = costs
		}
	}

	if rc.Fighters != nil {
		if rc.Fighters.Player != nil {
			cfg.Player = statBlockFrom(*rc.Fighters.Player)
		}
		if rc.Fighters.Enemy != nil {
			cfg.Enemy = statBlockFrom(*rc.Fighters.Enemy)
		}
	}
	for _, sb := range []struct {
		name string
		s    StatBlock
	}{{"player", cfg.Player}, {"enemy", cfg.Enemy}} {
		if sb.s.HP <= 0 || sb.s.Stamina <= 0 || sb.s.Focus < 0 {
			return nil, fmt.Errorf("config file %s: invalid %s stat block %+v", path, sb.name, sb.s)
		}
	}

	return cfg, nil
}

func statBlockFrom(e statEntry) StatBlock {
	return StatBlock{HP: e.HP, Stamina: e.Stamina, Focus: e.Focus}
}
