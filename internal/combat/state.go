package combat

import "github.com/LachyC123/bloodline-arena-sub000/internal/logging"

// Turn identifies which participant is expected to act next.
type Turn string

const (
	TurnPlayer Turn = "player"
	TurnEnemy  Turn = "enemy"
)

// Marker is the coarse combat-lifecycle phase carried by CombatState. It is
// distinct from (and coarser than) the controller's Phase; the controller
// only reads it for cross-checks and debug snapshots.
type Marker string

const (
	MarkerSetup  Marker = "setup"
	MarkerActive Marker = "active"
	MarkerEnded  Marker = "ended"
)

// Fighter holds one participant's live resources.
type Fighter struct {
	CurrentHP      int `json:"current_hp"`
	MaxHP          int `json:"max_hp"`
	CurrentStamina int `json:"current_stamina"`
	MaxStamina     int `json:"max_stamina"`
	CurrentFocus   int `json:"current_focus"`
	MaxFocus       int `json:"max_focus"`
	// Guarding and Evasive are one-shot stances consumed by the next
	// incoming attack.
	Guarding bool `json:"guarding"`
	Evasive  bool `json:"evasive"`
}

// CombatState is the authoritative mutable snapshot of one fight. It is owned
// by the fight session; the resolution engine mutates it during normal play
// and the controller only reads it, except for the emergency turn override
// used by softlock recovery.
type CombatState struct {
	Turn   Turn    `json:"turn"`
	Phase  Marker  `json:"phase"`
	Player Fighter `json:"player"`
	Enemy  Fighter `json:"enemy"`
	// Winner is empty until the fight concludes, then set exactly once.
	Winner Turn `json:"winner"`
}

// HasWinner reports whether the fight has concluded.
func (s *CombatState) HasWinner() bool { return s.Winner != "" }

// SetWinner records the fight's outcome. The first write wins; once a winner
// is set the state is terminal and later calls are ignored.
func (s *CombatState) SetWinner(w Turn) {
	if s.Winner != "" {
		return
	}
	s.Winner = w
	s.Phase = MarkerEnded
}

// EmergencyOverrideTurn forcibly hands the turn to the given participant.
// This is the single sanctioned write into CombatState from outside the
// resolution engine; only softlock recovery may call it, and every call is
// logged because it means something else in the system misbehaved.
func (s *CombatState) EmergencyOverrideTurn(t Turn) {
	if s.HasWinner() {
		return
	}
	logging.Error("emergency turn override", nil, logging.Fields{
		"from": string(s.Turn),
		"to":   string(t),
	})
	s.Turn = t
}

// Fighter returns the resources of the given participant.
func (s *CombatState) Fighter(t Turn) *Fighter {
	if t == TurnEnemy {
		return &s.Enemy
	}
	return &s.Player
}
