package combat

// ActionType is a player-submitted combat action.
type ActionType string

const (
	ActionLightAttack ActionType = "light_attack"
	ActionHeavyAttack ActionType = "heavy_attack"
	ActionGuard       ActionType = "guard"
	ActionDodge       ActionType = "dodge"
	ActionSpecial     ActionType = "special"
	ActionItem        ActionType = "item"
)

// Zone is an optional target zone for an attack.
type Zone string

const (
	ZoneNone  Zone = ""
	ZoneHead  Zone = "head"
	ZoneTorso Zone = "torso"
	ZoneLegs  Zone = "legs"
)

// DefaultStaminaCosts is the stamina price of each action. Submission rejects
// actions the player cannot afford; the resolution engine performs the spend.
var DefaultStaminaCosts = map[ActionType]int{
	ActionLightAttack: 10,
	ActionHeavyAttack: 25,
	ActionGuard:       5,
	ActionDodge:       15,
	ActionSpecial:     20,
	ActionItem:        0,
}

// SpecialFocusCost is the focus required to use the special action. The
// boundary is inclusive: exactly this much focus is enough.
const SpecialFocusCost = 30

// KnownAction reports whether the action identifier is part of the action set.
func KnownAction(a ActionType) bool {
	_, ok := DefaultStaminaCosts[a]
	return ok
}
