package engine

import (
	"fmt"

	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
)

// Outcome describes what one resolved action did to the fight. The API
// returns it to the client and the notifier includes it in fight events.
type Outcome struct {
	Actor   combat.Turn       `json:"actor"`
	Action  combat.ActionType `json:"action"`
	Zone    combat.Zone       `json:"zone,omitempty"`
	Damage  int               `json:"damage"`
	Healed  int               `json:"healed"`
	Summary string            `json:"summary"`
}

// Base damage per action. Zone modifiers and stances adjust the final value;
// keep every tuning number in this block rather than spread through the flow.
const (
	lightAttackDamage   = 10
	heavyAttackDamage   = 22
	specialAttackDamage = 30
	itemHealAmount      = 25
	attackFocusGain     = 5
	turnStaminaRegen    = 10
	turnFocusRegen      = 5
	enemyLightDamage    = 8
	enemyHeavyDamage    = 18
)

// zonePercent scales damage by target zone: head hits harder, legs softer.
func zonePercent(z combat.Zone) int {
	switch z {
	case combat.ZoneHead:
		return 130
	case combat.ZoneLegs:
		return 80
	default:
		return 100
	}
}

// ResolvePlayerAction applies the numeric effects of a validated player
// action: resource spend, damage or stance, then hands the turn to the enemy.
// The caller must already have gated the action through the combat
// controller; no validation happens here.
func ResolvePlayerAction(st *combat.CombatState, action combat.ActionType, zone combat.Zone) Outcome {
	out := Outcome{Actor: combat.TurnPlayer, Action: action, Zone: zone}

	spendStamina(&st.Player, combat.DefaultStaminaCosts[action])

	switch action {
	case combat.ActionLightAttack:
		out.Damage = dealDamage(&st.Enemy, lightAttackDamage*zonePercent(zone)/100)
		gainFocus(&st.Player, attackFocusGain)
		out.Summary = fmt.Sprintf("Light attack hits for %d.", out.Damage)
	case combat.ActionHeavyAttack:
		out.Damage = dealDamage(&st.Enemy, heavyAttackDamage*zonePercent(zone)/100)
		gainFocus(&st.Player, attackFocusGain)
		out.Summary = fmt.Sprintf("Heavy attack hits for %d.", out.Damage)
	case combat.ActionGuard:
		st.Player.Guarding = true
		out.Summary = "Guard raised."
	case combat.ActionDodge:
		st.Player.Evasive = true
		out.Summary = "Ready to dodge."
	case combat.ActionSpecial:
		st.Player.CurrentFocus -= combat.SpecialFocusCost
		out.Damage = dealDamage(&st.Enemy, specialAttackDamage*zonePercent(zone)/100)
		out.Summary = fmt.Sprintf("Special technique hits for %d.", out.Damage)
	case combat.ActionItem:
		out.Healed = heal(&st.Player, itemHealAmount)
		out.Summary = fmt.Sprintf("Tonic restores %d HP.", out.Healed)
	}

	if st.Enemy.CurrentHP <= 0 {
		st.SetWinner(combat.TurnPlayer)
		out.Summary += " The enemy falls."
		return out
	}

	st.Turn = combat.TurnEnemy
	return out
}

// ResolveEnemyAction picks and applies the enemy's move, then returns the
// turn to the player with end-of-exchange regeneration. The policy is
// deliberately plain: swing as hard as stamina allows, rest when spent.
func ResolveEnemyAction(st *combat.CombatState) Outcome {
	out := Outcome{Actor: combat.TurnEnemy}

	switch {
	case st.Enemy.CurrentStamina >= combat.DefaultStaminaCosts[combat.ActionHeavyAttack]:
		out.Action = combat.ActionHeavyAttack
		spendStamina(&st.Enemy, combat.DefaultStaminaCosts[combat.ActionHeavyAttack])
		out.Damage = hitPlayer(st, enemyHeavyDamage)
		out.Summary = fmt.Sprintf("Enemy heavy attack deals %d.", out.Damage)
	case st.Enemy.CurrentStamina >= combat.DefaultStaminaCosts[combat.ActionLightAttack]:
		out.Action = combat.ActionLightAttack
		spendStamina(&st.Enemy, combat.DefaultStaminaCosts[combat.ActionLightAttack])
		out.Damage = hitPlayer(st, enemyLightDamage)
		out.Summary = fmt.Sprintf("Enemy light attack deals %d.", out.Damage)
	default:
		out.Action = combat.ActionGuard
		regen(&st.Enemy)
		out.Summary = "Enemy catches its breath."
	}

	if st.Player.CurrentHP <= 0 {
		st.SetWinner(combat.TurnEnemy)
		out.Summary += " You fall."
		return out
	}

	regen(&st.Player)
	regen(&st.Enemy)
	gainFocus(&st.Player, turnFocusRegen)
	st.Turn = combat.TurnPlayer
	return out
}

// hitPlayer applies enemy damage through the player's one-shot stances.
func hitPlayer(st *combat.CombatState, dmg int) int {
	switch {
	case st.Player.Evasive:
		st.Player.Evasive = false
		return 0
	case st.Player.Guarding:
		st.Player.Guarding = false
		dmg /= 2
	}
	return dealDamage(&st.Player, dmg)
}

func dealDamage(f *combat.Fighter, dmg int) int {
	if dmg > f.CurrentHP {
		dmg = f.CurrentHP
	}
	f.CurrentHP -= dmg
	return dmg
}

func heal(f *combat.Fighter, amount int) int {
	if f.CurrentHP+amount > f.MaxHP {
		amount = f.MaxHP - f.CurrentHP
	}
	f.CurrentHP += amount
	return amount
}

func spendStamina(f *combat.Fighter, cost int) {
	f.CurrentStamina -= cost
	if f.CurrentStamina < 0 {
		f.CurrentStamina = 0
	}
}

func gainFocus(f *combat.Fighter, amount int) {
	f.CurrentFocus += amount
	if f.CurrentFocus > f.MaxFocus {
		f.CurrentFocus = f.MaxFocus
	}
}

func regen(f *combat.Fighter) {
	f.CurrentStamina += turnStaminaRegen
	if f.CurrentStamina > f.MaxStamina {
		f.CurrentStamina = f.MaxStamina
	}
}
