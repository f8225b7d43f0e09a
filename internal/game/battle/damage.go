package battle

import (
	"math"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
)

// Damage computes one hit of attacker on target. The attacker's bonus
// against the target's type raises it and the target's defence against
// the attacker's type lowers it. Every hit deals at least 1.
func Damage(attacker, target *core.Unit) int {
	dmg := float64(attacker.BaseAttack) *
		(1 + attacker.AttackBonuses[target.UnitType]) *
		(1 - target.DefenceBonuses[attacker.UnitType])

	n := int(math.Round(dmg))
	if n < 1 {
		return 1
	}
	return n
}
