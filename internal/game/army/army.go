package army

import "github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"

// Army is one side's roster together with the points spent on it
type Army struct {
	Side   core.Side
	Units  []*core.Unit
	Points int
}

// Survivors returns the alive units in roster order
func (a *Army) Survivors() []*core.Unit {
	if a == nil {
		return nil
	}
	return core.AliveUnits(a.Units)
}

// Defeated reports whether no unit of the army is left alive
func (a *Army) Defeated() bool {
	if a == nil {
		return true
	}
	for _, u := range a.Units {
		if u.IsAlive() {
			return false
		}
	}
	return true
}
