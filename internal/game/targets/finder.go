package targets

import "github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"

// Finder selects which enemy units an attacker may engage
type Finder struct {
	field core.Field
}

// NewFinder creates a target finder for the given field layout
func NewFinder(field core.Field) *Finder {
	return &Finder{field: field}
}

// GroupByLayer buckets an army's units by deployment layer, index 0 being
// the column on the army's own edge. Units outside the zone are dropped.
func (f *Finder) GroupByLayer(units []*core.Unit, side core.Side) [][]*core.Unit {
	layers := make([][]*core.Unit, f.field.Layers)
	for _, u := range units {
		if u == nil {
			continue
		}
		if layer, ok := f.field.LayerOf(side, u.Position.X); ok {
			layers[layer] = append(layers[layer], u)
		}
	}
	return layers
}

// SuitableUnits returns the alive units of the army on targetSide that are
// exposed to a melee attack: scanning layers from the one facing the enemy
// backwards, a unit is exposed unless an alive unit in a closer layer
// stands in the same row.
func (f *Finder) SuitableUnits(units []*core.Unit, targetSide core.Side) []*core.Unit {
	layers := f.GroupByLayer(units, targetSide)
	shielded := make(map[int]bool)
	var out []*core.Unit

	for layer := len(layers) - 1; layer >= 0; layer-- {
		var rows []int
		for _, u := range layers[layer] {
			if !u.IsAlive() {
				continue
			}
			if !shielded[u.Position.Y] {
				out = append(out, u)
			}
			rows = append(rows, u.Position.Y)
		}
		// Rows are applied after the layer so units in one column never shield each other
		for _, y := range rows {
			shielded[y] = true
		}
	}
	return out
}

// ForAttacker returns the candidates attacker may target among enemies.
// Ranged units can hit any living enemy; melee units only exposed ones.
func (f *Finder) ForAttacker(attacker *core.Unit, enemies []*core.Unit) []*core.Unit {
	if !attacker.IsAlive() {
		return nil
	}
	if attacker.IsRanged() {
		return core.AliveUnits(enemies)
	}
	return f.SuitableUnits(enemies, attacker.Side.Opponent())
}
