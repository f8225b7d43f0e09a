package testutil

import (
	"fmt"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
)

// Standard prototypes used across tests
var (
	Swordsman = core.UnitPrototype{
		Name: "Swordsman", UnitType: "Swordsman", Health: 50, BaseAttack: 20, Cost: 15,
		AttackType: core.AttackMelee,
	}
	Archer = core.UnitPrototype{
		Name: "Archer", UnitType: "Archer", Health: 30, BaseAttack: 25, Cost: 20,
		AttackType:    core.AttackRanged,
		AttackBonuses: map[string]float64{"Swordsman": 0.2},
	}
	Knight = core.UnitPrototype{
		Name: "Knight", UnitType: "Knight", Health: 100, BaseAttack: 40, Cost: 40,
		AttackType:     core.AttackMelee,
		DefenceBonuses: map[string]float64{"Archer": 0.5},
	}
)

// Prototypes returns a fresh slice of the standard prototypes
func Prototypes() []core.UnitPrototype {
	return []core.UnitPrototype{Swordsman, Archer, Knight}
}

// NewUnitAt creates an alive melee unit at (x, y)
func NewUnitAt(name string, x, y int) *core.Unit {
	return core.NewUnit(Swordsman, name, core.NewCoordinate(x, y), core.SideLeft)
}

// NewDeadUnitAt creates a dead unit at (x, y)
func NewDeadUnitAt(name string, x, y int) *core.Unit {
	u := NewUnitAt(name, x, y)
	u.Health = 0
	u.Alive = false
	return u
}

// Blockers creates one alive unit per cell
func Blockers(cells ...core.Coordinate) []*core.Unit {
	units := make([]*core.Unit, len(cells))
	for i, c := range cells {
		units[i] = NewUnitAt(fmt.Sprintf("blocker %d", i), c.X, c.Y)
	}
	return units
}

// Cells is shorthand for building coordinate lists from x,y pairs
func Cells(pairs ...[2]int) []core.Coordinate {
	out := make([]core.Coordinate, len(pairs))
	for i, p := range pairs {
		out[i] = core.NewCoordinate(p[0], p[1])
	}
	return out
}

// PlaceArmy instantiates proto once per cell on the given side
func PlaceArmy(proto core.UnitPrototype, side core.Side, cells ...core.Coordinate) []*core.Unit {
	units := make([]*core.Unit, len(cells))
	for i, c := range cells {
		units[i] = core.NewUnit(proto, fmt.Sprintf("%s %d", proto.Name, i), c, side)
	}
	return units
}
