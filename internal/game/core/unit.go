package core

import (
	"fmt"
	"strings"
)

// AttackType is how a unit delivers its attack
type AttackType string

const (
	AttackMelee  AttackType = "melee"
	AttackRanged AttackType = "ranged"
)

// ParseAttackType accepts the short form as well as the "<type> combat" form
func ParseAttackType(s string) (AttackType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimSuffix(norm, " combat")
	switch AttackType(norm) {
	case AttackMelee:
		return AttackMelee, nil
	case AttackRanged:
		return AttackRanged, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownAttackType)
}

// UnitPrototype is a catalog entry that armies are built from
type UnitPrototype struct {
	Name           string             `yaml:"name"`
	UnitType       string             `yaml:"unit_type"`
	Health         int                `yaml:"health"`
	BaseAttack     int                `yaml:"base_attack"`
	Cost           int                `yaml:"cost"`
	AttackType     AttackType         `yaml:"attack_type"`
	AttackBonuses  map[string]float64 `yaml:"attack_bonuses"`
	DefenceBonuses map[string]float64 `yaml:"defence_bonuses"`
}

// Validate checks the prototype can be placed into an army
func (p UnitPrototype) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("prototype without name: %w", ErrNoUnits)
	}
	if p.Cost <= 0 {
		return fmt.Errorf("prototype %q: %w", p.Name, ErrInvalidCost)
	}
	if _, err := ParseAttackType(string(p.AttackType)); err != nil {
		return fmt.Errorf("prototype %q: %w", p.Name, err)
	}
	return nil
}

// Unit is a placed, living (or dead) instance on the battlefield
type Unit struct {
	Name           string
	UnitType       string
	Health         int
	BaseAttack     int
	Cost           int
	AttackType     AttackType
	AttackBonuses  map[string]float64
	DefenceBonuses map[string]float64
	Position       Coordinate
	Side           Side
	Alive          bool
}

// NewUnit instantiates a prototype at pos
func NewUnit(p UnitPrototype, name string, pos Coordinate, side Side) *Unit {
	return &Unit{
		Name:           name,
		UnitType:       p.UnitType,
		Health:         p.Health,
		BaseAttack:     p.BaseAttack,
		Cost:           p.Cost,
		AttackType:     p.AttackType,
		AttackBonuses:  copyBonuses(p.AttackBonuses),
		DefenceBonuses: copyBonuses(p.DefenceBonuses),
		Position:       pos,
		Side:           side,
		Alive:          p.Health > 0,
	}
}

func copyBonuses(in map[string]float64) map[string]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (u *Unit) IsAlive() bool    { return u != nil && u.Alive }
func (u *Unit) IsRanged() bool   { return u.AttackType == AttackRanged }
func (u *Unit) Cell() Coordinate { return u.Position }

// TakeDamage lowers health and reports whether the hit was lethal
func (u *Unit) TakeDamage(amount int) bool {
	if !u.Alive || amount <= 0 {
		return false
	}
	u.Health -= amount
	if u.Health <= 0 {
		u.Health = 0
		u.Alive = false
		return true
	}
	return false
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s[%s hp=%d atk=%d %s]", u.Name, u.UnitType, u.Health, u.BaseAttack, u.Position)
}

// AliveUnits filters units down to the living ones, preserving order
func AliveUnits(units []*Unit) []*Unit {
	out := make([]*Unit, 0, len(units))
	for _, u := range units {
		if u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}
