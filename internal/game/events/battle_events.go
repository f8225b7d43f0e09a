package events

import (
	"time"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
)

// Event type constants
const (
	TypeBattleStarted  = "battle.started"
	TypeBattleEnded    = "battle.ended"
	TypeRoundStarted   = "round.started"
	TypeRoundEnded     = "round.ended"
	TypeAttackResolved = "attack.resolved"
	TypeAttackSkipped  = "attack.skipped"
	TypeUnitKilled     = "unit.killed"
)

// BattleStartedEvent is published before the first round
type BattleStartedEvent struct {
	BaseEvent
	PlayerUnits   int
	ComputerUnits int
	FieldWidth    int
	FieldHeight   int
}

// NewBattleStartedEvent creates a new BattleStartedEvent
func NewBattleStartedEvent(gameID string, playerUnits, computerUnits int, field core.Field) *BattleStartedEvent {
	return &BattleStartedEvent{
		BaseEvent:     newBase(TypeBattleStarted, gameID),
		PlayerUnits:   playerUnits,
		ComputerUnits: computerUnits,
		FieldWidth:    field.Width,
		FieldHeight:   field.Height,
	}
}

// BattleEndedEvent is published once a side is defeated or the round limit hits.
// Winner is only meaningful when Decided is true.
type BattleEndedEvent struct {
	BaseEvent
	Winner   core.Side
	Decided  bool
	Rounds   int
	Duration time.Duration
}

// NewBattleEndedEvent creates a new BattleEndedEvent
func NewBattleEndedEvent(gameID string, winner core.Side, decided bool, rounds int, duration time.Duration) *BattleEndedEvent {
	return &BattleEndedEvent{
		BaseEvent: newBase(TypeBattleEnded, gameID),
		Winner:    winner,
		Decided:   decided,
		Rounds:    rounds,
		Duration:  duration,
	}
}

// RoundStartedEvent is published at the beginning of each round
type RoundStartedEvent struct {
	BaseEvent
	Round int
}

// NewRoundStartedEvent creates a new RoundStartedEvent
func NewRoundStartedEvent(gameID string, round int) *RoundStartedEvent {
	return &RoundStartedEvent{
		BaseEvent: newBase(TypeRoundStarted, gameID),
		Round:     round,
	}
}

// RoundEndedEvent is published after the last turn of a round
type RoundEndedEvent struct {
	BaseEvent
	Round             int
	Attacks           int
	PlayerSurvivors   int
	ComputerSurvivors int
}

// NewRoundEndedEvent creates a new RoundEndedEvent
func NewRoundEndedEvent(gameID string, round, attacks, playerSurvivors, computerSurvivors int) *RoundEndedEvent {
	return &RoundEndedEvent{
		BaseEvent:         newBase(TypeRoundEnded, gameID),
		Round:             round,
		Attacks:           attacks,
		PlayerSurvivors:   playerSurvivors,
		ComputerSurvivors: computerSurvivors,
	}
}

// AttackResolvedEvent records one hit
type AttackResolvedEvent struct {
	BaseEvent
	Round        int
	Attacker     string
	AttackerSide core.Side
	Target       string
	Damage       int
	TargetHealth int
	Path         []core.Coordinate
}

// NewAttackResolvedEvent creates a new AttackResolvedEvent
func NewAttackResolvedEvent(gameID string, round int, attacker, target *core.Unit, damage int, path []core.Coordinate) *AttackResolvedEvent {
	return &AttackResolvedEvent{
		BaseEvent:    newBase(TypeAttackResolved, gameID),
		Round:        round,
		Attacker:     attacker.Name,
		AttackerSide: attacker.Side,
		Target:       target.Name,
		Damage:       damage,
		TargetHealth: target.Health,
		Path:         path,
	}
}

// AttackSkippedEvent is published when an attacker finds nothing to hit
type AttackSkippedEvent struct {
	BaseEvent
	Round        int
	Attacker     string
	AttackerSide core.Side
	Reason       string
}

// NewAttackSkippedEvent creates a new AttackSkippedEvent
func NewAttackSkippedEvent(gameID string, round int, attacker *core.Unit, reason string) *AttackSkippedEvent {
	return &AttackSkippedEvent{
		BaseEvent:    newBase(TypeAttackSkipped, gameID),
		Round:        round,
		Attacker:     attacker.Name,
		AttackerSide: attacker.Side,
		Reason:       reason,
	}
}

// UnitKilledEvent is published when a hit drops a unit to zero health
type UnitKilledEvent struct {
	BaseEvent
	Round    int
	Unit     string
	Side     core.Side
	Position core.Coordinate
	KilledBy string
}

// NewUnitKilledEvent creates a new UnitKilledEvent
func NewUnitKilledEvent(gameID string, round int, unit *core.Unit, killedBy string) *UnitKilledEvent {
	return &UnitKilledEvent{
		BaseEvent: newBase(TypeUnitKilled, gameID),
		Round:     round,
		Unit:      unit.Name,
		Side:      unit.Side,
		Position:  unit.Position,
		KilledBy:  killedBy,
	}
}
