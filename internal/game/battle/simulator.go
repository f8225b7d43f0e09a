package battle

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/army"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/events"
)

// DefaultMaxRounds bounds battles where neither side can reach the other
const DefaultMaxRounds = 200

// Result summarises a finished battle. Winner is only meaningful when
// Decided is true.
type Result struct {
	BattleID          string
	Winner            core.Side
	Decided           bool
	Rounds            int
	Attacks           int
	PlayerSurvivors   []*core.Unit
	ComputerSurvivors []*core.Unit
	Duration          time.Duration
}

// Simulator runs battles between a player and a computer army
type Simulator struct {
	field     core.Field
	program   AttackProgram
	publisher events.Publisher
	maxRounds int
	newID     func() string
	logger    zerolog.Logger
}

// Option configures a Simulator
type Option func(*Simulator)

// WithPublisher routes battle events to p
func WithPublisher(p events.Publisher) Option {
	return func(s *Simulator) { s.publisher = p }
}

// WithMaxRounds caps the number of rounds. Non-positive values are ignored.
func WithMaxRounds(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.maxRounds = n
		}
	}
}

// WithLogger sets the simulator logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulator) { s.logger = l.With().Str("component", "battle_simulator").Logger() }
}

// WithIDGenerator replaces the battle ID source
func WithIDGenerator(gen func() string) Option {
	return func(s *Simulator) { s.newID = gen }
}

// NewSimulator creates a simulator that asks program for every attack
func NewSimulator(field core.Field, program AttackProgram, opts ...Option) *Simulator {
	s := &Simulator{
		field:     field,
		program:   program,
		publisher: events.NopPublisher,
		maxRounds: DefaultMaxRounds,
		newID:     uuid.NewString,
		logger:    log.With().Str("component", "battle_simulator").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate fights player against computer until one side has no living
// units or the round limit is reached. Units are mutated in place.
func (s *Simulator) Simulate(ctx context.Context, player, computer *army.Army) (*Result, error) {
	if player == nil || computer == nil {
		return nil, core.ErrNilArmy
	}

	b := &battleRun{
		Simulator: s,
		id:        s.newID(),
		player:    player,
		computer:  computer,
	}
	started := time.Now()
	s.logger.Info().
		Str("battle_id", b.id).
		Int("player_units", len(player.Survivors())).
		Int("computer_units", len(computer.Survivors())).
		Msg("Battle started")
	s.publisher.Publish(events.NewBattleStartedEvent(b.id, len(player.Survivors()), len(computer.Survivors()), s.field))

	for b.round < s.maxRounds && !player.Defeated() && !computer.Defeated() {
		b.round++
		if err := b.playRound(ctx); err != nil {
			s.logger.Warn().Err(err).Str("battle_id", b.id).Msg("Battle stopped")
			return nil, err
		}
	}

	res := &Result{
		BattleID:          b.id,
		Rounds:            b.round,
		Attacks:           b.attacks,
		PlayerSurvivors:   player.Survivors(),
		ComputerSurvivors: computer.Survivors(),
		Duration:          time.Since(started),
	}
	switch {
	case computer.Defeated() && !player.Defeated():
		res.Winner, res.Decided = player.Side, true
	case player.Defeated() && !computer.Defeated():
		res.Winner, res.Decided = computer.Side, true
	}

	s.publisher.Publish(events.NewBattleEndedEvent(b.id, res.Winner, res.Decided, res.Rounds, res.Duration))
	winner := "none"
	if res.Decided {
		winner = res.Winner.String()
	}
	s.logger.Info().
		Str("battle_id", b.id).
		Str("winner", winner).
		Int("rounds", res.Rounds).
		Int("attacks", res.Attacks).
		Msg("Battle finished")
	return res, nil
}

// battleRun holds the state of a single Simulate call
type battleRun struct {
	*Simulator
	id       string
	player   *army.Army
	computer *army.Army
	round    int
	attacks  int
}

func (b *battleRun) playRound(ctx context.Context) error {
	b.publisher.Publish(events.NewRoundStartedEvent(b.id, b.round))
	before := b.attacks

	playerQueue := attackQueue(b.player.Survivors())
	computerQueue := attackQueue(b.computer.Survivors())

	for len(playerQueue) > 0 || len(computerQueue) > 0 {
		if len(playerQueue) > 0 {
			if err := b.turn(ctx, playerQueue[0], b.player, b.computer); err != nil {
				return err
			}
			playerQueue = playerQueue[1:]
		}
		if len(computerQueue) > 0 {
			if err := b.turn(ctx, computerQueue[0], b.computer, b.player); err != nil {
				return err
			}
			computerQueue = computerQueue[1:]
		}
	}

	b.publisher.Publish(events.NewRoundEndedEvent(b.id, b.round, b.attacks-before,
		len(b.player.Survivors()), len(b.computer.Survivors())))
	return nil
}

func (b *battleRun) turn(ctx context.Context, attacker *core.Unit, allies, enemies *army.Army) error {
	if err := ctx.Err(); err != nil {
		return core.NewBattleError(b.round, "turn", fmt.Errorf("%w: %v", core.ErrBattleAborted, err))
	}
	// Killed earlier this round
	if !attacker.IsAlive() || enemies.Defeated() {
		return nil
	}

	atk, err := b.program.Attack(ctx, attacker, allies.Units, enemies.Units)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %v", core.ErrBattleAborted, err)
		}
		return core.NewBattleError(b.round, "attack", core.WrapUnitError(attacker, "select target", err))
	}
	if atk == nil || !atk.Target.IsAlive() {
		b.publisher.Publish(events.NewAttackSkippedEvent(b.id, b.round, attacker, "no reachable target"))
		return nil
	}

	target := atk.Target
	damage := Damage(attacker, target)
	killed := target.TakeDamage(damage)
	b.attacks++

	b.logger.Debug().
		Str("battle_id", b.id).
		Int("round", b.round).
		Str("attacker", attacker.Name).
		Str("target", target.Name).
		Int("damage", damage).
		Int("target_health", target.Health).
		Msg("Attack resolved")
	b.publisher.Publish(events.NewAttackResolvedEvent(b.id, b.round, attacker, target, damage, atk.Path))
	if killed {
		b.publisher.Publish(events.NewUnitKilledEvent(b.id, b.round, target, attacker.Name))
	}
	return nil
}

// attackQueue orders units by base attack, strongest first, keeping roster
// order among equals
func attackQueue(units []*core.Unit) []*core.Unit {
	queue := make([]*core.Unit, len(units))
	copy(queue, units)
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].BaseAttack > queue[j].BaseAttack
	})
	return queue
}
