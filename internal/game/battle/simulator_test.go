package battle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/army"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/events"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/pathfinding"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/targets"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/testutil"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) Publish(e events.Event) { r.events = append(r.events, e) }

func (r *recorder) types() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

func newArmy(side core.Side, units ...*core.Unit) *army.Army {
	a := &army.Army{Side: side, Units: units}
	for _, u := range units {
		a.Points += u.Cost
	}
	return a
}

func defaultProgram(t *testing.T, parallel bool) *TargetingProgram {
	t.Helper()
	field := core.DefaultField()
	pf, err := pathfinding.NewForField(field, pathfinding.WithLogger(testutil.NopLogger()))
	require.NoError(t, err)
	p := NewTargetingProgram(pf, targets.NewFinder(field), parallel)
	p.SetLogger(testutil.NopLogger())
	return p
}

func fixedID() string { return "battle-test" }

func TestSimulate_Duel(t *testing.T) {
	rec := &recorder{}
	sim := NewSimulator(core.DefaultField(), defaultProgram(t, false),
		WithPublisher(rec), WithIDGenerator(fixedID), WithLogger(testutil.NopLogger()))

	player := newArmy(core.SideLeft, testutil.PlaceArmy(testutil.Knight, core.SideLeft, core.NewCoordinate(2, 0))...)
	computer := newArmy(core.SideRight, testutil.PlaceArmy(testutil.Swordsman, core.SideRight, core.NewCoordinate(24, 0))...)

	res, err := sim.Simulate(context.Background(), player, computer)
	require.NoError(t, err)

	assert.Equal(t, "battle-test", res.BattleID)
	assert.True(t, res.Decided)
	assert.Equal(t, core.SideLeft, res.Winner)
	assert.Equal(t, 2, res.Rounds)
	assert.Equal(t, 3, res.Attacks)
	require.Len(t, res.PlayerSurvivors, 1)
	assert.Equal(t, 80, res.PlayerSurvivors[0].Health)
	assert.Empty(t, res.ComputerSurvivors)

	assert.Equal(t, []string{
		events.TypeBattleStarted,
		events.TypeRoundStarted,
		events.TypeAttackResolved,
		events.TypeAttackResolved,
		events.TypeRoundEnded,
		events.TypeRoundStarted,
		events.TypeAttackResolved,
		events.TypeUnitKilled,
		events.TypeRoundEnded,
		events.TypeBattleEnded,
	}, rec.types())

	first := rec.events[2].(*events.AttackResolvedEvent)
	assert.Equal(t, "Knight 0", first.Attacker)
	assert.Equal(t, "Swordsman 0", first.Target)
	assert.Equal(t, 40, first.Damage)
	assert.Len(t, first.Path, 23)

	ended := rec.events[len(rec.events)-1].(*events.BattleEndedEvent)
	assert.True(t, ended.Decided)
	assert.Equal(t, 2, ended.Rounds)
}

func TestSimulate_RoundLimit(t *testing.T) {
	rec := &recorder{}
	passive := AttackProgramFunc(func(ctx context.Context, attacker *core.Unit, allies, enemies []*core.Unit) (*Attack, error) {
		return nil, nil
	})
	sim := NewSimulator(core.DefaultField(), passive,
		WithPublisher(rec), WithMaxRounds(4), WithLogger(testutil.NopLogger()))

	player := newArmy(core.SideLeft, testutil.PlaceArmy(testutil.Swordsman, core.SideLeft, core.NewCoordinate(0, 0))...)
	computer := newArmy(core.SideRight, testutil.PlaceArmy(testutil.Archer, core.SideRight, core.NewCoordinate(26, 20))...)

	res, err := sim.Simulate(context.Background(), player, computer)
	require.NoError(t, err)
	assert.False(t, res.Decided)
	assert.Equal(t, 4, res.Rounds)
	assert.Zero(t, res.Attacks)
	assert.Len(t, res.PlayerSurvivors, 1)
	assert.Len(t, res.ComputerSurvivors, 1)

	skipped := 0
	for _, e := range rec.events {
		if e.Type() == events.TypeAttackSkipped {
			skipped++
		}
	}
	assert.Equal(t, 8, skipped)
	assert.NotEmpty(t, res.BattleID, "default IDs come from uuid")
}

func TestSimulate_QueueOrder(t *testing.T) {
	var order []string
	record := AttackProgramFunc(func(ctx context.Context, attacker *core.Unit, allies, enemies []*core.Unit) (*Attack, error) {
		order = append(order, attacker.Name)
		return nil, nil
	})
	sim := NewSimulator(core.DefaultField(), record, WithMaxRounds(1), WithLogger(testutil.NopLogger()))

	player := newArmy(core.SideLeft,
		core.NewUnit(testutil.Swordsman, "P Swordsman", core.NewCoordinate(2, 0), core.SideLeft),
		core.NewUnit(testutil.Knight, "P Knight", core.NewCoordinate(2, 1), core.SideLeft),
		core.NewUnit(testutil.Swordsman, "P Swordsman 2", core.NewCoordinate(2, 2), core.SideLeft),
	)
	computer := newArmy(core.SideRight,
		core.NewUnit(testutil.Archer, "C Archer", core.NewCoordinate(24, 0), core.SideRight),
	)

	_, err := sim.Simulate(context.Background(), player, computer)
	require.NoError(t, err)
	assert.Equal(t, []string{"P Knight", "C Archer", "P Swordsman", "P Swordsman 2"}, order)
}

func TestSimulate_DeadAttackersSkipped(t *testing.T) {
	// The knight strikes first and kills the weakened archer before its turn
	archer := core.NewUnit(testutil.Archer, "Archer 0", core.NewCoordinate(24, 3), core.SideRight)
	archer.Health = 5

	var attackers []string
	program := defaultProgram(t, false)
	spy := AttackProgramFunc(func(ctx context.Context, attacker *core.Unit, allies, enemies []*core.Unit) (*Attack, error) {
		attackers = append(attackers, attacker.Name)
		return program.Attack(ctx, attacker, allies, enemies)
	})
	sim := NewSimulator(core.DefaultField(), spy, WithLogger(testutil.NopLogger()))

	player := newArmy(core.SideLeft, testutil.PlaceArmy(testutil.Knight, core.SideLeft, core.NewCoordinate(2, 3))...)
	computer := newArmy(core.SideRight, archer)

	res, err := sim.Simulate(context.Background(), player, computer)
	require.NoError(t, err)
	assert.Equal(t, []string{"Knight 0"}, attackers)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, core.SideLeft, res.Winner)
}

func TestSimulate_Errors(t *testing.T) {
	player := func() *army.Army {
		return newArmy(core.SideLeft, testutil.PlaceArmy(testutil.Swordsman, core.SideLeft, core.NewCoordinate(2, 0))...)
	}
	computer := func() *army.Army {
		return newArmy(core.SideRight, testutil.PlaceArmy(testutil.Swordsman, core.SideRight, core.NewCoordinate(24, 0))...)
	}

	t.Run("nil army", func(t *testing.T) {
		sim := NewSimulator(core.DefaultField(), defaultProgram(t, false), WithLogger(testutil.NopLogger()))
		_, err := sim.Simulate(context.Background(), nil, computer())
		assert.ErrorIs(t, err, core.ErrNilArmy)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sim := NewSimulator(core.DefaultField(), defaultProgram(t, true), WithLogger(testutil.NopLogger()))

		_, err := sim.Simulate(ctx, player(), computer())
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrBattleAborted)

		var be *core.BattleError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, 1, be.Round)
		assert.Equal(t, "turn", be.Operation)
	})

	t.Run("program failure", func(t *testing.T) {
		boom := errors.New("boom")
		failing := AttackProgramFunc(func(ctx context.Context, attacker *core.Unit, allies, enemies []*core.Unit) (*Attack, error) {
			return nil, boom
		})
		sim := NewSimulator(core.DefaultField(), failing, WithLogger(testutil.NopLogger()))

		_, err := sim.Simulate(context.Background(), player(), computer())
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), `round 1: attack: unit "Swordsman 0" select target: boom`)
	})
}

func TestSimulate_GeneratedArmies(t *testing.T) {
	field := core.DefaultField()
	gen := army.NewGenerator(field, army.DefaultWeights(), testutil.NewTestRNG(7))
	gen.SetLogger(testutil.NopLogger())

	player, err := gen.Generate(testutil.Prototypes(), 400, core.SideLeft)
	require.NoError(t, err)
	computer, err := gen.Generate(testutil.Prototypes(), 400, core.SideRight)
	require.NoError(t, err)

	for _, parallel := range []bool{false, true} {
		sim := NewSimulator(field, defaultProgram(t, parallel), WithLogger(testutil.NopLogger()))
		p, c := cloneArmy(player), cloneArmy(computer)

		res, err := sim.Simulate(context.Background(), p, c)
		require.NoError(t, err)
		assert.True(t, res.Decided, "open field battles always finish")
		assert.LessOrEqual(t, res.Rounds, DefaultMaxRounds)
		assert.True(t, p.Defeated() != c.Defeated())
	}
}

func cloneArmy(a *army.Army) *army.Army {
	out := &army.Army{Side: a.Side, Points: a.Points}
	for _, u := range a.Units {
		c := *u
		out.Units = append(out.Units, &c)
	}
	return out
}
