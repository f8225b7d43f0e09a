package army

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/config"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
)

// Weights tune how prototypes are ranked for a preset
type Weights struct {
	Attack          float64
	Health          float64
	RangedModifier  float64
	MaxUnitsPerType int
}

// DefaultWeights returns the stock ranking weights
func DefaultWeights() Weights {
	return Weights{Attack: 0.6, Health: 0.4, RangedModifier: 1.2, MaxUnitsPerType: 11}
}

// WeightsFromConfig reads the ranking weights from the army config section
func WeightsFromConfig(c config.ArmyConfig) Weights {
	return Weights{
		Attack:          c.AttackWeight,
		Health:          c.HealthWeight,
		RangedModifier:  c.RangedAttackModifier,
		MaxUnitsPerType: c.MaxUnitsPerType,
	}
}

// Generator builds computer army presets within a points budget. Unit
// names are numbered by one counter across all presets it generates, so
// armies from the same generator never share a name.
type Generator struct {
	field   core.Field
	weights Weights
	rng     *rand.Rand
	counter int
	logger  zerolog.Logger
}

// NewGenerator creates a preset generator. A nil rng is seeded from the clock.
func NewGenerator(field core.Field, weights Weights, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		field:   field,
		weights: weights,
		rng:     rng,
		logger:  log.With().Str("component", "preset_generator").Logger(),
	}
}

// SetLogger overrides the component logger
func (g *Generator) SetLogger(l zerolog.Logger) {
	g.logger = l.With().Str("component", "preset_generator").Logger()
}

// WeightedPower is the cost-normalised strength used to rank prototypes
func (g *Generator) WeightedPower(p core.UnitPrototype) float64 {
	attackRatio := g.weights.Attack
	if at, err := core.ParseAttackType(string(p.AttackType)); err == nil && at == core.AttackRanged {
		attackRatio *= g.weights.RangedModifier
	}
	return (float64(p.BaseAttack)*attackRatio + float64(p.Health)*g.weights.Health) / float64(p.Cost)
}

// Generate fills maxPoints greedily with the strongest prototypes first, at
// most MaxUnitsPerType of each, placing units on random free cells of the
// side's deployment zone. The input slice is not reordered.
// Attack types are normalised on the generator's copy.
func (g *Generator) Generate(prototypes []core.UnitPrototype, maxPoints int, side core.Side) (*Army, error) {
	if len(prototypes) == 0 {
		return nil, core.ErrNoUnits
	}
	if maxPoints < 0 {
		return nil, fmt.Errorf("max points %d: %w", maxPoints, core.ErrInvalidBudget)
	}
	ranked := make([]core.UnitPrototype, len(prototypes))
	for i, p := range prototypes {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		at, err := core.ParseAttackType(string(p.AttackType))
		if err != nil {
			return nil, fmt.Errorf("prototype %q: %w", p.Name, err)
		}
		p.AttackType = at
		ranked[i] = p
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return g.WeightedPower(ranked[i]) > g.WeightedPower(ranked[j])
	})

	cells := g.field.DeploymentCells(side)
	g.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	a := &Army{Side: side}
	placed := 0

fill:
	for _, proto := range ranked {
		count := (maxPoints - a.Points) / proto.Cost
		if count > g.weights.MaxUnitsPerType {
			count = g.weights.MaxUnitsPerType
		}
		for i := 0; i < count; i++ {
			if placed >= len(cells) {
				g.logger.Warn().
					Int("cells", len(cells)).
					Int("points_spent", a.Points).
					Int("max_points", maxPoints).
					Msg("Deployment zone full, preset truncated")
				break fill
			}
			name := fmt.Sprintf("%s %d", proto.Name, g.counter)
			a.Units = append(a.Units, core.NewUnit(proto, name, cells[placed], side))
			a.Points += proto.Cost
			placed++
			g.counter++
		}
		g.logger.Debug().
			Str("unit", proto.Name).
			Int("count", count).
			Float64("power", g.WeightedPower(proto)).
			Msg("Prototype added to preset")
	}

	g.logger.Info().
		Str("side", side.String()).
		Int("units", len(a.Units)).
		Int("points", a.Points).
		Msg("Army preset generated")
	return a, nil
}
