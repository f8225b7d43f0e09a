package battle

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/pathfinding"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/targets"
)

// Attack is the target an attacker settled on for one turn. Path is the
// route to the target for melee units and nil for ranged ones.
type Attack struct {
	Target *core.Unit
	Path   []core.Coordinate
}

// AttackProgram decides whom an attacker hits. A nil Attack means the
// attacker passes this turn.
type AttackProgram interface {
	Attack(ctx context.Context, attacker *core.Unit, allies, enemies []*core.Unit) (*Attack, error)
}

// AttackProgramFunc adapts a function to AttackProgram
type AttackProgramFunc func(ctx context.Context, attacker *core.Unit, allies, enemies []*core.Unit) (*Attack, error)

// Attack implements AttackProgram
func (f AttackProgramFunc) Attack(ctx context.Context, attacker *core.Unit, allies, enemies []*core.Unit) (*Attack, error) {
	return f(ctx, attacker, allies, enemies)
}

// TargetingProgram is the default computer behaviour. Ranged units shoot
// the weakest living enemy. Melee units walk to the closest exposed enemy
// they can reach, breaking ties on health and then name.
type TargetingProgram struct {
	paths    *pathfinding.PathFinder
	targets  *targets.Finder
	parallel bool
	logger   zerolog.Logger
}

// NewTargetingProgram creates the default attack program
func NewTargetingProgram(paths *pathfinding.PathFinder, finder *targets.Finder, parallel bool) *TargetingProgram {
	return &TargetingProgram{
		paths:    paths,
		targets:  finder,
		parallel: parallel,
		logger:   log.With().Str("component", "targeting").Logger(),
	}
}

// SetLogger overrides the component logger
func (p *TargetingProgram) SetLogger(l zerolog.Logger) {
	p.logger = l.With().Str("component", "targeting").Logger()
}

// Attack implements AttackProgram
func (p *TargetingProgram) Attack(ctx context.Context, attacker *core.Unit, allies, enemies []*core.Unit) (*Attack, error) {
	if attacker == nil {
		return nil, core.ErrNilUnit
	}
	candidates := p.targets.ForAttacker(attacker, enemies)
	if len(candidates) == 0 {
		return nil, nil
	}

	if attacker.IsRanged() {
		sortByHealth(candidates)
		return &Attack{Target: candidates[0]}, nil
	}

	roster := make([]*core.Unit, 0, len(allies)+len(enemies))
	roster = append(roster, allies...)
	roster = append(roster, enemies...)

	paths, err := p.candidatePaths(ctx, attacker, candidates, roster)
	if err != nil {
		return nil, err
	}

	var best *Attack
	for i, target := range candidates {
		path := paths[i]
		if len(path) == 0 {
			continue
		}
		if best == nil || closer(path, target, best) {
			best = &Attack{Target: target, Path: path}
		}
	}

	if best == nil {
		p.logger.Debug().
			Str("attacker", attacker.Name).
			Int("candidates", len(candidates)).
			Msg("No candidate reachable")
	}
	return best, nil
}

// candidatePaths runs one path search per candidate. Searches share only the
// read-only roster so they may run concurrently.
func (p *TargetingProgram) candidatePaths(ctx context.Context, attacker *core.Unit, candidates, roster []*core.Unit) ([][]core.Coordinate, error) {
	paths := make([][]core.Coordinate, len(candidates))

	if !p.parallel || len(candidates) == 1 {
		for i, target := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			path, err := p.paths.FindUnitPath(attacker, target, roster)
			if err != nil {
				return nil, err
			}
			paths[i] = path
		}
		return paths, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, target := range candidates {
		i, target := i, target
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := p.paths.FindUnitPath(attacker, target, roster)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func closer(path []core.Coordinate, target *core.Unit, best *Attack) bool {
	if len(path) != len(best.Path) {
		return len(path) < len(best.Path)
	}
	if target.Health != best.Target.Health {
		return target.Health < best.Target.Health
	}
	return target.Name < best.Target.Name
}

func sortByHealth(units []*core.Unit) {
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].Health != units[j].Health {
			return units[i].Health < units[j].Health
		}
		return units[i].Name < units[j].Name
	})
}
