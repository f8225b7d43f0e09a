// Package pathfinding computes shortest walkable routes between two units on
// the battlefield grid. Movement is 4-directional with unit step cost, and
// every alive unit other than the attacker and the target blocks its cell.
package pathfinding

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
)

const (
	stepCost  = 1
	unreached = math.MaxInt
	noParent  = -1
)

// PathFinder runs Dijkstra searches over a fixed-size grid.
// It holds no per-search state, so one instance may serve concurrent callers.
type PathFinder struct {
	width  int
	height int
	logger zerolog.Logger
}

// Option configures a PathFinder
type Option func(*PathFinder)

// WithLogger overrides the component logger
func WithLogger(l zerolog.Logger) Option {
	return func(pf *PathFinder) {
		pf.logger = l.With().Str("component", "path_finder").Logger()
	}
}

// NewPathFinder creates a path finder for a width x height grid
func NewPathFinder(width, height int, opts ...Option) (*PathFinder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", width, height, core.ErrInvalidDimensions)
	}
	pf := &PathFinder{
		width:  width,
		height: height,
		logger: log.With().Str("component", "path_finder").Logger(),
	}
	for _, opt := range opts {
		opt(pf)
	}
	return pf, nil
}

// NewForField creates a path finder sized to the battlefield
func NewForField(f core.Field, opts ...Option) (*PathFinder, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return NewPathFinder(f.Width, f.Height, opts...)
}

func (pf *PathFinder) Width() int  { return pf.width }
func (pf *PathFinder) Height() int { return pf.height }

// FindUnitPath returns the shortest route from attacker to target around
// every other alive unit in units.
func (pf *PathFinder) FindUnitPath(attacker, target *core.Unit, units []*core.Unit) ([]core.Coordinate, error) {
	if attacker == nil || target == nil {
		return nil, core.WrapUnitError(attacker, "find path", core.ErrNilUnit)
	}
	path, err := pf.FindPath(attacker.Position, target.Position, units)
	if err != nil {
		return nil, core.WrapUnitError(attacker, "find path", err)
	}
	return path, nil
}

// FindPath returns the cells from attacker to target inclusive along a
// minimum-hop route. Cells of alive units block movement unless they are
// the attacker's or target's own cell. An empty path means the target
// cannot be reached; it is not an error.
func (pf *PathFinder) FindPath(attacker, target core.Coordinate, units []*core.Unit) ([]core.Coordinate, error) {
	if err := pf.checkEndpoints(attacker, target); err != nil {
		return nil, err
	}
	if attacker == target {
		return []core.Coordinate{attacker}, nil
	}
	obstacles := ObstaclesFromUnits(pf.width, pf.height, units, attacker, target)
	return pf.search(attacker, target, obstacles), nil
}

// ShortestPath searches around a prebuilt obstacle grid. The start and goal
// cells are passable even if obstacles marks them.
func (pf *PathFinder) ShortestPath(start, goal core.Coordinate, obstacles *Obstacles) ([]core.Coordinate, error) {
	if err := pf.checkEndpoints(start, goal); err != nil {
		return nil, err
	}
	if obstacles != nil && (obstacles.width != pf.width || obstacles.height != pf.height) {
		return nil, fmt.Errorf("obstacles %dx%d on grid %dx%d: %w",
			obstacles.width, obstacles.height, pf.width, pf.height, core.ErrInvalidDimensions)
	}
	if start == goal {
		return []core.Coordinate{start}, nil
	}
	return pf.search(start, goal, obstacles), nil
}

func (pf *PathFinder) checkEndpoints(start, goal core.Coordinate) error {
	if !start.IsValid(pf.width, pf.height) {
		return core.WrapCellError("start", start, core.ErrInvalidCoordinates)
	}
	if !goal.IsValid(pf.width, pf.height) {
		return core.WrapCellError("target", goal, core.ErrInvalidCoordinates)
	}
	return nil
}

func (pf *PathFinder) search(start, goal core.Coordinate, obstacles *Obstacles) []core.Coordinate {
	n := pf.width * pf.height
	dist := make([]int, n)
	prev := make([]int, n)
	finalized := make([]bool, n)
	for i := range dist {
		dist[i] = unreached
		prev[i] = noParent
	}

	startIdx := start.ToIndex(pf.width)
	goalIdx := goal.ToIndex(pf.width)
	dist[startIdx] = 0

	fr := &frontier{{idx: startIdx, dist: 0}}
	expanded := 0
	found := false

	for fr.Len() > 0 {
		cur := heap.Pop(fr).(frontierEntry)
		if finalized[cur.idx] || cur.dist > dist[cur.idx] {
			continue
		}
		finalized[cur.idx] = true
		expanded++

		if cur.idx == goalIdx {
			found = true
			break
		}

		for _, nb := range core.FromIndex(cur.idx, pf.width).Neighbors() {
			if !nb.IsValid(pf.width, pf.height) {
				continue
			}
			ni := nb.ToIndex(pf.width)
			if finalized[ni] || (ni != goalIdx && obstacles.blockedAt(ni)) {
				continue
			}
			nd := dist[cur.idx] + stepCost
			if nd < dist[ni] {
				dist[ni] = nd
				prev[ni] = cur.idx
				heap.Push(fr, frontierEntry{idx: ni, dist: nd})
			}
		}
	}

	if !found {
		pf.logger.Debug().
			Str("start", start.String()).
			Str("goal", goal.String()).
			Int("obstacles", obstacles.Len()).
			Int("expanded", expanded).
			Msg("Target unreachable")
		return []core.Coordinate{}
	}

	return pf.reconstruct(prev, startIdx, goalIdx, dist[goalIdx])
}

// reconstruct walks predecessor links from goal back to start
func (pf *PathFinder) reconstruct(prev []int, startIdx, goalIdx, steps int) []core.Coordinate {
	path := make([]core.Coordinate, steps+1)
	idx := goalIdx
	for i := steps; i >= 0; i-- {
		if idx == noParent {
			panic(fmt.Sprintf("pathfinding: broken predecessor chain at step %d of %d", i, steps))
		}
		path[i] = core.FromIndex(idx, pf.width)
		idx = prev[idx]
	}
	if path[0].ToIndex(pf.width) != startIdx {
		panic(fmt.Sprintf("pathfinding: path starts at %s, not at the search origin", path[0]))
	}
	return path
}
