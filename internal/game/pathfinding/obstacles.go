package pathfinding

import "github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"

// Obstacles is a flat occupancy grid of impassable cells.
type Obstacles struct {
	width, height int
	blocked       []bool
	count         int
}

// NewObstacles returns an empty width x height occupancy grid
func NewObstacles(width, height int) *Obstacles {
	return &Obstacles{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
	}
}

// ObstaclesFromUnits marks the cells of every alive unit, except the
// exempt cells (the attacker's and the target's own positions).
// Units standing outside the grid cannot block anything and are ignored.
func ObstaclesFromUnits(width, height int, units []*core.Unit, exempt ...core.Coordinate) *Obstacles {
	o := NewObstacles(width, height)
	for _, u := range units {
		if !u.IsAlive() {
			continue
		}
		o.Block(u.Position)
	}
	for _, c := range exempt {
		o.Clear(c)
	}
	return o
}

// Block marks c as impassable. It returns false when c is off the grid.
func (o *Obstacles) Block(c core.Coordinate) bool {
	if !c.IsValid(o.width, o.height) {
		return false
	}
	idx := c.ToIndex(o.width)
	if !o.blocked[idx] {
		o.blocked[idx] = true
		o.count++
	}
	return true
}

// Clear makes c passable again
func (o *Obstacles) Clear(c core.Coordinate) {
	if !c.IsValid(o.width, o.height) {
		return
	}
	idx := c.ToIndex(o.width)
	if o.blocked[idx] {
		o.blocked[idx] = false
		o.count--
	}
}

// IsBlocked reports whether c is an obstacle. Off-grid cells are not obstacles.
func (o *Obstacles) IsBlocked(c core.Coordinate) bool {
	if o == nil || !c.IsValid(o.width, o.height) {
		return false
	}
	return o.blocked[c.ToIndex(o.width)]
}

func (o *Obstacles) blockedAt(idx int) bool {
	return o != nil && o.blocked[idx]
}

// Len returns the number of blocked cells
func (o *Obstacles) Len() int {
	if o == nil {
		return 0
	}
	return o.count
}

// Cells lists blocked cells in row-major order
func (o *Obstacles) Cells() []core.Coordinate {
	if o == nil {
		return nil
	}
	out := make([]core.Coordinate, 0, o.count)
	for i, b := range o.blocked {
		if b {
			out = append(out, core.FromIndex(i, o.width))
		}
	}
	return out
}
