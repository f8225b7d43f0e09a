package core

import (
	"fmt"
	"strings"
)

// Default battlefield dimensions
const (
	DefaultFieldWidth  = 27
	DefaultFieldHeight = 21
	DefaultArmyLayers  = 3
)

// Side identifies which edge of the field an army is deployed on
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide accepts "left" or "right" in any case
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	}
	return SideLeft, fmt.Errorf("%q: %w", s, ErrUnknownSide)
}

// Opponent returns the other side of the field
func (s Side) Opponent() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Field describes the battlefield grid.
// Each army occupies Layers columns at its own edge; layer 0 is the column
// on the edge and layer Layers-1 faces the enemy.
type Field struct {
	Width  int
	Height int
	Layers int
}

// DefaultField returns the standard 27x21 field with three layers per side
func DefaultField() Field {
	return Field{Width: DefaultFieldWidth, Height: DefaultFieldHeight, Layers: DefaultArmyLayers}
}

// Validate checks that the field can hold two non-overlapping armies
func (f Field) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("field %dx%d: %w", f.Width, f.Height, ErrInvalidDimensions)
	}
	if f.Layers <= 0 || 2*f.Layers > f.Width {
		return fmt.Errorf("field %dx%d with %d layers: %w", f.Width, f.Height, f.Layers, ErrInvalidDimensions)
	}
	return nil
}

// Contains reports whether c is on the field
func (f Field) Contains(c Coordinate) bool {
	return c.IsValid(f.Width, f.Height)
}

// Cells returns the number of cells on the field
func (f Field) Cells() int {
	return f.Width * f.Height
}

// LayerColumn returns the column of the given layer for an army on side
func (f Field) LayerColumn(side Side, layer int) int {
	if side == SideLeft {
		return layer
	}
	return f.Width - 1 - layer
}

// LayerOf returns the layer index of column x for an army on side.
// ok is false when the column is outside that army's deployment zone.
func (f Field) LayerOf(side Side, x int) (layer int, ok bool) {
	if side == SideLeft {
		layer = x
	} else {
		layer = f.Width - 1 - x
	}
	return layer, layer >= 0 && layer < f.Layers
}

// DeploymentCells lists every cell of side's deployment zone, layer by layer
func (f Field) DeploymentCells(side Side) []Coordinate {
	cells := make([]Coordinate, 0, f.Layers*f.Height)
	for layer := 0; layer < f.Layers; layer++ {
		x := f.LayerColumn(side, layer)
		for y := 0; y < f.Height; y++ {
			cells = append(cells, Coordinate{X: x, Y: y})
		}
	}
	return cells
}
