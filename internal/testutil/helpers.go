package testutil

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}

// RandomRoster scatters n alive units (and a few dead ones) over a
// width x height grid. Cells may repeat.
func RandomRoster(rng *rand.Rand, width, height, n int) []*core.Unit {
	units := make([]*core.Unit, 0, n)
	for i := 0; i < n; i++ {
		x, y := rng.Intn(width), rng.Intn(height)
		if rng.Intn(5) == 0 {
			units = append(units, NewDeadUnitAt(fmt.Sprintf("dead %d", i), x, y))
			continue
		}
		units = append(units, NewUnitAt(fmt.Sprintf("unit %d", i), x, y))
	}
	return units
}

// AssertWalkable checks that path runs from start to goal in orthogonal
// unit steps, stays on the grid and avoids every blocked interior cell.
func AssertWalkable(t *testing.T, path []core.Coordinate, start, goal core.Coordinate, width, height int, blocked func(core.Coordinate) bool) {
	t.Helper()
	if len(path) == 0 {
		t.Fatalf("expected a path from %s to %s, got none", start, goal)
	}
	if path[0] != start {
		t.Errorf("path starts at %s, want %s", path[0], start)
	}
	if path[len(path)-1] != goal {
		t.Errorf("path ends at %s, want %s", path[len(path)-1], goal)
	}
	for i, c := range path {
		if !c.IsValid(width, height) {
			t.Errorf("step %d %s is off the %dx%d grid", i, c, width, height)
		}
		if i > 0 && !path[i-1].IsAdjacentTo(c) {
			t.Errorf("step %d: %s -> %s is not a single orthogonal move", i, path[i-1], c)
		}
		if i > 0 && i < len(path)-1 && blocked != nil && blocked(c) {
			t.Errorf("step %d: %s is occupied", i, c)
		}
	}
}
