package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapCellError(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		cell     Coordinate
		err      error
		expected string
		isNil    bool
	}{
		{
			name:  "nil error returns nil",
			role:  "start",
			cell:  Coordinate{1, 1},
			isNil: true,
		},
		{
			name:     "start out of bounds",
			role:     "start",
			cell:     Coordinate{-1, 4},
			err:      ErrInvalidCoordinates,
			expected: "start cell (-1,4): invalid coordinates",
		},
		{
			name:     "target out of bounds",
			role:     "target",
			cell:     Coordinate{30, 2},
			err:      ErrInvalidCoordinates,
			expected: "target cell (30,2): invalid coordinates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapCellError(tt.role, tt.cell, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapUnitError(t *testing.T) {
	u := &Unit{Name: "Archer 3"}

	assert.Nil(t, WrapUnitError(u, "attack", nil))

	err := WrapUnitError(u, "find path", ErrInvalidCoordinates)
	assert.Equal(t, `unit "Archer 3" find path: invalid coordinates`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	err = WrapUnitError(nil, "find path", ErrNilUnit)
	assert.Equal(t, "find path: nil unit", err.Error())
}

func TestBattleError(t *testing.T) {
	err := NewBattleError(4, "resolve attack", ErrBattleAborted)
	assert.Equal(t, "round 4: resolve attack: battle aborted", err.Error())
	assert.True(t, errors.Is(err, ErrBattleAborted))

	var extracted *BattleError
	wrapped := fmt.Errorf("simulate: %w", err)
	require.True(t, errors.As(wrapped, &extracted))
	assert.Equal(t, 4, extracted.Round)
	assert.Equal(t, "resolve attack", extracted.Operation)
}
