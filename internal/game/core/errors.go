package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidDimensions  = errors.New("invalid field dimensions")
	ErrNoUnits            = errors.New("no unit prototypes")
	ErrInvalidCost        = errors.New("unit cost must be positive")
	ErrInvalidBudget      = errors.New("points budget must not be negative")
	ErrUnknownAttackType  = errors.New("unknown attack type")
	ErrBattleAborted      = errors.New("battle aborted")
	ErrNilUnit            = errors.New("nil unit")
	ErrNilArmy            = errors.New("nil army")
	ErrUnknownSide        = errors.New("unknown side")
)

// WrapCellError annotates err with the cell it refers to
func WrapCellError(role string, c Coordinate, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s cell %s: %w", role, c, err)
}

// WrapUnitError annotates err with the unit name and operation
func WrapUnitError(u *Unit, operation string, err error) error {
	if err == nil {
		return nil
	}
	if u == nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return fmt.Errorf("unit %q %s: %w", u.Name, operation, err)
}

// BattleError carries the round in which a battle step failed
type BattleError struct {
	Round     int
	Operation string
	Err       error
}

func (e *BattleError) Error() string {
	return fmt.Sprintf("round %d: %s: %v", e.Round, e.Operation, e.Err)
}

func (e *BattleError) Unwrap() error {
	return e.Err
}

// NewBattleError creates a BattleError
func NewBattleError(round int, operation string, err error) *BattleError {
	return &BattleError{Round: round, Operation: operation, Err: err}
}
