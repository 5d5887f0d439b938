package forage

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds reports a coordinate outside the grid.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrCellOccupied reports a cell that already holds the requested occupant kind.
	ErrCellOccupied = errors.New("cell occupied")
	// ErrPlacementExhausted reports that random placement ran out of attempts.
	ErrPlacementExhausted = errors.New("no free cell found")
	// ErrInvalidValue reports a resource value outside 1..MaxValue.
	ErrInvalidValue = errors.New("invalid resource value")
	// ErrUnknownAgent reports an agent id that was never placed.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrInvalidConfig reports a configuration that cannot produce a world.
	ErrInvalidConfig = errors.New("invalid config")
)

// PlacementError is returned when an agent or resource cannot be placed.
type PlacementError struct {
	Kind     string
	Pos      Pos
	Attempts int
	Err      error
}

func (e *PlacementError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("place %s: %v after %d attempts", e.Kind, e.Err, e.Attempts)
	}
	return fmt.Sprintf("place %s at %v: %v", e.Kind, e.Pos, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// IllegalMoveError is returned when a move targets a cell the agent may not enter.
type IllegalMoveError struct {
	AgentID int
	From    Pos
	To      Pos
	Err     error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("move agent %d from %v to %v: %v", e.AgentID, e.From, e.To, e.Err)
}

func (e *IllegalMoveError) Unwrap() error { return e.Err }
