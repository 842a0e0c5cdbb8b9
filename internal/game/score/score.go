// Package score turns a completed level run into points.
package score

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for inputs outside the documented domain.
var ErrInvalidInput = errors.New("score: invalid input")

// Scoring weights. Harder levels are worth far more than the per-run
// penalties so progression always beats grinding early levels.
const (
	basePerLevel     = 1000
	penaltyPerMove   = 10
	penaltyPerSecond = 2
)

// ComputePoints returns the points for one winning run: level*1000 minus
// 10 per move and 2 per elapsed second, floored at zero. Level and moves
// must be at least 1; elapsed seconds must be non-negative.
func ComputePoints(lvl, moves, elapsedSeconds int) (int, error) {
	if lvl < 1 {
		return 0, fmt.Errorf("%w: level %d", ErrInvalidInput, lvl)
	}
	if moves < 1 {
		return 0, fmt.Errorf("%w: moves %d", ErrInvalidInput, moves)
	}
	if elapsedSeconds < 0 {
		return 0, fmt.Errorf("%w: elapsed seconds %d", ErrInvalidInput, elapsedSeconds)
	}

	points := lvl*basePerLevel - (moves*penaltyPerMove + elapsedSeconds*penaltyPerSecond)
	if points < 0 {
		points = 0
	}
	return points, nil
}
