package engine

import (
	"context"
	"fmt"
)

// MaxHumanSpeed caps how fast a human racer can go
const MaxHumanSpeed = 3

// Human is driven by directions requested from an InputProvider. Holding the
// same heading on consecutive moves accelerates the car up to MaxHumanSpeed;
// any change of heading drops the speed back to 1.
type Human struct {
	baseStrategy
	input         InputProvider
	lastDirection Direction
}

// NewHuman creates a human strategy reading its directions from input
func NewHuman(track *Track, input InputProvider) *Human {
	return &Human{
		baseStrategy: baseStrategy{track: track, speed: 1},
		input:        input,
	}
}

func (h *Human) Kind() RacerKind {
	return HumanRacer
}

// LastDirection returns the heading of the previous committed move, or 0
func (h *Human) LastDirection() Direction {
	return h.lastDirection
}

// Move asks for a direction, adjusts the speed and commits the candidate
// when the track accepts it. A rejected candidate leaves the position and
// lastDirection untouched but keeps the speed that was just set.
func (h *Human) Move(ctx context.Context, current Position) (MoveOutcome, error) {
	if err := h.ready(); err != nil {
		return MoveOutcome{}, err
	}
	if h.input == nil {
		return MoveOutcome{}, ErrInputRequired
	}

	dir, err := h.input.RequestDirection(ctx, h.owner)
	if err != nil {
		return MoveOutcome{}, err
	}
	if !dir.Valid() {
		return MoveOutcome{}, fmt.Errorf("%w: %d", ErrUnknownDirection, dir)
	}

	h.direction = dir
	h.setSpeed()

	out := h.outcome(current, h.CalculateNextPosition(current))
	if !h.track.CheckValidMove(out.Candidate) {
		out.Reason = ReasonInvalidMove
		return out, nil
	}

	h.lastDirection = h.direction
	return h.commit(out), nil
}

func (h *Human) setSpeed() {
	if h.direction != h.lastDirection {
		h.speed = 1
		return
	}
	if h.speed < MaxHumanSpeed {
		h.speed++
	}
}

// Preview returns the candidate a move in dir would produce from current
// without changing any state
func (h *Human) Preview(current Position, dir Direction) Position {
	speed := 1
	if dir == h.lastDirection {
		speed = min(h.speed+1, MaxHumanSpeed)
	}
	return current.Offset(dir, speed)
}
