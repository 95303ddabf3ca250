package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// RacerKind names a movement policy. The values double as the racer type
// tags used in race definitions.
type RacerKind string

const (
	HumanRacer   RacerKind = "Human"
	EasyBotRacer RacerKind = "EasyBot"
	HardBotRacer RacerKind = "HardBot"
)

// ParseRacerKind matches a roster type tag exactly (case-sensitive)
func ParseRacerKind(tag string) (RacerKind, bool) {
	switch RacerKind(tag) {
	case HumanRacer, EasyBotRacer, HardBotRacer:
		return RacerKind(tag), true
	}
	return "", false
}

// MoveReason explains the result of a single Move call
type MoveReason string

const (
	ReasonMoved       MoveReason = "moved"
	ReasonInvalidMove MoveReason = "invalid_move"
	ReasonStalled     MoveReason = "stalled"
	ReasonTrapped     MoveReason = "trapped"
)

// MoveOutcome describes what a strategy decided during one turn
type MoveOutcome struct {
	From      Position   `json:"from"`
	Candidate Position   `json:"candidate"`
	To        Position   `json:"to"`
	Direction Direction  `json:"direction"`
	Speed     int        `json:"speed"`
	Moved     bool       `json:"moved"`
	Reason    MoveReason `json:"reason"`
}

// MovementStrategy decides and applies a racer's next position.
// Move never commits a position the track rejects.
type MovementStrategy interface {
	Kind() RacerKind
	Move(ctx context.Context, current Position) (MoveOutcome, error)
	CalculateNextPosition(current Position) Position
	NextDirection() Direction
	Speed() int
	SetOwner(car *Car)
}

// Random is the source of randomness for bots
type Random interface {
	Intn(n int) int
}

// lockedRandom is safe to share between sessions
type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (r *lockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// NewRandom returns a goroutine-safe Random seeded with seed
func NewRandom(seed int64) Random {
	return &lockedRandom{rnd: rand.New(rand.NewSource(seed))}
}

var defaultRandom = NewRandom(time.Now().UnixNano())

// baseStrategy carries the state every policy shares
type baseStrategy struct {
	track     *Track
	owner     *Car
	direction Direction
	speed     int
}

func (b *baseStrategy) SetOwner(car *Car) {
	b.owner = car
}

func (b *baseStrategy) NextDirection() Direction {
	return b.direction
}

func (b *baseStrategy) Speed() int {
	return b.speed
}

// CalculateNextPosition applies the current heading and speed without
// changing any state
func (b *baseStrategy) CalculateNextPosition(current Position) Position {
	return current.Offset(b.direction, b.speed)
}

// ready checks the invariants that must hold before the first move
func (b *baseStrategy) ready() error {
	if b.track == nil {
		return ErrNoTrack
	}
	if b.owner == nil {
		return ErrNoOwner
	}
	return nil
}

// rotate turns the heading to the next one in bot order
func (b *baseStrategy) rotate() {
	b.direction = b.direction.Next()
}

func (b *baseStrategy) outcome(from, candidate Position) MoveOutcome {
	return MoveOutcome{
		From:      from,
		Candidate: candidate,
		To:        from,
		Direction: b.direction,
		Speed:     b.speed,
	}
}

// commit moves the owner and fills in the outcome
func (b *baseStrategy) commit(out MoveOutcome) MoveOutcome {
	b.owner.UpdatePosition(out.Candidate)
	out.To = out.Candidate
	out.Moved = true
	out.Reason = ReasonMoved
	return out
}
