package engine

import "context"

// EasyBot drives at speed 1. When the cell ahead is blocked it turns to the
// next heading and waits for its following turn.
type EasyBot struct {
	baseStrategy
}

// NewEasyBot creates an easy bot heading right
func NewEasyBot(track *Track) *EasyBot {
	return &EasyBot{baseStrategy{track: track, direction: Right, speed: 1}}
}

func (b *EasyBot) Kind() RacerKind {
	return EasyBotRacer
}

// SetNextDirection rotates the heading
func (b *EasyBot) SetNextDirection() {
	b.rotate()
}

func (b *EasyBot) Move(_ context.Context, current Position) (MoveOutcome, error) {
	if err := b.ready(); err != nil {
		return MoveOutcome{}, err
	}

	b.speed = 1
	out := b.outcome(current, b.CalculateNextPosition(current))
	if !b.track.CheckValidMove(out.Candidate) {
		b.rotate()
		out.Reason = ReasonStalled
		return out, nil
	}
	return b.commit(out), nil
}

// HardBot picks a random speed of 1 or 2 for every candidate and keeps
// turning until it finds a valid one, so it never loses a turn unless it is
// completely boxed in.
type HardBot struct {
	baseStrategy
	random Random
}

// NewHardBot creates a hard bot heading right. A nil random uses a shared
// time-seeded source.
func NewHardBot(track *Track, random Random) *HardBot {
	if random == nil {
		random = defaultRandom
	}
	return &HardBot{
		baseStrategy: baseStrategy{track: track, direction: Right, speed: 1},
		random:       random,
	}
}

func (b *HardBot) Kind() RacerKind {
	return HardBotRacer
}

// SetSpeed draws a new speed from {1, 2}
func (b *HardBot) SetSpeed() {
	b.speed = 1 + b.random.Intn(2)
}

// SetNextDirection rotates the heading
func (b *HardBot) SetNextDirection() {
	b.rotate()
}

func (b *HardBot) Move(_ context.Context, current Position) (MoveOutcome, error) {
	if err := b.ready(); err != nil {
		return MoveOutcome{}, err
	}

	b.SetSpeed()
	candidate := b.CalculateNextPosition(current)
	for turns := 1; !b.track.CheckValidMove(candidate); turns++ {
		if turns%len(Directions) == 0 && b.trapped(current) {
			out := b.outcome(current, candidate)
			out.Reason = ReasonTrapped
			return out, nil
		}
		b.rotate()
		b.SetSpeed()
		candidate = b.CalculateNextPosition(current)
	}

	return b.commit(b.outcome(current, candidate)), nil
}

// trapped reports whether no heading at any reachable speed is valid
func (b *HardBot) trapped(current Position) bool {
	for _, d := range Directions {
		for speed := 1; speed <= 2; speed++ {
			if b.track.CheckValidMove(current.Offset(d, speed)) {
				return false
			}
		}
	}
	return true
}
