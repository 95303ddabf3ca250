package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// InputProvider supplies the direction a human racer wants to take. It is
// called synchronously from Human.Move and may block.
type InputProvider interface {
	RequestDirection(ctx context.Context, car *Car) (Direction, error)
}

// InputFunc adapts a plain function to InputProvider
type InputFunc func(ctx context.Context, car *Car) (Direction, error)

func (f InputFunc) RequestDirection(ctx context.Context, car *Car) (Direction, error) {
	return f(ctx, car)
}

// ConsoleInput reads W/A/S/D tokens line by line, prompting on w before
// each read. Unknown tokens are reported and asked for again.
type ConsoleInput struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// NewConsoleInput creates a console input reading from r and prompting on w
func NewConsoleInput(r io.Reader, w io.Writer) *ConsoleInput {
	if w == nil {
		w = io.Discard
	}
	return &ConsoleInput{scanner: bufio.NewScanner(r), w: w}
}

func (c *ConsoleInput) RequestDirection(ctx context.Context, car *Car) (Direction, error) {
	name := ""
	if car != nil {
		name = car.Name
	}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprintf(c.w, "%s, enter direction (W/A/S/D): ", name)
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		dir, err := ParseDirection(c.scanner.Text())
		if errors.Is(err, ErrUnknownDirection) {
			fmt.Fprintln(c.w, "Unknown direction, use W, A, S or D.")
			continue
		}
		return dir, err
	}
}

// QueuedInput decouples submitting a direction from resuming the turn that
// needs it. RequestDirection returns ErrInputPending while nothing has been
// submitted, which leaves the round suspended on that racer.
type QueuedInput struct {
	mu      sync.Mutex
	pending []Direction
}

// NewQueuedInput creates an empty mailbox
func NewQueuedInput() *QueuedInput {
	return &QueuedInput{}
}

// Submit queues a direction for the next request
func (q *QueuedInput) Submit(dir Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDirection, dir)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, dir)
	return nil
}

// Pending returns how many directions are waiting to be consumed
func (q *QueuedInput) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Clear drops every queued direction
func (q *QueuedInput) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = nil
}

func (q *QueuedInput) RequestDirection(_ context.Context, _ *Car) (Direction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return 0, ErrInputPending
	}
	dir := q.pending[0]
	q.pending = q.pending[1:]
	return dir, nil
}

// RandomInput picks a uniformly random heading. Used to drive humans in
// unattended simulations.
type RandomInput struct {
	random Random
}

// NewRandomInput creates a random input. A nil random uses a shared
// time-seeded source.
func NewRandomInput(random Random) *RandomInput {
	if random == nil {
		random = defaultRandom
	}
	return &RandomInput{random: random}
}

func (r *RandomInput) RequestDirection(ctx context.Context, _ *Car) (Direction, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return Directions[r.random.Intn(len(Directions))], nil
}
