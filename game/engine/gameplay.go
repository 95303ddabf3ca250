package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Status is the lifecycle state of a game
type Status string

const (
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
)

// Outcome says why a game finished
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeWinner     Outcome = "winner"
	OutcomeCollision  Outcome = "collision"
	OutcomeRoundLimit Outcome = "round_limit"
	OutcomeStalemate  Outcome = "stalemate"
	OutcomeEnded      Outcome = "ended"
)

// TurnEvent records a single racer's turn
type TurnEvent struct {
	Round        int         `json:"round"`
	RacerID      string      `json:"racer_id"`
	Racer        string      `json:"racer"`
	Kind         RacerKind   `json:"kind"`
	Move         MoveOutcome `json:"move"`
	Winner       bool        `json:"winner,omitempty"`
	CollidedWith string      `json:"collided_with,omitempty"`
	Timestamp    int64       `json:"timestamp"`
}

// RoundResult collects the turns played by one PlayRound call. A round
// suspended on missing input has Completed false and resumes on the next call.
type RoundResult struct {
	Round     int         `json:"round"`
	Events    []TurnEvent `json:"events"`
	Completed bool        `json:"completed"`
	Finished  bool        `json:"finished"`
}

// Option configures a GamePlay
type Option func(*GamePlay)

// WithCollisionEndsGame finishes the game when a racer moves onto a cell
// another racer occupies
func WithCollisionEndsGame(enabled bool) Option {
	return func(g *GamePlay) {
		g.collisionEndsGame = enabled
	}
}

// WithObserver registers a callback invoked after every executed turn
func WithObserver(fn func(TurnEvent)) Option {
	return func(g *GamePlay) {
		g.observer = fn
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *GamePlay) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// GamePlay runs the turn loop. Racers move in registration order; the first
// racer to land on a finish cell wins and the game never leaves Finished.
// GamePlay is not safe for concurrent use.
type GamePlay struct {
	track   *Track
	racers  []*Car
	overlay *Overlay

	status    Status
	outcome   Outcome
	winner    *Car
	round     int
	nextTurn  int
	inRound   bool
	suspended *Car

	collisionEndsGame bool
	observer          func(TurnEvent)
	logger            *slog.Logger
}

// NewGamePlay creates a running game over track with racers at their current
// positions
func NewGamePlay(track *Track, racers []*Car, opts ...Option) (*GamePlay, error) {
	if track == nil {
		return nil, fmt.Errorf("%w: track is required", ErrInvalidSetup)
	}
	if len(racers) == 0 {
		return nil, fmt.Errorf("%w: at least one racer is required", ErrInvalidSetup)
	}
	for i, car := range racers {
		if car == nil || car.Strategy() == nil {
			return nil, fmt.Errorf("%w: racer %d has no strategy", ErrInvalidSetup, i)
		}
	}

	g := &GamePlay{
		track:   track,
		racers:  append([]*Car(nil), racers...),
		overlay: NewOverlay(),
		status:  StatusRunning,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	for _, car := range g.racers {
		g.overlay.Place(car.Position(), car.Marker())
	}
	return g, nil
}

// ExecuteTurn lets car take one turn and evaluates the finish and collision
// rules for the result. Strategy errors leave the game untouched.
func (g *GamePlay) ExecuteTurn(ctx context.Context, car *Car) (TurnEvent, error) {
	if g.status == StatusFinished {
		return TurnEvent{}, ErrGameFinished
	}

	g.overlay.Clear(car.Position(), car.Marker())
	move, err := car.Strategy().Move(ctx, car.Position())
	g.overlay.Place(car.Position(), car.Marker())
	if err != nil {
		return TurnEvent{}, err
	}

	event := TurnEvent{
		Round:     g.round,
		RacerID:   car.ID,
		Racer:     car.Name,
		Kind:      car.Kind(),
		Move:      move,
		Timestamp: time.Now().Unix(),
	}

	switch move.Reason {
	case ReasonInvalidMove, ReasonStalled:
		g.logger.Debug("turn without movement",
			"racer", car.Name, "reason", move.Reason, "candidate", move.Candidate.String())
	case ReasonTrapped:
		g.logger.Warn("racer is boxed in", "racer", car.Name, "position", car.Position().String())
	}

	if g.CheckWinner(car) {
		event.Winner = true
	} else if move.Moved && g.collisionEndsGame {
		if other := g.occupant(car); other != nil {
			event.CollidedWith = other.Name
			g.finish(OutcomeCollision, nil)
			g.logger.Info("collision ends race",
				"racer", car.Name, "other", other.Name, "position", car.Position().String())
		}
	}

	if g.observer != nil {
		g.observer(event)
	}
	return event, nil
}

// CheckWinner reports whether car stands on a finish cell. The first racer
// found there finishes the game; later calls never replace the winner.
func (g *GamePlay) CheckWinner(car *Car) bool {
	if car == nil || !g.track.IsFinish(car.Position()) {
		return false
	}
	if g.status == StatusRunning {
		g.finish(OutcomeWinner, car)
		g.logger.Info("race won", "racer", car.Name, "round", g.round, "position", car.Position().String())
	}
	return true
}

// PlayRound runs the remaining turns of the current round, starting a new
// round when the previous one completed. It stops early when the game
// finishes. An input error suspends the round on that racer.
func (g *GamePlay) PlayRound(ctx context.Context) (*RoundResult, error) {
	if g.status == StatusFinished {
		return nil, ErrGameFinished
	}
	if !g.inRound {
		g.round++
		g.inRound = true
	}

	result := &RoundResult{Round: g.round}
	trapped := 0
	for g.nextTurn < len(g.racers) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		car := g.racers[g.nextTurn]
		event, err := g.ExecuteTurn(ctx, car)
		if err != nil {
			g.suspended = car
			return result, err
		}
		g.suspended = nil
		g.nextTurn++
		result.Events = append(result.Events, event)
		if event.Move.Reason == ReasonTrapped {
			trapped++
		}

		if g.status == StatusFinished {
			result.Finished = true
			break
		}
	}

	g.nextTurn = 0
	g.inRound = false
	result.Completed = true

	if !result.Finished && trapped == len(g.racers) {
		g.finish(OutcomeStalemate, nil)
		g.logger.Info("every racer is boxed in", "round", g.round)
		result.Finished = true
	}
	return result, nil
}

// StartGame plays rounds until the game finishes. maxRounds > 0 caps the
// number of rounds and finishes the game with OutcomeRoundLimit.
func (g *GamePlay) StartGame(ctx context.Context, maxRounds int) error {
	for g.status == StatusRunning {
		if err := ctx.Err(); err != nil {
			return err
		}
		if g.CheckRoundLimit(maxRounds) {
			break
		}
		if _, err := g.PlayRound(ctx); err != nil {
			return err
		}
	}
	return nil
}

// CheckRoundLimit finishes the game with OutcomeRoundLimit once maxRounds
// complete rounds have been played. maxRounds <= 0 means no limit.
func (g *GamePlay) CheckRoundLimit(maxRounds int) bool {
	if maxRounds <= 0 || g.status != StatusRunning || g.inRound || g.round < maxRounds {
		return false
	}
	g.finish(OutcomeRoundLimit, nil)
	g.logger.Info("round limit reached", "rounds", g.round)
	return true
}

// EndGame stops the game. It keeps the outcome of an already finished game.
func (g *GamePlay) EndGame() {
	if g.status == StatusRunning {
		g.finish(OutcomeEnded, nil)
	}
}

func (g *GamePlay) finish(outcome Outcome, winner *Car) {
	g.status = StatusFinished
	g.outcome = outcome
	g.winner = winner
}

// occupant returns another racer sharing car's cell
func (g *GamePlay) occupant(car *Car) *Car {
	for _, other := range g.racers {
		if other != car && other.Position() == car.Position() {
			return other
		}
	}
	return nil
}

func (g *GamePlay) Status() Status {
	return g.status
}

func (g *GamePlay) Outcome() Outcome {
	return g.outcome
}

// Winner returns the winning car or nil
func (g *GamePlay) Winner() *Car {
	return g.winner
}

// Round returns the number of rounds started so far
func (g *GamePlay) Round() int {
	return g.round
}

// Suspended returns the racer the current round is waiting on, if any
func (g *GamePlay) Suspended() *Car {
	return g.suspended
}

// Racers returns the racers in turn order
func (g *GamePlay) Racers() []*Car {
	return append([]*Car(nil), g.racers...)
}

func (g *GamePlay) Track() *Track {
	return g.track
}

// Render draws the board with every racer's marker
func (g *GamePlay) Render() []string {
	return g.overlay.Render(g.track)
}
