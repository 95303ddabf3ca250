package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Engine provides the main interface for race operations
type Engine interface {
	// Race state management
	GetState() *GameState
	Reset() (*GameState, error)
	IsFinished() bool

	// Turn operations
	Move(ctx context.Context, direction Direction) (*RoundResult, error)
	Step(ctx context.Context) (*RoundResult, error)
	GetPossibleMoves() []Direction

	// Configuration
	GetConfig() *RaceConfig

	// History
	GetTurnLog() []TurnLogEntry
	GetLastTurn() *TurnLogEntry
}

// RaceEngine implements Engine on top of a GamePlay fed by a QueuedInput.
// Every human in the race shares the queue and consumes directions in turn
// order.
type RaceEngine struct {
	config   *RaceConfig
	race     *Race
	random   Random
	logger   *slog.Logger
	message  string
	turnLog  []TurnLogEntry
	warnings []string
}

// NewEngine creates a race engine for a validated configuration. A nil
// random uses a time-seeded source.
func NewEngine(config *RaceConfig, random Random, logger *slog.Logger) (*RaceEngine, error) {
	if err := ValidateRaceConfig(config); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &RaceEngine{
		config:  config,
		random:  random,
		logger:  logger.With("config", config.Name),
		turnLog: []TurnLogEntry{},
	}
	if err := e.setup(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates a race engine over the built-in race
func NewEngineWithDefaults() *RaceEngine {
	e, err := NewEngine(DefaultRaceConfig(), nil, nil)
	if err != nil {
		panic(fmt.Sprintf("built-in race is invalid: %v", err))
	}
	return e
}

func (e *RaceEngine) setup() error {
	race, err := NewRace(e.config, RaceOptions{
		Random:   e.random,
		Logger:   e.logger,
		Observer: e.record,
	})
	if err != nil {
		return err
	}
	e.race = race
	e.warnings = race.Warnings
	e.message = e.config.Messages.Welcome
	return nil
}

// record appends a turn to the cumulative log
func (e *RaceEngine) record(event TurnEvent) {
	e.turnLog = append(e.turnLog, TurnLogEntry{
		TurnEvent:  event,
		TurnNumber: len(e.turnLog) + 1,
	})
}

// GetState returns a snapshot of the race
func (e *RaceEngine) GetState() *GameState {
	game := e.race.GamePlay
	state := &GameState{
		ConfigName: e.config.Name,
		Track:      e.race.Track.Lines(),
		Board:      game.Render(),
		FinishLine: e.race.Track.FinishLine(),
		Status:     game.Status(),
		Outcome:    game.Outcome(),
		Round:      game.Round(),
		Message:    e.message,
		TotalTurns: len(e.turnLog),
	}
	if winner := game.Winner(); winner != nil {
		state.Winner = winner.Name
	}
	if human := e.waitingHuman(); human != nil {
		state.WaitingFor = human.Name
	}

	for _, car := range game.Racers() {
		distance, ok := ShortestPathLength(e.race.Track, car.Position())
		if !ok {
			distance = -1
		}
		state.Racers = append(state.Racers, RacerState{
			ID:            car.ID,
			Name:          car.Name,
			Kind:          car.Kind(),
			Marker:        string(car.Marker()),
			Position:      car.Position(),
			Direction:     car.Strategy().NextDirection(),
			Speed:         car.Strategy().Speed(),
			DistanceToEnd: distance,
		})
	}
	return state
}

// Reset rebuilds the race from its configuration. The turn log is kept.
func (e *RaceEngine) Reset() (*GameState, error) {
	if err := e.setup(); err != nil {
		return nil, err
	}
	return e.GetState(), nil
}

// IsFinished returns whether the race is over
func (e *RaceEngine) IsFinished() bool {
	return e.race.GamePlay.Status() == StatusFinished
}

// Move submits direction for the waiting human and resumes the round. Bots
// scheduled before the next human play first; the round stops again at the
// following human that has no input.
func (e *RaceEngine) Move(ctx context.Context, direction Direction) (*RoundResult, error) {
	if e.IsFinished() {
		return nil, ErrGameFinished
	}
	if e.race.Humans == nil || !e.race.HasHuman() {
		return nil, fmt.Errorf("%w: race has no human racer", ErrInvalidInput)
	}

	e.race.Humans.Clear()
	if err := e.race.Humans.Submit(direction); err != nil {
		return nil, err
	}

	result, err := e.play(ctx)
	if errors.Is(err, ErrInputPending) {
		err = nil
	}
	e.race.Humans.Clear()
	return result, err
}

// Step plays bot turns until the round completes. It returns
// ErrInputRequired once a human has to move.
func (e *RaceEngine) Step(ctx context.Context) (*RoundResult, error) {
	if e.IsFinished() {
		return nil, ErrGameFinished
	}

	result, err := e.play(ctx)
	if errors.Is(err, ErrInputPending) {
		return result, fmt.Errorf("%w: waiting for %s", ErrInputRequired, e.race.GamePlay.Suspended().Name)
	}
	return result, err
}

// play resumes the round and refreshes the status message
func (e *RaceEngine) play(ctx context.Context) (*RoundResult, error) {
	game := e.race.GamePlay
	result, err := game.PlayRound(ctx)
	if result != nil && result.Completed {
		game.CheckRoundLimit(e.config.MaxRounds)
	}

	e.message = ""
	if result != nil {
		for _, ev := range result.Events {
			if ev.Kind == HumanRacer && ev.Move.Reason == ReasonInvalidMove {
				e.message = e.config.Messages.InvalidMove
			}
		}
	}
	if msg := FinishMessage(e.config.Messages, game); msg != "" {
		e.message = msg
	}
	return result, err
}

// FinishMessage returns the player-facing text for a finished game, or ""
// while it is still running
func FinishMessage(messages Messages, game *GamePlay) string {
	switch game.Outcome() {
	case OutcomeWinner:
		return fmt.Sprintf(messages.Winner, game.Winner().Name)
	case OutcomeCollision:
		return messages.Collision
	case OutcomeRoundLimit:
		return messages.RoundLimit
	case OutcomeStalemate:
		return "Every racer is boxed in."
	case OutcomeEnded:
		return "Race ended."
	}
	return ""
}

// GetPossibleMoves returns the directions the waiting human can take
// without being rejected by the track
func (e *RaceEngine) GetPossibleMoves() []Direction {
	car := e.waitingHuman()
	if car == nil || e.IsFinished() {
		return nil
	}
	human, ok := car.Strategy().(*Human)
	if !ok {
		return nil
	}

	var possible []Direction
	for _, dir := range []Direction{Up, Down, Left, Right} {
		if e.race.Track.CheckValidMove(human.Preview(car.Position(), dir)) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// waitingHuman returns the human the round is suspended on, or the first
// human when no round is in progress
func (e *RaceEngine) waitingHuman() *Car {
	if e.IsFinished() {
		return nil
	}
	if car := e.race.GamePlay.Suspended(); car != nil {
		return car
	}
	for _, car := range e.race.Cars {
		if car.Kind() == HumanRacer {
			return car
		}
	}
	return nil
}

// GetConfig returns the race configuration
func (e *RaceEngine) GetConfig() *RaceConfig {
	return e.config
}

// Warnings returns the setup warnings of the current race
func (e *RaceEngine) Warnings() []string {
	return e.warnings
}

// Board renders the current board as a single string
func (e *RaceEngine) Board() string {
	return strings.Join(e.race.GamePlay.Render(), "\n")
}

// GetTurnLog returns the complete turn log
func (e *RaceEngine) GetTurnLog() []TurnLogEntry {
	return e.turnLog
}

// GetLastTurn returns the last turn played, or nil if no turns
func (e *RaceEngine) GetLastTurn() *TurnLogEntry {
	if len(e.turnLog) == 0 {
		return nil
	}
	return &e.turnLog[len(e.turnLog)-1]
}
