package engine

import (
	"fmt"
	"log/slog"
)

// RaceOptions customizes how NewRace builds racers
type RaceOptions struct {
	// HumanInput drives every human racer. When nil a QueuedInput is created
	// and returned in Race.Humans.
	HumanInput InputProvider
	// Random is shared by every HardBot. Nil uses a time-seeded source.
	Random   Random
	Observer func(TurnEvent)
	Logger   *slog.Logger
}

// Race is a fully wired game ready to be played
type Race struct {
	GamePlay *GamePlay
	Track    *Track
	Cars     []*Car
	Humans   *QueuedInput
	Warnings []string
}

// NewRace builds the track and racers described by config. Players beyond
// MaxPlayers and players of unknown type are skipped with a warning. The
// i-th racer added starts at row i+1 of StartColumn.
func NewRace(config *RaceConfig, opts RaceOptions) (*Race, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidSetup)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	track, err := NewTrack(config.Track)
	if err != nil {
		return nil, err
	}

	race := &Race{Track: track}
	input := opts.HumanInput
	if input == nil {
		race.Humans = NewQueuedInput()
		input = race.Humans
	}

	warn := func(msg string, args ...any) {
		text := fmt.Sprintf(msg, args...)
		race.Warnings = append(race.Warnings, text)
		logger.Warn(text, "config", config.Name)
	}

	for _, spec := range config.Players {
		if len(race.Cars) >= config.MaxPlayers {
			warn("max players reached, skipping additional players")
			break
		}

		kind, ok := ParseRacerKind(spec.Type)
		if !ok {
			warn("%s: type is not Human, EasyBot or HardBot, skipping player %q", spec.Type, spec.Name)
			continue
		}

		var strategy MovementStrategy
		switch kind {
		case HumanRacer:
			strategy = NewHuman(track, input)
		case EasyBotRacer:
			strategy = NewEasyBot(track)
		case HardBotRacer:
			strategy = NewHardBot(track, opts.Random)
		}

		start := Position{Row: len(race.Cars) + 1, Column: StartColumn}
		if !track.CheckValidMove(start) {
			return nil, fmt.Errorf("%w: start cell %s for %q is not drivable", ErrInvalidConfig, start, spec.Name)
		}

		car := NewCar(spec.Name, strategy)
		car.UpdatePosition(start)
		race.Cars = append(race.Cars, car)
	}

	gameOpts := []Option{
		WithCollisionEndsGame(config.CollisionEndsGame),
		WithLogger(logger),
	}
	if opts.Observer != nil {
		gameOpts = append(gameOpts, WithObserver(opts.Observer))
	}

	race.GamePlay, err = NewGamePlay(track, race.Cars, gameOpts...)
	if err != nil {
		return nil, err
	}
	return race, nil
}

// HasHuman reports whether any racer is human controlled
func (r *Race) HasHuman() bool {
	for _, car := range r.Cars {
		if car.Kind() == HumanRacer {
			return true
		}
	}
	return false
}
