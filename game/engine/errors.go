package engine

import "errors"

// Configuration errors. These are returned while building a race and are
// never recovered from.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidTrack    = errors.New("invalid track")
	ErrLineLength      = errors.New("track line length does not match column count")
	ErrEmptyTrackFile  = errors.New("track file is empty")
	ErrEmptyRosterFile = errors.New("players file is empty")
	ErrMaxPlayers      = errors.New("invalid maximum players value")
	ErrInvalidConfig   = errors.New("invalid race configuration")
)

// Invariant violations. These indicate a caller bug rather than game state.
var (
	ErrInvalidSetup = errors.New("invalid game setup")
	ErrNoOwner      = errors.New("movement strategy has no owning car")
	ErrNoTrack      = errors.New("movement strategy has no track")
	ErrGameFinished = errors.New("game already finished")
)

// Input errors raised while asking a human for a direction.
var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrInputPending     = errors.New("waiting for human input")
	ErrInputRequired    = errors.New("human input required")
)
