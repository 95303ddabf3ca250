package engine

const (
	// Validation constants
	MinTrackSize        = 3
	MaxTrackSize        = 60
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256

	// StartColumn is the column every racer starts in; the i-th racer added
	// starts on row i+1.
	StartColumn = 1
)

// PlayerSpec is one roster entry of a race definition
type PlayerSpec struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Messages are the player-facing texts of a race
type Messages struct {
	Welcome     string `json:"welcome"`
	Winner      string `json:"winner"`
	InvalidMove string `json:"invalid_move"`
	Collision   string `json:"collision"`
	RoundLimit  string `json:"round_limit"`
}

// RaceConfig is a complete race definition: track layout, roster and rules
type RaceConfig struct {
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	MaxPlayers        int          `json:"max_players"`
	Track             []string     `json:"track"`
	Players           []PlayerSpec `json:"players"`
	CollisionEndsGame bool         `json:"collision_ends_game"`
	MaxRounds         int          `json:"max_rounds,omitempty"`
	Messages          Messages     `json:"messages"`
}

// RacerState is the public view of a racer
type RacerState struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Kind          RacerKind `json:"kind"`
	Marker        string    `json:"marker"`
	Position      Position  `json:"position"`
	Direction     Direction `json:"direction"`
	Speed         int       `json:"speed"`
	DistanceToEnd int       `json:"distance_to_finish"`
}

// GameState is a snapshot of a race
type GameState struct {
	ConfigName string       `json:"config_name"`
	Track      []string     `json:"track"`
	Board      []string     `json:"board"`
	Racers     []RacerState `json:"racers"`
	FinishLine []Position   `json:"finish_line"`
	Status     Status       `json:"status"`
	Outcome    Outcome      `json:"outcome,omitempty"`
	Winner     string       `json:"winner,omitempty"`
	Round      int          `json:"round"`
	Message    string       `json:"message"`
	WaitingFor string       `json:"waiting_for,omitempty"`
	TotalTurns int          `json:"total_turns"`
}

// TurnLogEntry is one turn in the cumulative turn log of an engine
type TurnLogEntry struct {
	TurnEvent
	TurnNumber int `json:"turn_number"`
}
