package service

import (
	"time"

	"github.com/wricardo/gridrace/game/engine"
)

// SessionInfo provides information about a race session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.RaceConfig `json:"game_config"`
	Warnings       []string           `json:"warnings,omitempty"`
}

// MoveResult contains the result of a move or step. A move plays the human
// turn plus every bot turn up to the next human.
type MoveResult struct {
	Success        bool               `json:"success"` // the human's car moved
	GameState      *engine.GameState  `json:"game_state"`
	Message        string             `json:"message"`
	Events         []GameEvent        `json:"events,omitempty"`
	Turns          []engine.TurnEvent `json:"turns,omitempty"`
	Round          int                `json:"round"`
	RoundCompleted bool               `json:"round_completed"`
	Step           *StepInfo          `json:"step,omitempty"`
	PossibleMoves  []string           `json:"possible_moves,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // unknown_direction|invalid_move|finished
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartPos   engine.Position `json:"start_pos"`
	EndPos     engine.Position `json:"end_pos"`
	StartRound int             `json:"start_round"`
	EndRound   int             `json:"end_round"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	Finished      bool     `json:"finished"`
	Outcome       string   `json:"outcome,omitempty"`
	Winner        string   `json:"winner,omitempty"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record of one human move and the bot turns it released
type StepInfo struct {
	Idx      int             `json:"idx"`
	Dir      string          `json:"dir"`
	From     engine.Position `json:"from"`
	To       engine.Position `json:"to"`
	Speed    int             `json:"speed"`
	Reason   string          `json:"reason"`
	Moved    bool            `json:"moved"`
	Round    int             `json:"round"`
	BotTurns int             `json:"bot_turns"`
	Winner   string          `json:"winner,omitempty"`
}

// Event types carried by GameEvent
const (
	EventTurn        = "turn"
	EventInvalidMove = "invalid_move"
	EventStalled     = "stalled"
	EventWinner      = "winner"
	EventCollision   = "collision"
	EventRoundLimit  = "round_limit"
	EventStalemate   = "stalemate"
	EventReset       = "reset"
)

// GameEvent represents an event that occurred during a race
type GameEvent struct {
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Round     int             `json:"round,omitempty"`
	Racer     string          `json:"racer,omitempty"`
	Position  engine.Position `json:"position"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
	Racer string `json:"racer,omitempty"`
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnLogEntry `json:"turns"`
	TotalTurns  int                   `json:"total_turns"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalPages  int                   `json:"total_pages"`
	HasNext     bool                  `json:"has_next"`
	HasPrevious bool                  `json:"has_previous"`
}

// ConfigInfo provides information about a race configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Format      string `json:"format"` // json or hcl
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	MaxPlayers  int    `json:"max_players"`
	Racers      int    `json:"racers"`
}
