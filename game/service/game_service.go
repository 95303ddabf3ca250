package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/gridrace/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// GameService defines all race-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Race Operations
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error)
	Step(ctx context.Context, sessionID string) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Race State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.RaceConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.RaceConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.RaceConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.RaceConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles race configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.RaceConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.RaceConfig
	SaveConfig(name string, config *engine.RaceConfig) error
}

// Session represents an active race session
type Session struct {
	ID             string
	Engine         *engine.RaceEngine
	Config         *engine.RaceConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
