package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/gridrace/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// session looks up a session and marks it as accessed
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
		Warnings:       sess.Engine.Warnings(),
	}
}

// CreateSession creates a new race session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.RaceConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s' (available configs: %v)", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s' (use /api/configs to list available configurations)", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}
	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// Move submits a direction for the waiting human and plays until the next
// human turn or the end of the round
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var events []GameEvent
	if reset {
		if _, err := sess.Engine.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset race: %w", err)
		}
		events = append(events, resetEvent())
	}

	result, err := s.playMove(ctx, sess, dir)
	if err != nil {
		return nil, err
	}
	result.Events = append(events, result.Events...)
	if result.Step != nil {
		result.Step.Idx = 1
	}
	return result, nil
}

// playMove runs one engine move and describes it
func (s *gameServiceImpl) playMove(ctx context.Context, sess *Session, dir engine.Direction) (*MoveResult, error) {
	before := sess.Engine.GetState()
	round, err := sess.Engine.Move(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("move %s failed: %w", dir, err)
	}

	result := s.describeRound(sess, before, round)
	botTurns := 0
	for _, ev := range round.Events {
		if ev.Kind != engine.HumanRacer {
			botTurns++
		}
	}
	for _, ev := range round.Events {
		if ev.Kind != engine.HumanRacer {
			continue
		}
		result.Success = ev.Move.Moved
		result.Step = &StepInfo{
			Dir:      dir.String(),
			From:     ev.Move.From,
			To:       ev.Move.To,
			Speed:    ev.Move.Speed,
			Reason:   string(ev.Move.Reason),
			Moved:    ev.Move.Moved,
			Round:    ev.Round,
			BotTurns: botTurns,
		}
		if ev.Winner {
			result.Step.Winner = ev.Racer
		}
		break
	}
	return result, nil
}

// Step plays bot turns until the round completes or a human has to move
func (s *gameServiceImpl) Step(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	before := sess.Engine.GetState()
	round, err := sess.Engine.Step(ctx)
	waiting := errors.Is(err, engine.ErrInputRequired)
	if err != nil && !waiting {
		return nil, fmt.Errorf("step failed: %w", err)
	}
	if round == nil {
		round = &engine.RoundResult{Round: before.Round}
	}

	result := s.describeRound(sess, before, round)
	result.Success = !waiting
	if waiting {
		result.Message = fmt.Sprintf("Waiting for %s to move", result.GameState.WaitingFor)
	}
	return result, nil
}

// describeRound builds a MoveResult from the turns one engine call played
func (s *gameServiceImpl) describeRound(sess *Session, before *engine.GameState, round *engine.RoundResult) *MoveResult {
	state := sess.Engine.GetState()
	events := turnEvents(round.Events)
	if before.Status == engine.StatusRunning && state.Status == engine.StatusFinished {
		switch state.Outcome {
		case engine.OutcomeRoundLimit:
			events = append(events, GameEvent{
				Type:      EventRoundLimit,
				Message:   state.Message,
				Timestamp: time.Now(),
				Round:     state.Round,
			})
		case engine.OutcomeStalemate:
			events = append(events, GameEvent{
				Type:      EventStalemate,
				Message:   "Every racer is trapped",
				Timestamp: time.Now(),
				Round:     state.Round,
			})
		}
	}

	return &MoveResult{
		GameState:      state,
		Message:        state.Message,
		Events:         events,
		Turns:          round.Events,
		Round:          round.Round,
		RoundCompleted: round.Completed,
		PossibleMoves:  directionNames(sess.Engine.GetPossibleMoves()),
	}
}

// BulkMove executes multiple human moves in sequence. Each move plays the
// bot turns that follow it. The run stops at the first unknown token, the
// first rejected move or the end of the race.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		if _, err := sess.Engine.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset race: %w", err)
		}
		result.Events = append(result.Events, resetEvent())
	}

	start := sess.Engine.GetState()
	result.StartPos = humanPosition(start)
	result.StartRound = start.Round

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, token := range moves {
		if sess.Engine.IsFinished() {
			result.StoppedReason = "race finished"
			result.StopReasonCode = "finished"
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(token)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d: %v", i+1, err)
			result.StopReasonCode = "unknown_direction"
			result.StoppedOnMove = i + 1
			break
		}

		moved, err := s.playMove(ctx, sess, dir)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d: %v", i+1, err)
			result.StopReasonCode = "error"
			result.StoppedOnMove = i + 1
			bulkSnapshot(sess, result)
			return result, err
		}
		result.MovesExecuted++
		result.Events = append(result.Events, moved.Events...)
		if moved.Step == nil {
			continue
		}
		moved.Step.Idx = i + 1
		result.Steps = append(result.Steps, *moved.Step)

		if moved.Step.Reason == string(engine.ReasonInvalidMove) {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d rejected: can't drive %s", i+1, token)
			result.StopReasonCode = "invalid_move"
			result.StoppedOnMove = i + 1
			break
		}
	}

	bulkSnapshot(sess, result)
	return result, nil
}

// bulkSnapshot records where the race stands after a bulk move
func bulkSnapshot(sess *Session, result *BulkMoveResult) {
	end := sess.Engine.GetState()
	result.GameState = end
	result.EndPos = humanPosition(end)
	result.EndRound = end.Round
	result.Finished = end.Status == engine.StatusFinished
	result.Outcome = string(end.Outcome)
	result.Winner = end.Winner
	result.Message = end.Message
	result.PossibleMoves = directionNames(sess.Engine.GetPossibleMoves())
	if result.Finished && result.StopReasonCode == "" {
		result.StopReasonCode = "finished"
	}
}

// Reset resets a race session to its initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	state, err := sess.Engine.Reset()
	if err != nil {
		return nil, fmt.Errorf("failed to reset race: %w", err)
	}
	return state, nil
}

// GetGameState retrieves the current race state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetTurnHistory returns paginated turn history
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetTurnLog()
	if opts.Racer != "" {
		filtered := make([]engine.TurnLogEntry, 0, len(history))
		for _, entry := range history {
			if strings.EqualFold(entry.Racer, opts.Racer) {
				filtered = append(filtered, entry)
			}
		}
		history = filtered
	}
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	turns := []engine.TurnLogEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			turns = append(turns, history[i])
		}
	} else if start < total {
		turns = append(turns, history[start:end]...)
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available race configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific race configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.RaceConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a race configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.RaceConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// turnEvents generates events from the turns of one engine call
func turnEvents(turns []engine.TurnEvent) []GameEvent {
	events := []GameEvent{}
	for _, ev := range turns {
		when := time.Unix(ev.Timestamp, 0)
		event := GameEvent{
			Timestamp: when,
			Round:     ev.Round,
			Racer:     ev.Racer,
			Position:  ev.Move.To,
		}

		switch ev.Move.Reason {
		case engine.ReasonMoved:
			event.Type = EventTurn
			event.Message = fmt.Sprintf("%s moved %s from %s to %s", ev.Racer, ev.Move.Direction, ev.Move.From, ev.Move.To)
		case engine.ReasonInvalidMove:
			event.Type = EventInvalidMove
			event.Message = fmt.Sprintf("%s can't drive %s to %s", ev.Racer, ev.Move.Direction, ev.Move.Candidate)
		case engine.ReasonTrapped:
			event.Type = EventStalled
			event.Message = fmt.Sprintf("%s is trapped at %s", ev.Racer, ev.Move.To)
		default:
			event.Type = EventStalled
			event.Message = fmt.Sprintf("%s stalled at %s", ev.Racer, ev.Move.To)
		}
		events = append(events, event)

		if ev.Winner {
			events = append(events, GameEvent{
				Type:      EventWinner,
				Message:   fmt.Sprintf("%s crossed the finish line", ev.Racer),
				Timestamp: when,
				Round:     ev.Round,
				Racer:     ev.Racer,
				Position:  ev.Move.To,
			})
		}
		if ev.CollidedWith != "" {
			events = append(events, GameEvent{
				Type:      EventCollision,
				Message:   fmt.Sprintf("%s collided with %s", ev.Racer, ev.CollidedWith),
				Timestamp: when,
				Round:     ev.Round,
				Racer:     ev.Racer,
				Position:  ev.Move.To,
			})
		}
	}
	return events
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Race reset to initial state",
		Timestamp: time.Now(),
	}
}

// humanPosition returns the position of the human the race waits for, or
// of the first human when nobody is waiting
func humanPosition(state *engine.GameState) engine.Position {
	var first *engine.RacerState
	for i := range state.Racers {
		r := &state.Racers[i]
		if r.Kind != engine.HumanRacer {
			continue
		}
		if r.Name == state.WaitingFor {
			return r.Position
		}
		if first == nil {
			first = r
		}
	}
	if first != nil {
		return first.Position
	}
	return engine.Position{}
}

func directionNames(dirs []engine.Direction) []string {
	names := make([]string, 0, len(dirs))
	for _, d := range dirs {
		names = append(names, d.String())
	}
	return names
}
