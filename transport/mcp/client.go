package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/gridrace/game/engine"
	"github.com/wricardo/gridrace/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Race",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Race - MCP Interface

This is a thin client that proxies all requests to the REST API server.

RACE OBJECTIVE:
Drive your car onto a finish cell (_) before the bots do. Walls (#) and the
track border stop you.

AVAILABLE TOOLS:
- race_state: Get the current board, racers and status
- move: Play your turn (w/a/s/d or up/left/down/right), bots then take theirs
- bulk_move: Play several of your turns at once
- step: Let bots play until a human is due (useful for bot-only races)
- reset_race: Restart the race from the starting grid
- turn_history: View past turns of every racer
- create_session / get_session / list_sessions: Manage races
- list_configs: List available race definitions
- race_instructions: Rules, speed ramp and bot behaviour
- describe_cell: Inspect one cell of the track

NOTE: The 'intent' parameter on move/bulk_move serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new race session with optional race definition",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Race definition to use (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active race sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Race operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "race_state",
		Description: "Get the current race state with the rendered board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRaceState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Play your turn in a direction; bots move until your next turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right", "w", "a", "s", "d"},
					"description": "Direction to drive",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Play up to %d turns in sequence", engine.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right", "w", "a", "s", "d"},
					},
					"description": "Array of moves",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "step",
		Description: "Let bots take their turns until a human is due or the race ends",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleStep)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_race",
		Description: "Reset the race to the starting grid",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get the turn history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"racer": map[string]interface{}{
					"type":        "string",
					"description": "Only show turns of this racer (name)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTurnHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available race definitions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "race_instructions",
		Description: "Get the race rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleRaceInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe one cell of the track: terrain, whether it is drivable and who occupies it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell (0-based, 0 is the top border)",
				},
				"column": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell (0-based, 0 is the left border)",
				},
			},
			Required: []string{"session_id", "row", "column"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]string{}
	if configID := request.GetString("config_id", ""); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	for _, w := range session.Warnings {
		result += fmt.Sprintf("Warning: %s\n", w)
	}
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := ""
		if s.GameState != nil {
			status = fmt.Sprintf(", %s round %d", s.GameState.Status, s.GameState.Round)
		}
		result += fmt.Sprintf("- %s (Config: %s, Created: %s%s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleRaceState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	// intent is rubber duck debugging only
	body := map[string]interface{}{
		"direction": request.GetString("direction", ""),
		"reset":     request.GetBool("reset", false),
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	body := map[string]interface{}{
		"moves": request.GetStringSlice("moves", []string{}),
		"reset": request.GetBool("reset", false),
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/step"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if racer := request.GetString("racer", ""); racer != "" {
		params.Set("racer", racer)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Race Definitions:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (id: %s, %s)\n  %s\n  Track: %dx%d, Racers: %d/%d\n\n",
			config.Name, config.ConfigID, config.Format, config.Description,
			config.Rows, config.Columns, config.Racers, config.MaxPlayers)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRaceInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Grid Race - Instructions

OBJECTIVE:
Be the first racer to land on a finish cell (_).

TRACK LEGEND:
• # - Wall (impassable)
• . - Open lane
• _ - Finish line
• Letters - Racers, drawn with the first letter of their name
  (several racers on one cell show as the last one to arrive)

The outermost rows and columns are always treated as walls, whatever
symbol they carry.

TURN ORDER:
Racers move one at a time in roster order. A round ends when every racer
has moved once. move plays your turn and then lets bots move until you are
due again.

HUMAN SPEED:
• Moving in the same direction as your last turn adds 1 to your speed, up to 3
• Changing direction resets speed to 1
• A rejected move (into a wall or off the track) leaves you in place, but
  still counts as facing that direction for the next speed calculation
• You travel speed cells in one jump; only the landing cell is checked

BOTS:
• EasyBot drives 1 cell at a time heading right; when the cell ahead is
  blocked it loses the turn and turns clockwise (right, down, left, up)
• HardBot turns clockwise until it finds an open cell, moving 1 or 2 cells at
  random; it stays put when every direction is blocked

RACE END:
• Winner: a racer lands on a finish cell
• Round limit: configured maximum rounds reached without a winner
• Collision: optional, landing on another racer ends the race
• Stalemate: no racer can move anymore

DIRECTIONS:
w/up, a/left, s/down, d/right (case-insensitive)

Good luck, and watch the walls!`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	row := request.GetInt("row", -1)
	column := request.GetInt("column", -1)

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeCell(&state, engine.Position{Row: row, Column: column})), nil
}

// describeCell explains the terrain and occupants of one cell
func describeCell(state *engine.GameState, p engine.Position) string {
	rows := len(state.Track)
	if rows == 0 || p.Row < 0 || p.Row >= rows || p.Column < 0 || p.Column >= len(state.Track[p.Row]) {
		columns := 0
		if rows > 0 {
			columns = len(state.Track[0])
		}
		return fmt.Sprintf("Cell %s is out of bounds. Track is %d rows x %d columns", p, rows, columns)
	}

	symbol := state.Track[p.Row][p.Column]
	border := p.Row == 0 || p.Column == 0 || p.Row == rows-1 || p.Column == len(state.Track[0])-1

	var kind, description string
	passable := false
	switch symbol {
	case engine.WallCell:
		kind, description = "Wall", "Impassable"
	case engine.OpenCell:
		kind, description = "Open lane", "Drivable"
		passable = !border
	case engine.FinishCell:
		kind, description = "Finish", "Landing here wins the race"
		passable = !border
	default:
		kind, description = "Unknown", "Not part of the track alphabet"
	}
	if border && symbol != engine.WallCell {
		description = "Track border, always treated as a wall"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Cell %s: '%c' %s\n", p, symbol, kind))
	b.WriteString(fmt.Sprintf("Passable: %v\n", passable))
	b.WriteString(fmt.Sprintf("Description: %s\n", description))

	for _, r := range state.Racers {
		if r.Position.Equals(p) {
			b.WriteString(fmt.Sprintf("Occupied by: %s (%s, speed %d)\n", r.Name, r.Kind, r.Speed))
		}
	}
	return b.String()
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No race state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Race: %s | Round: %d | Status: %s | Turns: %d\n",
		state.ConfigName, state.Round, state.Status, state.TotalTurns))
	if state.WaitingFor != "" {
		result.WriteString(fmt.Sprintf("Waiting for: %s\n", state.WaitingFor))
	}
	result.WriteString("\n")

	for _, line := range state.Board {
		result.WriteString(line)
		result.WriteString("\n")
	}

	if len(state.Racers) > 0 {
		result.WriteString("\nRacers:\n")
		for _, r := range state.Racers {
			result.WriteString(fmt.Sprintf("- %s [%s] %s at %s facing %s, speed %d, %d to finish\n",
				r.Marker, r.Kind, r.Name, r.Position, r.Direction, r.Speed, r.DistanceToEnd))
		}
	}

	if state.Status == engine.StatusFinished {
		switch state.Outcome {
		case engine.OutcomeWinner:
			result.WriteString(fmt.Sprintf("\n🏁 WINNER: %s", state.Winner))
		case engine.OutcomeCollision:
			result.WriteString("\n💥 COLLISION")
		default:
			result.WriteString(fmt.Sprintf("\n🏁 RACE OVER (%s)", state.Outcome))
		}
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatTurn(turn engine.TurnEvent) string {
	m := turn.Move
	line := fmt.Sprintf("R%d %s (%s): %s %s→%s speed %d [%s]",
		turn.Round, turn.Racer, turn.Kind, m.Direction, m.From, m.To, m.Speed, m.Reason)
	if turn.Winner {
		line += " 🏁"
	}
	if turn.CollidedWith != "" {
		line += " 💥 " + turn.CollidedWith
	}
	return line
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Turn played\n"
	} else {
		response = "✗ Turn rejected\n"
	}
	if result.Message != "" && (result.GameState == nil || result.Message != result.GameState.Message) {
		response += result.Message + "\n"
	}

	if result.Step != nil {
		s := result.Step
		response += fmt.Sprintf("Step: %s %s→%s speed=%d %s, bots moved: %d\n",
			s.Dir, s.From, s.To, s.Speed, s.Reason, s.BotTurns)
	}

	if len(result.Turns) > 0 {
		response += "Turns:\n"
		for _, turn := range result.Turns {
			response += "- " + formatTurn(turn) + "\n"
		}
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	if len(result.PossibleMoves) > 0 {
		response += "Possible moves: " + strings.Join(result.PossibleMoves, ",") + "\n"
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	configName := ""
	if result.GameState != nil {
		configName = result.GameState.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Race: %s\n", sessionID, configName))

	b.WriteString(fmt.Sprintf("Executed %d/%d moves (rounds %d→%d, %s→%s)\n",
		result.MovesExecuted, result.RequestedMoves,
		result.StartRound, result.EndRound, result.StartPos, result.EndPos))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to the first %d moves\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped on move %d: %s\n", result.StoppedOnMove, result.StoppedReason))
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			status := "✓"
			if !s.Moved {
				status = "✗"
			}
			b.WriteString(fmt.Sprintf("%d. %s %s→%s speed=%d %s (+%d bot turns)\n",
				s.Idx, s.Dir, s.From, s.To, s.Speed, status, s.BotTurns))
		}
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	if len(result.PossibleMoves) > 0 {
		b.WriteString("\nPossible moves: ")
		b.WriteString(strings.Join(result.PossibleMoves, ","))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Turn History (Page %d/%d) | Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns))

	if len(history.Turns) == 0 {
		b.WriteString("(no turns yet)\n")
		return b.String()
	}
	for _, entry := range history.Turns {
		b.WriteString(fmt.Sprintf("%d. %s\n", entry.TurnNumber, formatTurn(entry.TurnEvent)))
	}
	return b.String()
}
