// Package mcp provides a Model Context Protocol server for Grid Race.
//
// The server is a thin client over the REST API: every tool call becomes an
// HTTP request against /api and the JSON response is rendered as text for
// the agent.
//
// MCP Tools:
//   - create_session, get_session, list_sessions: session management
//   - race_state: board, racers and race status
//   - move: play the human turn, then bots until the human is due again
//   - bulk_move: several human turns in one call
//   - step: bot turns only, for bot-only races
//   - reset_race: restart from the starting grid
//   - turn_history: paginated turn log, optionally for one racer
//   - list_configs: available race definitions
//   - race_instructions: rules of the race
//   - describe_cell: terrain and occupants of one cell
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp handled by the main server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
