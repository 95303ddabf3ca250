// Package websocket pushes race updates to browser clients.
//
// A single Hub goroutine owns the registry of clients, grouped by session
// ID. Clients connect to /ws?session=<id> and only receive messages for that
// session. Each connection runs a read pump and a write pump; the read pump
// only services pings and close frames.
//
// Outgoing messages are JSON:
//
//	{"session_id":"ab12","event":"state_update","game_state":{...}}
//	{"session_id":"ab12","event":"turn","data":{"round":3,"racer":"hal",...}}
//
// Broadcast calls never block the caller. When the hub's queue is full the
// message is dropped and a warning is logged.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastTurns(sessionID, result.Turns)
//	hub.BroadcastToSession(sessionID, result.GameState)
package websocket
