// Package service provides the business logic layer for Grid Race.
//
// The service package implements:
//   - Multi-session race management
//   - Race configuration loading and saving
//   - Move, bulk move and bot step processing
//   - Paginated turn history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level race
// operations. SessionManager handles session creation, retrieval and
// lifecycle. ConfigManager loads and validates race definitions.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the race engine. Every session owns an engine.RaceEngine; the service
// serializes calls with a single mutex, so the engine itself never locks.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// One human move; the bots that follow play too
//	result, err := gameService.Move(ctx, info.ID, "right", false)
//
// Events:
//
// Move, BulkMove and Step translate engine turns into GameEvents: turn,
// invalid_move, stalled, winner, collision, round_limit, stalemate and reset.
package service
