// Package api provides HTTP REST API handlers for Grid Race.
//
// The api package implements:
//   - Session management endpoints
//   - Race operations (move, bulk move, step, reset)
//   - Paginated turn history
//   - Race definition listing, loading and saving
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Race Operations:
//   - GET /api/sessions/{id}/state - Current race state
//   - POST /api/sessions/{id}/move - {"direction": "w", "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"moves": ["d", "s"], "reset": false}
//   - POST /api/sessions/{id}/step - Run bot turns until a human is due
//   - POST /api/sessions/{id}/reset - Restart the race
//   - GET /api/sessions/{id}/history - page, limit, order=asc|desc, racer
//
// Configuration:
//   - GET /api/configs - List race definitions
//   - GET /api/configs/{name} - Load a race definition
//   - POST /api/configs - Save a race definition (JSON RaceConfig body)
//
// Other:
//   - GET /api/health
//   - GET /ws?session={id} - WebSocket state and turn stream
//
// Error Handling:
//
// Errors are returned as {"error": "message"}. Unknown sessions and configs
// map to 404, unknown directions and invalid definitions to 400, and moves
// against a finished race to 409.
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
