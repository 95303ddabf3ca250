// Package session provides in-memory race session management for Grid Race.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Each session owns its own engine.RaceEngine built from the race
// configuration it was created with. Sessions are not persisted; a server
// restart starts with an empty manager.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters drawn from crypto/rand. Callers may
// supply their own ID instead. Lookups ignore case.
//
// Usage:
//
//	manager := session.NewManager(session.WithLogger(logger))
//
//	sess, err := manager.Create("", raceConfig)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
