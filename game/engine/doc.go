// Package engine provides the core race logic for Grid Race.
//
// The engine package implements the race mechanics including:
//   - A fixed character grid track with walls, open cells and a finish line
//   - Human, EasyBot and HardBot movement strategies
//   - The turn loop with win, collision and round limit detection
//   - Race configuration loading, validation and setup
//
// Core Types:
//
// Track holds the immutable terrain; racer markers live in a separate
// Overlay used only for rendering. A Car owns one MovementStrategy, and the
// GamePlay drives every Car in registration order. RaceEngine wraps a
// GamePlay for hosts that receive human input asynchronously: directions are
// submitted to a QueuedInput and the suspended round resumes from there.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultRaceConfig(), nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Submit the human's direction and play until the next human turn
//	result, err := eng.Move(ctx, engine.Right)
//	state := eng.GetState()
//
// Race Rules:
//
// Cells on the outer border and '#' cells are never drivable. Humans steer
// with W/A/S/D and accelerate up to speed 3 while holding a heading. EasyBot
// creeps at speed 1 and loses a turn whenever it has to turn. HardBot moves 1
// or 2 cells at random and turns until it finds a free cell. The first racer
// to stop on a '_' cell wins.
package engine
