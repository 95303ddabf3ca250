package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/gridrace/game/config"
	"github.com/wricardo/gridrace/game/engine"
)

var errInvalidConfigs = errors.New("some configurations have errors")

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check race definitions and report track statistics",
		ArgsUsage: "[file ...]",
		Action:    runValidate,
	}
}

// ValidationResult captures the outcome of validating a single file.
// Notes are informational and only filled for valid files.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

func runValidate(_ context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		var err error
		if files, err = definitionFiles(cmd.String("config-dir")); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no race definitions found in %s", cmd.String("config-dir"))
	}

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateFile(file))
	}
	if !printResults(stdout(cmd), results) {
		return errInvalidConfigs
	}
	return nil
}

func definitionFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.hcl"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("error finding config files: %w", err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

// validateFile loads a definition through the same path the server uses,
// then checks that every racer that will actually start can reach the
// finish line.
func validateFile(path string) ValidationResult {
	result := ValidationResult{File: filepath.Base(path), Valid: true}

	race, err := config.LoadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	track, err := engine.NewTrack(race.Track)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	starters := 0
	for _, p := range race.Players {
		if starters == race.MaxPlayers {
			break
		}
		if _, ok := engine.ParseRacerKind(p.Type); !ok {
			continue
		}
		starters++

		start := engine.Position{Row: starters, Column: engine.StartColumn}
		steps, ok := engine.ShortestPathLength(track, start)
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s cannot reach the finish from %s", p.Name, start))
			continue
		}
		result.Notes = append(result.Notes, fmt.Sprintf("%s (%s) from %s: %d steps to finish", p.Name, p.Type, start, steps))
	}

	if !result.Valid {
		result.Notes = nil
		return result
	}

	notes := []string{
		fmt.Sprintf("Name: %s", race.Name),
		fmt.Sprintf("Track: %dx%d", track.Rows(), track.Columns()),
		fmt.Sprintf("Open cells: %d", engine.CountCells(track, engine.OpenCell)),
		fmt.Sprintf("Finish cells: %d", engine.CountCells(track, engine.FinishCell)),
		fmt.Sprintf("Racers: %d/%d", starters, race.MaxPlayers),
	}
	if race.MaxRounds > 0 {
		notes = append(notes, fmt.Sprintf("Round limit: %d", race.MaxRounds))
	}
	if race.CollisionEndsGame {
		notes = append(notes, "Collisions end the race")
	}
	result.Notes = append(notes, result.Notes...)
	return result
}

// printResults writes a report per file and reports whether all were valid
func printResults(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)
		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, note := range result.Notes {
				fmt.Fprintln(w, "  ✓ "+note)
			}
			continue
		}
		allValid = false
		fmt.Fprintln(w, "❌ INVALID")
		for _, err := range result.Errors {
			fmt.Fprintln(w, "  ❌ "+err)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}
