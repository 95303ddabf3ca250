package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDefinition(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestValidateShippedConfigs(t *testing.T) {
	files, err := definitionFiles("../../configs")
	if err != nil {
		t.Fatalf("definitionFiles failed: %v", err)
	}
	if len(files) == 0 {
		t.Skip("Skipping test - configs directory not found")
	}

	for _, file := range files {
		result := validateFile(file)
		if !result.Valid {
			t.Errorf("%s should be valid: %v", result.File, result.Errors)
		}
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantValid bool
		want      string
	}{
		{
			name: "valid json",
			file: "duel.json",
			content: `{
				"name": "Duel", "description": "two racers", "max_players": 2,
				"track": ["#####", "#...#", "#...#", "#_..#", "#####"],
				"players": [{"type": "Human", "name": "you"}, {"type": "EasyBot", "name": "eve"}]
			}`,
			wantValid: true,
			want:      "Finish cells: 1",
		},
		{
			name: "open border",
			file: "leaky.json",
			content: `{
				"name": "Leaky", "description": "hole in the wall", "max_players": 1,
				"track": ["#.###", "#...#", "#_..#", "#####"],
				"players": [{"type": "Human", "name": "you"}]
			}`,
			want: "border cell",
		},
		{
			name: "second start walled in",
			file: "blocked.json",
			content: `{
				"name": "Blocked", "description": "second grid slot is a wall", "max_players": 2,
				"track": ["#####", "#...#", "##..#", "#_..#", "#####"],
				"players": [{"type": "Human", "name": "you"}, {"type": "HardBot", "name": "hal"}]
			}`,
			want: "hal cannot reach the finish from (2,1)",
		},
		{
			name: "valid hcl",
			file: "tiny.hcl",
			content: `
name        = "Tiny"
description = "hcl definition"
max_players = 1
track = ["####", "#..#", "#_.#", "####"]
player "HardBot" {
  name = "hal"
}
`,
			wantValid: true,
			want:      "hal (HardBot) from (1,1): 1 steps to finish",
		},
		{
			name:    "unsupported format",
			file:    "race.yaml",
			content: "name: nope",
			want:    "unsupported config format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateFile(writeDefinition(t, tt.file, tt.content))
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}

			lines := result.Errors
			if result.Valid {
				lines = result.Notes
			}
			if !strings.Contains(strings.Join(lines, "\n"), tt.want) {
				t.Errorf("Expected %q in %v", tt.want, lines)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		out, _, err := runApp(t, "", "--config-dir", "../../configs", "validate")
		if err != nil {
			t.Fatalf("validate failed: %v\n%s", err, out)
		}
		if !strings.Contains(out, "All configurations are valid!") {
			t.Errorf("Unexpected output:\n%s", out)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		path := writeDefinition(t, "broken.json", `{"name": "Broken"`)
		out, _, err := runApp(t, "", "validate", path)
		if !errors.Is(err, errInvalidConfigs) {
			t.Errorf("Expected errInvalidConfigs, got %v", err)
		}
		if !strings.Contains(out, "❌ INVALID") {
			t.Errorf("Unexpected output:\n%s", out)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		_, _, err := runApp(t, "", "--config-dir", t.TempDir(), "validate")
		if err == nil || !strings.Contains(err.Error(), "no race definitions") {
			t.Errorf("Expected error for empty directory, got %v", err)
		}
	})
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	ok := printResults(&buf, []ValidationResult{
		{File: "a.json", Valid: true, Notes: []string{"Name: A"}},
		{File: "b.json", Valid: false, Errors: []string{"bad track"}},
	})
	if ok {
		t.Error("Expected printResults to report failure")
	}
	out := buf.String()
	for _, want := range []string{"✅ VALID", "  ✓ Name: A", "❌ INVALID", "  ❌ bad track", "Some configurations have errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}
