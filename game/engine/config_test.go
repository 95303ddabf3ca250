package engine

import (
	"errors"
	"strings"
	"testing"
)

func createValidConfig() *RaceConfig {
	return &RaceConfig{
		Name:        "Test Config",
		Description: "A valid test configuration",
		MaxPlayers:  2,
		Track: []string{
			"#######",
			"#.....#",
			"#.....#",
			"#__...#",
			"#######",
		},
		Players: []PlayerSpec{
			{Type: "Human", Name: "you"},
			{Type: "HardBot", Name: "hal"},
		},
		Messages: Messages{
			Welcome:     "Welcome to the test race!",
			Winner:      "%s wins!",
			InvalidMove: "Can't drive there!",
			Collision:   "Crash!",
			RoundLimit:  "Too slow!",
		},
	}
}

func TestValidateRaceConfig_ValidConfig(t *testing.T) {
	if err := ValidateRaceConfig(createValidConfig()); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
	if err := ValidateRaceConfig(DefaultRaceConfig()); err != nil {
		t.Errorf("Expected built-in config to pass validation, got error: %v", err)
	}
}

func TestValidateRaceConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *RaceConfig)
		contains string
	}{
		{"missing name", func(c *RaceConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *RaceConfig) { c.Description = "" }, "description is required"},
		{"too few rows", func(c *RaceConfig) { c.Track = c.Track[:2] }, "rows"},
		{"too narrow", func(c *RaceConfig) {
			c.Track = []string{"##", "#.", "##"}
		}, "columns"},
		{"ragged row", func(c *RaceConfig) { c.Track[2] = "#....#" }, "row 3 must have 7 characters"},
		{"invalid character", func(c *RaceConfig) { c.Track[1] = "#..X..#" }, "invalid character 'X'"},
		{"open border", func(c *RaceConfig) { c.Track[0] = "###.###" }, "border cell"},
		{"no finish", func(c *RaceConfig) { c.Track[3] = "#.....#" }, "finish"},
		{"no max players", func(c *RaceConfig) { c.MaxPlayers = 0 }, "max_players"},
		{"negative max rounds", func(c *RaceConfig) { c.MaxRounds = -1 }, "max_rounds"},
		{"no known players", func(c *RaceConfig) {
			c.Players = []PlayerSpec{{Type: "Robot", Name: "r2"}}
		}, "at least one"},
		{"missing welcome", func(c *RaceConfig) { c.Messages.Welcome = "" }, "messages.welcome"},
		{"winner without name", func(c *RaceConfig) { c.Messages.Winner = "Someone won" }, "%s"},
		{"blocked start", func(c *RaceConfig) { c.Track[1] = "##....#" }, "start cell"},
		{"unreachable finish", func(c *RaceConfig) {
			c.Track = []string{
				"#######",
				"#..#..#",
				"#..#..#",
				"#..#__#",
				"#######",
			}
		}, "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			tt.mutate(config)

			err := ValidateRaceConfig(config)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error to contain %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestValidateRaceConfig_UnknownPlayersAreNotErrors(t *testing.T) {
	config := createValidConfig()
	config.Players = append(config.Players, PlayerSpec{Type: "Robot", Name: "r2"})

	if err := ValidateRaceConfig(config); err != nil {
		t.Errorf("Expected unknown player types to be tolerated, got %v", err)
	}
}

func TestParseTrackFile(t *testing.T) {
	if _, err := ParseTrackFile(nil); !errors.Is(err, ErrEmptyTrackFile) {
		t.Errorf("Expected ErrEmptyTrackFile, got %v", err)
	}
	if _, err := ParseTrackFile([]string{"", "  "}); !errors.Is(err, ErrEmptyTrackFile) {
		t.Errorf("Expected ErrEmptyTrackFile for blank file, got %v", err)
	}

	track, err := ParseTrackFile([]string{"#####\r", "#._.#\r", "#####", ""})
	if err != nil {
		t.Fatalf("Expected track to parse, got %v", err)
	}
	if track.Rows() != 3 || track.Columns() != 5 {
		t.Errorf("Expected 3x5 track, got %dx%d", track.Rows(), track.Columns())
	}
}

func TestParseRosterFile(t *testing.T) {
	roster, err := ParseRosterFile([]string{
		" 3 ",
		"Human,Bob",
		"this line is malformed",
		"EasyBot , Eve ",
		"HardBot,Hal,extra",
		"",
	})
	if err != nil {
		t.Fatalf("Expected roster to parse, got %v", err)
	}

	if roster.MaxPlayers != 3 {
		t.Errorf("Expected max players 3, got %d", roster.MaxPlayers)
	}
	expected := []PlayerSpec{{Type: "Human", Name: "Bob"}, {Type: "EasyBot", Name: "Eve"}}
	if len(roster.Players) != len(expected) {
		t.Fatalf("Expected %d players, got %d", len(expected), len(roster.Players))
	}
	for i, p := range expected {
		if roster.Players[i] != p {
			t.Errorf("Player %d: expected %+v, got %+v", i, p, roster.Players[i])
		}
	}
	if len(roster.Warnings) != 2 {
		t.Errorf("Expected 2 warnings, got %v", roster.Warnings)
	}
}

func TestParseRosterFile_Errors(t *testing.T) {
	if _, err := ParseRosterFile(nil); !errors.Is(err, ErrEmptyRosterFile) {
		t.Errorf("Expected ErrEmptyRosterFile, got %v", err)
	}
	if _, err := ParseRosterFile([]string{"many", "Human,Bob"}); !errors.Is(err, ErrMaxPlayers) {
		t.Errorf("Expected ErrMaxPlayers, got %v", err)
	}
}

func TestNewRace(t *testing.T) {
	race, err := NewRace(DefaultRaceConfig(), RaceOptions{Random: NewRandom(1)})
	if err != nil {
		t.Fatalf("Failed to create race: %v", err)
	}

	if len(race.Cars) != 3 {
		t.Fatalf("Expected 3 cars, got %d", len(race.Cars))
	}
	for i, car := range race.Cars {
		want := Position{Row: i + 1, Column: StartColumn}
		if car.Position() != want {
			t.Errorf("Car %s: expected start %s, got %s", car.Name, want, car.Position())
		}
	}
	if race.Humans == nil {
		t.Error("Expected a queued input for the human racer")
	}
	if !race.HasHuman() {
		t.Error("Expected race to have a human")
	}
	if len(race.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", race.Warnings)
	}
}

func TestNewRace_SkipsUnknownAndExtraPlayers(t *testing.T) {
	config := createValidConfig()
	config.Players = []PlayerSpec{
		{Type: "Robot", Name: "r2"},
		{Type: "EasyBot", Name: "eve"},
		{Type: "HardBot", Name: "hal"},
		{Type: "Human", Name: "late"},
	}

	race, err := NewRace(config, RaceOptions{})
	if err != nil {
		t.Fatalf("Failed to create race: %v", err)
	}

	if len(race.Cars) != 2 {
		t.Fatalf("Expected 2 cars, got %d", len(race.Cars))
	}
	if race.Cars[0].Name != "eve" || race.Cars[0].Position() != (Position{Row: 1, Column: 1}) {
		t.Errorf("Expected eve to take the first start cell, got %s", race.Cars[0])
	}
	if len(race.Warnings) != 2 {
		t.Errorf("Expected 2 warnings, got %v", race.Warnings)
	}
}

func TestNewRace_BlockedStartCell(t *testing.T) {
	config := createValidConfig()
	config.Track[2] = "##....#"

	_, err := NewRace(config, RaceOptions{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigFromFiles(t *testing.T) {
	config, warnings, err := ConfigFromFiles("files",
		[]string{"#####", "#...#", "#._.#", "#####"},
		[]string{"2", "Human,you", "EasyBot,eve", "oops"},
	)
	if err != nil {
		t.Fatalf("Expected config, got %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", warnings)
	}
	if err := ValidateRaceConfig(config); err != nil {
		t.Errorf("Expected config from files to validate, got %v", err)
	}
}
