package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateRaceConfig validates a race configuration for correctness and playability
func ValidateRaceConfig(config *RaceConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}

	// Validate track
	rows := len(config.Track)
	if rows < MinTrackSize || rows > MaxTrackSize {
		return fmt.Errorf("%w: track must have between %d and %d rows, got %d",
			ErrInvalidConfig, MinTrackSize, MaxTrackSize, rows)
	}
	columns := len(config.Track[0])
	if columns < MinTrackSize || columns > MaxTrackSize {
		return fmt.Errorf("%w: track must have between %d and %d columns, got %d",
			ErrInvalidConfig, MinTrackSize, MaxTrackSize, columns)
	}

	finishCount := 0
	for i, row := range config.Track {
		if len(row) != columns {
			return fmt.Errorf("%w: row %d must have %d characters, got %d",
				ErrInvalidConfig, i+1, columns, len(row))
		}
		for j := 0; j < len(row); j++ {
			cell := row[j]
			switch cell {
			case WallCell, OpenCell:
			case FinishCell:
				finishCount++
			default:
				return fmt.Errorf("%w: invalid character '%c' at row %d, col %d",
					ErrInvalidConfig, cell, i+1, j+1)
			}
			border := i == 0 || i == rows-1 || j == 0 || j == columns-1
			if border && cell != WallCell {
				return fmt.Errorf("%w: border cell at row %d, col %d must be '#'",
					ErrInvalidConfig, i+1, j+1)
			}
		}
	}
	if finishCount == 0 {
		return fmt.Errorf("%w: track must contain at least one finish (_) cell", ErrInvalidConfig)
	}

	// Validate roster
	if config.MaxPlayers < 1 {
		return fmt.Errorf("%w: max_players must be at least 1, got %d", ErrInvalidConfig, config.MaxPlayers)
	}
	if config.MaxRounds < 0 {
		return fmt.Errorf("%w: max_rounds can't be negative", ErrInvalidConfig)
	}
	recognized := 0
	for _, p := range config.Players {
		if _, ok := ParseRacerKind(p.Type); ok {
			recognized++
		}
	}
	if recognized == 0 {
		return fmt.Errorf("%w: at least one Human, EasyBot or HardBot player is required", ErrInvalidConfig)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("%w: messages.welcome is required", ErrInvalidConfig)
	}
	if !strings.Contains(config.Messages.Winner, "%s") {
		return fmt.Errorf("%w: messages.winner must contain %%s for the winner name", ErrInvalidConfig)
	}

	// Validate winnability - the finish line must be reachable from the first start cell
	track, err := NewTrack(config.Track)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	start := Position{Row: 1, Column: StartColumn}
	if !track.CheckValidMove(start) {
		return fmt.Errorf("%w: start cell %s is not drivable", ErrInvalidConfig, start)
	}
	if _, ok := ShortestPathLength(track, start); !ok {
		return fmt.Errorf("%w: finish line is unreachable from start cell %s", ErrInvalidConfig, start)
	}

	return nil
}

// ParseTrackFile builds a track from the lines of a track text file
func ParseTrackFile(lines []string) (*Track, error) {
	lines = trimTrailingBlank(lines)
	if len(lines) == 0 {
		return nil, ErrEmptyTrackFile
	}
	return NewTrack(lines)
}

// Roster is the content of a players text file
type Roster struct {
	MaxPlayers int
	Players    []PlayerSpec
	Warnings   []string
}

// ParseRosterFile reads a players text file. The first line holds the
// maximum number of players, every following line a "Type,Name" pair.
// Malformed lines are skipped and reported in Warnings.
func ParseRosterFile(lines []string) (*Roster, error) {
	lines = trimTrailingBlank(lines)
	if len(lines) == 0 {
		return nil, ErrEmptyRosterFile
	}

	maxPlayers, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMaxPlayers, lines[0])
	}

	roster := &Roster{MaxPlayers: maxPlayers}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			roster.Warnings = append(roster.Warnings, fmt.Sprintf("invalid player data format: %s", line))
			continue
		}
		roster.Players = append(roster.Players, PlayerSpec{
			Type: strings.TrimSpace(parts[0]),
			Name: strings.TrimSpace(parts[1]),
		})
	}
	return roster, nil
}

// ConfigFromFiles turns a track file and a players file into a RaceConfig
func ConfigFromFiles(name string, trackLines, rosterLines []string) (*RaceConfig, []string, error) {
	track, err := ParseTrackFile(trackLines)
	if err != nil {
		return nil, nil, err
	}
	roster, err := ParseRosterFile(rosterLines)
	if err != nil {
		return nil, nil, err
	}

	config := &RaceConfig{
		Name:        name,
		Description: "Race loaded from text files",
		MaxPlayers:  roster.MaxPlayers,
		Track:       track.Lines(),
		Players:     roster.Players,
		Messages:    DefaultMessages(),
	}
	return config, roster.Warnings, nil
}

// DefaultMessages returns the messages used when a config leaves them empty
func DefaultMessages() Messages {
	return Messages{
		Welcome:     "Lights out and away we go!",
		Winner:      "%s crossed the finish line!",
		InvalidMove: "You can't drive there!",
		Collision:   "Crash! The race is over.",
		RoundLimit:  "Out of laps. Nobody finished.",
	}
}

// ApplyDefaults fills every empty message with its default text
func (c *RaceConfig) ApplyDefaults() {
	defaults := DefaultMessages()
	if c.Messages.Welcome == "" {
		c.Messages.Welcome = defaults.Welcome
	}
	if c.Messages.Winner == "" {
		c.Messages.Winner = defaults.Winner
	}
	if c.Messages.InvalidMove == "" {
		c.Messages.InvalidMove = defaults.InvalidMove
	}
	if c.Messages.Collision == "" {
		c.Messages.Collision = defaults.Collision
	}
	if c.Messages.RoundLimit == "" {
		c.Messages.RoundLimit = defaults.RoundLimit
	}
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	out := make([]string, end)
	for i, line := range lines[:end] {
		out[i] = strings.TrimRight(line, "\r")
	}
	return out
}

// DefaultRaceConfig returns the built-in race used when no definition is available
func DefaultRaceConfig() *RaceConfig {
	return &RaceConfig{
		Name:        "classic",
		Description: "A small oval with one human against an easy and a hard bot",
		MaxPlayers:  3,
		Track: []string{
			"##########",
			"#........#",
			"#........#",
			"#........#",
			"#..####..#",
			"#..####..#",
			"#__####..#",
			"##########",
		},
		Players: []PlayerSpec{
			{Type: string(HumanRacer), Name: "Player"},
			{Type: string(EasyBotRacer), Name: "Easy"},
			{Type: string(HardBotRacer), Name: "Hal"},
		},
		Messages: DefaultMessages(),
	}
}
