package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Position represents row,column coordinates on the track
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Equals reports whether both coordinates match
func (p Position) Equals(other Position) bool {
	return p.Row == other.Row && p.Column == other.Column
}

// Offset returns the position reached by travelling speed cells in direction d
func (p Position) Offset(d Direction, speed int) Position {
	switch d {
	case Up:
		return Position{Row: p.Row - speed, Column: p.Column}
	case Down:
		return Position{Row: p.Row + speed, Column: p.Column}
	case Left:
		return Position{Row: p.Row, Column: p.Column - speed}
	case Right:
		return Position{Row: p.Row, Column: p.Column + speed}
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
}

// Direction is a heading on the grid
type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// Directions lists every heading in the order bots rotate through them
var Directions = []Direction{Right, Down, Left, Up}

// Next returns the following heading in the bot rotation order
func (d Direction) Next() Direction {
	switch d {
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return Right
	}
}

// Valid reports whether d is one of the four headings
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return ""
	}
}

// MarshalJSON encodes the direction as its lowercase name
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts the same tokens as ParseDirection
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection maps a player token to a heading. The reference keys
// W/A/S/D and the words up/down/left/right are accepted in any case.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "w", "up":
		return Up, nil
	case "s", "down":
		return Down, nil
	case "a", "left":
		return Left, nil
	case "d", "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, token)
}
