package engine

import "fmt"

// Terrain symbols
const (
	WallCell   byte = '#'
	OpenCell   byte = '.'
	FinishCell byte = '_'
)

// Track is the immutable terrain of a race together with its finish line.
// Racer occupancy is kept separately in an Overlay so that validity checks
// only ever see the original terrain.
type Track struct {
	rows    int
	columns int
	terrain [][]byte
	finish  []Position
	isEnd   map[Position]bool
}

// NewTrack builds a track from its text rows. The column count is taken from
// the first row and every other row must have the same length.
func NewTrack(lines []string) (*Track, error) {
	if lines == nil {
		return nil, fmt.Errorf("%w: track lines can't be nil", ErrInvalidInput)
	}
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("%w: track has no cells", ErrInvalidInput)
	}
	return NewTrackWithSize(len(lines), len(lines[0]), lines)
}

// NewTrackWithSize reads exactly rows x columns cells from lines.
func NewTrackWithSize(rows, columns int, lines []string) (*Track, error) {
	if lines == nil {
		return nil, fmt.Errorf("%w: track lines can't be nil", ErrInvalidInput)
	}
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidInput, rows, columns)
	}
	if len(lines) < rows {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidTrack, rows, len(lines))
	}

	t := &Track{
		rows:    rows,
		columns: columns,
		terrain: make([][]byte, rows),
		isEnd:   make(map[Position]bool),
	}

	for row := 0; row < rows; row++ {
		line := lines[row]
		if len(line) != columns {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d",
				errLineLength, row, len(line), columns)
		}
		t.terrain[row] = []byte(line)
		for column := 0; column < columns; column++ {
			if line[column] == FinishCell {
				pos := Position{Row: row, Column: column}
				t.finish = append(t.finish, pos)
				t.isEnd[pos] = true
			}
		}
	}

	return t, nil
}

// errLineLength matches both ErrLineLength and ErrInvalidTrack with errors.Is
var errLineLength = fmt.Errorf("%w: %w", ErrInvalidTrack, ErrLineLength)

// CheckValidMove reports whether p is an interior cell whose terrain is open
// or finish. Row and column 0 and the last index are treated as walls.
func (t *Track) CheckValidMove(p Position) bool {
	if t == nil {
		return false
	}
	if p.Row <= 0 || p.Row >= t.rows-1 || p.Column <= 0 || p.Column >= t.columns-1 {
		return false
	}
	cell := t.terrain[p.Row][p.Column]
	return cell == FinishCell || cell == OpenCell
}

// FinishLine returns the finish cells in row-major order
func (t *Track) FinishLine() []Position {
	out := make([]Position, len(t.finish))
	copy(out, t.finish)
	return out
}

// IsFinish reports whether p is a finish cell
func (t *Track) IsFinish(p Position) bool {
	return t.isEnd[p]
}

// Rows returns the number of rows
func (t *Track) Rows() int {
	return t.rows
}

// Columns returns the number of columns
func (t *Track) Columns() int {
	return t.columns
}

// Cell returns the terrain symbol at p
func (t *Track) Cell(p Position) (byte, bool) {
	if p.Row < 0 || p.Row >= t.rows || p.Column < 0 || p.Column >= t.columns {
		return 0, false
	}
	return t.terrain[p.Row][p.Column], true
}

// Lines returns a copy of the terrain rows
func (t *Track) Lines() []string {
	lines := make([]string, t.rows)
	for i, row := range t.terrain {
		lines[i] = string(row)
	}
	return lines
}
