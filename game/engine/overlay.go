package engine

// Overlay holds the transient racer markers drawn on top of a track.
// It is purely a view concern; Track.CheckValidMove never reads it.
type Overlay struct {
	markers map[Position][]rune
}

// NewOverlay creates an empty overlay
func NewOverlay() *Overlay {
	return &Overlay{markers: make(map[Position][]rune)}
}

// Place puts marker at p. Several racers may share a cell.
func (o *Overlay) Place(p Position, marker rune) {
	o.markers[p] = append(o.markers[p], marker)
}

// Clear removes one occurrence of marker from p
func (o *Overlay) Clear(p Position, marker rune) {
	stack := o.markers[p]
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == marker {
			stack = append(stack[:i], stack[i+1:]...)
			break
		}
	}
	if len(stack) == 0 {
		delete(o.markers, p)
		return
	}
	o.markers[p] = stack
}

// At returns the top marker at p
func (o *Overlay) At(p Position) (rune, bool) {
	stack := o.markers[p]
	if len(stack) == 0 {
		return 0, false
	}
	return stack[len(stack)-1], true
}

// Render draws the track with the overlay markers on top
func (o *Overlay) Render(t *Track) []string {
	lines := make([]string, t.rows)
	for row := 0; row < t.rows; row++ {
		cells := make([]rune, t.columns)
		for column := 0; column < t.columns; column++ {
			p := Position{Row: row, Column: column}
			if marker, ok := o.At(p); ok {
				cells[column] = marker
				continue
			}
			cells[column] = rune(t.terrain[row][column])
		}
		lines[row] = string(cells)
	}
	return lines
}
