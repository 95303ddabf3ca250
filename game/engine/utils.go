package engine

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Column - to.Column
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// NearestFinish finds the closest finish cell by Manhattan distance and returns its position and distance
func NearestFinish(track *Track, from Position) (Position, int, bool) {
	minDistance := -1
	var nearest Position
	for _, p := range track.FinishLine() {
		distance := ManhattanDistance(from, p)
		if minDistance == -1 || distance < minDistance {
			minDistance = distance
			nearest = p
		}
	}
	return nearest, minDistance, minDistance >= 0
}

// ShortestPathLength returns the number of single-cell steps from start to
// the nearest finish cell over drivable terrain
func ShortestPathLength(track *Track, start Position) (int, bool) {
	if !track.CheckValidMove(start) {
		return 0, false
	}

	dist := map[Position]int{start: 0}
	queue := []Position{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if track.IsFinish(current) {
			return dist[current], true
		}
		for _, d := range Directions {
			next := current.Offset(d, 1)
			if _, seen := dist[next]; seen || !track.CheckValidMove(next) {
				continue
			}
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}
	return 0, false
}

// CountCells counts the cells of the given terrain symbol
func CountCells(track *Track, symbol byte) int {
	count := 0
	for _, row := range track.terrain {
		for _, cell := range row {
			if cell == symbol {
				count++
			}
		}
	}
	return count
}
