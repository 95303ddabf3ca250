package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// hardBotTrack is the 5x8 track used by the HardBot scenarios
var hardBotTrack = []string{
	"########",
	"#......#",
	"#......#",
	"#__....#",
	"########",
}

// straightTrack is wide enough for a human to reach top speed
var straightTrack = []string{
	"##############",
	"#............#",
	"#............#",
	"#_...........#",
	"##############",
}

// fixedRandom replays values in a loop
type fixedRandom struct {
	values []int
	next   int
}

func (r *fixedRandom) Intn(n int) int {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

func mustTrack(t *testing.T, lines []string) *Track {
	t.Helper()
	track, err := NewTrack(lines)
	require.NoError(t, err)
	return track
}

// placeCar creates a car driven by strategy at p
func placeCar(name string, strategy MovementStrategy, p Position) *Car {
	car := NewCar(name, strategy)
	car.UpdatePosition(p)
	return car
}

// scriptedInput returns dirs in order
func scriptedInput(dirs ...Direction) InputProvider {
	q := NewQueuedInput()
	for _, d := range dirs {
		_ = q.Submit(d)
	}
	return q
}
