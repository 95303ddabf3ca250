package engine

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleInput_RepromptsOnUnknownToken(t *testing.T) {
	var out bytes.Buffer
	input := NewConsoleInput(strings.NewReader("x\nnorth\nD\n"), &out)

	dir, err := input.RequestDirection(context.Background(), NewCar("bob", nil))
	require.NoError(t, err)
	assert.Equal(t, Right, dir)
	assert.Equal(t, 2, strings.Count(out.String(), "Unknown direction"))
	assert.Contains(t, out.String(), "bob, enter direction")
}

func TestConsoleInput_EOF(t *testing.T) {
	input := NewConsoleInput(strings.NewReader(""), nil)

	_, err := input.RequestDirection(context.Background(), nil)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsoleInput_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	input := NewConsoleInput(strings.NewReader("w\n"), nil)

	_, err := input.RequestDirection(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueuedInput(t *testing.T) {
	q := NewQueuedInput()

	_, err := q.RequestDirection(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInputPending)

	require.NoError(t, q.Submit(Up))
	require.NoError(t, q.Submit(Left))
	assert.Equal(t, 2, q.Pending())
	assert.ErrorIs(t, q.Submit(Direction(9)), ErrUnknownDirection)

	dir, err := q.RequestDirection(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Up, dir)

	q.Clear()
	assert.Equal(t, 0, q.Pending())
}

func TestRandomInput(t *testing.T) {
	input := NewRandomInput(&fixedRandom{values: []int{0, 1, 2, 3}})

	var got []Direction
	for i := 0; i < 4; i++ {
		dir, err := input.RequestDirection(context.Background(), nil)
		require.NoError(t, err)
		got = append(got, dir)
	}
	assert.Equal(t, Directions, got)
}
