package engine

import (
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Car is a racer on the track. It owns its movement strategy and the
// strategy holds a non-owning reference back to it.
type Car struct {
	ID       string
	Name     string
	position Position
	strategy MovementStrategy
}

// NewCar creates a car driven by strategy and registers itself as the
// strategy's owner
func NewCar(name string, strategy MovementStrategy) *Car {
	car := &Car{
		ID:       uuid.NewString(),
		Name:     name,
		strategy: strategy,
	}
	if strategy != nil {
		strategy.SetOwner(car)
	}
	return car
}

// UpdatePosition moves the car. Only strategies and race setup call it.
func (c *Car) UpdatePosition(p Position) {
	c.position = p
}

// Position returns the current position
func (c *Car) Position() Position {
	return c.position
}

// Strategy returns the movement strategy driving the car
func (c *Car) Strategy() MovementStrategy {
	return c.strategy
}

// Kind returns the racer kind of the strategy
func (c *Car) Kind() RacerKind {
	if c.strategy == nil {
		return ""
	}
	return c.strategy.Kind()
}

// Marker is the rune drawn for the car on a rendered board
func (c *Car) Marker() rune {
	r, _ := utf8.DecodeRuneInString(c.Name)
	if r == utf8.RuneError {
		return '?'
	}
	return unicode.ToUpper(r)
}

func (c *Car) String() string {
	return c.Name + "@" + c.position.String()
}
