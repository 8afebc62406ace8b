package game

import (
	"fmt"
	"strings"
)

// Direction is a heading on the board. The zero value None means
// "no input this tick" and is never a committed snake direction.
type Direction uint8

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the four real headings in a stable order.
var Directions = [...]Direction{Up, Down, Left, Right}

var vectors = [...]Point{
	None:  {},
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

var opposites = [...]Direction{
	None:  None,
	Up:    Down,
	Down:  Up,
	Left:  Right,
	Right: Left,
}

var names = [...]string{
	None:  "NONE",
	Up:    "UP",
	Down:  "DOWN",
	Left:  "LEFT",
	Right: "RIGHT",
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Vector returns the unit movement for d. None and unknown values map to (0,0).
func (d Direction) Vector() Point {
	if int(d) >= len(vectors) {
		return Point{}
	}
	return vectors[d]
}

// Opposite returns the reverse heading. None has no opposite and returns None.
func (d Direction) Opposite() Direction {
	if int(d) >= len(opposites) {
		return None
	}
	return opposites[d]
}

func (d Direction) String() string {
	if int(d) >= len(names) {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return names[d]
}

// ParseDirection accepts the String form in any case. An empty string
// parses as None.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return None, nil
	case "UP":
		return Up, nil
	case "DOWN":
		return Down, nil
	case "LEFT":
		return Left, nil
	case "RIGHT":
		return Right, nil
	}
	return None, fmt.Errorf("unknown direction %q", s)
}
