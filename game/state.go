// Package game defines the core game state types for the grid snake game.
//
// States are treated as immutable values: every tick produces a new
// GameState, and nothing reachable from an older state is modified.
package game

// Point is a board cell.
// (0,0) is the top-left cell; Y grows downward.
type Point struct {
	X int32
	Y int32
}

// Add returns p moved by v.
func (p Point) Add(v Point) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// In reports whether p lies on a rows x cols board.
func (p Point) In(rows, cols int32) bool {
	return p.X >= 0 && p.X < cols && p.Y >= 0 && p.Y < rows
}

// GameState is everything the rules need to advance one tick.
// Snake is ordered head first. Food is nil only when the snake fills the board.
type GameState struct {
	Rows      int32
	Cols      int32
	Snake     []Point
	Direction Direction
	Food      *Point
	Score     int32
	GameOver  bool
}

// Head returns the first snake segment.
func (s *GameState) Head() Point {
	return s.Snake[0]
}

// Occupies reports whether any snake segment sits on p.
func (s *GameState) Occupies(p Point) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Clone performs a deep copy of the game state.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}

	out := &GameState{
		Rows:      s.Rows,
		Cols:      s.Cols,
		Direction: s.Direction,
		Score:     s.Score,
		GameOver:  s.GameOver,
	}

	if len(s.Snake) > 0 {
		out.Snake = make([]Point, len(s.Snake))
		copy(out.Snake, s.Snake)
	}

	if s.Food != nil {
		f := *s.Food
		out.Food = &f
	}

	return out
}
