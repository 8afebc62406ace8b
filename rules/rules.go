// Package rules implements the snake game's state transitions.
//
// Every function here is pure apart from drawing from the injected Source:
// inputs are never mutated and each call returns a fresh state.
package rules

import (
	"github.com/brensch/gridsnake/game"
)

const (
	DefaultRows   = 20
	DefaultCols   = 20
	InitialLength = 3
)

// Outcome classifies what a single Step did.
type Outcome uint8

const (
	// Finished means the input state was already terminal.
	Finished Outcome = iota
	Moved
	Ate
	HitWall
	HitSelf
	// BoardFull means the snake ate the last free cell and won.
	BoardFull
)

func (o Outcome) String() string {
	switch o {
	case Finished:
		return "finished"
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case HitWall:
		return "hit_wall"
	case HitSelf:
		return "hit_self"
	case BoardFull:
		return "board_full"
	}
	return "unknown"
}

// Terminal reports whether the outcome ends the game.
func (o Outcome) Terminal() bool {
	return o == Finished || o == HitWall || o == HitSelf || o == BoardFull
}

// InitOptions configures CreateInitialState. Zero fields take defaults.
type InitOptions struct {
	Rows int32
	Cols int32
	Rand Source
}

// StepOptions configures StepState. Zero Rows/Cols keep the state's board
// size; Input None means no new input this tick.
type StepOptions struct {
	Rows  int32
	Cols  int32
	Rand  Source
	Input game.Direction
}

// CreateInitialState builds a fresh game: a three segment snake facing right,
// centred vertically, with its head two cells right of cols/2-1, and one food.
func CreateInitialState(opts InitOptions) *game.GameState {
	rows, cols := opts.Rows, opts.Cols
	if rows == 0 {
		rows = DefaultRows
	}
	if cols == 0 {
		cols = DefaultCols
	}

	startX := cols/2 - 1
	startY := rows / 2
	snake := make([]game.Point, 0, InitialLength)
	for i := int32(InitialLength - 1); i >= 0; i-- {
		snake = append(snake, game.Point{X: startX + i, Y: startY})
	}

	state := &game.GameState{
		Rows:      rows,
		Cols:      cols,
		Snake:     snake,
		Direction: game.Right,
	}
	if f, ok := PlaceFood(snake, rows, cols, opts.Rand); ok {
		state.Food = &f
	}
	return state
}

// ResolveDirection returns the heading to use for the next step. No input
// keeps the current heading, and a 180 degree reversal is ignored.
func ResolveDirection(current, input game.Direction) game.Direction {
	if !input.Valid() {
		return current
	}
	if current.Opposite() == input {
		return current
	}
	return input
}

// StepState advances the game by one tick.
func StepState(state *game.GameState, opts StepOptions) *game.GameState {
	next, _ := Step(state, opts)
	return next
}

// Step is StepState that also reports what happened.
//
// A terminal input state is returned as is. Wall and self collisions return a
// copy of the pre-move state with only Direction and GameOver changed.
func Step(state *game.GameState, opts StepOptions) (*game.GameState, Outcome) {
	if state.GameOver {
		return state, Finished
	}

	rows, cols := opts.Rows, opts.Cols
	if rows == 0 {
		rows = state.Rows
	}
	if cols == 0 {
		cols = state.Cols
	}

	direction := ResolveDirection(state.Direction, opts.Input)
	newHead := state.Head().Add(direction.Vector())

	if !newHead.In(rows, cols) {
		return crashed(state, direction), HitWall
	}

	ateFood := state.Food != nil && *state.Food == newHead

	// Always a fresh backing array so the previous state's body is never shared.
	newBody := make([]game.Point, 0, len(state.Snake)+1)
	newBody = append(newBody, newHead)
	newBody = append(newBody, state.Snake...)
	if !ateFood {
		newBody = newBody[:len(newBody)-1]
	}

	for _, p := range newBody[1:] {
		if p == newHead {
			return crashed(state, direction), HitSelf
		}
	}

	next := &game.GameState{
		Rows:      rows,
		Cols:      cols,
		Snake:     newBody,
		Direction: direction,
		Food:      state.Food,
		Score:     state.Score,
	}
	if !ateFood {
		if next.Food != nil {
			f := *next.Food
			next.Food = &f
		}
		return next, Moved
	}

	next.Score++
	f, ok := PlaceFood(newBody, rows, cols, opts.Rand)
	if !ok {
		next.Food = nil
		next.GameOver = true
		return next, BoardFull
	}
	next.Food = &f
	return next, Ate
}

func crashed(state *game.GameState, direction game.Direction) *game.GameState {
	out := state.Clone()
	out.Direction = direction
	out.GameOver = true
	return out
}
