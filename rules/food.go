package rules

import (
	"math"

	"github.com/brensch/gridsnake/game"
)

// PlaceFood picks a cell not covered by snake, uniformly among all free
// cells. Free cells are collected in row-major order and indexed with
// floor(rng()*len(free)), so a fixed rng sequence always yields the same cell.
//
// ok is false when the snake covers the whole board.
func PlaceFood(snake []game.Point, rows, cols int32, rng Source) (p game.Point, ok bool) {
	if rows <= 0 || cols <= 0 {
		return game.Point{}, false
	}

	occupied := make(map[game.Point]struct{}, len(snake))
	for _, seg := range snake {
		occupied[seg] = struct{}{}
	}

	total := int(rows) * int(cols)
	free := make([]game.Point, 0, max(total-len(occupied), 0))
	for y := int32(0); y < rows; y++ {
		for x := int32(0); x < cols; x++ {
			c := game.Point{X: x, Y: y}
			if _, taken := occupied[c]; taken {
				continue
			}
			free = append(free, c)
		}
	}

	if len(free) == 0 {
		return game.Point{}, false
	}
	return free[pickIndex(rng.orSystem()(), len(free))], true
}

// pickIndex maps r in [0,1) onto [0,n). Out-of-range draws from a misbehaving
// source are clamped rather than panicking on the slice index.
func pickIndex(r float64, n int) int {
	if math.IsNaN(r) {
		return 0
	}
	i := int(math.Floor(r * float64(n)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
