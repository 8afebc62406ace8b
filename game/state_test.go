package game

import (
	"testing"
)

func TestClone_IsIndependent(t *testing.T) {
	orig := &GameState{
		Rows:      5,
		Cols:      5,
		Snake:     []Point{{X: 2, Y: 2}, {X: 1, Y: 2}},
		Direction: Right,
		Food:      &Point{X: 4, Y: 4},
		Score:     3,
	}

	c := orig.Clone()
	c.Snake[0] = Point{X: 0, Y: 0}
	c.Food.X = 1
	c.Score++

	if orig.Snake[0] != (Point{X: 2, Y: 2}) {
		t.Fatalf("clone aliased snake: orig head=%v", orig.Snake[0])
	}
	if orig.Food.X != 4 {
		t.Fatalf("clone aliased food: orig food=%v", *orig.Food)
	}
	if orig.Score != 3 {
		t.Fatalf("score=%d want=3", orig.Score)
	}
}

func TestClone_NilFoodAndNilState(t *testing.T) {
	var s *GameState
	if s.Clone() != nil {
		t.Fatalf("nil clone should be nil")
	}

	full := &GameState{Rows: 1, Cols: 2, Snake: []Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, GameOver: true}
	c := full.Clone()
	if c.Food != nil {
		t.Fatalf("food=%v want=nil", *c.Food)
	}
	if !c.GameOver {
		t.Fatalf("game over flag lost")
	}
}

func TestDirection_OppositeAndVector(t *testing.T) {
	for _, d := range Directions {
		o := d.Opposite()
		if o.Opposite() != d {
			t.Fatalf("%s: opposite of opposite is %s", d, o.Opposite())
		}
		v, ov := d.Vector(), o.Vector()
		if v.X+ov.X != 0 || v.Y+ov.Y != 0 {
			t.Fatalf("%s vector %v does not cancel %s vector %v", d, v, o, ov)
		}
		if abs(v.X)+abs(v.Y) != 1 {
			t.Fatalf("%s vector %v is not a unit step", d, v)
		}
	}
	if Up.Vector() != (Point{X: 0, Y: -1}) {
		t.Fatalf("up=%v want=(0,-1)", Up.Vector())
	}
	if None.Opposite() != None || None.Vector() != (Point{}) {
		t.Fatalf("none should be inert")
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Fatalf("parse %q = %v, %v", d.String(), got, err)
		}
	}
	if got, err := ParseDirection("left"); err != nil || got != Left {
		t.Fatalf("lowercase parse = %v, %v", got, err)
	}
	if got, err := ParseDirection(""); err != nil || got != None {
		t.Fatalf("empty parse = %v, %v", got, err)
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestPoint_In(t *testing.T) {
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{X: 0, Y: 0}, true},
		{Point{X: 19, Y: 19}, true},
		{Point{X: 20, Y: 10}, false},
		{Point{X: -1, Y: 0}, false},
		{Point{X: 0, Y: 20}, false},
	}
	for _, c := range cases {
		if got := c.p.In(20, 20); got != c.want {
			t.Errorf("%v.In(20,20)=%v want=%v", c.p, got, c.want)
		}
	}
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
