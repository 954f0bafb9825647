package grid

import "testing"

func TestDirectionPriorityOrder(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Fatalf("expected 8 directions, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Priority() <= all[i].Priority() {
			t.Fatalf("priority not strictly descending at %v -> %v", all[i-1], all[i])
		}
	}
	if N.Priority() != 8 || NW.Priority() != 1 {
		t.Fatalf("unexpected priorities N=%d NW=%d", N.Priority(), NW.Priority())
	}
}

func TestDirectionOffsets(t *testing.T) {
	cases := []struct {
		d      Direction
		dx, dy int
	}{
		{N, 0, -1}, {E, 1, 0}, {S, 0, 1}, {W, -1, 0},
		{NE, 1, -1}, {SE, 1, 1}, {SW, -1, 1}, {NW, -1, -1},
	}
	for _, c := range cases {
		dx, dy := c.d.Offset()
		if dx != c.dx || dy != c.dy {
			t.Fatalf("%v offset=(%d,%d) want (%d,%d)", c.d, dx, dy, c.dx, c.dy)
		}
	}
}

func TestDirectionSets(t *testing.T) {
	for _, d := range Orthogonal {
		if !d.IsOrthogonal() || d.IsDiagonal() {
			t.Fatalf("%v should be orthogonal only", d)
		}
	}
	for _, d := range Diagonal {
		if !d.IsDiagonal() || d.IsOrthogonal() {
			t.Fatalf("%v should be diagonal only", d)
		}
	}
}

func TestParseDirectionRoundTrip(t *testing.T) {
	for _, d := range All() {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Fatalf("ParseDirection(%q)=%v,%v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("Up"); ok {
		t.Fatalf("expected unknown label rejected")
	}
	if Direction(0).String() != "NONE" {
		t.Fatalf("zero direction label=%q", Direction(0).String())
	}
}

func TestStepAndBounds(t *testing.T) {
	p := Pos{X: 3, Y: 3}
	if got := S.Step(p, 2); got != (Pos{X: 3, Y: 5}) {
		t.Fatalf("S.Step=%v", got)
	}
	if got := NW.Step(p, 1); got != (Pos{X: 2, Y: 2}) {
		t.Fatalf("NW.Step=%v", got)
	}
	if !(Pos{X: 1, Y: 4}).InBounds(4) {
		t.Fatalf("(1,4) should be inside a 4x4 board")
	}
	if (Pos{X: 0, Y: 1}).InBounds(4) || (Pos{X: 5, Y: 1}).InBounds(4) {
		t.Fatalf("edge cells outside should be rejected")
	}
}
