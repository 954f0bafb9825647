package world

import (
	"testing"

	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/model"
)

func pos(x, y int) grid.Pos { return grid.Pos{X: x, Y: y} }

func addInsect(t *testing.T, w *World, c model.Color, sp model.Species, x, y int) *model.Insect {
	t.Helper()
	in := &model.Insect{Pos: pos(x, y), Color: c, Species: sp}
	if err := w.AddInsect(in); err != nil {
		t.Fatalf("AddInsect %v %v at (%d,%d): %v", c, sp, x, y, err)
	}
	return in
}

func addFood(t *testing.T, w *World, value, x, y int) {
	t.Helper()
	if err := w.AddFood(&model.Food{Pos: pos(x, y), Value: value}); err != nil {
		t.Fatalf("AddFood %d at (%d,%d): %v", value, x, y, err)
	}
}

func scoreOf(scores []DirectionScore, d grid.Direction) (int, bool) {
	for _, s := range scores {
		if s.Direction == d {
			return s.Score, true
		}
	}
	return 0, false
}

type captureLogger struct {
	entries []TurnLogEntry
	err     error
}

func (c *captureLogger) WriteTurn(e TurnLogEntry) error {
	c.entries = append(c.entries, e)
	return c.err
}
