package world

import (
	"insectsim/internal/sim/board"
	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/model"
)

// Travel walks in along d, eating every food it lands on until it reaches the
// board edge or lands on an insect of another color. Same-color insects are
// passed over untouched. The insect then leaves the board from its original
// cell whatever stopped it. Returns the amount eaten.
func Travel(in *model.Insect, d grid.Direction, b *board.Board) int {
	defer b.Remove(in.Pos)

	r, ok := newRay(in, d, b.Size())
	if !ok {
		return 0
	}
	collected := 0
	for p, inside := r.next(); inside; p, inside = r.next() {
		switch e := b.Get(p).(type) {
		case *model.Food:
			collected += e.Value
			b.Remove(p)
		case *model.Insect:
			if in.Rival(e) {
				return collected
			}
		}
	}
	return collected
}
