package world

import (
	"insectsim/internal/sim/board"
	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/model"
)

// ray yields the cells an insect lands on when striding from its position
// in one direction, stopping at the board edge.
type ray struct {
	cur    grid.Pos
	dx, dy int
	size   int
}

// newRay fails for a direction outside the insect's capability set.
func newRay(in *model.Insect, d grid.Direction, size int) (ray, bool) {
	step := in.Step()
	if step <= 0 || !in.Species.Allows(d) {
		return ray{}, false
	}
	dx, dy := d.Offset()
	return ray{cur: in.Pos, dx: dx * step, dy: dy * step, size: size}, true
}

func (r *ray) next() (grid.Pos, bool) {
	r.cur = r.cur.Add(r.dx, r.dy)
	return r.cur, r.cur.InBounds(r.size)
}

// VisibleFoodValue sums every food value along d up to the board edge.
// Insects on the way do not hide the food behind them. The board is not
// modified.
func VisibleFoodValue(in *model.Insect, d grid.Direction, b *board.Board) int {
	r, ok := newRay(in, d, b.Size())
	if !ok {
		return 0
	}
	total := 0
	for p, inside := r.next(); inside; p, inside = r.next() {
		if f, ok := b.Get(p).(*model.Food); ok {
			total += f.Value
		}
	}
	return total
}

// ScoreDirections scores every legal direction of in, highest priority first.
func ScoreDirections(in *model.Insect, b *board.Board) []DirectionScore {
	dirs := in.Directions()
	out := make([]DirectionScore, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, DirectionScore{Direction: d, Score: VisibleFoodValue(in, d, b)})
	}
	return out
}

// SelectDirection picks the highest score; ties go to the higher priority
// direction. The input order does not matter.
func SelectDirection(scores []DirectionScore) (DirectionScore, bool) {
	if len(scores) == 0 {
		return DirectionScore{}, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score || (s.Score == best.Score && s.Direction.Priority() > best.Direction.Priority()) {
			best = s
		}
	}
	return best, true
}
