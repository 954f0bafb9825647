package world

import (
	"insectsim/internal/sim/board"
	"insectsim/internal/sim/model"
)

// TakeTurn scores, selects and travels for one insect against b.
func TakeTurn(b *board.Board, in *model.Insect) TurnResult {
	scores := ScoreDirections(in, b)
	best, ok := SelectDirection(scores)
	res := TurnResult{
		Insect: *in,
		Scores: scores,
	}
	if !ok {
		b.Remove(in.Pos)
		return res
	}
	res.Direction = best.Direction
	res.Score = best.Score
	res.Collected = Travel(in, best.Direction, b)
	return res
}
