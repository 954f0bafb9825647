package world

import (
	"testing"

	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/model"
)

func TestVisibleFoodValue_AntScenario(t *testing.T) {
	w := New(5)
	ant := addInsect(t, w, model.Red, model.Ant, 3, 3)
	addFood(t, w, 4, 3, 1)
	addFood(t, w, 1, 5, 3)

	scores := ScoreDirections(ant, w.Board())
	if len(scores) != 8 {
		t.Fatalf("ant should score 8 directions, got %d", len(scores))
	}
	for _, d := range grid.All() {
		got, _ := scoreOf(scores, d)
		want := 0
		switch d {
		case grid.N:
			want = 4
		case grid.E:
			want = 1
		}
		if got != want {
			t.Fatalf("score %v=%d want %d", d, got, want)
		}
	}
}

func TestVisibleFoodValue_SeesPastInsects(t *testing.T) {
	w := New(5)
	ant := addInsect(t, w, model.Red, model.Ant, 1, 1)
	addInsect(t, w, model.Blue, model.Spider, 3, 1)
	addFood(t, w, 2, 2, 1)
	addFood(t, w, 9, 5, 1)

	if got := VisibleFoodValue(ant, grid.E, w.Board()); got != 11 {
		t.Fatalf("east=%d want 11", got)
	}
}

func TestVisibleFoodValue_GrasshopperStride(t *testing.T) {
	w := New(6)
	gh := addInsect(t, w, model.Green, model.Grasshopper, 3, 3)
	addFood(t, w, 5, 3, 5)
	addFood(t, w, 7, 3, 4) // skipped: odd distance

	if got := VisibleFoodValue(gh, grid.S, w.Board()); got != 5 {
		t.Fatalf("south=%d want 5", got)
	}
	if got := VisibleFoodValue(gh, grid.N, w.Board()); got != 0 {
		t.Fatalf("north=%d want 0", got)
	}
}

func TestVisibleFoodValue_ReadOnly(t *testing.T) {
	w := New(5)
	ant := addInsect(t, w, model.Yellow, model.Ant, 1, 5)
	addFood(t, w, 3, 2, 4)
	addFood(t, w, 6, 3, 3)
	before := w.Board().Digest()

	first := VisibleFoodValue(ant, grid.NE, w.Board())
	for i := 0; i < 5; i++ {
		if got := VisibleFoodValue(ant, grid.NE, w.Board()); got != first {
			t.Fatalf("score changed between calls: %d vs %d", got, first)
		}
	}
	if first != 9 {
		t.Fatalf("north-east=%d want 9", first)
	}
	if w.Board().Digest() != before || w.Board().Len() != 3 {
		t.Fatalf("scoring mutated the board")
	}
}

func TestScoreDirections_CapabilitySets(t *testing.T) {
	w := New(4)
	sp := addInsect(t, w, model.Blue, model.Spider, 2, 2)
	bf := addInsect(t, w, model.Red, model.Butterfly, 4, 4)
	addFood(t, w, 2, 1, 1)

	spScores := ScoreDirections(sp, w.Board())
	if len(spScores) != 4 {
		t.Fatalf("spider scores=%v", spScores)
	}
	if _, ok := scoreOf(spScores, grid.N); ok {
		t.Fatalf("spider must not score orthogonal directions")
	}
	if got, _ := scoreOf(spScores, grid.NW); got != 2 {
		t.Fatalf("spider NW=%d want 2", got)
	}
	bfScores := ScoreDirections(bf, w.Board())
	if _, ok := scoreOf(bfScores, grid.NW); ok {
		t.Fatalf("butterfly must not score diagonal directions")
	}
}

func TestSelectDirection_TieBreak(t *testing.T) {
	scores := []DirectionScore{
		{Direction: grid.NW, Score: 3},
		{Direction: grid.E, Score: 3},
		{Direction: grid.SE, Score: 1},
		{Direction: grid.N, Score: 3},
	}
	best, ok := SelectDirection(scores)
	if !ok || best.Direction != grid.N || best.Score != 3 {
		t.Fatalf("best=%+v ok=%v", best, ok)
	}

	// Every permutation of a full tie resolves to the top priority direction.
	all := grid.All()
	for shift := 0; shift < len(all); shift++ {
		in := make([]DirectionScore, 0, len(all))
		for i := range all {
			in = append(in, DirectionScore{Direction: all[(i+shift)%len(all)]})
		}
		best, _ := SelectDirection(in)
		if best.Direction != grid.N {
			t.Fatalf("shift %d: best=%v", shift, best.Direction)
		}
	}

	best, _ = SelectDirection([]DirectionScore{{Direction: grid.SW, Score: 0}, {Direction: grid.NW, Score: 1}})
	if best.Direction != grid.NW {
		t.Fatalf("higher score must beat priority: %v", best.Direction)
	}
	if _, ok := SelectDirection(nil); ok {
		t.Fatalf("empty score set has no winner")
	}
}
