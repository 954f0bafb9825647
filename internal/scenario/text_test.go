package scenario

import (
	"errors"
	"strings"
	"testing"

	"insectsim/internal/sim/board"
	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/model"
	"insectsim/internal/sim/tuning"
)

func load(t *testing.T, src string) error {
	t.Helper()
	_, err := Load(strings.NewReader(src), tuning.DefaultLimits())
	return err
}

func TestLoad_Valid(t *testing.T) {
	src := "5\n2\n2\nRed Ant 3 3\nBlue Spider 1 5\n4 1 3\n1 3 5\n"
	w, err := Load(strings.NewReader(src), tuning.DefaultLimits())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w.Size() != 5 || w.InsectCount() != 2 || w.Board().Len() != 4 {
		t.Fatalf("size=%d insects=%d entities=%d", w.Size(), w.InsectCount(), w.Board().Len())
	}
	first := w.Insect(0)
	if first.Color != model.Red || first.Species != model.Ant || first.Pos != (grid.Pos{X: 3, Y: 3}) {
		t.Fatalf("first insect=%+v", first)
	}
	// "Blue Spider 1 5": row 1, column 5.
	if second := w.Insect(1); second.Pos != (grid.Pos{X: 5, Y: 1}) {
		t.Fatalf("second insect at %v", second.Pos)
	}
	// "4 1 3": value 4 at row 1, column 3.
	if f, ok := w.Board().Get(grid.Pos{X: 3, Y: 1}).(*model.Food); !ok || f.Value != 4 {
		t.Fatalf("food at (3,1)=%#v", w.Board().Get(grid.Pos{X: 3, Y: 1}))
	}
}

func TestLoad_ToleratesTrailingBlankLinesAndCRLF(t *testing.T) {
	src := "4\r\n1\r\n1\r\nRed Ant 1 1\r\n2 2 2\r\n\r\n\n"
	if err := load(t, src); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoad_ValidationMessages(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Kind
	}{
		{"board too small", "3\n1\n1\nRed Ant 1 1\n1 2 2\n", KindBoardSize},
		{"board too large", "1001\n1\n1\nRed Ant 1 1\n1 2 2\n", KindBoardSize},
		{"board not a number", "x\n1\n1\n", KindBoardSize},
		{"empty input", "", KindBoardSize},
		{"zero insects", "5\n0\n1\n1 2 2\n", KindInsectCount},
		{"too many insects", "5\n17\n1\n", KindInsectCount},
		{"zero food", "5\n1\n0\nRed Ant 1 1\n", KindFoodCount},
		{"too much food", "5\n1\n201\nRed Ant 1 1\n", KindFoodCount},
		{"missing food header", "5\n1\n", KindFoodCount},
		{"missing insect lines", "5\n3\n1\nRed Ant 1 1\n", KindInsectCount},
		{"short insect line", "5\n1\n1\nRed Ant 1\n1 2 2\n", KindInsectCount},
		{"bad color", "5\n1\n1\nPink Ant 1 1\n1 2 2\n", KindInsectColor},
		{"color checked before type", "5\n1\n1\nPink Beetle 1 1\n1 2 2\n", KindInsectColor},
		{"position checked before type", "5\n1\n1\nRed Beetle 9 1\n1 2 2\n", KindEntityPosition},
		{"bad type", "5\n1\n1\nRed Beetle 1 1\n1 2 2\n", KindInsectType},
		{"non-numeric coordinate", "5\n1\n1\nRed Ant a 1\n1 2 2\n", KindEntityPosition},
		{"zero coordinate", "5\n1\n1\nRed Ant 0 1\n1 2 2\n", KindEntityPosition},
		{"duplicate insect", "5\n2\n1\nRed Ant 1 1\nRed Ant 2 2\n1 3 3\n", KindDuplicateInsect},
		{"insects share a cell", "5\n2\n1\nRed Ant 1 1\nBlue Ant 1 1\n1 3 3\n", KindSamePosition},
		{"too few food lines", "5\n1\n2\nRed Ant 1 1\n1 2 2\n", KindFoodCount},
		{"too many food lines", "5\n1\n1\nRed Ant 1 1\n1 2 2\n1 3 3\n", KindFoodCount},
		{"short food line", "5\n1\n1\nRed Ant 1 1\n1 2\n", KindFoodCount},
		{"non-positive food", "5\n1\n1\nRed Ant 1 1\n0 2 2\n", KindFoodCount},
		{"food outside board", "5\n1\n1\nRed Ant 1 1\n1 6 2\n", KindEntityPosition},
		{"food on insect", "5\n1\n1\nRed Ant 1 1\n1 1 1\n", KindSamePosition},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := load(t, c.src)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Kind != c.want {
				t.Fatalf("kind=%v (%s) want %s", ve.Kind, ve.Error(), c.want.Message())
			}
			if ve.Error() != c.want.Message() {
				t.Fatalf("message=%q", ve.Error())
			}
		})
	}
}

func TestLoad_SamePositionWrapsBoardError(t *testing.T) {
	err := load(t, "5\n1\n1\nRed Ant 2 2\n5 2 2\n")
	if !errors.Is(err, board.ErrOccupiedPosition) {
		t.Fatalf("expected ErrOccupiedPosition in chain, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Line != 5 {
		t.Fatalf("expected line 5, got %#v", err)
	}
	if !strings.Contains(ve.Detail(), "line 5") {
		t.Fatalf("detail=%q", ve.Detail())
	}
}

func TestLoad_CustomLimits(t *testing.T) {
	lim := tuning.DefaultLimits()
	lim.MaxInsects = 1
	_, err := Load(strings.NewReader("5\n2\n1\nRed Ant 1 1\nBlue Ant 2 2\n1 3 3\n"), lim)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Kind != KindInsectCount {
		t.Fatalf("expected insect count error, got %v", err)
	}
}
