package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"insectsim/internal/scenario"
	"insectsim/internal/sim/tuning"
	"insectsim/internal/sim/world"
)

func run(t *testing.T, src string) ([]world.TurnResult, error) {
	t.Helper()
	w, err := scenario.Load(strings.NewReader(src), tuning.DefaultLimits())
	if err != nil {
		return nil, err
	}
	return w.Run()
}

func TestRender_Success(t *testing.T) {
	src := strings.Join([]string{
		"6", "3", "3",
		"Red Ant 3 3",
		"Blue Spider 2 2",
		"Green Grasshopper 2 6",
		"4 1 3",
		"2 1 1",
		"5 4 6",
	}, "\n")
	res, err := run(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := Render(res, nil)
	want := "Red Ant North 4\nBlue Spider North-West 2\nGreen Grasshopper South 5\n"
	if got != want {
		t.Fatalf("report:\n%q\nwant\n%q", got, want)
	}
}

func TestRender_ValidationError(t *testing.T) {
	_, err := run(t, "3\n1\n1\nRed Ant 1 1\n1 2 2\n")
	if got := Render(nil, err); got != "Invalid board size\n" {
		t.Fatalf("report=%q", got)
	}
	if got := Message(errors.New("boom")); got != "boom" {
		t.Fatalf("Message=%q", got)
	}
	if got := Message(&scenario.ValidationError{Kind: scenario.KindDuplicateInsect, Line: 4, Err: errors.New("x")}); got != "Duplicate insects" {
		t.Fatalf("Message=%q", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "output.txt")
	res, err := run(t, "4\n1\n1\nBlue Spider 2 2\n2 1 1\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := WriteFile(path, res, nil); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "Blue Spider North-West 2\n" {
		t.Fatalf("file=%q", b)
	}
}
