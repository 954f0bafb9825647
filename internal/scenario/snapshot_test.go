package scenario

import (
	"path/filepath"
	"strings"
	"testing"

	"insectsim/internal/persistence/snapshot"
	"insectsim/internal/sim/tuning"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src := "6\n2\n3\nGreen Grasshopper 3 3\nRed Spider 6 6\n5 5 3\n2 1 1\n7 4 2\n"
	w, err := Load(strings.NewReader(src), tuning.DefaultLimits())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap := SnapshotOf(w, "run-42")
	if snap.Digest != w.Board().Digest() || len(snap.Insects) != 2 || len(snap.Foods) != 3 {
		t.Fatalf("snapshot=%+v", snap)
	}

	path := filepath.Join(t.TempDir(), "run-42.snap.zst")
	if err := snapshot.WriteSnapshot(path, snap); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	w2, runID, err := LoadSnapshotFile(path, tuning.DefaultLimits())
	if err != nil {
		t.Fatalf("LoadSnapshotFile: %v", err)
	}
	if runID != "run-42" {
		t.Fatalf("runID=%q", runID)
	}
	if w2.Board().Digest() != w.Board().Digest() {
		t.Fatalf("restored board differs")
	}
	r1, _ := w.Run()
	r2, _ := w2.Run()
	for i := range r1 {
		if r1[i].Direction != r2[i].Direction || r1[i].Collected != r2[i].Collected {
			t.Fatalf("turn %d differs: %+v vs %+v", i, r1[i], r2[i])
		}
	}
}

func TestFromSnapshot_Validates(t *testing.T) {
	snap := snapshot.SnapshotV1{
		BoardSize: 5,
		Insects:   []snapshot.InsectV1{{Color: "Red", Species: "Ant", X: 1, Y: 1}},
		Foods:     []snapshot.FoodV1{{Value: 3, X: 1, Y: 1}},
	}
	if _, err := FromSnapshot(snap, tuning.DefaultLimits()); err == nil || err.Error() != KindSamePosition.Message() {
		t.Fatalf("expected same-position error, got %v", err)
	}
}
