package scenario

import (
	"time"

	"insectsim/internal/persistence/snapshot"
	"insectsim/internal/sim/tuning"
	"insectsim/internal/sim/world"
)

// SnapshotOf captures the current setup of w.
func SnapshotOf(w *world.World, runID string) snapshot.SnapshotV1 {
	doc := DocumentOf(w)
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version:   snapshot.Version,
			RunID:     runID,
			CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		},
		BoardSize: doc.BoardSize,
		Digest:    w.Board().Digest(),
	}
	for _, in := range doc.Insects {
		snap.Insects = append(snap.Insects, snapshot.InsectV1{Color: in.Color, Species: in.Species, X: in.X, Y: in.Y})
	}
	for _, f := range doc.Foods {
		snap.Foods = append(snap.Foods, snapshot.FoodV1{Value: f.Value, X: f.X, Y: f.Y})
	}
	return snap
}

// FromSnapshot rebuilds a world with the same checks as the other loaders.
func FromSnapshot(snap snapshot.SnapshotV1, lim tuning.Limits) (*world.World, error) {
	doc := Document{BoardSize: snap.BoardSize}
	for _, in := range snap.Insects {
		doc.Insects = append(doc.Insects, InsectDoc{Color: in.Color, Species: in.Species, X: in.X, Y: in.Y})
	}
	for _, f := range snap.Foods {
		doc.Foods = append(doc.Foods, FoodDoc{Value: f.Value, X: f.X, Y: f.Y})
	}
	return Build(doc, lim)
}

// LoadSnapshotFile reads a snapshot written by snapshot.WriteSnapshot.
func LoadSnapshotFile(path string, lim tuning.Limits) (*world.World, string, error) {
	snap, err := snapshot.ReadSnapshot(path)
	if err != nil {
		return nil, "", err
	}
	w, err := FromSnapshot(snap, lim)
	if err != nil {
		return nil, "", err
	}
	return w, snap.Header.RunID, nil
}
