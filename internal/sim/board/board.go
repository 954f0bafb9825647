package board

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/model"
)

var ErrOccupiedPosition = errors.New("two entities in the same position")

// Board maps cells to the single entity occupying them. It is not safe for
// concurrent use; a run owns its board exclusively.
type Board struct {
	size  int
	cells map[grid.Pos]model.Entity
}

func New(size int) *Board {
	return &Board{
		size:  size,
		cells: make(map[grid.Pos]model.Entity),
	}
}

func (b *Board) Size() int { return b.size }
func (b *Board) Len() int  { return len(b.cells) }

// Insert places e at its own position. An occupied cell is never overwritten.
func (b *Board) Insert(e model.Entity) error {
	p := e.Position()
	if _, ok := b.cells[p]; ok {
		return fmt.Errorf("insert at %v: %w", p, ErrOccupiedPosition)
	}
	b.cells[p] = e
	return nil
}

// Get returns the entity at p, or nil for an empty cell.
func (b *Board) Get(p grid.Pos) model.Entity {
	return b.cells[p]
}

func (b *Board) Remove(p grid.Pos) {
	delete(b.cells, p)
}

// Entities returns the occupants ordered by row, then column.
func (b *Board) Entities() []model.Entity {
	out := make([]model.Entity, 0, len(b.cells))
	for _, e := range b.cells {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Position(), out[j].Position()
		if pi.Y != pj.Y {
			return pi.Y < pj.Y
		}
		return pi.X < pj.X
	})
	return out
}

// Digest hashes the current occupancy. Equal boards give equal digests.
func (b *Board) Digest() string {
	h := sha256.New()
	fmt.Fprintf(h, "size=%d\n", b.size)
	for _, e := range b.Entities() {
		p := e.Position()
		switch v := e.(type) {
		case *model.Food:
			fmt.Fprintf(h, "F %d %d %d\n", p.X, p.Y, v.Value)
		case *model.Insect:
			fmt.Fprintf(h, "I %d %d %s %s\n", p.X, p.Y, v.Color, v.Species)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
