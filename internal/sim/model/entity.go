package model

import "insectsim/internal/sim/grid"

// Entity is either *Food or *Insect.
type Entity interface {
	Position() grid.Pos
	entity()
}

type Food struct {
	Pos   grid.Pos
	Value int
}

func (f *Food) Position() grid.Pos { return f.Pos }
func (*Food) entity()              {}

type Insect struct {
	Pos     grid.Pos
	Color   Color
	Species Species
}

func (in *Insect) Position() grid.Pos { return in.Pos }
func (*Insect) entity()               {}

func (in *Insect) Step() int                    { return in.Species.Step() }
func (in *Insect) Directions() []grid.Direction { return in.Species.Directions() }

// Rival reports whether other blocks in's traversal.
func (in *Insect) Rival(other *Insect) bool {
	return other != nil && other.Color != in.Color
}
