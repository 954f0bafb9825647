package model

import "insectsim/internal/sim/grid"

type Color uint8

const (
	Red Color = iota + 1
	Green
	Blue
	Yellow
)

var colorLabels = [...]string{Red: "Red", Green: "Green", Blue: "Blue", Yellow: "Yellow"}

func (c Color) Valid() bool { return c >= Red && c <= Yellow }

func (c Color) String() string {
	if !c.Valid() {
		return "Unknown"
	}
	return colorLabels[c]
}

// ParseColor accepts the input token ("Red", "Green", "Blue", "Yellow").
func ParseColor(s string) (Color, bool) {
	for c := Red; c <= Yellow; c++ {
		if colorLabels[c] == s {
			return c, true
		}
	}
	return 0, false
}

type Species uint8

const (
	Ant Species = iota + 1
	Butterfly
	Spider
	Grasshopper
)

// Capability is the set of direction families a species may move along.
type Capability uint8

const (
	MovesOrthogonal Capability = 1 << iota
	MovesDiagonal
)

type speciesDef struct {
	label string
	caps  Capability
	step  int
}

var speciesDefs = [...]speciesDef{
	Ant:         {label: "Ant", caps: MovesOrthogonal | MovesDiagonal, step: 1},
	Butterfly:   {label: "Butterfly", caps: MovesOrthogonal, step: 1},
	Spider:      {label: "Spider", caps: MovesDiagonal, step: 1},
	Grasshopper: {label: "Grasshopper", caps: MovesOrthogonal, step: 2},
}

func (s Species) Valid() bool { return s >= Ant && s <= Grasshopper }

func (s Species) def() speciesDef {
	if !s.Valid() {
		return speciesDef{}
	}
	return speciesDefs[s]
}

func (s Species) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return s.def().label
}

func (s Species) Capability() Capability { return s.def().caps }

// Step is the stride length in cells.
func (s Species) Step() int { return s.def().step }

// Directions lists the legal directions of s, highest priority first.
func (s Species) Directions() []grid.Direction {
	caps := s.Capability()
	out := make([]grid.Direction, 0, 8)
	if caps&MovesOrthogonal != 0 {
		out = append(out, grid.Orthogonal...)
	}
	if caps&MovesDiagonal != 0 {
		out = append(out, grid.Diagonal...)
	}
	return out
}

// Allows reports whether d belongs to the species' capability set.
func (s Species) Allows(d grid.Direction) bool {
	caps := s.Capability()
	switch {
	case d.IsOrthogonal():
		return caps&MovesOrthogonal != 0
	case d.IsDiagonal():
		return caps&MovesDiagonal != 0
	default:
		return false
	}
}

// ParseSpecies accepts the input token ("Ant", "Butterfly", "Spider", "Grasshopper").
func ParseSpecies(s string) (Species, bool) {
	for sp := Ant; sp <= Grasshopper; sp++ {
		if speciesDefs[sp].label == s {
			return sp, true
		}
	}
	return 0, false
}
