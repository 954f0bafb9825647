package grid

type Direction uint8

const (
	N Direction = iota + 1
	E
	S
	W
	NE
	SE
	SW
	NW
)

type dirDef struct {
	label    string
	priority int
	dx, dy   int
}

var dirDefs = [...]dirDef{
	N:  {label: "North", priority: 8, dx: 0, dy: -1},
	E:  {label: "East", priority: 7, dx: 1, dy: 0},
	S:  {label: "South", priority: 6, dx: 0, dy: 1},
	W:  {label: "West", priority: 5, dx: -1, dy: 0},
	NE: {label: "North-East", priority: 4, dx: 1, dy: -1},
	SE: {label: "South-East", priority: 3, dx: 1, dy: 1},
	SW: {label: "South-West", priority: 2, dx: -1, dy: 1},
	NW: {label: "North-West", priority: 1, dx: -1, dy: -1},
}

// Orthogonal and Diagonal are listed highest priority first.
var (
	Orthogonal = []Direction{N, E, S, W}
	Diagonal   = []Direction{NE, SE, SW, NW}
)

// All returns every direction, highest priority first.
func All() []Direction {
	out := make([]Direction, 0, len(Orthogonal)+len(Diagonal))
	out = append(out, Orthogonal...)
	return append(out, Diagonal...)
}

func (d Direction) Valid() bool {
	return d >= N && d <= NW
}

func (d Direction) def() dirDef {
	if !d.Valid() {
		return dirDef{}
	}
	return dirDefs[d]
}

// Offset is the unit step of d.
func (d Direction) Offset() (dx, dy int) {
	def := d.def()
	return def.dx, def.dy
}

// Priority ranks directions for tie-breaking; higher wins.
func (d Direction) Priority() int { return d.def().priority }

func (d Direction) String() string {
	if !d.Valid() {
		return "NONE"
	}
	return d.def().label
}

func (d Direction) IsOrthogonal() bool { return d >= N && d <= W }
func (d Direction) IsDiagonal() bool   { return d >= NE && d <= NW }

// Step returns the cell reached from p after n strides of d.
func (d Direction) Step(p Pos, n int) Pos {
	dx, dy := d.Offset()
	return p.Add(dx*n, dy*n)
}

// ParseDirection accepts the human-readable label ("North-East").
func ParseDirection(s string) (Direction, bool) {
	for d := N; d <= NW; d++ {
		if dirDefs[d].label == s {
			return d, true
		}
	}
	return 0, false
}
