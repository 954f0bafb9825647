package grid

import "fmt"

// Pos is a 1-indexed board cell. Y grows southwards.
type Pos struct {
	X int
	Y int
}

func (p Pos) Add(dx, dy int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// InBounds reports whether p lies inside [1,size]x[1,size].
func (p Pos) InBounds(size int) bool {
	return p.X >= 1 && p.X <= size && p.Y >= 1 && p.Y <= size
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
