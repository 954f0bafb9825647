package scenario

import (
	"errors"
	"fmt"

	"insectsim/internal/sim/board"
	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/model"
	"insectsim/internal/sim/tuning"
	"insectsim/internal/sim/world"
)

// builder applies the checks shared by every input format, in the order the
// report messages are expected to win.
type builder struct {
	lim  tuning.Limits
	w    *world.World
	seen map[speciesColor]bool
}

type speciesColor struct {
	sp model.Species
	c  model.Color
}

func newBuilder(lim tuning.Limits, size, line int) (*builder, error) {
	if size < lim.MinBoardSize || size > lim.MaxBoardSize {
		return nil, invalid(KindBoardSize, line, fmt.Errorf("size %d outside [%d,%d]", size, lim.MinBoardSize, lim.MaxBoardSize))
	}
	return &builder{
		lim:  lim,
		w:    world.New(size),
		seen: make(map[speciesColor]bool),
	}, nil
}

func (b *builder) checkInsectCount(n, line int) error {
	if n < 1 || n > b.lim.MaxInsects {
		return invalid(KindInsectCount, line, fmt.Errorf("count %d outside [1,%d]", n, b.lim.MaxInsects))
	}
	return nil
}

func (b *builder) checkFoodCount(n, line int) error {
	if n < 1 || n > b.lim.MaxFoods {
		return invalid(KindFoodCount, line, fmt.Errorf("count %d outside [1,%d]", n, b.lim.MaxFoods))
	}
	return nil
}

func (b *builder) color(tok string, line int) (model.Color, error) {
	c, ok := model.ParseColor(tok)
	if !ok {
		return 0, invalid(KindInsectColor, line, fmt.Errorf("unknown color %q", tok))
	}
	return c, nil
}

func (b *builder) species(tok string, line int) (model.Species, error) {
	sp, ok := model.ParseSpecies(tok)
	if !ok {
		return 0, invalid(KindInsectType, line, fmt.Errorf("unknown species %q", tok))
	}
	return sp, nil
}

func (b *builder) position(p grid.Pos, line int) error {
	if !p.InBounds(b.w.Size()) {
		return invalid(KindEntityPosition, line, fmt.Errorf("%v outside board of size %d", p, b.w.Size()))
	}
	return nil
}

func (b *builder) placeInsect(c model.Color, sp model.Species, p grid.Pos, line int) error {
	key := speciesColor{sp: sp, c: c}
	if b.seen[key] {
		return invalid(KindDuplicateInsect, line, fmt.Errorf("%s %s listed twice", c, sp))
	}
	b.seen[key] = true
	return b.insertErr(b.w.AddInsect(&model.Insect{Pos: p, Color: c, Species: sp}), line)
}

func (b *builder) placeFood(value int, p grid.Pos, line int) error {
	return b.insertErr(b.w.AddFood(&model.Food{Pos: p, Value: value}), line)
}

func (b *builder) insertErr(err error, line int) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, board.ErrOccupiedPosition) {
		return invalid(KindSamePosition, line, err)
	}
	return err
}
