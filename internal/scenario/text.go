package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/tuning"
	"insectsim/internal/sim/world"
)

const headerLines = 3

// LoadFile reads a text scenario from path.
func LoadFile(path string, lim tuning.Limits) (*world.World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, lim)
}

// Load parses the text scenario format:
//
//	<board size>
//	<insect count>
//	<food count>
//	<Color> <Species> <row> <col>   (one line per insect)
//	<value> <row> <col>             (one line per food point)
//
// row maps to Pos.Y and col to Pos.X. The first failing check wins and is
// returned as a *ValidationError; read failures are returned as-is.
func Load(r io.Reader, lim tuning.Limits) (*world.World, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	header := func(i int) (int, bool) {
		if i >= len(lines) {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(lines[i]))
		return n, err == nil
	}

	size, ok := header(0)
	if !ok {
		return nil, invalid(KindBoardSize, 1, errors.New("not an integer"))
	}
	b, err := newBuilder(lim, size, 1)
	if err != nil {
		return nil, err
	}
	nInsects, ok := header(1)
	if !ok {
		return nil, invalid(KindInsectCount, 2, errors.New("not an integer"))
	}
	if err := b.checkInsectCount(nInsects, 2); err != nil {
		return nil, err
	}
	nFoods, ok := header(2)
	if !ok {
		return nil, invalid(KindFoodCount, 3, errors.New("not an integer"))
	}
	if err := b.checkFoodCount(nFoods, 3); err != nil {
		return nil, err
	}

	foodStart := headerLines + nInsects
	if foodStart > len(lines) {
		return nil, invalid(KindInsectCount, 0, fmt.Errorf("expected %d insect lines", nInsects))
	}
	for i := headerLines; i < foodStart; i++ {
		if err := b.insectLine(lines[i], i+1); err != nil {
			return nil, err
		}
	}

	if foodStart+nFoods != len(lines) {
		return nil, invalid(KindFoodCount, 0, fmt.Errorf("expected %d food lines, found %d", nFoods, len(lines)-foodStart))
	}
	for i := foodStart; i < len(lines); i++ {
		if err := b.foodLine(lines[i], i+1); err != nil {
			return nil, err
		}
	}
	return b.w, nil
}

func (b *builder) insectLine(s string, line int) error {
	tok := strings.Fields(s)
	if len(tok) != 4 {
		return invalid(KindInsectCount, line, fmt.Errorf("expected 4 fields, got %d", len(tok)))
	}
	c, err := b.color(tok[0], line)
	if err != nil {
		return err
	}
	p, err := b.textPos(tok[2], tok[3], line)
	if err != nil {
		return err
	}
	sp, err := b.species(tok[1], line)
	if err != nil {
		return err
	}
	return b.placeInsect(c, sp, p, line)
}

func (b *builder) foodLine(s string, line int) error {
	tok := strings.Fields(s)
	if len(tok) != 3 {
		return invalid(KindFoodCount, line, fmt.Errorf("expected 3 fields, got %d", len(tok)))
	}
	v, err := strconv.Atoi(tok[0])
	if err != nil || v < 1 {
		return invalid(KindFoodCount, line, fmt.Errorf("bad food value %q", tok[0]))
	}
	p, err := b.textPos(tok[1], tok[2], line)
	if err != nil {
		return err
	}
	return b.placeFood(v, p, line)
}

func (b *builder) textPos(rowTok, colTok string, line int) (grid.Pos, error) {
	row, err1 := strconv.Atoi(rowTok)
	col, err2 := strconv.Atoi(colTok)
	if err := errors.Join(err1, err2); err != nil {
		return grid.Pos{}, invalid(KindEntityPosition, line, err)
	}
	p := grid.Pos{X: col, Y: row}
	return p, b.position(p, line)
}

// readLines drops trailing blank lines and carriage returns.
func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
