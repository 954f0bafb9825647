package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/tuning"
	"insectsim/internal/sim/world"
)

//go:embed schemas/scenario.schema.json
var scenarioSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func scenarioSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("scenario.schema.json", bytes.NewReader(scenarioSchemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("scenario.schema.json")
	})
	return schema, schemaErr
}

// Document is the JSON scenario format. Coordinates are 1-based; y is the row.
type Document struct {
	BoardSize int         `json:"board_size"`
	Insects   []InsectDoc `json:"insects"`
	Foods     []FoodDoc   `json:"foods"`
}

type InsectDoc struct {
	Color   string `json:"color"`
	Species string `json:"species"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

type FoodDoc struct {
	Value int `json:"value"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

func LoadJSONFile(path string, lim tuning.Limits) (*world.World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadJSON(f, lim)
}

// LoadJSON validates r against the scenario schema, then applies the same
// checks as Load. Entries are numbered from 1 in ValidationError.Line.
func LoadJSON(r io.Reader, lim tuning.Limits) (*world.World, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	sch, err := scenarioSchema()
	if err != nil {
		return nil, fmt.Errorf("scenario schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, invalid(KindMalformed, 0, err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, invalid(KindMalformed, 0, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, invalid(KindMalformed, 0, err)
	}
	return Build(doc, lim)
}

// Build turns an already-decoded document into a world.
func Build(doc Document, lim tuning.Limits) (*world.World, error) {
	b, err := newBuilder(lim, doc.BoardSize, 0)
	if err != nil {
		return nil, err
	}
	if err := b.checkInsectCount(len(doc.Insects), 0); err != nil {
		return nil, err
	}
	if err := b.checkFoodCount(len(doc.Foods), 0); err != nil {
		return nil, err
	}
	for i, in := range doc.Insects {
		line := i + 1
		c, err := b.color(in.Color, line)
		if err != nil {
			return nil, err
		}
		p := grid.Pos{X: in.X, Y: in.Y}
		if err := b.position(p, line); err != nil {
			return nil, err
		}
		sp, err := b.species(in.Species, line)
		if err != nil {
			return nil, err
		}
		if err := b.placeInsect(c, sp, p, line); err != nil {
			return nil, err
		}
	}
	for i, f := range doc.Foods {
		line := i + 1
		if f.Value < 1 {
			return nil, invalid(KindFoodCount, line, errors.New("food value must be positive"))
		}
		p := grid.Pos{X: f.X, Y: f.Y}
		if err := b.position(p, line); err != nil {
			return nil, err
		}
		if err := b.placeFood(f.Value, p, line); err != nil {
			return nil, err
		}
	}
	return b.w, nil
}

// DocumentOf captures the current occupancy of w as a document. Insects keep
// their turn order for those still on the board.
func DocumentOf(w *world.World) Document {
	doc := Document{BoardSize: w.Size()}
	for i := 0; i < w.InsectCount(); i++ {
		in := w.Insect(i)
		if w.Board().Get(in.Pos) == nil {
			continue
		}
		doc.Insects = append(doc.Insects, InsectDoc{
			Color:   in.Color.String(),
			Species: in.Species.String(),
			X:       in.Pos.X,
			Y:       in.Pos.Y,
		})
	}
	for _, f := range w.Foods() {
		doc.Foods = append(doc.Foods, FoodDoc{Value: f.Value, X: f.Pos.X, Y: f.Pos.Y})
	}
	return doc
}
