package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the input limits and runtime defaults of a run.
type Tuning struct {
	Limits Limits `yaml:"limits"`

	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`
}

type Limits struct {
	MinBoardSize int `yaml:"min_board_size"`
	MaxBoardSize int `yaml:"max_board_size"`
	MaxInsects   int `yaml:"max_insects"`
	MaxFoods     int `yaml:"max_foods"`
}

func Defaults() Tuning {
	return Tuning{
		Limits:     DefaultLimits(),
		InputPath:  "input.txt",
		OutputPath: "output.txt",
	}
}

func DefaultLimits() Limits {
	return Limits{
		MinBoardSize: 4,
		MaxBoardSize: 1000,
		MaxInsects:   16,
		MaxFoods:     200,
	}
}

// Load reads a tuning file on top of Defaults. Fields left out keep their
// default values.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	l := t.Limits
	if l.MinBoardSize < 1 {
		return fmt.Errorf("limits.min_board_size must be >= 1")
	}
	if l.MaxBoardSize < l.MinBoardSize {
		return fmt.Errorf("limits.max_board_size must be >= min_board_size")
	}
	if l.MaxInsects < 1 {
		return fmt.Errorf("limits.max_insects must be >= 1")
	}
	if l.MaxFoods < 1 {
		return fmt.Errorf("limits.max_foods must be >= 1")
	}
	return nil
}
