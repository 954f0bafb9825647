package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"insectsim/internal/scenario"
	"insectsim/internal/sim/world"
)

// Line formats one turn as "<Color> <Species> <Direction> <collected>".
func Line(r world.TurnResult) string {
	return r.Insect.Color.String() + " " + r.Insect.Species.String() + " " + r.Direction.String() + " " + strconv.Itoa(r.Collected)
}

// Write emits one line per turn in order, newline-separated, with a single
// trailing newline.
func Write(w io.Writer, results []world.TurnResult) error {
	var buf bytes.Buffer
	for i, r := range results {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(Line(r))
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError emits the message of a rejected scenario. Anything that is not
// a *scenario.ValidationError is reported with its own text.
func WriteError(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "%s\n", Message(err))
	return werr
}

func Message(err error) string {
	var ve *scenario.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

// Render returns the full report text for either outcome.
func Render(results []world.TurnResult, runErr error) string {
	var buf bytes.Buffer
	if runErr != nil {
		_ = WriteError(&buf, runErr)
	} else {
		_ = Write(&buf, results)
	}
	return buf.String()
}

// WriteFile replaces path with the rendered report.
func WriteFile(path string, results []world.TurnResult, runErr error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(Render(results, runErr)), 0o644)
}
