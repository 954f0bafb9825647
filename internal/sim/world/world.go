package world

import (
	"errors"
	"fmt"

	"insectsim/internal/sim/board"
	"insectsim/internal/sim/model"
)

// World is a single run: one board and the insects in the order they act.
// It is single-threaded; callers must not share a World across goroutines.
type World struct {
	runID   string
	board   *board.Board
	insects []*model.Insect
	next    int

	// Optional (may be nil). Implemented in internal/persistence/*.
	turnLogger TurnLogger
}

type TurnLogger interface {
	WriteTurn(entry TurnLogEntry) error
}

// TurnLoggers fans an entry out to every non-nil logger.
type TurnLoggers []TurnLogger

func (ls TurnLoggers) WriteTurn(entry TurnLogEntry) error {
	var errs []error
	for _, l := range ls {
		if l == nil {
			continue
		}
		if err := l.WriteTurn(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func New(size int) *World {
	return &World{board: board.New(size)}
}

func (w *World) Board() *board.Board { return w.board }
func (w *World) Size() int           { return w.board.Size() }
func (w *World) RunID() string       { return w.runID }

func (w *World) SetRunID(id string)         { w.runID = id }
func (w *World) SetTurnLogger(l TurnLogger) { w.turnLogger = l }
func (w *World) Remaining() int             { return len(w.insects) - w.next }
func (w *World) Done() bool                 { return w.next >= len(w.insects) }
func (w *World) InsectCount() int           { return len(w.insects) }
func (w *World) Insect(i int) model.Insect  { return *w.insects[i] }

// AddInsect places in on the board and appends it to the turn order.
func (w *World) AddInsect(in *model.Insect) error {
	if err := w.board.Insert(in); err != nil {
		return err
	}
	w.insects = append(w.insects, in)
	return nil
}

func (w *World) AddFood(f *model.Food) error {
	return w.board.Insert(f)
}

// Foods lists the food still on the board, ordered by row then column.
func (w *World) Foods() []model.Food {
	var out []model.Food
	for _, e := range w.board.Entities() {
		if f, ok := e.(*model.Food); ok {
			out = append(out, *f)
		}
	}
	return out
}

// Step runs the next insect's turn. ok is false once every insect has acted.
func (w *World) Step() (res TurnResult, ok bool, err error) {
	if w.Done() {
		return TurnResult{}, false, nil
	}
	seq := w.next
	in := w.insects[seq]
	w.next++

	res = TakeTurn(w.board, in)
	res.Seq = seq
	if w.turnLogger != nil {
		if lerr := w.turnLogger.WriteTurn(w.logEntry(res)); lerr != nil {
			err = fmt.Errorf("turn log: %w", lerr)
		}
	}
	return res, true, err
}

// Run plays every remaining turn in order. Logger failures never stop the run;
// the first one is returned alongside the complete results.
func (w *World) Run() ([]TurnResult, error) {
	out := make([]TurnResult, 0, w.Remaining())
	var firstErr error
	for {
		res, ok, err := w.Step()
		if !ok {
			break
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
		out = append(out, res)
	}
	return out, firstErr
}

func (w *World) logEntry(res TurnResult) TurnLogEntry {
	return TurnLogEntry{
		RunID:     w.runID,
		Seq:       res.Seq,
		Color:     res.Insect.Color.String(),
		Species:   res.Insect.Species.String(),
		From:      [2]int{res.Insect.Pos.X, res.Insect.Pos.Y},
		Direction: res.Direction.String(),
		Score:     res.Score,
		Collected: res.Collected,
		Scores:    scoreMap(res.Scores),
		Digest:    w.board.Digest(),
	}
}

func scoreMap(scores []DirectionScore) map[string]int {
	if len(scores) == 0 {
		return nil
	}
	m := make(map[string]int, len(scores))
	for _, s := range scores {
		m[s.Direction.String()] = s.Score
	}
	return m
}
