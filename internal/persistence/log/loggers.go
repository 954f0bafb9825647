package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/world"
)

// JSONLZstdWriter appends one JSON document per line to a zstd stream. The
// file is created on first write.
type JSONLZstdWriter struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewJSONLZstdWriter(path string) *JSONLZstdWriter {
	return &JSONLZstdWriter{path: path}
}

func (w *JSONLZstdWriter) Path() string { return w.path }

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		if err := w.openLocked(); err != nil {
			return err
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *JSONLZstdWriter) openLocked() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 32*1024)
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err1 error
	if w.w != nil {
		err1 = w.w.Flush()
	}
	if w.enc != nil {
		if err := w.enc.Close(); err1 == nil {
			err1 = err
		}
		w.enc = nil
	}
	if w.f != nil {
		if err := w.f.Close(); err1 == nil {
			err1 = err
		}
		w.f = nil
	}
	w.w = nil
	return err1
}

// TurnLogger writes one JSONL entry per turn (compressed).
type TurnLogger struct{ w *JSONLZstdWriter }

// NewTurnLogger logs to <dataDir>/turns/turns-<runID>.jsonl.zst.
func NewTurnLogger(dataDir, runID string) *TurnLogger {
	return &TurnLogger{w: NewJSONLZstdWriter(TurnLogPath(dataDir, runID))}
}

func TurnLogPath(dataDir, runID string) string {
	return filepath.Join(dataDir, "turns", fmt.Sprintf("turns-%s.jsonl.zst", runID))
}

func (l *TurnLogger) WriteTurn(e world.TurnLogEntry) error { return l.w.Write(e) }
func (l *TurnLogger) Path() string                         { return l.w.Path() }
func (l *TurnLogger) Close() error                         { return l.w.Close() }

// ReadTurnLog decodes every entry of a turn log. Entries must carry a known
// direction label.
func ReadTurnLog(path string) ([]world.TurnLogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var out []world.TurnLogEntry
	for sc.Scan() {
		var e world.TurnLogEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return out, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		if _, ok := grid.ParseDirection(e.Direction); !ok {
			return out, fmt.Errorf("%s: seq %d: unknown direction %q", filepath.Base(path), e.Seq, e.Direction)
		}
		out = append(out, e)
	}
	return out, sc.Err()
}
