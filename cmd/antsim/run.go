package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"insectsim/internal/persistence/indexdb"
	persistlog "insectsim/internal/persistence/log"
	"insectsim/internal/persistence/snapshot"
	"insectsim/internal/report"
	"insectsim/internal/scenario"
	"insectsim/internal/sim/tuning"
	"insectsim/internal/sim/world"
)

type runConfig struct {
	InputPath    string
	OutputPath   string
	TuningPath   string
	Format       string
	DataDir      string
	DisableDB    bool
	SnapshotPath string
}

// run loads one scenario, plays every turn and writes the report. A scenario
// that fails validation still produces a report (its message) and a nil
// error; only I/O and configuration failures are returned.
func run(cfg runConfig, logger *log.Logger) error {
	tune, err := loadTuning(cfg.TuningPath, logger)
	if err != nil {
		return err
	}
	in := firstNonEmpty(cfg.InputPath, tune.InputPath)
	out := firstNonEmpty(cfg.OutputPath, tune.OutputPath)

	runID := uuid.NewString()
	rec := indexdb.RunRecord{
		RunID:     runID,
		Source:    in,
		StartedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	var idx *indexdb.SQLiteIndex
	if cfg.DataDir != "" && !cfg.DisableDB {
		idx, err = indexdb.OpenSQLite(indexPath(cfg.DataDir))
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := idx.Sync(ctx); err != nil {
				logger.Printf("index sync: %v", err)
			}
			if n := idx.Dropped(); n > 0 {
				logger.Printf("index dropped %d writes", n)
			}
			_ = idx.Close()
		}()
	}

	w, err := loadWorld(cfg, in, tune.Limits, logger)
	if err != nil {
		var ve *scenario.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("load %s: %w", rec.Source, err)
		}
		logger.Printf("run %s rejected: %s", runID, ve.Detail())
		if idx != nil {
			rec.Status, rec.Error = "invalid", ve.Error()
			idx.RecordRun(rec)
		}
		return report.WriteFile(out, nil, err)
	}
	w.SetRunID(runID)
	rec.Status = "ok"
	rec.BoardSize = w.Size()
	rec.Insects = w.InsectCount()
	rec.Foods = len(w.Foods())
	if cfg.SnapshotPath != "" {
		rec.Source = cfg.SnapshotPath
	}
	if idx != nil {
		idx.RecordRun(rec)
	}

	var loggers world.TurnLoggers
	if cfg.DataDir != "" {
		snapPath := snapshotPath(cfg.DataDir, runID)
		snap := scenario.SnapshotOf(w, runID)
		if err := snapshot.WriteSnapshot(snapPath, snap); err != nil {
			logger.Printf("snapshot write: %v", err)
		} else if idx != nil {
			idx.RecordSnapshot(snapPath, snap)
		}

		turnLog := persistlog.NewTurnLogger(cfg.DataDir, runID)
		defer turnLog.Close()
		loggers = append(loggers, turnLog)
	}
	if idx != nil {
		loggers = append(loggers, idx)
	}
	if len(loggers) > 0 {
		w.SetTurnLogger(loggers)
	}

	results, err := w.Run()
	if err != nil {
		logger.Printf("run %s: %v", runID, err)
	}
	logger.Printf("run %s: %d turns, board=%d", runID, len(results), w.Size())
	return report.WriteFile(out, results, nil)
}

func loadTuning(path string, logger *log.Logger) (tuning.Tuning, error) {
	if strings.TrimSpace(path) == "" {
		return tuning.Defaults(), nil
	}
	tune, err := tuning.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", path)
			return tuning.Defaults(), nil
		}
		return tuning.Tuning{}, fmt.Errorf("load tuning: %w", err)
	}
	return tune, nil
}

func loadWorld(cfg runConfig, in string, lim tuning.Limits, logger *log.Logger) (*world.World, error) {
	if cfg.SnapshotPath != "" {
		h, err := snapshot.ReadHeader(cfg.SnapshotPath)
		if err != nil {
			return nil, err
		}
		if h.Version != snapshot.Version {
			return nil, fmt.Errorf("unsupported snapshot version %d", h.Version)
		}
		w, _, err := scenario.LoadSnapshotFile(cfg.SnapshotPath, lim)
		if err != nil {
			return nil, err
		}
		logger.Printf("loaded setup from snapshot=%s (run %s, created %s)", filepath.Base(cfg.SnapshotPath), h.RunID, h.CreatedAt)
		return w, nil
	}
	switch f := inputFormat(cfg.Format, in); f {
	case "json":
		return scenario.LoadJSONFile(in, lim)
	case "text":
		return scenario.LoadFile(in, lim)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

func inputFormat(flagValue, path string) string {
	if f := strings.ToLower(strings.TrimSpace(flagValue)); f != "" {
		return f
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "text"
}

func indexPath(dataDir string) string {
	return filepath.Join(dataDir, "index", "runs.sqlite")
}

func snapshotPath(dataDir, runID string) string {
	return filepath.Join(dataDir, "snapshots", runID+".snap.zst")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
