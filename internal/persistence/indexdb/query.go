package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"insectsim/internal/sim/world"
)

var ErrRunNotFound = errors.New("run not found")

// Run returns a recorded run. Call Sync first to observe recent writes.
func (s *SQLiteIndex) Run(ctx context.Context, runID string) (RunRecord, error) {
	var (
		r      RunRecord
		errMsg sql.NullString
	)
	row := s.db.QueryRowContext(ctx, `SELECT run_id,source,board_size,insects,foods,status,error,started_at FROM runs WHERE run_id=?`, runID)
	if err := row.Scan(&r.RunID, &r.Source, &r.BoardSize, &r.Insects, &r.Foods, &r.Status, &errMsg, &r.StartedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return r, err
	}
	r.Error = errMsg.String
	return r, nil
}

// Turns returns the turns of a run in sequence order.
func (s *SQLiteIndex) Turns(ctx context.Context, runID string) ([]world.TurnLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT raw_json FROM turns WHERE run_id=? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []world.TurnLogEntry
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var e world.TurnLogEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("turn %s: %w", runID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
