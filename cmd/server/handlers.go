package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"insectsim/internal/persistence/indexdb"
	"insectsim/internal/report"
	"insectsim/internal/scenario"
	"insectsim/internal/sim/tuning"
	"insectsim/internal/sim/world"
	"insectsim/internal/transport/ws"
)

type api struct {
	limits  tuning.Limits
	index   runtimeIndex // optional
	log     *log.Logger
	maxBody int64
}

func (a *api) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/run", a.handleRun)
	mux.HandleFunc("GET /v1/runs/{id}", a.handleGetRun)

	wsSrv := ws.NewServer(a.limits, a.log)
	if a.index != nil {
		wsSrv.SetIndex(a.index)
	}
	mux.HandleFunc("/v1/ws", wsSrv.Handler())
	return mux
}

// handleRun takes a text scenario and answers with the report. Rejected
// scenarios are still 200: the body is the report, as the output file would be.
func (a *api) handleRun(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(rw, r.Body, a.maxBody))
	if err != nil {
		http.Error(rw, "bad request body", http.StatusBadRequest)
		return
	}

	runID := uuid.NewString()
	rec := indexdb.RunRecord{
		RunID:     runID,
		Source:    "http",
		StartedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.Header().Set("X-Run-ID", runID)

	w, err := scenario.Load(bytes.NewReader(body), a.limits)
	if err != nil {
		var ve *scenario.ValidationError
		if !errors.As(err, &ve) {
			a.log.Printf("run %s: load: %v", runID, err)
			http.Error(rw, "internal error", http.StatusInternalServerError)
			return
		}
		rec.Status, rec.Error = "invalid", ve.Error()
		a.recordRun(rec)
		_, _ = io.WriteString(rw, report.Render(nil, err))
		return
	}

	w.SetRunID(runID)
	if a.index != nil {
		w.SetTurnLogger(a.index)
	}
	rec.Status = "ok"
	rec.BoardSize = w.Size()
	rec.Insects = w.InsectCount()
	rec.Foods = len(w.Foods())
	a.recordRun(rec)

	results, err := w.Run()
	if err != nil {
		a.log.Printf("run %s: %v", runID, err)
	}
	_, _ = io.WriteString(rw, report.Render(results, nil))
}

func (a *api) handleGetRun(rw http.ResponseWriter, r *http.Request) {
	if a.index == nil {
		http.Error(rw, "index disabled", http.StatusServiceUnavailable)
		return
	}
	id := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := a.index.Sync(ctx); err != nil {
		http.Error(rw, err.Error(), http.StatusServiceUnavailable)
		return
	}
	rec, err := a.index.Run(ctx, id)
	if errors.Is(err, indexdb.ErrRunNotFound) {
		http.Error(rw, "run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}
	turns, err := a.index.Turns(ctx, id)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := struct {
		RunID     string               `json:"run_id"`
		Source    string               `json:"source"`
		Status    string               `json:"status"`
		Error     string               `json:"error,omitempty"`
		BoardSize int                  `json:"board_size"`
		Insects   int                  `json:"insects"`
		Foods     int                  `json:"foods"`
		StartedAt string               `json:"started_at"`
		Turns     []world.TurnLogEntry `json:"turns"`
	}{
		RunID:     rec.RunID,
		Source:    rec.Source,
		Status:    rec.Status,
		Error:     rec.Error,
		BoardSize: rec.BoardSize,
		Insects:   rec.Insects,
		Foods:     rec.Foods,
		StartedAt: rec.StartedAt,
		Turns:     turns,
	}
	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(resp)
}

func (a *api) recordRun(rec indexdb.RunRecord) {
	if a.index != nil {
		a.index.RecordRun(rec)
	}
}
