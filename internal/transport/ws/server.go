package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"insectsim/internal/persistence/indexdb"
	"insectsim/internal/protocol"
	"insectsim/internal/report"
	"insectsim/internal/scenario"
	"insectsim/internal/sim/tuning"
	"insectsim/internal/sim/world"
)

// Index receives run metadata and per-turn entries. *indexdb.SQLiteIndex
// satisfies it.
type Index interface {
	RecordRun(r indexdb.RunRecord)
	world.TurnLogger
}

// Server streams one simulation per connection: the client sends RUN, the
// server answers with a TURN per insect followed by DONE (or a single ERROR).
type Server struct {
	limits tuning.Limits
	log    *log.Logger
	index  Index

	upgrader websocket.Upgrader
}

func NewServer(limits tuning.Limits, logger *log.Logger) *Server {
	return &Server{
		limits: limits,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// SetIndex attaches an optional index (may be nil).
func (s *Server) SetIndex(idx Index) { s.index = idx }

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		run, ok := s.handshake(conn)
		if !ok {
			return
		}
		s.stream(conn, run)

		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"), time.Now().Add(time.Second))
	}
}

func (s *Server) handshake(conn *websocket.Conn) (protocol.RunMsg, bool) {
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return protocol.RunMsg{}, false
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeRun {
		_ = writeJSON(conn, protocol.NewError(protocol.ErrBadRequest, "expected RUN"))
		return protocol.RunMsg{}, false
	}
	var run protocol.RunMsg
	if err := json.Unmarshal(msg, &run); err != nil {
		_ = writeJSON(conn, protocol.NewError(protocol.ErrBadRequest, "bad RUN message"))
		return protocol.RunMsg{}, false
	}
	if run.ProtocolVersion != protocol.Version {
		_ = writeJSON(conn, protocol.NewError(protocol.ErrBadRequest, "bad protocol_version"))
		return protocol.RunMsg{}, false
	}
	if strings.TrimSpace(run.Scenario) == "" {
		_ = writeJSON(conn, protocol.NewError(protocol.ErrBadRequest, "empty scenario"))
		return protocol.RunMsg{}, false
	}
	return run, true
}

func (s *Server) stream(conn *websocket.Conn, run protocol.RunMsg) {
	runID := uuid.NewString()
	rec := indexdb.RunRecord{
		RunID:     runID,
		Source:    "ws",
		StartedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	w, err := scenario.Load(strings.NewReader(run.Scenario), s.limits)
	if err != nil {
		code := protocol.ErrInternal
		var ve *scenario.ValidationError
		if errors.As(err, &ve) {
			code = protocol.ErrInvalidScenario
		}
		rec.Status, rec.Error = "invalid", report.Message(err)
		s.recordRun(rec)
		e := protocol.NewError(code, report.Message(err))
		e.RunID = runID
		_ = writeJSON(conn, e)
		return
	}

	w.SetRunID(runID)
	if s.index != nil {
		w.SetTurnLogger(s.index)
	}
	rec.Status = "ok"
	rec.BoardSize = w.Size()
	rec.Insects = w.InsectCount()
	rec.Foods = len(w.Foods())
	s.recordRun(rec)

	var results []world.TurnResult
	for {
		res, ok, err := w.Step()
		if !ok {
			break
		}
		if err != nil && s.log != nil {
			s.log.Printf("run %s turn %d: %v", runID, res.Seq, err)
		}
		results = append(results, res)
		if err := writeJSON(conn, turnMsg(runID, res)); err != nil {
			return
		}
	}

	_ = writeJSON(conn, protocol.DoneMsg{
		Type:            protocol.TypeDone,
		ProtocolVersion: protocol.Version,
		RunID:           runID,
		Turns:           len(results),
		Report:          report.Render(results, nil),
	})
}

func (s *Server) recordRun(rec indexdb.RunRecord) {
	if s.index != nil {
		s.index.RecordRun(rec)
	}
}

func turnMsg(runID string, res world.TurnResult) protocol.TurnMsg {
	return protocol.TurnMsg{
		Type:            protocol.TypeTurn,
		ProtocolVersion: protocol.Version,
		RunID:           runID,
		Seq:             res.Seq,
		Color:           res.Insect.Color.String(),
		Species:         res.Insect.Species.String(),
		Direction:       res.Direction.String(),
		Score:           res.Score,
		Collected:       res.Collected,
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
