package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeRun   = "RUN"
	TypeTurn  = "TURN"
	TypeDone  = "DONE"
	TypeError = "ERROR"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// RUN (client -> server)
type RunMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	// Scenario is the text input format, one entity per line.
	Scenario string `json:"scenario"`
}

// TURN (server -> client), one per insect in input order.
type TurnMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RunID           string `json:"run_id"`
	Seq             int    `json:"seq"`
	Color           string `json:"color"`
	Species         string `json:"species"`
	Direction       string `json:"direction"`
	Score           int    `json:"score"`
	Collected       int    `json:"collected"`
}

// DONE (server -> client)
type DoneMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RunID           string `json:"run_id"`
	Turns           int    `json:"turns"`
	Report          string `json:"report"`
}

// ERROR (server -> client). Message carries the report text for rejected
// scenarios.
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RunID           string `json:"run_id,omitempty"`
	Code            string `json:"code"`
	Message         string `json:"message"`
}

func NewError(code, msg string) ErrorMsg {
	return ErrorMsg{Type: TypeError, ProtocolVersion: Version, Code: code, Message: msg}
}
