package world

import (
	"insectsim/internal/sim/grid"
	"insectsim/internal/sim/model"
)

type DirectionScore struct {
	Direction grid.Direction
	Score     int
}

// TurnResult is one insect's completed turn. Insect is a copy taken before it
// left the board.
type TurnResult struct {
	Seq       int
	Insect    model.Insect
	Direction grid.Direction
	Score     int
	Collected int
	Scores    []DirectionScore
}

// TurnLogEntry is the persisted form of a turn. Digest is the board state
// after the turn completed.
type TurnLogEntry struct {
	RunID     string         `json:"run_id,omitempty"`
	Seq       int            `json:"seq"`
	Color     string         `json:"color"`
	Species   string         `json:"species"`
	From      [2]int         `json:"from"`
	Direction string         `json:"direction"`
	Score     int            `json:"score"`
	Collected int            `json:"collected"`
	Scores    map[string]int `json:"scores,omitempty"`
	Digest    string         `json:"digest"`
}
