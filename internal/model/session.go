package model

import "time"

// SessionState represents the phase of a duel session
type SessionState string

const (
	SessionAwaitingCodes SessionState = "awaiting_codes" // fewer than two secret codes set
	SessionActive        SessionState = "active"         // both codes in, turns running
	SessionResolved      SessionState = "resolved"       // outcome fixed
)

// MatchResult is the terminal outcome of a duel from one player's perspective
type MatchResult string

const (
	ResultWon  MatchResult = "won"
	ResultLost MatchResult = "lost"
	ResultTie  MatchResult = "tie"
)

// Opposite returns the result seen by the other player
func (r MatchResult) Opposite() MatchResult {
	switch r {
	case ResultWon:
		return ResultLost
	case ResultLost:
		return ResultWon
	default:
		return ResultTie
	}
}

// MatchSummary is a record of a completed duel
type MatchSummary struct {
	RoomID     RoomID           `json:"roomId"`
	Players    [2]PlayerID      `json:"players"`
	Winner     PlayerID         `json:"winner,omitempty"` // empty on tie
	Tie        bool             `json:"tie"`
	ByForfeit  bool             `json:"byForfeit"`
	Attempts   map[PlayerID]int `json:"attempts"`
	FinishedAt time.Time        `json:"finishedAt"`
}
