// Package storage defines the persistence interface for match results.
//
// Only completed duels are stored. Live session state (connections, turns,
// timers) is deliberately volatile and never crosses this boundary.
package storage

import (
	"context"

	"github.com/duelcode-game/duelcode/internal/model"
)

// Storage is the persistence interface for match summaries
type Storage interface {
	// SaveMatch appends a completed match record
	SaveMatch(ctx context.Context, match *model.MatchSummary) error

	// RecentMatches returns up to limit matches, most recent first
	RecentMatches(ctx context.Context, limit int) ([]*model.MatchSummary, error)

	// MatchesForRoom returns up to limit matches played in the given room,
	// most recent first
	MatchesForRoom(ctx context.Context, roomID model.RoomID, limit int) ([]*model.MatchSummary, error)
}
