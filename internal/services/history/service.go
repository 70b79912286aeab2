// Package history records completed duels.
package history

import (
	"context"
	"log/slog"

	"github.com/duelcode-game/duelcode/internal/model"
	"github.com/duelcode-game/duelcode/internal/storage"
)

const (
	// DefaultLimit applies when callers ask for zero or negative results
	DefaultLimit = 20
	// MaxLimit caps a single query
	MaxLimit = 100
)

// Service records and queries match summaries
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new history service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Record stores the result of a completed duel
func (s *Service) Record(ctx context.Context, match *model.MatchSummary) error {
	if err := s.storage.SaveMatch(ctx, match); err != nil {
		s.logger.Error("failed to record match",
			slog.String("room_id", string(match.RoomID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("match recorded",
		slog.String("room_id", string(match.RoomID)),
		slog.String("winner", string(match.Winner)),
		slog.Bool("tie", match.Tie),
		slog.Bool("by_forfeit", match.ByForfeit),
	)
	return nil
}

// Recent returns the most recent matches across all rooms
func (s *Service) Recent(ctx context.Context, limit int) ([]*model.MatchSummary, error) {
	return s.storage.RecentMatches(ctx, clampLimit(limit))
}

// ForRoom returns the most recent matches played in one room
func (s *Service) ForRoom(ctx context.Context, roomID model.RoomID, limit int) ([]*model.MatchSummary, error) {
	return s.storage.MatchesForRoom(ctx, roomID, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
