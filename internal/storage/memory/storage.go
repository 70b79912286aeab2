package memory

import (
	"context"
	"sync"

	"github.com/duelcode-game/duelcode/internal/model"
	"github.com/duelcode-game/duelcode/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	// matches are stored oldest first; reads walk backwards
	matches []*model.MatchSummary
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveMatch(ctx context.Context, match *model.MatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *match
	s.matches = append(s.matches, &copied)
	return nil
}

func (s *Storage) RecentMatches(ctx context.Context, limit int) ([]*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(limit, func(*model.MatchSummary) bool { return true }), nil
}

func (s *Storage) MatchesForRoom(ctx context.Context, roomID model.RoomID, limit int) ([]*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(limit, func(m *model.MatchSummary) bool { return m.RoomID == roomID }), nil
}

// collect walks the log newest-first, caller must hold the read lock
func (s *Storage) collect(limit int, keep func(*model.MatchSummary) bool) []*model.MatchSummary {
	result := []*model.MatchSummary{}
	for i := len(s.matches) - 1; i >= 0 && len(result) < limit; i-- {
		if keep(s.matches[i]) {
			copied := *s.matches[i]
			result = append(result, &copied)
		}
	}
	return result
}
