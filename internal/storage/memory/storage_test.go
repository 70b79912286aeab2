package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/duelcode-game/duelcode/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) match(room model.RoomID, winner model.PlayerID, at time.Time) *model.MatchSummary {
	return &model.MatchSummary{
		RoomID:     room,
		Players:    [2]model.PlayerID{"p1", "p2"},
		Winner:     winner,
		Attempts:   map[model.PlayerID]int{"p1": 3, "p2": 2},
		FinishedAt: at,
	}
}

func (s *StorageSuite) TestSaveAndReadRecent() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p1", now)))
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p2", now.Add(time.Minute))))

	matches, err := s.storage.RecentMatches(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(matches, 2)

	// Most recent first
	s.Equal(model.PlayerID("p2"), matches[0].Winner)
	s.Equal(model.PlayerID("p1"), matches[1].Winner)
}

func (s *StorageSuite) TestRecentMatchesRespectsLimit() {
	now := time.Now()
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p1", now)))
	}

	matches, err := s.storage.RecentMatches(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(matches, 3)
}

func (s *StorageSuite) TestMatchesForRoomFilters() {
	now := time.Now()
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p1", now)))
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM2", "p2", now)))

	matches, err := s.storage.MatchesForRoom(s.ctx, "ROOM1", 10)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(model.RoomID("ROOM1"), matches[0].RoomID)
}

func (s *StorageSuite) TestMatchesForRoomEmpty() {
	matches, err := s.storage.MatchesForRoom(s.ctx, "NOSUCH", 10)
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *StorageSuite) TestSavedMatchIsCopied() {
	now := time.Now()
	match := s.match("ROOM1", "p1", now)
	s.Require().NoError(s.storage.SaveMatch(s.ctx, match))

	// Mutating the caller's struct must not affect the stored record
	match.Winner = "p2"

	matches, err := s.storage.RecentMatches(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), matches[0].Winner)
}
