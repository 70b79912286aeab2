package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/duelcode-game/duelcode/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.MaxMatches = 3
	cfg.RoomLogTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) match(room model.RoomID, winner model.PlayerID) *model.MatchSummary {
	return &model.MatchSummary{
		RoomID:     room,
		Players:    [2]model.PlayerID{"p1", "p2"},
		Winner:     winner,
		Attempts:   map[model.PlayerID]int{"p1": 4, "p2": 4},
		FinishedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestSaveAndReadRecent() {
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p1")))
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p2")))

	matches, err := s.storage.RecentMatches(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(matches, 2)

	// Most recent first
	s.Equal(model.PlayerID("p2"), matches[0].Winner)
	s.Equal(model.PlayerID("p1"), matches[1].Winner)
	s.Equal([2]model.PlayerID{"p1", "p2"}, matches[0].Players)
}

func (s *StorageSuite) TestLogIsTrimmedToMaxMatches() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p1")))
	}

	matches, err := s.storage.RecentMatches(s.ctx, 100)
	s.Require().NoError(err)
	s.Len(matches, 3)
}

func (s *StorageSuite) TestMatchesForRoomFilters() {
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p1")))
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM2", "p2")))

	matches, err := s.storage.MatchesForRoom(s.ctx, "ROOM2", 10)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(model.RoomID("ROOM2"), matches[0].RoomID)
}

func (s *StorageSuite) TestRoomLogExpires() {
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p1")))

	s.mini.FastForward(2 * time.Hour)

	matches, err := s.storage.MatchesForRoom(s.ctx, "ROOM1", 10)
	s.Require().NoError(err)
	s.Empty(matches)

	// The global log has no TTL and survives
	matches, err = s.storage.RecentMatches(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *StorageSuite) TestZeroLimitReturnsEmpty() {
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.match("ROOM1", "p1")))

	matches, err := s.storage.RecentMatches(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(matches)
}
