package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/duelcode-game/duelcode/internal/model"
	"github.com/duelcode-game/duelcode/internal/storage/memory"
	"github.com/duelcode-game/duelcode/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) record(room model.RoomID) {
	s.Require().NoError(s.service.Record(s.ctx, &model.MatchSummary{
		RoomID:     room,
		Players:    [2]model.PlayerID{"p1", "p2"},
		Winner:     "p1",
		Attempts:   map[model.PlayerID]int{"p1": 2, "p2": 2},
		FinishedAt: time.Now(),
	}))
}

func (s *ServiceSuite) TestRecordAndQuery() {
	s.record("ROOM1")
	s.record("ROOM2")

	matches, err := s.service.Recent(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(matches, 2)

	matches, err = s.service.ForRoom(s.ctx, "ROOM1", 10)
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *ServiceSuite) TestZeroLimitUsesDefault() {
	for i := 0; i < DefaultLimit+5; i++ {
		s.record("ROOM1")
	}

	matches, err := s.service.Recent(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(matches, DefaultLimit)
}

func (s *ServiceSuite) TestLimitIsCapped() {
	matches, err := s.service.Recent(s.ctx, MaxLimit+1000)
	s.Require().NoError(err)
	s.Empty(matches)
}
