package duel

import (
	"github.com/duelcode-game/duelcode/internal/dependencies/clock"
	"github.com/duelcode-game/duelcode/internal/model"
)

// firstWinner records the first player to match exactly and the attempt
// count at which they did. The opponent is entitled to the same number of
// attempts before the outcome is fixed.
type firstWinner struct {
	player       model.PlayerID
	attemptCount int
}

// session is one duel between a fixed pair of players. All fields are
// guarded by the controller's mutex; the timeout callback and the guess
// path both take it.
type session struct {
	key     model.SessionKey
	roomID  model.RoomID
	players [2]model.PlayerID

	state       model.SessionState
	secrets     map[model.PlayerID]model.Code
	attempts    map[model.PlayerID][]model.Attempt
	matched     map[model.PlayerID]bool
	currentTurn model.PlayerID
	firstWinner *firstWinner

	winner         model.PlayerID // empty on tie
	tie            bool
	pendingRematch bool

	// epoch invalidates stale timeout callbacks: it advances whenever the
	// turn does, and a callback armed under an older epoch does nothing
	epoch uint64
	timer clock.Timer
}

func newSession(key model.SessionKey, roomID model.RoomID, a, b model.PlayerID) *session {
	return &session{
		key:      key,
		roomID:   roomID,
		players:  [2]model.PlayerID{a, b},
		state:    model.SessionAwaitingCodes,
		secrets:  make(map[model.PlayerID]model.Code),
		attempts: make(map[model.PlayerID][]model.Attempt),
		matched:  make(map[model.PlayerID]bool),
	}
}

func (s *session) has(playerID model.PlayerID) bool {
	return s.players[0] == playerID || s.players[1] == playerID
}

func (s *session) other(playerID model.PlayerID) model.PlayerID {
	if s.players[0] == playerID {
		return s.players[1]
	}
	return s.players[0]
}

// cancelTimerLocked stops any armed timer and invalidates pending callbacks
func (s *session) cancelTimerLocked() {
	s.epoch++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *session) attemptCount(playerID model.PlayerID) int {
	return len(s.attempts[playerID])
}
