// Package duel implements the game session turn engine: secret code
// intake, alternating guesses, turn timeouts, the first-winner-waits
// resolution rule, and rematch negotiation.
package duel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/duelcode-game/duelcode/internal/dependencies/clock"
	"github.com/duelcode-game/duelcode/internal/dependencies/random"
	"github.com/duelcode-game/duelcode/internal/model"
	"github.com/duelcode-game/duelcode/internal/protocol"
	"github.com/duelcode-game/duelcode/internal/services/guess"
	"github.com/duelcode-game/duelcode/internal/services/history"
)

// DefaultTurnTimeout is how long a player has to submit each guess
const DefaultTurnTimeout = 60 * time.Second

// Notifier delivers a message to one player, best-effort
type Notifier interface {
	Notify(playerID model.PlayerID, msg any)
}

// Controller owns every live duel session. A single mutex serializes all
// session mutation, including timeout callbacks, which keeps the
// guess-versus-timeout race trivially impossible.
type Controller struct {
	mu       sync.Mutex
	sessions map[model.SessionKey]*session

	notifier    Notifier
	history     *history.Service
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
	turnTimeout time.Duration
}

// NewController creates the duel controller
func NewController(
	notifier Notifier,
	historyService *history.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	turnTimeout time.Duration,
) *Controller {
	if turnTimeout <= 0 {
		turnTimeout = DefaultTurnTimeout
	}
	return &Controller{
		sessions:    make(map[model.SessionKey]*session),
		notifier:    notifier,
		history:     historyService,
		clock:       clock,
		random:      random,
		logger:      logger.With(slog.String("component", "duel")),
		turnTimeout: turnTimeout,
	}
}

// SubmitSecret stores a player's secret code, creating the session for the
// pair if this is its first code. A resubmission before the opponent's code
// arrives overwrites; once the duel is active the code is immutable. When
// both codes are in, the first turn is chosen at random, the turn timer is
// armed, and both players are told who goes first.
func (c *Controller) SubmitSecret(ctx context.Context, player *model.Player, opponentID model.PlayerID, code model.Code) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := model.NewSessionKey(player.ID, opponentID)
	sess, ok := c.sessions[key]
	if !ok {
		sess = newSession(key, player.RoomID, player.ID, opponentID)
		c.sessions[key] = sess
		c.logger.Info("session created",
			slog.String("session", string(key)),
			slog.String("room_id", string(player.RoomID)),
		)
	}

	switch sess.state {
	case model.SessionActive:
		return model.ErrCodeAlreadySet
	case model.SessionResolved:
		return model.ErrGameFinished
	}

	sess.secrets[player.ID] = code.Clone()
	if len(sess.secrets) < 2 {
		return nil
	}

	sess.state = model.SessionActive
	sess.currentTurn = sess.players[c.random.Intn(2)]
	c.armTimerLocked(sess)

	c.logger.Info("duel started",
		slog.String("session", string(key)),
		slog.String("first_turn", string(sess.currentTurn)),
	)

	started := protocol.GameStarted{
		Type:          protocol.TypeGameStarted,
		FirstPlayerID: sess.currentTurn,
	}
	c.notifier.Notify(sess.players[0], started)
	c.notifier.Notify(sess.players[1], started)
	return nil
}

// SubmitGuess scores a guess against the opponent's secret, broadcasts the
// result, and applies the resolution rules. Guesses out of turn, including
// any that lost the race against the turn timeout, fail with NotYourTurn.
func (c *Controller) SubmitGuess(ctx context.Context, playerID, opponentID model.PlayerID, g model.Code) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[model.NewSessionKey(playerID, opponentID)]
	if !ok {
		return model.ErrSessionNotFound
	}

	switch sess.state {
	case model.SessionAwaitingCodes:
		return model.ErrGameNotStarted
	case model.SessionResolved:
		return model.ErrGameFinished
	}
	if sess.currentTurn != playerID {
		return model.ErrNotYourTurn
	}
	if err := g.Validate(); err != nil {
		return err
	}

	sess.cancelTimerLocked()

	feedback := guess.Score(sess.secrets[opponentID], g)
	c.recordAttemptLocked(ctx, sess, playerID, model.Attempt{
		Guess: g.Clone(),
		Total: feedback.Total,
		Exact: feedback.Exact,
	}, feedback.Won())
	return nil
}

// RequestRematch marks the pair's session as awaiting a rematch decision
// and relays the offer to the opponent
func (c *Controller) RequestRematch(ctx context.Context, from *model.Player, opponentID model.PlayerID) {
	c.mu.Lock()
	if sess, ok := c.sessions[model.NewSessionKey(from.ID, opponentID)]; ok {
		sess.pendingRematch = true
	}
	c.mu.Unlock()

	c.notifier.Notify(opponentID, protocol.RematchRequested{
		Type:           protocol.TypeRematchRequested,
		FromPlayerID:   from.ID,
		FromPlayerName: from.Name,
	})
}

// AcceptRematch discards the pair's finished session and tells both players
// the rematch is on. The next secret code submission starts a fresh session.
func (c *Controller) AcceptRematch(ctx context.Context, playerID, opponentID model.PlayerID) {
	key := model.NewSessionKey(playerID, opponentID)

	c.mu.Lock()
	if sess, ok := c.sessions[key]; ok {
		sess.cancelTimerLocked()
		delete(c.sessions, key)
		c.logger.Info("session discarded for rematch", slog.String("session", string(key)))
	}
	c.mu.Unlock()

	accepted := protocol.RematchAccepted{Type: protocol.TypeRematchAccepted}
	c.notifier.Notify(playerID, accepted)
	c.notifier.Notify(opponentID, accepted)
}

// ForfeitAll resolves every unresolved session involving the departing
// player as a forfeit win for the opponent, then drops all of the player's
// sessions. Call this before removing the player from the registry so the
// opponents are still reachable.
func (c *Controller) ForfeitAll(ctx context.Context, player *model.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, sess := range c.sessions {
		if !sess.has(player.ID) {
			continue
		}

		sess.cancelTimerLocked()
		opponentID := sess.other(player.ID)

		if sess.state != model.SessionResolved {
			sess.state = model.SessionResolved
			sess.winner = opponentID

			c.notifier.Notify(opponentID, protocol.OpponentQuit{
				Type:       protocol.TypeOpponentQuit,
				PlayerID:   player.ID,
				PlayerName: player.Name,
			})
			c.notifier.Notify(opponentID, protocol.GameResult{
				Type:             protocol.TypeGameResult,
				Result:           model.ResultWon,
				ByForfeit:        true,
				OpponentSecret:   sess.secrets[player.ID],
				YourAttempts:     sess.attemptCount(opponentID),
				OpponentAttempts: sess.attemptCount(player.ID),
			})
			c.recordHistoryLocked(ctx, sess, true)

			c.logger.Info("session forfeited",
				slog.String("session", string(key)),
				slog.String("departed", string(player.ID)),
			)
		}

		delete(c.sessions, key)
	}
}

// SessionState reports the state of the pair's session, if one exists
func (c *Controller) SessionState(playerID, opponentID model.PlayerID) (model.SessionState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[model.NewSessionKey(playerID, opponentID)]
	if !ok {
		return "", false
	}
	return sess.state, true
}

// recordAttemptLocked appends an attempt (real guess or timeout), broadcasts
// the result, and runs the resolution rules. An empty guess is a timed-out
// turn and is scored by the same rules as a real one.
func (c *Controller) recordAttemptLocked(ctx context.Context, sess *session, playerID model.PlayerID, attempt model.Attempt, won bool) {
	opponentID := sess.other(playerID)
	sess.attempts[playerID] = append(sess.attempts[playerID], attempt)
	if won {
		sess.matched[playerID] = true
	}

	resolved, next := c.resolveLocked(sess, playerID, won)

	result := protocol.GuessResult{
		Type:                 protocol.TypeGuessResult,
		PlayerID:             playerID,
		Guess:                attempt.Guess,
		CorrectCount:         attempt.Total,
		CorrectPositionCount: attempt.Exact,
		Won:                  won,
		NextTurn:             next,
	}
	// Only the guesser's copy reveals the code they cracked; the opponent
	// already knows their own secret
	guesserCopy := result
	if won {
		guesserCopy.OpponentSecret = sess.secrets[opponentID]
	}
	c.notifier.Notify(playerID, guesserCopy)
	c.notifier.Notify(opponentID, result)

	if resolved {
		c.finishLocked(ctx, sess)
		return
	}

	// First exact match with the opponent still owed turns: tell both sides
	// the duel has entered its sudden-death tail
	if fw := sess.firstWinner; fw != nil && fw.player == playerID && won {
		trailing := opponentID
		c.notifier.Notify(fw.player, protocol.FirstWinnerPending{
			Type:             protocol.TypeFirstWinnerPending,
			YourAttempts:     fw.attemptCount,
			OpponentAttempts: sess.attemptCount(trailing),
			OpponentSecret:   sess.secrets[trailing],
		})
		c.notifier.Notify(trailing, protocol.OpponentWonFirst{
			Type:             protocol.TypeOpponentWonFirst,
			OpponentAttempts: fw.attemptCount,
			YourAttempts:     sess.attemptCount(trailing),
			TurnsLeft:        fw.attemptCount - sess.attemptCount(trailing),
		})
	}

	sess.currentTurn = next
	c.armTimerLocked(sess)
}

// resolveLocked applies the outcome rules after an attempt by playerID and
// reports whether the session resolved, plus the next turn if it did not.
//
// A first exact match does not win outright: the opponent is entitled to
// the same number of attempts first. Turns keep alternating; the first
// winner's later guesses are ordinary attempts with no further resolution
// weight. When the trailing player's count reaches the first winner's, the
// outcome is a tie if the trailing player matched at any point, otherwise
// a win for the first matcher. Matching at an already-equal attempt count
// wins immediately.
func (c *Controller) resolveLocked(sess *session, playerID model.PlayerID, won bool) (bool, model.PlayerID) {
	opponentID := sess.other(playerID)

	if sess.firstWinner == nil {
		if !won {
			return false, opponentID
		}
		fw := &firstWinner{player: playerID, attemptCount: sess.attemptCount(playerID)}
		sess.firstWinner = fw
		if sess.attemptCount(opponentID) >= fw.attemptCount {
			sess.state = model.SessionResolved
			sess.winner = playerID
			return true, ""
		}
		return false, opponentID
	}

	fw := sess.firstWinner
	if playerID == fw.player {
		return false, opponentID
	}
	if sess.attemptCount(playerID) >= fw.attemptCount {
		sess.state = model.SessionResolved
		if sess.matched[playerID] {
			sess.tie = true
		} else {
			sess.winner = fw.player
		}
		return true, ""
	}
	return false, opponentID
}

// finishLocked sends the terminal result to both players and records the
// match. Exactly one of winner or tie is set by the time this runs.
func (c *Controller) finishLocked(ctx context.Context, sess *session) {
	for _, playerID := range sess.players {
		opponentID := sess.other(playerID)
		result := model.ResultTie
		if !sess.tie {
			result = model.ResultLost
			if sess.winner == playerID {
				result = model.ResultWon
			}
		}
		c.notifier.Notify(playerID, protocol.GameResult{
			Type:             protocol.TypeGameResult,
			Result:           result,
			OpponentSecret:   sess.secrets[opponentID],
			YourAttempts:     sess.attemptCount(playerID),
			OpponentAttempts: sess.attemptCount(opponentID),
		})
	}

	c.logger.Info("duel resolved",
		slog.String("session", string(sess.key)),
		slog.String("winner", string(sess.winner)),
		slog.Bool("tie", sess.tie),
	)
	c.recordHistoryLocked(ctx, sess, false)
}

func (c *Controller) recordHistoryLocked(ctx context.Context, sess *session, byForfeit bool) {
	if c.history == nil {
		return
	}
	_ = c.history.Record(ctx, &model.MatchSummary{
		RoomID:    sess.roomID,
		Players:   sess.players,
		Winner:    sess.winner,
		Tie:       sess.tie,
		ByForfeit: byForfeit,
		Attempts: map[model.PlayerID]int{
			sess.players[0]: sess.attemptCount(sess.players[0]),
			sess.players[1]: sess.attemptCount(sess.players[1]),
		},
		FinishedAt: c.clock.Now(),
	})
}

// armTimerLocked schedules the turn timeout for the current turn holder.
// The captured epoch makes a late firing harmless: by the time a stale
// callback gets the lock the epoch has moved on and it returns.
func (c *Controller) armTimerLocked(sess *session) {
	epoch := sess.epoch
	sess.timer = c.clock.AfterFunc(c.turnTimeout, func() {
		c.onTimeout(sess, epoch)
	})
}

// onTimeout charges the current turn holder with an empty attempt
func (c *Controller) onTimeout(sess *session, epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sess.epoch != epoch || sess.state != model.SessionActive {
		return
	}
	sess.epoch++
	sess.timer = nil

	playerID := sess.currentTurn
	c.logger.Info("turn timed out",
		slog.String("session", string(sess.key)),
		slog.String("player_id", string(playerID)),
	)
	c.recordAttemptLocked(context.Background(), sess, playerID, model.Attempt{}, false)
}
