// Package protocol defines the JSON envelopes exchanged over the game
// connection. Every message carries a "type" discriminator; field names
// match the wire format expected by existing clients.
package protocol

import "github.com/duelcode-game/duelcode/internal/model"

// Type discriminates message envelopes
type Type string

// Client-to-server message types
const (
	TypeCreateRoom      Type = "create_room"
	TypeJoinRoom        Type = "join_room"
	TypeChallengePlayer Type = "challenge_player"
	TypeAcceptChallenge Type = "accept_challenge"
	TypeSetSecretCode   Type = "set_secret_code"
	TypeSubmitGuess     Type = "submit_guess"
	TypeRequestRematch  Type = "request_rematch"
	TypeAcceptRematch   Type = "accept_rematch"
	TypeQuit            Type = "opponent_quit"
)

// Server-to-client message types
const (
	TypeRoomCreated        Type = "room_created"
	TypeRoomJoined         Type = "room_joined"
	TypePlayersUpdated     Type = "players_updated"
	TypeChallengeReceived  Type = "challenge_received"
	TypeChallengeAccepted  Type = "challenge_accepted"
	TypeGameStarted        Type = "game_started"
	TypeGuessResult        Type = "guess_result"
	TypeFirstWinnerPending Type = "first_winner_pending"
	TypeOpponentWonFirst   Type = "opponent_won_first"
	TypeGameResult         Type = "game_result"
	TypeRematchRequested   Type = "rematch_requested"
	TypeRematchAccepted    Type = "rematch_accepted"
	TypeOpponentQuit       Type = "opponent_quit"
	TypeError              Type = "error"
)

// Client-to-server messages

// CreateRoom requests a new room with the sender as its first member
type CreateRoom struct {
	Type       Type   `json:"type"`
	PlayerName string `json:"playerName"`
}

// JoinRoom requests membership in an existing room
type JoinRoom struct {
	Type       Type         `json:"type"`
	RoomID     model.RoomID `json:"roomId"`
	PlayerName string       `json:"playerName"`
}

// ChallengePlayer asks a room member to a duel
type ChallengePlayer struct {
	Type       Type           `json:"type"`
	OpponentID model.PlayerID `json:"opponentId"`
}

// AcceptChallenge accepts a received challenge
type AcceptChallenge struct {
	Type       Type           `json:"type"`
	OpponentID model.PlayerID `json:"opponentId"`
}

// SetSecretCode locks in the sender's secret code for a duel
type SetSecretCode struct {
	Type       Type           `json:"type"`
	OpponentID model.PlayerID `json:"opponentId"`
	Code       model.Code     `json:"code"`
}

// SubmitGuess plays a guess against the opponent's secret code
type SubmitGuess struct {
	Type       Type           `json:"type"`
	OpponentID model.PlayerID `json:"opponentId"`
	Guess      model.Code     `json:"guess"`
}

// RequestRematch offers the opponent a rematch
type RequestRematch struct {
	Type       Type           `json:"type"`
	OpponentID model.PlayerID `json:"opponentId"`
}

// AcceptRematch accepts a rematch offer, discarding the finished session
type AcceptRematch struct {
	Type       Type           `json:"type"`
	OpponentID model.PlayerID `json:"opponentId"`
}

// Quit announces the sender is abandoning their in-progress duels
type Quit struct {
	Type Type `json:"type"`
}

// Server-to-client messages

// RoomCreated confirms room creation to the creating connection
type RoomCreated struct {
	Type     Type           `json:"type"`
	RoomID   model.RoomID   `json:"roomId"`
	PlayerID model.PlayerID `json:"playerId"`
}

// RoomJoined confirms a join to the joining connection
type RoomJoined struct {
	Type     Type               `json:"type"`
	RoomID   model.RoomID       `json:"roomId"`
	PlayerID model.PlayerID     `json:"playerId"`
	Players  []model.PlayerInfo `json:"players"`
}

// PlayersUpdated broadcasts the current roster after membership changes
type PlayersUpdated struct {
	Type    Type               `json:"type"`
	Players []model.PlayerInfo `json:"players"`
}

// ChallengeReceived notifies a player they have been challenged
type ChallengeReceived struct {
	Type           Type           `json:"type"`
	FromPlayerID   model.PlayerID `json:"fromPlayerId"`
	FromPlayerName string         `json:"fromPlayerName"`
}

// ChallengeAccepted notifies the challenger their challenge was accepted
type ChallengeAccepted struct {
	Type Type `json:"type"`
}

// GameStarted notifies both players that both codes are in and whose turn is first
type GameStarted struct {
	Type          Type           `json:"type"`
	FirstPlayerID model.PlayerID `json:"firstPlayerId"`
}

// GuessResult broadcasts the outcome of one attempt to both players.
// An empty Guess records a turn lost to the timeout. OpponentSecret is
// revealed only in the guesser's copy, and only on an exact match.
type GuessResult struct {
	Type                 Type           `json:"type"`
	PlayerID             model.PlayerID `json:"playerId"`
	Guess                model.Code     `json:"guess"`
	CorrectCount         int            `json:"correctCount"`
	CorrectPositionCount int            `json:"correctPositionCount"`
	Won                  bool           `json:"won"`
	NextTurn             model.PlayerID `json:"nextTurn"`
	OpponentSecret       model.Code     `json:"opponentSecret,omitempty"`
}

// FirstWinnerPending tells the first exact matcher they must wait out the
// opponent's remaining sudden-death turns before the result is final
type FirstWinnerPending struct {
	Type             Type       `json:"type"`
	YourAttempts     int        `json:"yourAttempts"`
	OpponentAttempts int        `json:"opponentAttempts"`
	OpponentSecret   model.Code `json:"opponentSecret"`
}

// OpponentWonFirst tells the trailing player the opponent has matched and
// how many sudden-death turns remain
type OpponentWonFirst struct {
	Type             Type `json:"type"`
	OpponentAttempts int  `json:"opponentAttempts"`
	YourAttempts     int  `json:"yourAttempts"`
	TurnsLeft        int  `json:"turnsLeft"`
}

// GameResult is the terminal notice for a duel, sent exactly once per player
type GameResult struct {
	Type             Type              `json:"type"`
	Result           model.MatchResult `json:"result"`
	ByForfeit        bool              `json:"byForfeit,omitempty"`
	OpponentSecret   model.Code        `json:"opponentSecret,omitempty"`
	YourAttempts     int               `json:"yourAttempts"`
	OpponentAttempts int               `json:"opponentAttempts"`
}

// RematchRequested relays a rematch offer
type RematchRequested struct {
	Type           Type           `json:"type"`
	FromPlayerID   model.PlayerID `json:"fromPlayerId"`
	FromPlayerName string         `json:"fromPlayerName"`
}

// RematchAccepted notifies both players the rematch is on
type RematchAccepted struct {
	Type Type `json:"type"`
}

// OpponentQuit notifies a player their opponent left mid-session
type OpponentQuit struct {
	Type       Type           `json:"type"`
	PlayerID   model.PlayerID `json:"playerId"`
	PlayerName string         `json:"playerName"`
}

// ErrorMessage reports a rejected operation to the originating connection
type ErrorMessage struct {
	Type    Type   `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
