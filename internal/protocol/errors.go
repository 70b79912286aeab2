package protocol

import (
	"errors"

	"github.com/duelcode-game/duelcode/internal/model"
)

// Error codes carried in ErrorMessage
const (
	CodeRoomNotFound     = "ROOM_NOT_FOUND"
	CodeRoomFull         = "ROOM_FULL"
	CodeUnknownOpponent  = "UNKNOWN_OPPONENT"
	CodeNotYourTurn      = "NOT_YOUR_TURN"
	CodeInvalidCode      = "INVALID_CODE"
	CodeGameNotStarted   = "GAME_NOT_STARTED"
	CodeGameFinished     = "GAME_FINISHED"
	CodeCodeAlreadySet   = "CODE_ALREADY_SET"
	CodeSessionNotFound  = "SESSION_NOT_FOUND"
	CodeMalformedMessage = "MALFORMED_MESSAGE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// ErrorFrom maps a domain error to the wire error sent back to the
// originating connection. Errors never terminate the connection.
func ErrorFrom(err error) ErrorMessage {
	code := CodeInternalError
	message := "internal error"

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		code, message = CodeRoomNotFound, "Room not found"
	case errors.Is(err, model.ErrRoomFull):
		code, message = CodeRoomFull, "Room is full"
	case errors.Is(err, model.ErrUnknownOpponent), errors.Is(err, model.ErrPlayerNotFound):
		code, message = CodeUnknownOpponent, "Opponent is not in this room"
	case errors.Is(err, model.ErrNotYourTurn):
		code, message = CodeNotYourTurn, "Not your turn"
	case errors.Is(err, model.ErrInvalidCode):
		code, message = CodeInvalidCode, "Code must be exactly 4 digits 0-9"
	case errors.Is(err, model.ErrGameNotStarted):
		code, message = CodeGameNotStarted, "Both secret codes have not been set"
	case errors.Is(err, model.ErrGameFinished):
		code, message = CodeGameFinished, "Game is already resolved"
	case errors.Is(err, model.ErrCodeAlreadySet):
		code, message = CodeCodeAlreadySet, "Secret code is already locked in"
	case errors.Is(err, model.ErrSessionNotFound):
		code, message = CodeSessionNotFound, "No game for this player pair"
	case errors.Is(err, model.ErrMalformedMessage):
		code, message = CodeMalformedMessage, "Malformed message"
	}

	return ErrorMessage{Type: TypeError, Code: code, Message: message}
}
