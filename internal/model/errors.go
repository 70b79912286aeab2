package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")

	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrUnknownOpponent = errors.New("opponent is not in this room")

	// Session errors
	ErrSessionNotFound = errors.New("no session for this player pair")
	ErrGameNotStarted  = errors.New("both secret codes have not been set")
	ErrGameFinished    = errors.New("game is already resolved")
	ErrNotYourTurn     = errors.New("not this player's turn")
	ErrCodeAlreadySet  = errors.New("secret code is already locked in")

	// Protocol errors
	ErrInvalidCode      = errors.New("code must be exactly 4 digits 0-9")
	ErrMalformedMessage = errors.New("malformed message")

	// Storage errors
	ErrMatchNotFound = errors.New("match not found")
)
