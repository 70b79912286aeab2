package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelcode-game/duelcode/internal/model"
)

func TestDecodeClient(t *testing.T) {
	t.Run("create_room", func(t *testing.T) {
		msg, err := DecodeClient([]byte(`{"type":"create_room","playerName":"alice"}`))
		require.NoError(t, err)

		create, ok := msg.(*CreateRoom)
		require.True(t, ok)
		assert.Equal(t, "alice", create.PlayerName)
	})

	t.Run("submit_guess carries digits", func(t *testing.T) {
		msg, err := DecodeClient([]byte(`{"type":"submit_guess","opponentId":"p2","guess":[1,2,3,4]}`))
		require.NoError(t, err)

		guess, ok := msg.(*SubmitGuess)
		require.True(t, ok)
		assert.Equal(t, model.PlayerID("p2"), guess.OpponentID)
		assert.Equal(t, model.Code{1, 2, 3, 4}, guess.Guess)
	})

	t.Run("set_secret_code", func(t *testing.T) {
		msg, err := DecodeClient([]byte(`{"type":"set_secret_code","opponentId":"p2","code":[9,0,0,9]}`))
		require.NoError(t, err)

		secret, ok := msg.(*SetSecretCode)
		require.True(t, ok)
		assert.Equal(t, model.Code{9, 0, 0, 9}, secret.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := DecodeClient([]byte(`{"type":"launch_missiles"}`))
		assert.ErrorIs(t, err, model.ErrMalformedMessage)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := DecodeClient([]byte(`{"type":`))
		assert.ErrorIs(t, err, model.ErrMalformedMessage)
	})

	t.Run("wrong field type", func(t *testing.T) {
		_, err := DecodeClient([]byte(`{"type":"submit_guess","guess":"1234"}`))
		assert.ErrorIs(t, err, model.ErrMalformedMessage)
	})
}

func TestErrorFrom(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{model.ErrRoomNotFound, CodeRoomNotFound},
		{model.ErrRoomFull, CodeRoomFull},
		{model.ErrUnknownOpponent, CodeUnknownOpponent},
		{model.ErrNotYourTurn, CodeNotYourTurn},
		{model.ErrInvalidCode, CodeInvalidCode},
		{model.ErrGameNotStarted, CodeGameNotStarted},
		{model.ErrGameFinished, CodeGameFinished},
		{model.ErrMalformedMessage, CodeMalformedMessage},
		{assert.AnError, CodeInternalError},
	}

	for _, tt := range tests {
		msg := ErrorFrom(tt.err)
		assert.Equal(t, TypeError, msg.Type)
		assert.Equal(t, tt.code, msg.Code)
	}
}
