package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/duelcode-game/duelcode/internal/model"
)

// envelope extracts the discriminator before full decoding
type envelope struct {
	Type Type `json:"type"`
}

// DecodeClient parses a raw client message into its concrete struct.
// Unknown types and unparseable payloads return model.ErrMalformedMessage.
func DecodeClient(data []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedMessage, err)
	}

	var msg any
	switch env.Type {
	case TypeCreateRoom:
		msg = &CreateRoom{}
	case TypeJoinRoom:
		msg = &JoinRoom{}
	case TypeChallengePlayer:
		msg = &ChallengePlayer{}
	case TypeAcceptChallenge:
		msg = &AcceptChallenge{}
	case TypeSetSecretCode:
		msg = &SetSecretCode{}
	case TypeSubmitGuess:
		msg = &SubmitGuess{}
	case TypeRequestRematch:
		msg = &RequestRematch{}
	case TypeAcceptRematch:
		msg = &AcceptRematch{}
	case TypeQuit:
		msg = &Quit{}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", model.ErrMalformedMessage, env.Type)
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedMessage, err)
	}
	return msg, nil
}
