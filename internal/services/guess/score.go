// Package guess scores guesses against secret codes.
//
// Scoring is the classic two-pass peg count: position matches are consumed
// first, then each remaining guess digit can consume at most one remaining
// occurrence of that digit in the secret.
package guess

import "github.com/duelcode-game/duelcode/internal/model"

// Score evaluates a guess against a secret code.
// Both codes must be valid (see model.Code.Validate); Score itself is
// total and deterministic, with 0 <= Exact <= Total <= model.CodeLength.
func Score(secret, guess model.Code) model.Feedback {
	var fb model.Feedback

	secretUsed := make([]bool, len(secret))
	guessUsed := make([]bool, len(guess))

	// Pass 1: exact position matches
	for i := range guess {
		if i < len(secret) && guess[i] == secret[i] {
			fb.Exact++
			secretUsed[i] = true
			guessUsed[i] = true
		}
	}

	// Pass 2: displaced digits, each secret digit consumable once
	fb.Total = fb.Exact
	for i := range guess {
		if guessUsed[i] {
			continue
		}
		for j := range secret {
			if !secretUsed[j] && secret[j] == guess[i] {
				fb.Total++
				secretUsed[j] = true
				break
			}
		}
	}

	return fb
}
