package model

// CodeLength is the number of digits in a secret code or guess
const CodeLength = 4

// Code is a sequence of digits 0-9. A valid secret or guess has exactly
// CodeLength digits; an empty Code represents a timeout-forfeited turn.
type Code []int

// Validate reports whether the code is exactly CodeLength digits 0-9
func (c Code) Validate() error {
	if len(c) != CodeLength {
		return ErrInvalidCode
	}
	for _, d := range c {
		if d < 0 || d > 9 {
			return ErrInvalidCode
		}
	}
	return nil
}

// Equal reports whether two codes have identical digits
func (c Code) Equal(other Code) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the code
func (c Code) Clone() Code {
	if c == nil {
		return nil
	}
	out := make(Code, len(c))
	copy(out, c)
	return out
}

// Feedback is the score of a guess against a secret code
type Feedback struct {
	// Total counts digits present in the secret, including exact matches.
	// Each secret digit is consumable at most once.
	Total int
	// Exact counts digits matching the secret at the same position
	Exact int
}

// Won reports whether the feedback represents an exact match of the whole code
func (f Feedback) Won() bool {
	return f.Exact == CodeLength
}

// Attempt is one entry in a player's guess history.
// An empty Guess records a turn forfeited by timeout.
type Attempt struct {
	Guess Code `json:"guess"`
	// Total and Exact mirror Feedback; zero for a timeout attempt
	Total int `json:"correctCount"`
	Exact int `json:"correctPositionCount"`
}
