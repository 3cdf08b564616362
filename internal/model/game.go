package model

import "time"

// GameID uniquely identifies a game
type GameID string

// DefaultSlotCount is the codeword length used when a game is created
// without an explicit slot count
const DefaultSlotCount = 4

// Feedback is the result of scoring one guess against a secret
type Feedback struct {
	// Exact counts slots with the right color in the right position
	Exact int `json:"exact"`
	// Partial counts colors present elsewhere in the secret,
	// capped by color multiplicity
	Partial int `json:"partial"`
}

// GuessAttempt is one historical turn: a guess and its feedback
type GuessAttempt struct {
	Guess    Codeword `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Game represents a single Mastermind board: a hidden secret plus the
// ordered guess history played against it
type Game struct {
	ID        GameID
	Secret    Codeword // never exposed to clients except via the solution reveal
	History   []GuessAttempt
	SlotCount int
	GameOver  bool
	Won       bool // Won implies GameOver
	CreatedAt time.Time
}

// LastAttempt returns the most recent guess attempt, or nil if no
// guesses have been made
func (g *Game) LastAttempt() *GuessAttempt {
	if len(g.History) == 0 {
		return nil
	}
	return &g.History[len(g.History)-1]
}
