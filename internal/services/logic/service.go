package logic

import (
	"github.com/mmgame/mastermind-go/internal/dependencies/random"
	"github.com/mmgame/mastermind-go/internal/model"
)

// Service implements the core Mastermind rules: secret generation,
// guess scoring, and guess validation
type Service struct {
	random random.Random
}

// New creates a new logic Service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// GenerateSecret draws slotCount independent uniformly random colors
// from the fixed color set
func (s *Service) GenerateSecret(slotCount int) (model.Codeword, error) {
	if slotCount <= 0 {
		return nil, model.ErrInvalidSlotCount
	}

	colors := model.Colors()
	secret := make(model.Codeword, slotCount)
	for i := range secret {
		secret[i] = colors[s.random.Intn(len(colors))]
	}
	return secret, nil
}

// EvaluateGuess scores a guess against a secret.
//
// Two passes over working copies, consuming matched positions as it
// goes: pass one counts exact matches, pass two walks the remaining
// guess slots left to right and consumes the first remaining secret
// slot with the same color. Consuming on match caps partial counts by
// color multiplicity — four reds guessed against a single red secret
// slot score (1, 0), not four.
func (s *Service) EvaluateGuess(secret, guess model.Codeword) (model.Feedback, error) {
	if secret == nil || guess == nil {
		return model.Feedback{}, model.ErrInvalidGuess
	}
	if len(secret) != len(guess) {
		return model.Feedback{}, model.ErrLengthMismatch
	}

	// Work on copies; caller inputs are never mutated. The empty
	// string marks a consumed slot.
	secretCopy := secret.Clone()
	guessCopy := guess.Clone()

	exact := 0
	for i := range guessCopy {
		if guessCopy[i] != "" && guessCopy[i] == secretCopy[i] {
			exact++
			secretCopy[i] = ""
			guessCopy[i] = ""
		}
	}

	partial := 0
	for i := range guessCopy {
		if guessCopy[i] == "" {
			continue
		}
		for j := range secretCopy {
			if secretCopy[j] == guessCopy[i] {
				partial++
				secretCopy[j] = ""
				guessCopy[i] = ""
				break
			}
		}
	}

	return model.Feedback{Exact: exact, Partial: partial}, nil
}

// IsValidGuess reports whether the guess has exactly expectedLength
// slots, each holding a recognized color
func (s *Service) IsValidGuess(guess model.Codeword, expectedLength int) bool {
	if guess == nil || len(guess) != expectedLength {
		return false
	}
	for _, color := range guess {
		if !color.IsValid() {
			return false
		}
	}
	return true
}

// IsWinningGuess reports whether the feedback represents a full match
func (s *Service) IsWinningGuess(feedback model.Feedback, slotCount int) bool {
	return feedback.Exact == slotCount
}

// AvailableColors returns the fixed color set in stable order
func (s *Service) AvailableColors() []model.Color {
	return model.Colors()
}
