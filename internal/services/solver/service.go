package solver

import (
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/services/logic"
)

// Service searches for codewords consistent with a guess history
type Service struct {
	logic *logic.Service
}

// New creates a new solver Service
func New(logic *logic.Service) *Service {
	return &Service{
		logic: logic,
	}
}

// SuggestGuess finds a codeword that, if it were the secret, would
// reproduce the recorded feedback for every historical guess. The
// Cartesian product of colors^slotCount is enumerated in a fixed
// lexicographic order (first slot most significant) and the first
// compatible candidate wins; nil means the history rules out every
// codeword.
//
// The search costs |colors|^slotCount scoring passes over the whole
// history. With the six-color set that is only tractable for slot
// counts of about six or fewer; larger boards are still playable, but
// asking for a suggestion on one is infeasible by design.
func (s *Service) SuggestGuess(history []model.GuessAttempt, slotCount int) (model.Codeword, error) {
	if slotCount <= 0 {
		return nil, model.ErrInvalidSlotCount
	}

	colors := model.Colors()
	indices := make([]int, slotCount)

	for {
		candidate := make(model.Codeword, slotCount)
		for i, idx := range indices {
			candidate[i] = colors[idx]
		}

		if s.compatible(candidate, history) {
			return candidate, nil
		}

		// Advance the odometer: last slot varies fastest
		pos := slotCount - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(colors) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			return nil, nil
		}
	}
}

// compatible reports whether the candidate, treated as the secret,
// would have produced the recorded feedback for every attempt
func (s *Service) compatible(candidate model.Codeword, history []model.GuessAttempt) bool {
	for _, attempt := range history {
		feedback, err := s.logic.EvaluateGuess(candidate, attempt.Guess)
		if err != nil {
			return false
		}
		if feedback != attempt.Feedback {
			return false
		}
	}
	return true
}
