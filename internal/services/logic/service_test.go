package logic

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mmgame/mastermind-go/internal/dependencies/mocks"
	"github.com/mmgame/mastermind-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random)
}

// GenerateSecret tests

func (s *ServiceSuite) TestGenerateSecretUsesRandomDraws() {
	// Color order: red, blue, green, yellow, purple, cyan
	s.random.QueueIntn(0, 2, 4, 5)

	secret, err := s.service.GenerateSecret(4)
	s.Require().NoError(err)

	s.Equal(model.Codeword{model.ColorRed, model.ColorGreen, model.ColorPurple, model.ColorCyan}, secret)
}

func (s *ServiceSuite) TestGenerateSecretAllowsRepeatedColors() {
	s.random.QueueIntn(1, 1, 1, 1)

	secret, err := s.service.GenerateSecret(4)
	s.Require().NoError(err)

	for _, c := range secret {
		s.Equal(model.ColorBlue, c)
	}
}

func (s *ServiceSuite) TestGenerateSecretRejectsNonPositiveSlotCount() {
	_, err := s.service.GenerateSecret(0)
	s.ErrorIs(err, model.ErrInvalidSlotCount)

	_, err = s.service.GenerateSecret(-3)
	s.ErrorIs(err, model.ErrInvalidSlotCount)
}

// EvaluateGuess tests

func (s *ServiceSuite) TestEvaluateGuessSelfMatch() {
	secret := model.Codeword{model.ColorRed, model.ColorBlue, model.ColorGreen, model.ColorYellow}

	feedback, err := s.service.EvaluateGuess(secret, secret.Clone())
	s.Require().NoError(err)

	s.Equal(model.Feedback{Exact: 4, Partial: 0}, feedback)
}

func (s *ServiceSuite) TestEvaluateGuessNoMatches() {
	secret := model.Codeword{model.ColorRed, model.ColorRed, model.ColorRed, model.ColorRed}
	guess := model.Codeword{model.ColorBlue, model.ColorGreen, model.ColorYellow, model.ColorCyan}

	feedback, err := s.service.EvaluateGuess(secret, guess)
	s.Require().NoError(err)

	s.Equal(model.Feedback{Exact: 0, Partial: 0}, feedback)
}

func (s *ServiceSuite) TestEvaluateGuessMixedExactAndPartial() {
	secret := model.Codeword{model.ColorRed, model.ColorBlue, model.ColorGreen, model.ColorYellow}
	guess := model.Codeword{model.ColorRed, model.ColorGreen, model.ColorBlue, model.ColorPurple}

	feedback, err := s.service.EvaluateGuess(secret, guess)
	s.Require().NoError(err)

	s.Equal(model.Feedback{Exact: 1, Partial: 2}, feedback)
}

func (s *ServiceSuite) TestEvaluateGuessDuplicatesCappedByMultiplicity() {
	secret := model.Codeword{model.ColorRed, model.ColorBlue, model.ColorGreen, model.ColorYellow}
	guess := model.Codeword{model.ColorRed, model.ColorRed, model.ColorRed, model.ColorRed}

	feedback, err := s.service.EvaluateGuess(secret, guess)
	s.Require().NoError(err)

	// Only one red exists in the secret and it is already matched
	// exactly, so the remaining reds score nothing
	s.Equal(model.Feedback{Exact: 1, Partial: 0}, feedback)
}

func (s *ServiceSuite) TestEvaluateGuessFullTransposition() {
	secret := model.Codeword{model.ColorRed, model.ColorRed, model.ColorBlue, model.ColorBlue}
	guess := model.Codeword{model.ColorBlue, model.ColorBlue, model.ColorRed, model.ColorRed}

	feedback, err := s.service.EvaluateGuess(secret, guess)
	s.Require().NoError(err)

	s.Equal(model.Feedback{Exact: 0, Partial: 4}, feedback)
}

func (s *ServiceSuite) TestEvaluateGuessDoesNotMutateInputs() {
	secret := model.Codeword{model.ColorRed, model.ColorBlue}
	guess := model.Codeword{model.ColorRed, model.ColorGreen}

	_, err := s.service.EvaluateGuess(secret, guess)
	s.Require().NoError(err)

	s.Equal(model.Codeword{model.ColorRed, model.ColorBlue}, secret)
	s.Equal(model.Codeword{model.ColorRed, model.ColorGreen}, guess)
}

func (s *ServiceSuite) TestEvaluateGuessLengthMismatch() {
	secret := model.Codeword{model.ColorRed, model.ColorBlue, model.ColorGreen}
	guess := model.Codeword{model.ColorRed, model.ColorBlue}

	_, err := s.service.EvaluateGuess(secret, guess)
	s.ErrorIs(err, model.ErrLengthMismatch)
}

func (s *ServiceSuite) TestEvaluateGuessNilInputs() {
	secret := model.Codeword{model.ColorRed}

	_, err := s.service.EvaluateGuess(secret, nil)
	s.ErrorIs(err, model.ErrInvalidGuess)

	_, err = s.service.EvaluateGuess(nil, secret)
	s.ErrorIs(err, model.ErrInvalidGuess)
}

func (s *ServiceSuite) TestEvaluateGuessSymmetricPartialCount() {
	a := model.Codeword{model.ColorRed, model.ColorBlue, model.ColorBlue, model.ColorGreen}
	b := model.Codeword{model.ColorBlue, model.ColorRed, model.ColorGreen, model.ColorGreen}

	ab, err := s.service.EvaluateGuess(a, b)
	s.Require().NoError(err)
	ba, err := s.service.EvaluateGuess(b, a)
	s.Require().NoError(err)

	// Swapping secret and guess never changes the score
	s.Equal(ab, ba)
}

// Validation tests

func (s *ServiceSuite) TestIsValidGuess() {
	s.True(s.service.IsValidGuess(model.Codeword{model.ColorRed, model.ColorBlue}, 2))
	s.False(s.service.IsValidGuess(model.Codeword{model.ColorRed}, 2))
	s.False(s.service.IsValidGuess(model.Codeword{model.ColorRed, "mauve"}, 2))
	s.False(s.service.IsValidGuess(nil, 0))
}

func (s *ServiceSuite) TestIsWinningGuess() {
	s.True(s.service.IsWinningGuess(model.Feedback{Exact: 4}, 4))
	s.False(s.service.IsWinningGuess(model.Feedback{Exact: 3, Partial: 1}, 4))
}

func (s *ServiceSuite) TestAvailableColorsStableOrder() {
	colors := s.service.AvailableColors()

	s.Equal([]model.Color{
		model.ColorRed, model.ColorBlue, model.ColorGreen,
		model.ColorYellow, model.ColorPurple, model.ColorCyan,
	}, colors)
}
