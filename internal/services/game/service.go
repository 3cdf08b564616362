package game

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmgame/mastermind-go/internal/dependencies/clock"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/services/logic"
	"github.com/mmgame/mastermind-go/internal/services/solver"
	"github.com/mmgame/mastermind-go/internal/storage"
)

// Service owns the set of live games and runs the scoring path.
//
// Guesses to a single game are expected to be serialized by the
// caller; submissions to different games are safe concurrently.
type Service struct {
	storage storage.Storage
	logic   *logic.Service
	solver  *solver.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new game Service
func New(
	storage storage.Storage,
	logic *logic.Service,
	solver *solver.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		logic:   logic,
		solver:  solver,
		clock:   clock,
		logger:  logger,
	}
}

// CreateGame creates a game with a freshly generated secret
func (s *Service) CreateGame(ctx context.Context, slotCount int) (*model.Game, error) {
	secret, err := s.logic.GenerateSecret(slotCount)
	if err != nil {
		return nil, err
	}
	return s.register(ctx, slotCount, secret)
}

// CreateGameWithSecret creates a game around a caller-supplied secret.
// Used in matches, where each player sets the secret their opponent
// will guess.
func (s *Service) CreateGameWithSecret(ctx context.Context, slotCount int, secret model.Codeword) (*model.Game, error) {
	if slotCount <= 0 {
		return nil, model.ErrInvalidSlotCount
	}
	if !s.logic.IsValidGuess(secret, slotCount) {
		return nil, model.ErrInvalidGuess
	}
	return s.register(ctx, slotCount, secret.Clone())
}

func (s *Service) register(ctx context.Context, slotCount int, secret model.Codeword) (*model.Game, error) {
	game := &model.Game{
		ID:        model.GameID(uuid.NewString()),
		Secret:    secret,
		History:   []model.GuessAttempt{},
		SlotCount: slotCount,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("slot_count", slotCount),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

// SubmitGuess scores a guess, appends it to the game's history, and
// flips the won/over flags in the same step when the guess hits
func (s *Service) SubmitGuess(ctx context.Context, id model.GameID, guess model.Codeword) (*model.Game, error) {
	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.GameOver {
		return nil, model.ErrGameOver
	}

	if !s.logic.IsValidGuess(guess, game.SlotCount) {
		return nil, model.ErrInvalidGuess
	}

	feedback, err := s.logic.EvaluateGuess(game.Secret, guess)
	if err != nil {
		return nil, err
	}

	game.History = append(game.History, model.GuessAttempt{
		Guess:    guess.Clone(),
		Feedback: feedback,
	})

	if s.logic.IsWinningGuess(feedback, game.SlotCount) {
		game.Won = true
		game.GameOver = true
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("guess submitted",
		slog.String("game_id", string(id)),
		slog.Int("attempts", len(game.History)),
		slog.Bool("won", game.Won),
	)

	return game, nil
}

// ResetGame regenerates the secret and clears the history and flags,
// keeping the game's identity and slot count
func (s *Service) ResetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	secret, err := s.logic.GenerateSecret(game.SlotCount)
	if err != nil {
		return nil, err
	}

	game.Secret = secret
	game.History = []model.GuessAttempt{}
	game.GameOver = false
	game.Won = false

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game reset", slog.String("game_id", string(id)))

	return game, nil
}

// DeleteGame removes a game, reporting whether it was present
func (s *Service) DeleteGame(ctx context.Context, id model.GameID) (bool, error) {
	return s.storage.DeleteGame(ctx, id)
}

// SuggestGuess delegates to the solver using the game's current
// history. A nil codeword with a nil error means no compatible
// candidate exists.
func (s *Service) SuggestGuess(ctx context.Context, id model.GameID) (model.Codeword, error) {
	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.solver.SuggestGuess(game.History, game.SlotCount)
}

// Solution reveals the game's secret. This is the one path that
// intentionally exposes it, backing the spoiler feature.
func (s *Service) Solution(ctx context.Context, id model.GameID) (model.Codeword, error) {
	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return game.Secret.Clone(), nil
}

// ActiveGameCount returns the number of live games, for monitoring
func (s *Service) ActiveGameCount(ctx context.Context) (int, error) {
	return s.storage.CountGames(ctx)
}
