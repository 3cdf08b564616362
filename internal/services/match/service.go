package match

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmgame/mastermind-go/internal/dependencies/clock"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/storage"
)

// Service is the registry of two-player matches. A nickname belongs
// to at most one match at a time.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new match Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreateMatch pairs two players into a new match in the setup state.
// Fails if either player is already in a match; the two-nickname
// claim is atomic against concurrent creates.
func (s *Service) CreateMatch(ctx context.Context, player1Nickname, player2Nickname string) (*model.Match, error) {
	match := &model.Match{
		ID:              model.MatchID(uuid.NewString()),
		Player1Nickname: player1Nickname,
		Player2Nickname: player2Nickname,
		Status:          model.MatchSetup,
		CreatedAt:       s.clock.Now(),
	}

	if err := s.storage.CreateMatch(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info("match created",
		slog.String("match_id", string(match.ID)),
		slog.String("player1", player1Nickname),
		slog.String("player2", player2Nickname),
	)

	return match, nil
}

// SetPlayerGame records the game a player has set their secret in and
// marks them ready. When the second player readies up, the match
// moves from setup to playing and the start time is stamped — exactly
// once.
func (s *Service) SetPlayerGame(ctx context.Context, nickname string, gameID model.GameID) (*model.Match, error) {
	match, err := s.storage.GetMatchByPlayer(ctx, nickname)
	if err != nil {
		if errors.Is(err, model.ErrMatchNotFound) {
			return nil, model.ErrNotInMatch
		}
		return nil, err
	}

	switch nickname {
	case match.Player1Nickname:
		match.Player1GameID = gameID
		match.Player1Ready = true
	case match.Player2Nickname:
		match.Player2GameID = gameID
		match.Player2Ready = true
	default:
		return nil, model.ErrNotInMatch
	}

	if match.BothReady() && match.Status == model.MatchSetup {
		now := s.clock.Now()
		match.Status = model.MatchPlaying
		match.StartedAt = &now
		s.logger.Info("match started", slog.String("match_id", string(match.ID)))
	}

	if err := s.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	return match, nil
}

// GetMatch retrieves a match by ID
func (s *Service) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return s.storage.GetMatch(ctx, id)
}

// GetMatchByPlayer retrieves the match a nickname belongs to
func (s *Service) GetMatchByPlayer(ctx context.Context, nickname string) (*model.Match, error) {
	return s.storage.GetMatchByPlayer(ctx, nickname)
}

// IsPlayerInMatch reports whether the nickname belongs to a match
func (s *Service) IsPlayerInMatch(ctx context.Context, nickname string) (bool, error) {
	return s.storage.PlayerInMatch(ctx, nickname)
}

// FinishMatch marks a match as finished. The match record survives
// until it is ended so both players can still read the outcome.
func (s *Service) FinishMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	match, err := s.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	match.Status = model.MatchFinished
	if err := s.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info("match finished", slog.String("match_id", string(match.ID)))
	return match, nil
}

// EndMatch removes a match and frees both players. The games the
// match referenced are left alone; the game store owns them.
func (s *Service) EndMatch(ctx context.Context, id model.MatchID) error {
	if err := s.storage.DeleteMatch(ctx, id); err != nil {
		return err
	}
	s.logger.Info("match ended", slog.String("match_id", string(id)))
	return nil
}

// CancelMatch removes the match the nickname belongs to, freeing both
// players. A no-op if the nickname has no match.
func (s *Service) CancelMatch(ctx context.Context, nickname string) error {
	match, err := s.storage.GetMatchByPlayer(ctx, nickname)
	if err != nil {
		if errors.Is(err, model.ErrMatchNotFound) {
			return nil
		}
		return err
	}

	if err := s.storage.DeleteMatch(ctx, match.ID); err != nil {
		return err
	}
	s.logger.Info("match cancelled",
		slog.String("match_id", string(match.ID)),
		slog.String("nickname", nickname),
	)
	return nil
}

// OpponentGameID returns the game id of the other player in the
// nickname's match, or "" if the opponent has not set a secret yet
func (s *Service) OpponentGameID(ctx context.Context, nickname string) (model.GameID, error) {
	match, err := s.storage.GetMatchByPlayer(ctx, nickname)
	if err != nil {
		return "", err
	}

	switch nickname {
	case match.Player1Nickname:
		return match.Player2GameID, nil
	case match.Player2Nickname:
		return match.Player1GameID, nil
	}
	return "", model.ErrNotInMatch
}
