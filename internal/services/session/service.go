package session

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mmgame/mastermind-go/internal/dependencies/clock"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/storage"
)

// InactivityThreshold is how long an available player may sit idle
// before the sweep logs them out
const InactivityThreshold = 10 * time.Minute

// Service is the registry of connected lobby players
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new session Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Login registers a player under a unique nickname. Nicknames are
// trimmed and compared case-insensitively; the claim is atomic, so
// two concurrent logins with the same nickname cannot both succeed.
func (s *Service) Login(ctx context.Context, nickname string) (*model.PlayerSession, error) {
	normalized := strings.TrimSpace(nickname)
	now := s.clock.Now()

	session := &model.PlayerSession{
		SessionID:    model.SessionID(uuid.NewString()),
		Nickname:     normalized,
		ConnectedAt:  now,
		LastActivity: now,
		Status:       model.StatusAvailable,
	}

	if err := s.storage.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("player logged in",
		slog.String("session_id", string(session.SessionID)),
		slog.String("nickname", normalized),
	)

	return session, nil
}

// Logout removes a session; a no-op if the session is already gone
func (s *Service) Logout(ctx context.Context, id model.SessionID) error {
	if err := s.storage.DeleteSession(ctx, id); err != nil {
		return err
	}
	s.logger.Info("player logged out", slog.String("session_id", string(id)))
	return nil
}

// GetSession retrieves a session by ID
func (s *Service) GetSession(ctx context.Context, id model.SessionID) (*model.PlayerSession, error) {
	return s.storage.GetSession(ctx, id)
}

// GetSessionByNickname retrieves a session by nickname, case-insensitively
func (s *Service) GetSessionByNickname(ctx context.Context, nickname string) (*model.PlayerSession, error) {
	return s.storage.GetSessionByNickname(ctx, nickname)
}

// IsNicknameTaken reports whether the nickname is registered,
// case-insensitively
func (s *Service) IsNicknameTaken(ctx context.Context, nickname string) (bool, error) {
	return s.storage.NicknameExists(ctx, strings.TrimSpace(nickname))
}

// IsNicknameConnected reports whether a player with this nickname is
// currently logged in
func (s *Service) IsNicknameConnected(ctx context.Context, nickname string) (bool, error) {
	return s.storage.NicknameExists(ctx, nickname)
}

// PlayerList returns all connected players except the excluded
// session, sorted by nickname. Pass "" to exclude nobody.
func (s *Service) PlayerList(ctx context.Context, exclude model.SessionID) ([]model.PlayerInfo, error) {
	sessions, err := s.storage.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	players := lo.FilterMap(sessions, func(session *model.PlayerSession, _ int) (model.PlayerInfo, bool) {
		if exclude != "" && session.SessionID == exclude {
			return model.PlayerInfo{}, false
		}
		return session.Info(), true
	})

	sort.Slice(players, func(i, j int) bool {
		return players[i].Nickname < players[j].Nickname
	})

	return players, nil
}

// UpdatePlayerStatus sets a session's status; a no-op if the session
// is absent
func (s *Service) UpdatePlayerStatus(ctx context.Context, id model.SessionID, status model.PlayerStatus) error {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	session.Status = status
	return s.storage.SaveSession(ctx, session)
}

// UpdatePlayerActivity stamps a session's last-activity time; a no-op
// if the session is absent
func (s *Service) UpdatePlayerActivity(ctx context.Context, id model.SessionID) error {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	session.LastActivity = s.clock.Now()
	return s.storage.SaveSession(ctx, session)
}

// UpdatePlayerActivityByNickname stamps activity for the session
// registered under the nickname, if any
func (s *Service) UpdatePlayerActivityByNickname(ctx context.Context, nickname string) error {
	session, err := s.storage.GetSessionByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	session.LastActivity = s.clock.Now()
	return s.storage.SaveSession(ctx, session)
}

// RemoveInactivePlayers logs out every available player idle past the
// inactivity threshold and returns how many were removed. Players who
// are in a game or away are never swept, whatever their idle time —
// a long think mid-match must not evict anyone.
//
// The sweep iterates a snapshot and acts per entry, so it is safe to
// run concurrently with logins and logouts.
func (s *Service) RemoveInactivePlayers(ctx context.Context) (int, error) {
	sessions, err := s.storage.ListSessions(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.clock.Now().Add(-InactivityThreshold)
	removed := 0

	for _, session := range sessions {
		if session.Status != model.StatusAvailable {
			continue
		}
		if !session.LastActivity.Before(cutoff) {
			continue
		}
		if err := s.storage.DeleteSession(ctx, session.SessionID); err != nil {
			return removed, err
		}
		removed++
		s.logger.Info("inactive player removed",
			slog.String("session_id", string(session.SessionID)),
			slog.String("nickname", session.Nickname),
		)
	}

	return removed, nil
}

// ActivePlayerCount returns the number of connected players, for
// monitoring
func (s *Service) ActivePlayerCount(ctx context.Context) (int, error) {
	return s.storage.CountSessions(ctx)
}
