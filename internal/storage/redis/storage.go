package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// It lets multiple server instances share one lobby; the in-memory
// backend remains the default deployment.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) (bool, error) {
	removed, err := s.client.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	if err := s.client.SRem(ctx, gamesIndexKey(), string(id)).Err(); err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (s *Storage) CountGames(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, gamesIndexKey()).Result()
	return int(n), err
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.PlayerSession) error {
	// Claim the nickname first; SETNX makes the claim atomic across
	// concurrent logins.
	claimed, err := s.client.SetNX(ctx, nicknameIndexKey(session.Nickname), string(session.SessionID), s.cfg.SessionTTL).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrNicknameTaken
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.SessionID), data, s.cfg.SessionTTL)
	pipe.SAdd(ctx, sessionsIndexKey(), string(session.SessionID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.PlayerSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.PlayerSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) GetSessionByNickname(ctx context.Context, nickname string) (*model.PlayerSession, error) {
	id, err := s.client.Get(ctx, nicknameIndexKey(nickname)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	return s.GetSession(ctx, model.SessionID(id))
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.PlayerSession, error) {
	ids, err := s.client.SMembers(ctx, sessionsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.PlayerSession, 0, len(ids))
	for _, id := range ids {
		session, err := s.GetSession(ctx, model.SessionID(id))
		if errors.Is(err, model.ErrSessionNotFound) {
			// Session key expired; index member is stale
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	return out, nil
}

func (s *Storage) SaveSession(ctx context.Context, session *model.PlayerSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.SessionID), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	session, err := s.GetSession(ctx, id)
	if errors.Is(err, model.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.Del(ctx, nicknameIndexKey(session.Nickname))
	pipe.SRem(ctx, sessionsIndexKey(), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	n, err := s.client.Exists(ctx, nicknameIndexKey(nickname)).Result()
	return n > 0, err
}

func (s *Storage) CountSessions(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, sessionsIndexKey()).Result()
	return int(n), err
}

// Invitation operations

func (s *Storage) SaveInvitation(ctx context.Context, invitation *model.Invitation) error {
	data, err := json.Marshal(invitation)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, invitationKey(invitation.ID), data, s.cfg.InvitationTTL)
	pipe.SAdd(ctx, invitationsIndexKey(), string(invitation.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error) {
	data, err := s.client.Get(ctx, invitationKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrInvitationNotFound
		}
		return nil, err
	}

	var invitation model.Invitation
	if err := json.Unmarshal(data, &invitation); err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (s *Storage) ListInvitations(ctx context.Context) ([]*model.Invitation, error) {
	ids, err := s.client.SMembers(ctx, invitationsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.Invitation, 0, len(ids))
	for _, id := range ids {
		invitation, err := s.GetInvitation(ctx, model.InvitationID(id))
		if errors.Is(err, model.ErrInvitationNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, invitation)
	}
	return out, nil
}

// Match operations

func (s *Storage) CreateMatch(ctx context.Context, match *model.Match) error {
	// Claim both players; roll back the first claim if the second fails
	claimed, err := s.client.SetNX(ctx, playerMatchIndexKey(match.Player1Nickname), string(match.ID), s.cfg.MatchTTL).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrAlreadyInMatch
	}

	claimed, err = s.client.SetNX(ctx, playerMatchIndexKey(match.Player2Nickname), string(match.ID), s.cfg.MatchTTL).Result()
	if err != nil {
		return err
	}
	if !claimed {
		_ = s.client.Del(ctx, playerMatchIndexKey(match.Player1Nickname)).Err()
		return model.ErrAlreadyInMatch
	}

	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, matchKey(match.ID), data, s.cfg.MatchTTL).Err()
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) GetMatchByPlayer(ctx context.Context, nickname string) (*model.Match, error) {
	id, err := s.client.Get(ctx, playerMatchIndexKey(nickname)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}
	return s.GetMatch(ctx, model.MatchID(id))
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, matchKey(match.ID), data, s.cfg.MatchTTL).Err()
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	match, err := s.GetMatch(ctx, id)
	if errors.Is(err, model.ErrMatchNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, matchKey(id))
	pipe.Del(ctx, playerMatchIndexKey(match.Player1Nickname))
	pipe.Del(ctx, playerMatchIndexKey(match.Player2Nickname))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) PlayerInMatch(ctx context.Context, nickname string) (bool, error) {
	n, err := s.client.Exists(ctx, playerMatchIndexKey(nickname)).Result()
	return n > 0, err
}
