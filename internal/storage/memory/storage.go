package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// All state is process-local and lost on restart.
type Storage struct {
	mu sync.RWMutex

	games         map[model.GameID]*model.Game
	sessions      map[model.SessionID]*model.PlayerSession
	nicknameIndex map[string]model.SessionID // lowercased nickname -> session
	invitations   map[model.InvitationID]*model.Invitation
	matches       map[model.MatchID]*model.Match
	playerMatches map[string]model.MatchID // nickname -> match
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:         make(map[model.GameID]*model.Game),
		sessions:      make(map[model.SessionID]*model.PlayerSession),
		nicknameIndex: make(map[string]model.SessionID),
		invitations:   make(map[model.InvitationID]*model.Invitation),
		matches:       make(map[model.MatchID]*model.Match),
		playerMatches: make(map[string]model.MatchID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.games[id]
	delete(s.games, id)
	return ok, nil
}

func (s *Storage) CountGames(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games), nil
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.PlayerSession) error {
	key := strings.ToLower(session.Nickname)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.nicknameIndex[key]; taken {
		return model.ErrNicknameTaken
	}
	s.sessions[session.SessionID] = session
	s.nicknameIndex[key] = session.SessionID
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.PlayerSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) GetSessionByNickname(ctx context.Context, nickname string) (*model.PlayerSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nicknameIndex[strings.ToLower(nickname)]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.PlayerSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.PlayerSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out, nil
}

func (s *Storage) SaveSession(ctx context.Context, session *model.PlayerSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session
	return nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	delete(s.sessions, id)
	delete(s.nicknameIndex, strings.ToLower(session.Nickname))
	return nil
}

func (s *Storage) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nicknameIndex[strings.ToLower(nickname)]
	return ok, nil
}

func (s *Storage) CountSessions(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

// Invitation operations

func (s *Storage) SaveInvitation(ctx context.Context, invitation *model.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invitations[invitation.ID] = invitation
	return nil
}

func (s *Storage) GetInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	invitation, ok := s.invitations[id]
	if !ok {
		return nil, model.ErrInvitationNotFound
	}
	return invitation, nil
}

func (s *Storage) ListInvitations(ctx context.Context) ([]*model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Invitation, 0, len(s.invitations))
	for _, invitation := range s.invitations {
		out = append(out, invitation)
	}
	return out, nil
}

// Match operations

func (s *Storage) CreateMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.playerMatches[match.Player1Nickname]; busy {
		return model.ErrAlreadyInMatch
	}
	if _, busy := s.playerMatches[match.Player2Nickname]; busy {
		return model.ErrAlreadyInMatch
	}
	s.matches[match.ID] = match
	s.playerMatches[match.Player1Nickname] = match.ID
	s.playerMatches[match.Player2Nickname] = match.ID
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) GetMatchByPlayer(ctx context.Context, nickname string) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.playerMatches[nickname]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = match
	return nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return nil
	}
	delete(s.matches, id)
	delete(s.playerMatches, match.Player1Nickname)
	delete(s.playerMatches, match.Player2Nickname)
	return nil
}

func (s *Storage) PlayerInMatch(ctx context.Context, nickname string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.playerMatches[nickname]
	return ok, nil
}
