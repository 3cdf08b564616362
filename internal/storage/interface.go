package storage

import (
	"context"

	"github.com/mmgame/mastermind-go/internal/model"
)

// Storage defines the interface for registry state.
//
// Implementations own both the primary id->entity map and any
// secondary index (nickname->session, nickname->match) as a single
// unit: the combined mutators below are the only way to touch them,
// and the check-and-claim operations (CreateSession, CreateMatch) are
// atomic so that two concurrent claims of the same key cannot both
// succeed.
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	// DeleteGame reports whether a game was present to remove
	DeleteGame(ctx context.Context, id model.GameID) (bool, error)
	CountGames(ctx context.Context) (int, error)

	// Session operations. The nickname index is keyed by the
	// lowercased nickname; uniqueness is case-insensitive.
	CreateSession(ctx context.Context, session *model.PlayerSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.PlayerSession, error)
	GetSessionByNickname(ctx context.Context, nickname string) (*model.PlayerSession, error)
	ListSessions(ctx context.Context) ([]*model.PlayerSession, error)
	SaveSession(ctx context.Context, session *model.PlayerSession) error
	DeleteSession(ctx context.Context, id model.SessionID) error
	NicknameExists(ctx context.Context, nickname string) (bool, error)
	CountSessions(ctx context.Context) (int, error)

	// Invitation operations
	SaveInvitation(ctx context.Context, invitation *model.Invitation) error
	GetInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error)
	ListInvitations(ctx context.Context) ([]*model.Invitation, error)

	// Match operations. The player index is keyed by the exact
	// nickname as registered at login.
	CreateMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	GetMatchByPlayer(ctx context.Context, nickname string) (*model.Match, error)
	SaveMatch(ctx context.Context, match *model.Match) error
	DeleteMatch(ctx context.Context, id model.MatchID) error
	PlayerInMatch(ctx context.Context, nickname string) (bool, error)
}
