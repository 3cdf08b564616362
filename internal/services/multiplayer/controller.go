// Package multiplayer orchestrates the lobby flow: sessions,
// invitations, matches and the games backing them, plus the event
// notifications each step produces.
package multiplayer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmgame/mastermind-go/internal/events"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/services/game"
	"github.com/mmgame/mastermind-go/internal/services/invitation"
	"github.com/mmgame/mastermind-go/internal/services/match"
	"github.com/mmgame/mastermind-go/internal/services/session"
)

// Controller coordinates the multiplayer services. Handlers call the
// controller; the controller calls the services and emits events.
type Controller struct {
	sessions    *session.Service
	invitations *invitation.Service
	matches     *match.Service
	games       *game.Service
	broadcaster *events.Broadcaster
	logger      *slog.Logger
}

// NewController creates a new multiplayer Controller
func NewController(
	sessions *session.Service,
	invitations *invitation.Service,
	matches *match.Service,
	games *game.Service,
	broadcaster *events.Broadcaster,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		sessions:    sessions,
		invitations: invitations,
		matches:     matches,
		games:       games,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Login connects a player under a nickname and announces the updated
// player list
func (c *Controller) Login(ctx context.Context, nickname string) (*model.PlayerSession, error) {
	sess, err := c.sessions.Login(ctx, nickname)
	if err != nil {
		return nil, err
	}
	c.broadcastPlayerList(ctx)
	return sess, nil
}

// Logout disconnects a session, cancelling any invitations and match
// the player was part of
func (c *Controller) Logout(ctx context.Context, id model.SessionID) error {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	if err := c.invitations.CancelInvitationsForPlayer(ctx, sess.Nickname); err != nil {
		c.logger.Warn("logout invitation cleanup failed",
			slog.String("nickname", sess.Nickname),
			slog.Any("error", err))
	}
	if err := c.abandonMatch(ctx, sess.Nickname); err != nil {
		c.logger.Warn("logout match cleanup failed",
			slog.String("nickname", sess.Nickname),
			slog.Any("error", err))
	}

	if err := c.sessions.Logout(ctx, id); err != nil {
		return err
	}
	c.broadcastPlayerList(ctx)
	return nil
}

// Players returns the lobby player list, excluding the caller's own session
func (c *Controller) Players(ctx context.Context, exclude model.SessionID) ([]model.PlayerInfo, error) {
	return c.sessions.PlayerList(ctx, exclude)
}

// IsNicknameTaken reports whether the nickname is already claimed
func (c *Controller) IsNicknameTaken(ctx context.Context, nickname string) (bool, error) {
	return c.sessions.IsNicknameTaken(ctx, nickname)
}

// Invite sends a challenge from the session's player to another player
func (c *Controller) Invite(ctx context.Context, id model.SessionID, toNickname string) (*model.Invitation, error) {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, err := c.invitations.CreateInvitation(ctx, sess.Nickname, toNickname)
	if err != nil {
		return nil, err
	}

	c.broadcaster.NotifyInvitationReceived(inv)
	return inv, nil
}

// RespondInvitation accepts or declines an invitation on behalf of
// its recipient and notifies the sender
func (c *Controller) RespondInvitation(ctx context.Context, id model.SessionID, invID model.InvitationID, accept bool) (*model.Invitation, error) {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, err := c.invitations.GetInvitation(ctx, invID)
	if err != nil {
		return nil, err
	}
	if inv.ToNickname != sess.Nickname {
		return nil, model.ErrInvitationNotFound
	}

	if accept {
		inv, err = c.invitations.AcceptInvitation(ctx, invID)
	} else {
		inv, err = c.invitations.DeclineInvitation(ctx, invID)
	}
	if err != nil {
		return nil, err
	}

	c.broadcaster.NotifyInvitationResponded(inv)
	return inv, nil
}

// CancelInvitation withdraws a pending invitation the session's
// player sent and notifies the recipient
func (c *Controller) CancelInvitation(ctx context.Context, id model.SessionID, invID model.InvitationID) error {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		return err
	}

	inv, err := c.invitations.GetInvitation(ctx, invID)
	if err != nil {
		return err
	}
	if inv.FromNickname != sess.Nickname {
		return model.ErrInvitationNotFound
	}

	inv, err = c.invitations.CancelInvitation(ctx, invID)
	if err != nil {
		return err
	}

	c.broadcaster.NotifyInvitationCancelled(inv)
	return nil
}

// PendingInvitations returns invitations awaiting the session's
// player's response
func (c *Controller) PendingInvitations(ctx context.Context, id model.SessionID) ([]*model.Invitation, error) {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.invitations.PendingInvitationsForPlayer(ctx, sess.Nickname)
}

// SetSecret stores the player's secret for a match against the named
// opponent. The first player to set a secret creates the match; when
// the second secret lands the match starts and both players move to
// in-game status.
func (c *Controller) SetSecret(ctx context.Context, id model.SessionID, opponent string, secret model.Codeword) (*model.Match, error) {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	m, err := c.matches.GetMatchByPlayer(ctx, sess.Nickname)
	if err == nil && m.Status == model.MatchFinished {
		// Setting a secret after a finished match starts a fresh one
		if err = c.matches.EndMatch(ctx, m.ID); err != nil {
			return nil, err
		}
		err = model.ErrMatchNotFound
	}
	switch {
	case err == nil:
		if !m.HasPlayer(opponent) {
			return nil, model.ErrAlreadyInMatch
		}
	case errors.Is(err, model.ErrMatchNotFound):
		connected, cerr := c.sessions.IsNicknameConnected(ctx, opponent)
		if cerr != nil {
			return nil, cerr
		}
		if !connected {
			return nil, model.ErrPlayerNotConnected
		}
		m, err = c.matches.CreateMatch(ctx, sess.Nickname, opponent)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	g, err := c.games.CreateGameWithSecret(ctx, len(secret), secret)
	if err != nil {
		return nil, err
	}

	m, err = c.matches.SetPlayerGame(ctx, sess.Nickname, g.ID)
	if err != nil {
		return nil, err
	}

	if m.Status == model.MatchPlaying {
		c.setMatchStatus(ctx, m, model.StatusInGame)
		c.broadcaster.NotifyMatchStarted(m)
		c.broadcastPlayerList(ctx)
	}

	return m, nil
}

// Match returns the session's player's current match
func (c *Controller) Match(ctx context.Context, id model.SessionID) (*model.Match, error) {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.matches.GetMatchByPlayer(ctx, sess.Nickname)
}

// OpponentGame returns the game holding the opponent's secret, the
// one the session's player guesses against
func (c *Controller) OpponentGame(ctx context.Context, id model.SessionID) (*model.Game, error) {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	gameID, err := c.matches.OpponentGameID(ctx, sess.Nickname)
	if err != nil {
		return nil, err
	}
	if gameID == "" {
		return nil, model.ErrGameNotFound
	}
	return c.games.GetGame(ctx, gameID)
}

// Guess submits a guess against the opponent's secret. The opponent
// is told about the guess; a winning guess finishes the match.
func (c *Controller) Guess(ctx context.Context, id model.SessionID, guess model.Codeword) (*model.Game, error) {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	m, err := c.matches.GetMatchByPlayer(ctx, sess.Nickname)
	if err != nil {
		return nil, err
	}
	if m.Status != model.MatchPlaying {
		return nil, model.ErrGameNotFound
	}

	gameID, err := c.matches.OpponentGameID(ctx, sess.Nickname)
	if err != nil {
		return nil, err
	}

	g, err := c.games.SubmitGuess(ctx, gameID, guess)
	if err != nil {
		return nil, err
	}

	opponent := m.OpponentOf(sess.Nickname)
	if attempt := g.LastAttempt(); attempt != nil {
		c.broadcaster.NotifyOpponentGuess(opponent, sess.Nickname, attempt.Feedback, g.Won)
	}

	if g.Won {
		m, err = c.matches.FinishMatch(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		c.setMatchStatus(ctx, m, model.StatusAvailable)
		c.broadcaster.NotifyMatchEnded(m)
		c.broadcastPlayerList(ctx)
	}

	return g, nil
}

// CancelMatch abandons the session's player's match, freeing both players
func (c *Controller) CancelMatch(ctx context.Context, id model.SessionID) error {
	sess, err := c.sessions.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if err := c.abandonMatch(ctx, sess.Nickname); err != nil {
		return err
	}
	c.broadcastPlayerList(ctx)
	return nil
}

// Touch records activity for a session. Unknown sessions are ignored.
func (c *Controller) Touch(ctx context.Context, id model.SessionID) {
	if err := c.sessions.UpdatePlayerActivity(ctx, id); err != nil {
		c.logger.Warn("activity update failed",
			slog.String("session_id", string(id)),
			slog.Any("error", err))
	}
}

// GetSession resolves a session by ID
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.PlayerSession, error) {
	return c.sessions.GetSession(ctx, id)
}

// abandonMatch tears down the nickname's match, if any, restoring
// both players to available
func (c *Controller) abandonMatch(ctx context.Context, nickname string) error {
	m, err := c.matches.GetMatchByPlayer(ctx, nickname)
	if err != nil {
		if errors.Is(err, model.ErrMatchNotFound) {
			return nil
		}
		return err
	}

	if err := c.matches.EndMatch(ctx, m.ID); err != nil {
		return err
	}
	c.setMatchStatus(ctx, m, model.StatusAvailable)
	c.broadcaster.NotifyMatchEnded(m)
	return nil
}

// setMatchStatus moves both match players to the given lobby status
func (c *Controller) setMatchStatus(ctx context.Context, m *model.Match, status model.PlayerStatus) {
	for _, nickname := range []string{m.Player1Nickname, m.Player2Nickname} {
		sess, err := c.sessions.GetSessionByNickname(ctx, nickname)
		if err != nil {
			continue
		}
		if err := c.sessions.UpdatePlayerStatus(ctx, sess.SessionID, status); err != nil {
			c.logger.Warn("status update failed",
				slog.String("nickname", nickname),
				slog.Any("error", err))
		}
	}
}

func (c *Controller) broadcastPlayerList(ctx context.Context) {
	players, err := c.sessions.PlayerList(ctx, "")
	if err != nil {
		c.logger.Warn("player list broadcast failed", slog.Any("error", err))
		return
	}
	c.broadcaster.BroadcastPlayerList(players)
}
