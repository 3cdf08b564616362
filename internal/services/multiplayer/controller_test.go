package multiplayer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mmgame/mastermind-go/internal/dependencies/mocks"
	"github.com/mmgame/mastermind-go/internal/events"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/services/game"
	"github.com/mmgame/mastermind-go/internal/services/invitation"
	"github.com/mmgame/mastermind-go/internal/services/logic"
	"github.com/mmgame/mastermind-go/internal/services/match"
	"github.com/mmgame/mastermind-go/internal/services/session"
	"github.com/mmgame/mastermind-go/internal/services/solver"
	"github.com/mmgame/mastermind-go/internal/storage/memory"
	"github.com/mmgame/mastermind-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	clock      *mocks.MockClock
	sessions   *session.Service
	matches    *match.Service
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	storage := memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	random := mocks.NewMockRandom()

	logicService := logic.New(random)
	solverService := solver.New(logicService)
	games := game.New(storage, logicService, solverService, s.clock, logger)
	s.sessions = session.New(storage, s.clock, logger)
	invitations := invitation.New(storage, s.sessions, s.clock, logger)
	s.matches = match.New(storage, s.clock, logger)
	broadcaster := events.NewBroadcaster(events.NewHub(logger), logger)

	s.controller = NewController(s.sessions, invitations, s.matches, games, broadcaster, logger)
	s.ctx = context.Background()
}

func (s *ControllerSuite) login(nickname string) *model.PlayerSession {
	sess, err := s.controller.Login(s.ctx, nickname)
	s.Require().NoError(err)
	return sess
}

// startMatch logs in alice and bob and plays through invitation and
// secret setting until the match is live. Alice guesses bob's secret
// (all blue) and bob guesses alice's (all red).
func (s *ControllerSuite) startMatch() (alice, bob *model.PlayerSession) {
	alice = s.login("alice")
	bob = s.login("bob")

	inv, err := s.controller.Invite(s.ctx, alice.SessionID, "bob")
	s.Require().NoError(err)
	_, err = s.controller.RespondInvitation(s.ctx, bob.SessionID, inv.ID, true)
	s.Require().NoError(err)

	_, err = s.controller.SetSecret(s.ctx, alice.SessionID, "bob", allOf(model.ColorRed))
	s.Require().NoError(err)
	_, err = s.controller.SetSecret(s.ctx, bob.SessionID, "alice", allOf(model.ColorBlue))
	s.Require().NoError(err)
	return alice, bob
}

func allOf(color model.Color) model.Codeword {
	return model.Codeword{color, color, color, color}
}

func (s *ControllerSuite) TestLoginAndPlayers() {
	alice := s.login("alice")
	s.login("bob")

	players, err := s.controller.Players(s.ctx, alice.SessionID)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("bob", players[0].Nickname)
	s.Equal(model.StatusAvailable, players[0].Status)
}

func (s *ControllerSuite) TestInviteAndAccept() {
	alice := s.login("alice")
	bob := s.login("bob")

	inv, err := s.controller.Invite(s.ctx, alice.SessionID, "bob")
	s.Require().NoError(err)
	s.Equal("alice", inv.FromNickname)
	s.Equal("bob", inv.ToNickname)

	pending, err := s.controller.PendingInvitations(s.ctx, bob.SessionID)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)

	responded, err := s.controller.RespondInvitation(s.ctx, bob.SessionID, inv.ID, true)
	s.Require().NoError(err)
	s.Equal(model.InvitationAccepted, responded.Status)
}

func (s *ControllerSuite) TestRespondInvitationOnlyByRecipient() {
	alice := s.login("alice")
	s.login("bob")

	inv, err := s.controller.Invite(s.ctx, alice.SessionID, "bob")
	s.Require().NoError(err)

	_, err = s.controller.RespondInvitation(s.ctx, alice.SessionID, inv.ID, true)
	s.ErrorIs(err, model.ErrInvitationNotFound)
}

func (s *ControllerSuite) TestCancelInvitationOnlyBySender() {
	alice := s.login("alice")
	bob := s.login("bob")

	inv, err := s.controller.Invite(s.ctx, alice.SessionID, "bob")
	s.Require().NoError(err)

	err = s.controller.CancelInvitation(s.ctx, bob.SessionID, inv.ID)
	s.ErrorIs(err, model.ErrInvitationNotFound)

	s.NoError(s.controller.CancelInvitation(s.ctx, alice.SessionID, inv.ID))
}

func (s *ControllerSuite) TestSetSecretCreatesMatchAndStartsOnSecond() {
	alice := s.login("alice")
	bob := s.login("bob")

	m, err := s.controller.SetSecret(s.ctx, alice.SessionID, "bob", allOf(model.ColorRed))
	s.Require().NoError(err)
	s.Equal(model.MatchSetup, m.Status)

	m, err = s.controller.SetSecret(s.ctx, bob.SessionID, "alice", allOf(model.ColorBlue))
	s.Require().NoError(err)
	s.Equal(model.MatchPlaying, m.Status)

	for _, id := range []model.SessionID{alice.SessionID, bob.SessionID} {
		sess, err := s.sessions.GetSession(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(model.StatusInGame, sess.Status)
	}
}

func (s *ControllerSuite) TestSetSecretOpponentNotConnected() {
	alice := s.login("alice")

	_, err := s.controller.SetSecret(s.ctx, alice.SessionID, "bob", allOf(model.ColorRed))
	s.ErrorIs(err, model.ErrPlayerNotConnected)
}

func (s *ControllerSuite) TestSetSecretWhileMatchedElsewhere() {
	alice, _ := s.startMatch()
	s.login("carol")

	_, err := s.controller.SetSecret(s.ctx, alice.SessionID, "carol", allOf(model.ColorRed))
	s.ErrorIs(err, model.ErrAlreadyInMatch)
}

func (s *ControllerSuite) TestOpponentGameHidesNothingButIsTheRightBoard() {
	alice, _ := s.startMatch()

	g, err := s.controller.OpponentGame(s.ctx, alice.SessionID)
	s.Require().NoError(err)
	s.Equal(allOf(model.ColorBlue), g.Secret)
}

func (s *ControllerSuite) TestOpponentGameBeforeSecretSet() {
	alice := s.login("alice")
	s.login("bob")

	_, err := s.controller.SetSecret(s.ctx, alice.SessionID, "bob", allOf(model.ColorRed))
	s.Require().NoError(err)

	_, err = s.controller.OpponentGame(s.ctx, alice.SessionID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestGuessBeforeMatchPlaying() {
	alice := s.login("alice")
	s.login("bob")

	_, err := s.controller.SetSecret(s.ctx, alice.SessionID, "bob", allOf(model.ColorRed))
	s.Require().NoError(err)

	_, err = s.controller.Guess(s.ctx, alice.SessionID, allOf(model.ColorBlue))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestGuessScoresAgainstOpponentSecret() {
	alice, _ := s.startMatch()

	g, err := s.controller.Guess(s.ctx, alice.SessionID,
		model.Codeword{model.ColorBlue, model.ColorRed, model.ColorRed, model.ColorRed})
	s.Require().NoError(err)

	s.Require().Len(g.History, 1)
	s.Equal(model.Feedback{Exact: 1, Partial: 0}, g.History[0].Feedback)
	s.False(g.Won)
}

func (s *ControllerSuite) TestWinningGuessFinishesMatch() {
	alice, bob := s.startMatch()

	g, err := s.controller.Guess(s.ctx, alice.SessionID, allOf(model.ColorBlue))
	s.Require().NoError(err)
	s.True(g.Won)

	m, err := s.controller.Match(s.ctx, alice.SessionID)
	s.Require().NoError(err)
	s.Equal(model.MatchFinished, m.Status)

	for _, id := range []model.SessionID{alice.SessionID, bob.SessionID} {
		sess, err := s.sessions.GetSession(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(model.StatusAvailable, sess.Status)
	}

	// No further guesses on a finished match
	_, err = s.controller.Guess(s.ctx, bob.SessionID, allOf(model.ColorRed))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestRematchAfterFinish() {
	alice, bob := s.startMatch()

	_, err := s.controller.Guess(s.ctx, alice.SessionID, allOf(model.ColorBlue))
	s.Require().NoError(err)

	// A fresh secret after the finish starts a new match
	m, err := s.controller.SetSecret(s.ctx, alice.SessionID, "bob", allOf(model.ColorGreen))
	s.Require().NoError(err)
	s.Equal(model.MatchSetup, m.Status)

	m, err = s.controller.SetSecret(s.ctx, bob.SessionID, "alice", allOf(model.ColorYellow))
	s.Require().NoError(err)
	s.Equal(model.MatchPlaying, m.Status)
}

func (s *ControllerSuite) TestCancelMatchFreesBothPlayers() {
	alice, bob := s.startMatch()

	s.Require().NoError(s.controller.CancelMatch(s.ctx, alice.SessionID))

	_, err := s.controller.Match(s.ctx, bob.SessionID)
	s.ErrorIs(err, model.ErrMatchNotFound)

	sess, err := s.sessions.GetSession(s.ctx, bob.SessionID)
	s.Require().NoError(err)
	s.Equal(model.StatusAvailable, sess.Status)
}

func (s *ControllerSuite) TestLogoutCleansUpInvitationsAndMatch() {
	alice, bob := s.startMatch()
	carol := s.login("carol")

	_, err := s.controller.Invite(s.ctx, carol.SessionID, "alice")
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Logout(s.ctx, alice.SessionID))

	// The match is gone and bob is free again
	_, err = s.controller.Match(s.ctx, bob.SessionID)
	s.ErrorIs(err, model.ErrMatchNotFound)

	// Alice's session no longer exists
	pending, err := s.controller.PendingInvitations(s.ctx, alice.SessionID)
	s.ErrorIs(err, model.ErrSessionNotFound)
	s.Nil(pending)

	// Nickname is free to reuse
	s.login("Alice")
}

func (s *ControllerSuite) TestLogoutUnknownSessionIsNoOp() {
	s.NoError(s.controller.Logout(s.ctx, "missing"))
}
