package invitation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mmgame/mastermind-go/internal/dependencies/mocks"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/services/session"
	"github.com/mmgame/mastermind-go/internal/storage/memory"
	"github.com/mmgame/mastermind-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	clock    *mocks.MockClock
	sessions *session.Service
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.sessions = session.New(s.storage, s.clock, testutil.NopLogger())
	s.service = New(s.storage, s.sessions, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) login(nickname string) {
	_, err := s.sessions.Login(s.ctx, nickname)
	s.Require().NoError(err)
}

func (s *ServiceSuite) invite(from, to string) *model.Invitation {
	invitation, err := s.service.CreateInvitation(s.ctx, from, to)
	s.Require().NoError(err)
	return invitation
}

func (s *ServiceSuite) TestCreateInvitation() {
	s.login("alice")
	s.login("bob")

	invitation := s.invite("alice", "bob")

	s.NotEmpty(invitation.ID)
	s.Equal("alice", invitation.FromNickname)
	s.Equal("bob", invitation.ToNickname)
	s.Equal(model.InvitationPending, invitation.Status)
	s.Equal(s.clock.Now(), invitation.CreatedAt)
	s.Nil(invitation.RespondedAt)
}

func (s *ServiceSuite) TestCreateInvitationSenderNotConnected() {
	s.login("bob")

	_, err := s.service.CreateInvitation(s.ctx, "alice", "bob")
	s.ErrorIs(err, model.ErrPlayerNotConnected)
}

func (s *ServiceSuite) TestCreateInvitationRecipientNotConnected() {
	s.login("alice")

	_, err := s.service.CreateInvitation(s.ctx, "alice", "bob")
	s.ErrorIs(err, model.ErrPlayerNotConnected)
}

func (s *ServiceSuite) TestCreateInvitationDuplicatePendingPair() {
	s.login("alice")
	s.login("bob")
	s.invite("alice", "bob")

	_, err := s.service.CreateInvitation(s.ctx, "alice", "bob")
	s.ErrorIs(err, model.ErrInvitationPending)

	// The reverse direction counts as the same pair
	_, err = s.service.CreateInvitation(s.ctx, "bob", "alice")
	s.ErrorIs(err, model.ErrInvitationPending)
}

func (s *ServiceSuite) TestCreateInvitationAllowedAfterResponse() {
	s.login("alice")
	s.login("bob")
	first := s.invite("alice", "bob")

	_, err := s.service.DeclineInvitation(s.ctx, first.ID)
	s.Require().NoError(err)

	s.invite("alice", "bob")
}

func (s *ServiceSuite) TestAcceptInvitation() {
	s.login("alice")
	s.login("bob")
	invitation := s.invite("alice", "bob")

	s.clock.Advance(time.Minute)
	accepted, err := s.service.AcceptInvitation(s.ctx, invitation.ID)
	s.Require().NoError(err)

	s.Equal(model.InvitationAccepted, accepted.Status)
	s.Require().NotNil(accepted.RespondedAt)
	s.Equal(s.clock.Now(), *accepted.RespondedAt)
}

func (s *ServiceSuite) TestDeclineInvitation() {
	s.login("alice")
	s.login("bob")
	invitation := s.invite("alice", "bob")

	declined, err := s.service.DeclineInvitation(s.ctx, invitation.ID)
	s.Require().NoError(err)
	s.Equal(model.InvitationDeclined, declined.Status)
}

func (s *ServiceSuite) TestCancelInvitation() {
	s.login("alice")
	s.login("bob")
	invitation := s.invite("alice", "bob")

	cancelled, err := s.service.CancelInvitation(s.ctx, invitation.ID)
	s.Require().NoError(err)
	s.Equal(model.InvitationCancelled, cancelled.Status)
}

func (s *ServiceSuite) TestRespondToNonPendingInvitation() {
	s.login("alice")
	s.login("bob")
	invitation := s.invite("alice", "bob")

	_, err := s.service.DeclineInvitation(s.ctx, invitation.ID)
	s.Require().NoError(err)

	_, err = s.service.AcceptInvitation(s.ctx, invitation.ID)
	s.ErrorIs(err, model.ErrInvitationNotPending)
}

func (s *ServiceSuite) TestRespondToMissingInvitation() {
	_, err := s.service.AcceptInvitation(s.ctx, "missing")
	s.ErrorIs(err, model.ErrInvitationNotFound)
}

func (s *ServiceSuite) TestPendingInvitationsForPlayer() {
	s.login("alice")
	s.login("bob")
	s.login("carol")
	forBob := s.invite("alice", "bob")
	s.invite("carol", "bob")
	s.invite("bob", "carol")

	pending, err := s.service.PendingInvitationsForPlayer(s.ctx, "bob")
	s.Require().NoError(err)
	s.Len(pending, 2)

	_, err = s.service.DeclineInvitation(s.ctx, forBob.ID)
	s.Require().NoError(err)

	pending, err = s.service.PendingInvitationsForPlayer(s.ctx, "bob")
	s.Require().NoError(err)
	s.Len(pending, 1)
}

func (s *ServiceSuite) TestCancelInvitationsForPlayer() {
	s.login("alice")
	s.login("bob")
	s.login("carol")
	sent := s.invite("alice", "bob")
	received := s.invite("carol", "alice")
	unrelated := s.invite("carol", "bob")

	s.Require().NoError(s.service.CancelInvitationsForPlayer(s.ctx, "alice"))

	for _, id := range []model.InvitationID{sent.ID, received.ID} {
		invitation, err := s.service.GetInvitation(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(model.InvitationCancelled, invitation.Status)
	}

	invitation, err := s.service.GetInvitation(s.ctx, unrelated.ID)
	s.Require().NoError(err)
	s.Equal(model.InvitationPending, invitation.Status)
}

func (s *ServiceSuite) TestCleanupExpiredInvitations() {
	s.login("alice")
	s.login("bob")
	s.login("carol")
	stale := s.invite("alice", "bob")

	s.clock.Advance(ExpiryWindow + time.Second)
	fresh := s.invite("alice", "carol")

	expired, err := s.service.CleanupExpiredInvitations(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, expired)

	invitation, err := s.service.GetInvitation(s.ctx, stale.ID)
	s.Require().NoError(err)
	s.Equal(model.InvitationExpired, invitation.Status)
	s.Require().NotNil(invitation.RespondedAt)

	invitation, err = s.service.GetInvitation(s.ctx, fresh.ID)
	s.Require().NoError(err)
	s.Equal(model.InvitationPending, invitation.Status)
}

func (s *ServiceSuite) TestCleanupUnderExpiryWindow() {
	s.login("alice")
	s.login("bob")
	s.invite("alice", "bob")

	s.clock.Advance(ExpiryWindow - time.Second)

	expired, err := s.service.CleanupExpiredInvitations(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, expired)
}
