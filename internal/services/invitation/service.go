package invitation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mmgame/mastermind-go/internal/dependencies/clock"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/services/session"
	"github.com/mmgame/mastermind-go/internal/storage"
)

// ExpiryWindow is how long an invitation stays pending before the
// sweep marks it expired
const ExpiryWindow = 5 * time.Minute

// Service is the registry of challenge invitations between lobby
// players
type Service struct {
	storage  storage.Storage
	sessions *session.Service
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new invitation Service
func New(storage storage.Storage, sessions *session.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		sessions: sessions,
		clock:    clock,
		logger:   logger,
	}
}

// CreateInvitation opens a pending invitation from one player to
// another. Both must be connected, and at most one pending invitation
// may exist between any unordered pair of nicknames.
func (s *Service) CreateInvitation(ctx context.Context, fromNickname, toNickname string) (*model.Invitation, error) {
	connected, err := s.sessions.IsNicknameConnected(ctx, fromNickname)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, model.ErrPlayerNotConnected
	}

	connected, err = s.sessions.IsNicknameConnected(ctx, toNickname)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, model.ErrPlayerNotConnected
	}

	existing, err := s.storage.ListInvitations(ctx)
	if err != nil {
		return nil, err
	}
	pending := lo.ContainsBy(existing, func(inv *model.Invitation) bool {
		return inv.IsPending() && inv.IsBetween(fromNickname, toNickname)
	})
	if pending {
		return nil, model.ErrInvitationPending
	}

	invitation := &model.Invitation{
		ID:           model.InvitationID(uuid.NewString()),
		FromNickname: fromNickname,
		ToNickname:   toNickname,
		Status:       model.InvitationPending,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SaveInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	s.logger.Info("invitation created",
		slog.String("invitation_id", string(invitation.ID)),
		slog.String("from", fromNickname),
		slog.String("to", toNickname),
	)

	return invitation, nil
}

// AcceptInvitation transitions a pending invitation to accepted
func (s *Service) AcceptInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error) {
	return s.respond(ctx, id, model.InvitationAccepted)
}

// DeclineInvitation transitions a pending invitation to declined
func (s *Service) DeclineInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error) {
	return s.respond(ctx, id, model.InvitationDeclined)
}

// CancelInvitation withdraws a single pending invitation
func (s *Service) CancelInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error) {
	return s.respond(ctx, id, model.InvitationCancelled)
}

func (s *Service) respond(ctx context.Context, id model.InvitationID, status model.InvitationStatus) (*model.Invitation, error) {
	invitation, err := s.storage.GetInvitation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invitation.IsPending() {
		return nil, model.ErrInvitationNotPending
	}

	now := s.clock.Now()
	invitation.Status = status
	invitation.RespondedAt = &now

	if err := s.storage.SaveInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	s.logger.Info("invitation responded",
		slog.String("invitation_id", string(id)),
		slog.String("status", string(status)),
	)

	return invitation, nil
}

// GetInvitation retrieves an invitation by ID
func (s *Service) GetInvitation(ctx context.Context, id model.InvitationID) (*model.Invitation, error) {
	return s.storage.GetInvitation(ctx, id)
}

// PendingInvitationsForPlayer returns the pending invitations
// addressed to the nickname
func (s *Service) PendingInvitationsForPlayer(ctx context.Context, nickname string) ([]*model.Invitation, error) {
	invitations, err := s.storage.ListInvitations(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(invitations, func(inv *model.Invitation, _ int) bool {
		return inv.IsPending() && inv.ToNickname == nickname
	}), nil
}

// CancelInvitationsForPlayer cancels every pending invitation the
// nickname is party to, as sender or recipient. Silent when there is
// nothing to cancel.
func (s *Service) CancelInvitationsForPlayer(ctx context.Context, nickname string) error {
	invitations, err := s.storage.ListInvitations(ctx)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	for _, invitation := range invitations {
		if !invitation.IsPending() || !invitation.Involves(nickname) {
			continue
		}
		invitation.Status = model.InvitationCancelled
		invitation.RespondedAt = &now
		if err := s.storage.SaveInvitation(ctx, invitation); err != nil {
			return err
		}
		s.logger.Info("invitation cancelled",
			slog.String("invitation_id", string(invitation.ID)),
			slog.String("nickname", nickname),
		)
	}
	return nil
}

// CleanupExpiredInvitations expires every pending invitation older
// than the expiry window and returns how many were expired. Iterates
// a snapshot, so it is safe concurrently with foreground operations.
func (s *Service) CleanupExpiredInvitations(ctx context.Context) (int, error) {
	invitations, err := s.storage.ListInvitations(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	cutoff := now.Add(-ExpiryWindow)
	expired := 0

	for _, invitation := range invitations {
		if !invitation.IsPending() || !invitation.CreatedAt.Before(cutoff) {
			continue
		}
		invitation.Status = model.InvitationExpired
		invitation.RespondedAt = &now
		if err := s.storage.SaveInvitation(ctx, invitation); err != nil {
			return expired, err
		}
		expired++
		s.logger.Info("invitation expired",
			slog.String("invitation_id", string(invitation.ID)),
		)
	}

	return expired, nil
}
