// Package sweeper runs the periodic lobby housekeeping: dropping
// players who have gone quiet and expiring stale invitations.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmgame/mastermind-go/internal/events"
	"github.com/mmgame/mastermind-go/internal/services/invitation"
	"github.com/mmgame/mastermind-go/internal/services/session"
)

// DefaultInterval is how often the sweep runs
const DefaultInterval = 2 * time.Minute

// Sweeper periodically removes inactive players and expires stale
// invitations, notifying connected clients when the lobby changes.
type Sweeper struct {
	sessions    *session.Service
	invitations *invitation.Service
	broadcaster *events.Broadcaster
	interval    time.Duration
	logger      *slog.Logger
}

// New creates a Sweeper running at the default interval
func New(
	sessions *session.Service,
	invitations *invitation.Service,
	broadcaster *events.Broadcaster,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		sessions:    sessions,
		invitations: invitations,
		broadcaster: broadcaster,
		interval:    DefaultInterval,
		logger:      logger.With(slog.String("component", "sweeper")),
	}
}

// WithInterval overrides the sweep cadence
func (s *Sweeper) WithInterval(interval time.Duration) *Sweeper {
	s.interval = interval
	return s
}

// Run sweeps on a ticker until the context is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("sweeper started", slog.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		}
	}
}

// Sweep performs one housekeeping pass
func (s *Sweeper) Sweep(ctx context.Context) {
	removed, err := s.sessions.RemoveInactivePlayers(ctx)
	if err != nil {
		s.logger.Error("sweep player removal failed", slog.Any("error", err))
	}

	expired, err := s.invitations.CleanupExpiredInvitations(ctx)
	if err != nil {
		s.logger.Error("sweep invitation cleanup failed", slog.Any("error", err))
	}

	if removed > 0 {
		s.logger.Info("inactive players removed", slog.Int("count", removed))
		if players, err := s.sessions.PlayerList(ctx, ""); err == nil {
			s.broadcaster.BroadcastPlayerList(players)
		}
	}
	if expired > 0 {
		s.logger.Info("stale invitations expired", slog.Int("count", expired))
	}
}
