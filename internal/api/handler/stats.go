package handler

import (
	"net/http"

	"github.com/mmgame/mastermind-go/internal/api/response"
	"github.com/mmgame/mastermind-go/internal/services/game"
	"github.com/mmgame/mastermind-go/internal/services/session"
)

// StatsHandler serves the monitoring counters
type StatsHandler struct {
	games    *game.Service
	sessions *session.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(games *game.Service, sessions *session.Service) *StatsHandler {
	return &StatsHandler{
		games:    games,
		sessions: sessions,
	}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	activeGames, err := h.games.ActiveGameCount(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	activePlayers, err := h.sessions.ActivePlayerCount(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Stats{
		ActiveGames:   activeGames,
		ActivePlayers: activePlayers,
	})
}
