package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmgame/mastermind-go/internal/api/handler"
	"github.com/mmgame/mastermind-go/internal/api/middleware"
	"github.com/mmgame/mastermind-go/internal/events"
	"github.com/mmgame/mastermind-go/internal/services/game"
	"github.com/mmgame/mastermind-go/internal/services/logic"
	"github.com/mmgame/mastermind-go/internal/services/multiplayer"
	"github.com/mmgame/mastermind-go/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger                *slog.Logger
	GameService           *game.Service
	LogicService          *logic.Service
	SessionService        *session.Service
	MultiplayerController *multiplayer.Controller
	Hub                   *events.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameService, cfg.LogicService)
	multiplayerHandler := handler.NewMultiplayerHandler(cfg.MultiplayerController)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)
	statsHandler := handler.NewStatsHandler(cfg.GameService, cfg.SessionService)

	sessionMiddleware := middleware.Session(cfg.MultiplayerController)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Single-player game routes (no session required)
	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/colors", gameHandler.Colors).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/guesses", gameHandler.Guess).Methods(http.MethodPost)
	games.HandleFunc("/{id}/solution", gameHandler.Solution).Methods(http.MethodGet)
	games.HandleFunc("/{id}/suggest", gameHandler.Suggest).Methods(http.MethodGet)
	games.HandleFunc("/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)

	// Multiplayer routes. Login and nickname checks happen before a
	// session exists; everything else requires one.
	mp := api.PathPrefix("/multiplayer").Subrouter()
	mp.HandleFunc("/login", multiplayerHandler.Login).Methods(http.MethodPost)
	mp.HandleFunc("/check-nickname", multiplayerHandler.CheckNickname).Methods(http.MethodGet)

	mpSession := api.PathPrefix("/multiplayer").Subrouter()
	mpSession.Use(sessionMiddleware)
	mpSession.HandleFunc("/logout", multiplayerHandler.Logout).Methods(http.MethodPost)
	mpSession.HandleFunc("/players", multiplayerHandler.Players).Methods(http.MethodGet)
	mpSession.HandleFunc("/invite", multiplayerHandler.Invite).Methods(http.MethodPost)
	mpSession.HandleFunc("/invitations", multiplayerHandler.PendingInvitations).Methods(http.MethodGet)
	mpSession.HandleFunc("/invitation/respond", multiplayerHandler.RespondInvitation).Methods(http.MethodPost)
	mpSession.HandleFunc("/invitation/cancel", multiplayerHandler.CancelInvitation).Methods(http.MethodPost)
	mpSession.HandleFunc("/game/set-secret", multiplayerHandler.SetSecret).Methods(http.MethodPost)
	mpSession.HandleFunc("/match", multiplayerHandler.Match).Methods(http.MethodGet)
	mpSession.HandleFunc("/match/opponent-game", multiplayerHandler.OpponentGame).Methods(http.MethodGet)
	mpSession.HandleFunc("/match/guess", multiplayerHandler.Guess).Methods(http.MethodPost)
	mpSession.HandleFunc("/match/cancel", multiplayerHandler.CancelMatch).Methods(http.MethodPost)
	mpSession.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health and monitoring (no session)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/stats", statsHandler.Get).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
