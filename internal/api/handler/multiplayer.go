package handler

import (
	"encoding/json"
	"net/http"

	"github.com/samber/lo"

	"github.com/mmgame/mastermind-go/internal/api/middleware"
	"github.com/mmgame/mastermind-go/internal/api/request"
	"github.com/mmgame/mastermind-go/internal/api/response"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/services/multiplayer"
)

// MultiplayerHandler handles lobby and match endpoints
type MultiplayerHandler struct {
	controller *multiplayer.Controller
}

// NewMultiplayerHandler creates a new multiplayer handler
func NewMultiplayerHandler(controller *multiplayer.Controller) *MultiplayerHandler {
	return &MultiplayerHandler{controller: controller}
}

// Login handles POST /api/v1/multiplayer/login
func (h *MultiplayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Nickname == "" {
		WriteError(w, NewInvalidRequestError("nickname is required"))
		return
	}

	sess, err := h.controller.Login(r.Context(), req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(sess))
}

// Logout handles POST /api/v1/multiplayer/logout
func (h *MultiplayerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	if err := h.controller.Logout(r.Context(), sess.SessionID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Players handles GET /api/v1/multiplayer/players
func (h *MultiplayerHandler) Players(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	players, err := h.controller.Players(r.Context(), sess.SessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := lo.Map(players, func(p model.PlayerInfo, _ int) response.Player {
		return response.PlayerFromInfo(p)
	})
	response.JSON(w, http.StatusOK, resp)
}

// CheckNickname handles GET /api/v1/multiplayer/check-nickname
func (h *MultiplayerHandler) CheckNickname(w http.ResponseWriter, r *http.Request) {
	nickname := r.URL.Query().Get("nickname")
	if nickname == "" {
		WriteError(w, NewInvalidRequestError("nickname query parameter is required"))
		return
	}

	taken, err := h.controller.IsNicknameTaken(r.Context(), nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NicknameCheck{Nickname: nickname, Taken: taken})
}

// Invite handles POST /api/v1/multiplayer/invite
func (h *MultiplayerHandler) Invite(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ToNickname == "" {
		WriteError(w, NewInvalidRequestError("to_nickname is required"))
		return
	}

	inv, err := h.controller.Invite(r.Context(), sess.SessionID, req.ToNickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.InvitationFromModel(inv))
}

// RespondInvitation handles POST /api/v1/multiplayer/invitation/respond
func (h *MultiplayerHandler) RespondInvitation(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.RespondInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.InvitationID == "" {
		WriteError(w, NewInvalidRequestError("invitation_id is required"))
		return
	}

	inv, err := h.controller.RespondInvitation(r.Context(), sess.SessionID, model.InvitationID(req.InvitationID), req.Accept)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.InvitationFromModel(inv))
}

// CancelInvitation handles POST /api/v1/multiplayer/invitation/cancel
func (h *MultiplayerHandler) CancelInvitation(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.CancelInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.InvitationID == "" {
		WriteError(w, NewInvalidRequestError("invitation_id is required"))
		return
	}

	if err := h.controller.CancelInvitation(r.Context(), sess.SessionID, model.InvitationID(req.InvitationID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// PendingInvitations handles GET /api/v1/multiplayer/invitations
func (h *MultiplayerHandler) PendingInvitations(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	invitations, err := h.controller.PendingInvitations(r.Context(), sess.SessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := lo.Map(invitations, func(inv *model.Invitation, _ int) response.Invitation {
		return response.InvitationFromModel(inv)
	})
	response.JSON(w, http.StatusOK, resp)
}

// SetSecret handles POST /api/v1/multiplayer/game/set-secret
func (h *MultiplayerHandler) SetSecret(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.SetSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Opponent == "" {
		WriteError(w, NewInvalidRequestError("opponent is required"))
		return
	}

	secret, err := model.ParseCodeword(req.Secret)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.controller.SetSecret(r.Context(), sess.SessionID, req.Opponent, secret)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Match handles GET /api/v1/multiplayer/match
func (h *MultiplayerHandler) Match(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	m, err := h.controller.Match(r.Context(), sess.SessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// OpponentGame handles GET /api/v1/multiplayer/match/opponent-game
func (h *MultiplayerHandler) OpponentGame(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	g, err := h.controller.OpponentGame(r.Context(), sess.SessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Guess handles POST /api/v1/multiplayer/match/guess
func (h *MultiplayerHandler) Guess(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	guess, err := model.ParseCodeword(req.Guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.controller.Guess(r.Context(), sess.SessionID, guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// CancelMatch handles POST /api/v1/multiplayer/match/cancel
func (h *MultiplayerHandler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	if err := h.controller.CancelMatch(r.Context(), sess.SessionID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
