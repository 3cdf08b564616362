package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmgame/mastermind-go/internal/api/request"
	"github.com/mmgame/mastermind-go/internal/api/response"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/services/game"
	"github.com/mmgame/mastermind-go/internal/services/logic"
)

// GameHandler handles single-player game endpoints
type GameHandler struct {
	games *game.Service
	logic *logic.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(games *game.Service, logic *logic.Service) *GameHandler {
	return &GameHandler{
		games: games,
		logic: logic,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
	}

	slotCount := req.SlotCount
	if slotCount == 0 {
		slotCount = model.DefaultSlotCount
	}

	var g *model.Game
	var err error
	if len(req.Secret) > 0 {
		var secret model.Codeword
		secret, err = model.ParseCodeword(req.Secret)
		if err != nil {
			WriteError(w, err)
			return
		}
		g, err = h.games.CreateGameWithSecret(r.Context(), len(secret), secret)
	} else {
		g, err = h.games.CreateGame(r.Context(), slotCount)
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.games.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Guess handles POST /api/v1/games/{id}/guesses
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

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

	g, err := h.games.SubmitGuess(r.Context(), id, guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Solution handles GET /api/v1/games/{id}/solution
func (h *GameHandler) Solution(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	solution, err := h.games.Solution(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Solution{Solution: solution.Strings()})
}

// Suggest handles GET /api/v1/games/{id}/suggest
func (h *GameHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	guess, err := h.games.SuggestGuess(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.Suggestion{Exhausted: guess == nil}
	if guess != nil {
		resp.Guess = guess.Strings()
	}
	response.JSON(w, http.StatusOK, resp)
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.games.ResetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	found, err := h.games.DeleteGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !found {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	response.NoContent(w)
}

// Colors handles GET /api/v1/games/colors
func (h *GameHandler) Colors(w http.ResponseWriter, r *http.Request) {
	colors := h.logic.AvailableColors()
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	response.JSON(w, http.StatusOK, response.ColorList{Colors: names})
}
