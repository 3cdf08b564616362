package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmgame/mastermind-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidColor         = "INVALID_COLOR"
	CodeInvalidGuess         = "INVALID_GUESS"
	CodeLengthMismatch       = "LENGTH_MISMATCH"
	CodeInvalidSlotCount     = "INVALID_SLOT_COUNT"
	CodeGameNotFound         = "GAME_NOT_FOUND"
	CodeGameOver             = "GAME_OVER"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeNicknameTaken        = "NICKNAME_TAKEN"
	CodePlayerNotConnected   = "PLAYER_NOT_CONNECTED"
	CodeInvitationNotFound   = "INVITATION_NOT_FOUND"
	CodeInvitationNotPending = "INVITATION_NOT_PENDING"
	CodeInvitationPending    = "INVITATION_PENDING"
	CodeMatchNotFound        = "MATCH_NOT_FOUND"
	CodeAlreadyInMatch       = "ALREADY_IN_MATCH"
	CodeNotInMatch           = "NOT_IN_MATCH"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidColor):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidColor, "Unknown color"}}
	case errors.Is(err, model.ErrInvalidGuess):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGuess, "Guess contains invalid colors"}}
	case errors.Is(err, model.ErrLengthMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodeLengthMismatch, "Guess length does not match the secret"}}
	case errors.Is(err, model.ErrInvalidSlotCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSlotCount, "Slot count must be positive"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is already over"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, model.ErrNicknameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNicknameTaken, "Nickname already in use"}}
	case errors.Is(err, model.ErrPlayerNotConnected):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotConnected, "Player is not connected"}}
	case errors.Is(err, model.ErrInvitationNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeInvitationNotFound, "Invitation not found"}}
	case errors.Is(err, model.ErrInvitationNotPending):
		return &httpError{http.StatusConflict, APIError{CodeInvitationNotPending, "Invitation has already been resolved"}}
	case errors.Is(err, model.ErrInvitationPending):
		return &httpError{http.StatusConflict, APIError{CodeInvitationPending, "An invitation between these players is already pending"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrAlreadyInMatch):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInMatch, "Player is already in a match"}}
	case errors.Is(err, model.ErrNotInMatch):
		return &httpError{http.StatusNotFound, APIError{CodeNotInMatch, "Player is not in a match"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Session required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
