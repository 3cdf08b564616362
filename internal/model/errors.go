package model

import "errors"

// Common errors used across the application
var (
	// Game logic errors
	ErrInvalidSlotCount = errors.New("slot count must be positive")
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidGuess     = errors.New("guess must contain the right number of valid colors")
	ErrLengthMismatch   = errors.New("secret and guess must have the same length")

	// Game store errors
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is already over")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNicknameTaken   = errors.New("nickname is already in use")

	// Invitation errors
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrInvitationPending    = errors.New("a pending invitation already exists between these players")
	ErrPlayerNotConnected   = errors.New("player is not connected to the lobby")

	// Match errors
	ErrMatchNotFound  = errors.New("match not found")
	ErrAlreadyInMatch = errors.New("player is already in a match")
	ErrNotInMatch     = errors.New("player is not in a match")
)
