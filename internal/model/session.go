package model

import "time"

// SessionID uniquely identifies a connected player session
type SessionID string

// PlayerStatus represents what a lobby player is currently doing
type PlayerStatus string

const (
	StatusAvailable PlayerStatus = "available" // In the lobby, can be invited
	StatusInGame    PlayerStatus = "in_game"   // Playing a match
	StatusAway      PlayerStatus = "away"      // Connected but not accepting invitations
)

// PlayerSession represents a connected lobby player.
// Nicknames are unique case-insensitively across all sessions.
type PlayerSession struct {
	SessionID    SessionID
	Nickname     string
	ConnectedAt  time.Time
	LastActivity time.Time
	Status       PlayerStatus
}

// PlayerInfo is the lobby-visible view of a session
type PlayerInfo struct {
	SessionID SessionID
	Nickname  string
	Status    PlayerStatus
}

// Info returns the lobby-visible view of the session
func (s *PlayerSession) Info() PlayerInfo {
	return PlayerInfo{
		SessionID: s.SessionID,
		Nickname:  s.Nickname,
		Status:    s.Status,
	}
}
