package model

import "time"

// MatchID uniquely identifies a two-player match
type MatchID string

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	MatchSetup    MatchStatus = "setup"    // Players setting secrets
	MatchPlaying  MatchStatus = "playing"  // Both secrets set, boards live
	MatchFinished MatchStatus = "finished" // Match completed
)

// Match pairs two lobby players. Each player owns a game whose secret
// the opponent guesses; the match only references those games by id.
type Match struct {
	ID              MatchID
	Player1Nickname string
	Player2Nickname string
	Player1GameID   GameID // empty until player 1 sets their secret
	Player2GameID   GameID // empty until player 2 sets their secret
	Player1Ready    bool
	Player2Ready    bool
	Status          MatchStatus
	CreatedAt       time.Time
	StartedAt       *time.Time // nil until the match enters playing
}

// HasPlayer reports whether the nickname is one of the match's players
func (m *Match) HasPlayer(nickname string) bool {
	return m.Player1Nickname == nickname || m.Player2Nickname == nickname
}

// OpponentOf returns the other player's nickname, or "" if the
// nickname is not in this match
func (m *Match) OpponentOf(nickname string) string {
	switch nickname {
	case m.Player1Nickname:
		return m.Player2Nickname
	case m.Player2Nickname:
		return m.Player1Nickname
	}
	return ""
}

// BothReady reports whether both players have set their secrets
func (m *Match) BothReady() bool {
	return m.Player1Ready && m.Player2Ready
}
