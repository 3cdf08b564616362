package redis

import (
	"fmt"
	"strings"

	"github.com/mmgame/mastermind-go/internal/model"
)

// Key prefix for all mastermind data
const keyPrefix = "mmgame"

// Key generation functions for each entity type

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of all game ids
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// sessionKey returns the Redis key for a PlayerSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionsIndexKey returns the Redis key for the SET of all session ids
func sessionsIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}

// nicknameIndexKey returns the Redis key for the nickname -> session_id index.
// Nickname uniqueness is case-insensitive, so the key is lowercased.
func nicknameIndexKey(nickname string) string {
	return fmt.Sprintf("%s:idx:nickname:%s", keyPrefix, strings.ToLower(nickname))
}

// invitationKey returns the Redis key for an Invitation
func invitationKey(id model.InvitationID) string {
	return fmt.Sprintf("%s:invitation:%s", keyPrefix, id)
}

// invitationsIndexKey returns the Redis key for the SET of all invitation ids
func invitationsIndexKey() string {
	return fmt.Sprintf("%s:idx:invitations", keyPrefix)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// playerMatchIndexKey returns the Redis key for the nickname -> match_id index
func playerMatchIndexKey(nickname string) string {
	return fmt.Sprintf("%s:idx:player_match:%s", keyPrefix, nickname)
}
