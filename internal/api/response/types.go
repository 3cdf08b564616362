package response

import (
	"time"

	"github.com/mmgame/mastermind-go/internal/model"
)

// Feedback is the per-guess score in API responses
type Feedback struct {
	Exact   int `json:"exact"`
	Partial int `json:"partial"`
}

// GuessAttempt is one history entry in API responses
type GuessAttempt struct {
	Guess    []string `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Game is a game in API responses. The secret is never included; the
// solution endpoint exists for deliberate spoilers.
type Game struct {
	ID        string         `json:"id"`
	SlotCount int            `json:"slot_count"`
	History   []GuessAttempt `json:"history"`
	GameOver  bool           `json:"game_over"`
	Won       bool           `json:"won"`
	CreatedAt time.Time      `json:"created_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	history := make([]GuessAttempt, len(g.History))
	for i, attempt := range g.History {
		history[i] = GuessAttempt{
			Guess: attempt.Guess.Strings(),
			Feedback: Feedback{
				Exact:   attempt.Feedback.Exact,
				Partial: attempt.Feedback.Partial,
			},
		}
	}
	return Game{
		ID:        string(g.ID),
		SlotCount: g.SlotCount,
		History:   history,
		GameOver:  g.GameOver,
		Won:       g.Won,
		CreatedAt: g.CreatedAt,
	}
}

// Solution is the deliberate secret reveal
type Solution struct {
	Solution []string `json:"solution"`
}

// Suggestion is a solver-proposed next guess
type Suggestion struct {
	Guess     []string `json:"guess,omitempty"`
	Exhausted bool     `json:"exhausted"`
}

// ColorList enumerates the guessable colors in stable order
type ColorList struct {
	Colors []string `json:"colors"`
}

// Session is the login result
type Session struct {
	SessionID string `json:"session_id"`
	Nickname  string `json:"nickname"`
	Status    string `json:"status"`
}

// SessionFromModel converts a model.PlayerSession
func SessionFromModel(s *model.PlayerSession) Session {
	return Session{
		SessionID: string(s.SessionID),
		Nickname:  s.Nickname,
		Status:    string(s.Status),
	}
}

// Player is a lobby player list entry
type Player struct {
	Nickname string `json:"nickname"`
	Status   string `json:"status"`
}

// PlayerFromInfo converts a model.PlayerInfo
func PlayerFromInfo(p model.PlayerInfo) Player {
	return Player{
		Nickname: p.Nickname,
		Status:   string(p.Status),
	}
}

// NicknameCheck reports nickname availability
type NicknameCheck struct {
	Nickname string `json:"nickname"`
	Taken    bool   `json:"taken"`
}

// Invitation is an invitation in API responses
type Invitation struct {
	ID           string     `json:"id"`
	FromNickname string     `json:"from_nickname"`
	ToNickname   string     `json:"to_nickname"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

// InvitationFromModel converts a model.Invitation
func InvitationFromModel(inv *model.Invitation) Invitation {
	return Invitation{
		ID:           string(inv.ID),
		FromNickname: inv.FromNickname,
		ToNickname:   inv.ToNickname,
		Status:       string(inv.Status),
		CreatedAt:    inv.CreatedAt,
		RespondedAt:  inv.RespondedAt,
	}
}

// Match is a match in API responses
type Match struct {
	ID              string     `json:"id"`
	Player1Nickname string     `json:"player1_nickname"`
	Player2Nickname string     `json:"player2_nickname"`
	Player1Ready    bool       `json:"player1_ready"`
	Player2Ready    bool       `json:"player2_ready"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
}

// MatchFromModel converts a model.Match. Game ids are deliberately
// withheld: a player learns their target via the opponent-game
// endpoint, never the game holding their own secret.
func MatchFromModel(m *model.Match) Match {
	return Match{
		ID:              string(m.ID),
		Player1Nickname: m.Player1Nickname,
		Player2Nickname: m.Player2Nickname,
		Player1Ready:    m.Player1Ready,
		Player2Ready:    m.Player2Ready,
		Status:          string(m.Status),
		CreatedAt:       m.CreatedAt,
		StartedAt:       m.StartedAt,
	}
}

// Stats is the monitoring snapshot
type Stats struct {
	ActiveGames   int `json:"active_games"`
	ActivePlayers int `json:"active_players"`
}
