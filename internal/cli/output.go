package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case Solution:
		fmt.Printf("Solution: %s\n", strings.Join(v.Solution, " "))
	case Suggestion:
		o.printSuggestion(v)
	case ColorList:
		fmt.Printf("Colors: %s\n", strings.Join(v.Colors, ", "))
	case Session:
		o.printSession(v)
	case []Player:
		o.printPlayers(v)
	case NicknameCheck:
		o.printNicknameCheck(v)
	case Invitation:
		o.printInvitation(v)
	case []Invitation:
		for _, inv := range v {
			o.printInvitation(inv)
		}
	case Match:
		o.printMatch(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	case Stats:
		fmt.Printf("Active games: %d\n", v.ActiveGames)
		fmt.Printf("Active players: %d\n", v.ActivePlayers)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Game response type (matches API)
type Game struct {
	ID        string         `json:"id"`
	SlotCount int            `json:"slot_count"`
	History   []GuessAttempt `json:"history"`
	GameOver  bool           `json:"game_over"`
	Won       bool           `json:"won"`
	CreatedAt time.Time      `json:"created_at"`
}

// GuessAttempt response type
type GuessAttempt struct {
	Guess    []string `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Feedback response type
type Feedback struct {
	Exact   int `json:"exact"`
	Partial int `json:"partial"`
}

// Solution response type
type Solution struct {
	Solution []string `json:"solution"`
}

// Suggestion response type
type Suggestion struct {
	Guess     []string `json:"guess,omitempty"`
	Exhausted bool     `json:"exhausted"`
}

// ColorList response type
type ColorList struct {
	Colors []string `json:"colors"`
}

// Session response type
type Session struct {
	SessionID string `json:"session_id"`
	Nickname  string `json:"nickname"`
	Status    string `json:"status"`
}

// Player response type
type Player struct {
	Nickname string `json:"nickname"`
	Status   string `json:"status"`
}

// NicknameCheck response type
type NicknameCheck struct {
	Nickname string `json:"nickname"`
	Taken    bool   `json:"taken"`
}

// Invitation response type
type Invitation struct {
	ID           string `json:"id"`
	FromNickname string `json:"from_nickname"`
	ToNickname   string `json:"to_nickname"`
	Status       string `json:"status"`
}

// Match response type
type Match struct {
	ID              string `json:"id"`
	Player1Nickname string `json:"player1_nickname"`
	Player2Nickname string `json:"player2_nickname"`
	Player1Ready    bool   `json:"player1_ready"`
	Player2Ready    bool   `json:"player2_ready"`
	Status          string `json:"status"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// Stats response type
type Stats struct {
	ActiveGames   int `json:"active_games"`
	ActivePlayers int `json:"active_players"`
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Slots: %d\n", g.SlotCount)
	if len(g.History) > 0 {
		fmt.Printf("Guesses (%d):\n", len(g.History))
		for i, attempt := range g.History {
			fmt.Printf("  %2d. %-40s exact=%d partial=%d\n",
				i+1, strings.Join(attempt.Guess, " "),
				attempt.Feedback.Exact, attempt.Feedback.Partial)
		}
	}
	switch {
	case g.Won:
		fmt.Println("Result: solved!")
	case g.GameOver:
		fmt.Println("Result: game over")
	default:
		fmt.Println("Result: in progress")
	}
}

func (o *Output) printSuggestion(s Suggestion) {
	if s.Exhausted {
		fmt.Println("No consistent guess remains - the recorded feedback is contradictory")
		return
	}
	fmt.Printf("Suggested guess: %s\n", strings.Join(s.Guess, " "))
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Logged in as: %s\n", s.Nickname)
	fmt.Printf("Session: %s\n", s.SessionID)
	fmt.Printf("Status: %s\n", s.Status)
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		fmt.Println("No other players connected")
		return
	}
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Printf("  - %s [%s]\n", p.Nickname, p.Status)
	}
}

func (o *Output) printNicknameCheck(c NicknameCheck) {
	if c.Taken {
		fmt.Printf("Nickname %q is taken\n", c.Nickname)
	} else {
		fmt.Printf("Nickname %q is available\n", c.Nickname)
	}
}

func (o *Output) printInvitation(inv Invitation) {
	fmt.Printf("Invitation: %s\n", inv.ID)
	fmt.Printf("  From: %s  To: %s  Status: %s\n", inv.FromNickname, inv.ToNickname, inv.Status)
}

func (o *Output) printMatch(m Match) {
	fmt.Printf("Match: %s\n", m.ID)
	fmt.Printf("Status: %s\n", m.Status)
	readyMark := func(ready bool) string {
		if ready {
			return "ready"
		}
		return "setting up"
	}
	fmt.Printf("  %s: %s\n", m.Player1Nickname, readyMark(m.Player1Ready))
	fmt.Printf("  %s: %s\n", m.Player2Nickname, readyMark(m.Player2Ready))
}
