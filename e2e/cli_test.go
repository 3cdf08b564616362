package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmgame/mastermind-go/internal/api"
	"github.com/mmgame/mastermind-go/internal/factory"
	"github.com/mmgame/mastermind-go/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(projectRoot, "bin", "mmctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/mmctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

// run executes mmctl with its own session file so concurrent players
// do not clobber each other's sessions
func (r *cliRunner) run(sessionFile string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--session-file", sessionFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := testutil.NopLogger()
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	go app.Hub.Run()

	router := api.NewRouter(api.RouterConfig{
		Logger:                logger,
		GameService:           app.GameService,
		LogicService:          app.LogicService,
		SessionService:        app.SessionService,
		MultiplayerController: app.MultiplayerController,
		Hub:                   app.Hub,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			app.Hub.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing

type gameResponse struct {
	ID        string `json:"id"`
	SlotCount int    `json:"slot_count"`
	History   []struct {
		Guess    []string `json:"guess"`
		Feedback struct {
			Exact   int `json:"exact"`
			Partial int `json:"partial"`
		} `json:"feedback"`
	} `json:"history"`
	GameOver bool `json:"game_over"`
	Won      bool `json:"won"`
}

type solutionResponse struct {
	Solution []string `json:"solution"`
}

type suggestionResponse struct {
	Guess     []string `json:"guess"`
	Exhausted bool     `json:"exhausted"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Nickname  string `json:"nickname"`
	Status    string `json:"status"`
}

type invitationResponse struct {
	ID           string `json:"id"`
	FromNickname string `json:"from_nickname"`
	ToNickname   string `json:"to_nickname"`
	Status       string `json:"status"`
}

type matchResponse struct {
	ID              string `json:"id"`
	Player1Nickname string `json:"player1_nickname"`
	Player2Nickname string `json:"player2_nickname"`
	Status          string `json:"status"`
}

func TestCLI_Health(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)
	sessionFile := filepath.Join(t.TempDir(), "session")

	output, err := cli.run(sessionFile, "health")
	require.NoError(t, err, "health failed: %s", output)
	assert.Contains(t, output, "ok")
}

func TestCLI_SinglePlayerGame(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)
	sessionFile := filepath.Join(t.TempDir(), "session")

	// Create a game
	output, err := cli.run(sessionFile, "game", "create", "--slots", "4")
	require.NoError(t, err, "create failed: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	require.NotEmpty(t, game.ID)
	assert.Equal(t, 4, game.SlotCount)

	// Peek at the solution, then win with it
	output, err = cli.run(sessionFile, "game", "solution", game.ID)
	require.NoError(t, err, "solution failed: %s", output)

	var solution solutionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &solution))
	require.Len(t, solution.Solution, 4)

	args := append([]string{"game", "guess", game.ID}, solution.Solution...)
	output, err = cli.run(sessionFile, args...)
	require.NoError(t, err, "guess failed: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.True(t, game.Won)
	require.Len(t, game.History, 1)
	assert.Equal(t, 4, game.History[0].Feedback.Exact)
}

func TestCLI_SolverSuggestion(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)
	sessionFile := filepath.Join(t.TempDir(), "session")

	output, err := cli.run(sessionFile, "game", "create")
	require.NoError(t, err, "create failed: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	output, err = cli.run(sessionFile, "game", "suggest", game.ID)
	require.NoError(t, err, "suggest failed: %s", output)

	var suggestion suggestionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &suggestion))
	assert.False(t, suggestion.Exhausted)
	assert.Len(t, suggestion.Guess, 4)
}

func TestCLI_InvalidGuessReportsError(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)
	sessionFile := filepath.Join(t.TempDir(), "session")

	output, err := cli.run(sessionFile, "game", "create", "--slots", "4")
	require.NoError(t, err, "create failed: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	output, err = cli.run(sessionFile, "game", "guess", game.ID, "red", "red", "red", "magenta")
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "color")
}

func TestCLI_MultiplayerMatch(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	aliceSession := filepath.Join(t.TempDir(), "alice")
	bobSession := filepath.Join(t.TempDir(), "bob")

	// Both players log in
	output, err := cli.run(aliceSession, "multiplayer", "login", "alice")
	require.NoError(t, err, "alice login failed: %s", output)
	var alice sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))
	assert.Equal(t, "available", alice.Status)

	output, err = cli.run(bobSession, "multiplayer", "login", "bob")
	require.NoError(t, err, "bob login failed: %s", output)

	// Alice invites bob
	output, err = cli.run(aliceSession, "multiplayer", "invite", "bob")
	require.NoError(t, err, "invite failed: %s", output)
	var inv invitationResponse
	require.NoError(t, json.Unmarshal([]byte(output), &inv))
	assert.Equal(t, "pending", inv.Status)

	// Bob accepts
	output, err = cli.run(bobSession, "multiplayer", "accept", inv.ID)
	require.NoError(t, err, "accept failed: %s", output)

	// Both set secrets
	output, err = cli.run(aliceSession, "multiplayer", "set-secret", "bob",
		"red", "blue", "red", "blue")
	require.NoError(t, err, "alice set-secret failed: %s", output)
	var match matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "setup", match.Status)

	output, err = cli.run(bobSession, "multiplayer", "set-secret", "alice",
		"green", "yellow", "green", "yellow")
	require.NoError(t, err, "bob set-secret failed: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "playing", match.Status)

	// Alice guesses the secret bob set for her
	output, err = cli.run(aliceSession, "multiplayer", "guess",
		"green", "yellow", "green", "yellow")
	require.NoError(t, err, "guess failed: %s", output)
	var board gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	assert.True(t, board.Won)

	// Match shows finished from bob's side
	output, err = cli.run(bobSession, "multiplayer", "match")
	require.NoError(t, err, "match failed: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "finished", match.Status)

	// Logout both
	output, err = cli.run(aliceSession, "multiplayer", "logout")
	require.NoError(t, err, "alice logout failed: %s", output)
	output, err = cli.run(bobSession, "multiplayer", "logout")
	require.NoError(t, err, "bob logout failed: %s", output)
}

func TestCLI_PlayersListing(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	aliceSession := filepath.Join(t.TempDir(), "alice")
	bobSession := filepath.Join(t.TempDir(), "bob")

	output, err := cli.run(aliceSession, "multiplayer", "login", "alice")
	require.NoError(t, err, "alice login failed: %s", output)
	output, err = cli.run(bobSession, "multiplayer", "login", "bob")
	require.NoError(t, err, "bob login failed: %s", output)

	output, err = cli.run(aliceSession, "multiplayer", "players")
	require.NoError(t, err, "players failed: %s", output)
	assert.Contains(t, output, "bob")
	assert.NotContains(t, output, "alice")
}

func TestCLI_Stats(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)
	sessionFile := filepath.Join(t.TempDir(), "session")

	output, err := cli.run(sessionFile, "game", "create")
	require.NoError(t, err, "create failed: %s", output)

	output, err = cli.run(sessionFile, "stats")
	require.NoError(t, err, "stats failed: %s", output)
	assert.Contains(t, output, "active_games")
}
