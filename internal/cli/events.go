package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream SSE events from the lobby",
		Long: `Connect to the multiplayer SSE endpoint and stream events in real-time.

Events include:
  - player-list: Connected player list changed
  - invitation-received: Someone challenged you
  - invitation-responded: Your challenge was answered
  - invitation-cancelled: A challenge was withdrawn
  - match-started: Both secrets set, match is live
  - opponent-guess: Your opponent guessed against your secret
  - match-ended: Match finished or abandoned

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(jsonOutput bool) error {
	if cfg.SessionID == "" {
		return fmt.Errorf("no session - log in first")
	}

	// EventSource-style: session rides in the query string
	streamURL := strings.TrimSuffix(cfg.ServerURL, "/") +
		"/api/v1/multiplayer/events?session_id=" + url.QueryEscape(cfg.SessionID)

	req, err := http.NewRequest(http.MethodGet, streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// Set up cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	req = req.WithContext(ctx)

	httpClient := &http.Client{
		Timeout: 0, // No timeout for SSE
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Println("Connected to lobby event stream")
	}

	// Parse SSE stream
	scanner := bufio.NewScanner(resp.Body)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case strings.HasPrefix(line, ":"):
			// Keepalive comment, ignore
		case line == "":
			if currentEvent != "" {
				printEvent(SSEEvent{
					Time:  time.Now(),
					Event: currentEvent,
					Data:  strings.Join(dataLines, "\n"),
				}, jsonOutput)
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Println("Disconnected")
	}
	return nil
}

func printEvent(ev SSEEvent, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(ev)
		fmt.Println(string(data))
		return
	}
	fmt.Printf("[%s] %s: %s\n", ev.Time.Format("15:04:05"), ev.Event, ev.Data)
}
