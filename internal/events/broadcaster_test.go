package events

import (
	"strings"
	"testing"
	"time"

	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/testutil"
)

func newTestBroadcaster(t *testing.T) (*Broadcaster, *Hub) {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return NewBroadcaster(hub, testutil.NopLogger()), hub
}

func register(t *testing.T, hub *Hub, nickname string) *Client {
	t.Helper()
	client := NewClient(hub, nickname)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)
	return client
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive message")
		return ""
	}
}

func assertSilent(t *testing.T, client *Client) {
	t.Helper()
	select {
	case msg := <-client.send:
		t.Fatalf("client unexpectedly received %q", string(msg))
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcaster_PlayerList(t *testing.T) {
	broadcaster, hub := newTestBroadcaster(t)
	alice := register(t, hub, "alice")
	bob := register(t, hub, "bob")

	broadcaster.BroadcastPlayerList([]model.PlayerInfo{
		{Nickname: "alice", Status: model.StatusAvailable},
		{Nickname: "bob", Status: model.StatusInGame},
	})

	for _, client := range []*Client{alice, bob} {
		msg := receive(t, client)
		if !strings.Contains(msg, "event: player-list") {
			t.Errorf("message missing event name: %s", msg)
		}
		if !strings.Contains(msg, `{"nickname":"bob","status":"in_game"}`) {
			t.Errorf("message missing player entry: %s", msg)
		}
	}
}

func TestBroadcaster_InvitationReceivedTargetsRecipient(t *testing.T) {
	broadcaster, hub := newTestBroadcaster(t)
	alice := register(t, hub, "alice")
	bob := register(t, hub, "bob")

	broadcaster.NotifyInvitationReceived(&model.Invitation{
		ID:           "inv-1",
		FromNickname: "alice",
		ToNickname:   "bob",
		Status:       model.InvitationPending,
	})

	msg := receive(t, bob)
	if !strings.Contains(msg, "event: invitation-received") {
		t.Errorf("message missing event name: %s", msg)
	}
	if !strings.Contains(msg, `"invitation_id":"inv-1"`) {
		t.Errorf("message missing invitation id: %s", msg)
	}
	if !strings.Contains(msg, `"from":"alice"`) {
		t.Errorf("message missing sender: %s", msg)
	}

	assertSilent(t, alice)
}

func TestBroadcaster_InvitationRespondedTargetsSender(t *testing.T) {
	broadcaster, hub := newTestBroadcaster(t)
	alice := register(t, hub, "alice")
	bob := register(t, hub, "bob")

	broadcaster.NotifyInvitationResponded(&model.Invitation{
		ID:           "inv-1",
		FromNickname: "alice",
		ToNickname:   "bob",
		Status:       model.InvitationAccepted,
	})

	msg := receive(t, alice)
	if !strings.Contains(msg, "event: invitation-responded") {
		t.Errorf("message missing event name: %s", msg)
	}
	if !strings.Contains(msg, `"status":"accepted"`) {
		t.Errorf("message missing status: %s", msg)
	}

	assertSilent(t, bob)
}

func TestBroadcaster_MatchStartedNotifiesBothPlayers(t *testing.T) {
	broadcaster, hub := newTestBroadcaster(t)
	alice := register(t, hub, "alice")
	bob := register(t, hub, "bob")
	carol := register(t, hub, "carol")

	broadcaster.NotifyMatchStarted(&model.Match{
		ID:              "match-1",
		Player1Nickname: "alice",
		Player2Nickname: "bob",
		Status:          model.MatchPlaying,
	})

	for _, client := range []*Client{alice, bob} {
		msg := receive(t, client)
		if !strings.Contains(msg, "event: match-started") {
			t.Errorf("message missing event name: %s", msg)
		}
		if !strings.Contains(msg, `"match_id":"match-1"`) {
			t.Errorf("message missing match id: %s", msg)
		}
	}

	assertSilent(t, carol)
}

func TestBroadcaster_OpponentGuess(t *testing.T) {
	broadcaster, hub := newTestBroadcaster(t)
	alice := register(t, hub, "alice")
	bob := register(t, hub, "bob")

	broadcaster.NotifyOpponentGuess("bob", "alice", model.Feedback{Exact: 2, Partial: 1}, false)

	msg := receive(t, bob)
	if !strings.Contains(msg, "event: opponent-guess") {
		t.Errorf("message missing event name: %s", msg)
	}
	if !strings.Contains(msg, `"feedback":{"exact":2,"partial":1}`) {
		t.Errorf("message missing feedback: %s", msg)
	}

	assertSilent(t, alice)
}
