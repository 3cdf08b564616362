package events

import (
	"encoding/json"
	"log/slog"

	"github.com/mmgame/mastermind-go/internal/model"
)

// Broadcaster translates multiplayer happenings into SSE events. All
// payloads are JSON; targeted events go only to the named player.
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "events-broadcaster")),
	}
}

func (b *Broadcaster) payload(eventName string, v any) (string, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		b.logger.Error("event payload marshal failed",
			slog.String("event", eventName),
			slog.Any("error", err))
		return "", false
	}
	return string(data), true
}

// playerEntry is the payload entry for player list updates
type playerEntry struct {
	Nickname string             `json:"nickname"`
	Status   model.PlayerStatus `json:"status"`
}

// BroadcastPlayerList broadcasts the current player list to everyone
func (b *Broadcaster) BroadcastPlayerList(players []model.PlayerInfo) {
	entries := make([]playerEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, playerEntry{Nickname: p.Nickname, Status: p.Status})
	}
	data, ok := b.payload("player-list", entries)
	if !ok {
		return
	}
	b.hub.Broadcast("player-list", data)
}

// invitationEvent is the payload for invitation lifecycle events
type invitationEvent struct {
	InvitationID model.InvitationID     `json:"invitation_id"`
	From         string                 `json:"from"`
	To           string                 `json:"to"`
	Status       model.InvitationStatus `json:"status"`
}

func toInvitationEvent(inv *model.Invitation) invitationEvent {
	return invitationEvent{
		InvitationID: inv.ID,
		From:         inv.FromNickname,
		To:           inv.ToNickname,
		Status:       inv.Status,
	}
}

// NotifyInvitationReceived tells the invited player about a new invitation
func (b *Broadcaster) NotifyInvitationReceived(inv *model.Invitation) {
	data, ok := b.payload("invitation-received", toInvitationEvent(inv))
	if !ok {
		return
	}
	b.hub.SendTo(inv.ToNickname, "invitation-received", data)
}

// NotifyInvitationResponded tells the inviting player their invitation
// was accepted or declined
func (b *Broadcaster) NotifyInvitationResponded(inv *model.Invitation) {
	data, ok := b.payload("invitation-responded", toInvitationEvent(inv))
	if !ok {
		return
	}
	b.hub.SendTo(inv.FromNickname, "invitation-responded", data)
}

// NotifyInvitationCancelled tells the invited player the invitation is gone
func (b *Broadcaster) NotifyInvitationCancelled(inv *model.Invitation) {
	data, ok := b.payload("invitation-cancelled", toInvitationEvent(inv))
	if !ok {
		return
	}
	b.hub.SendTo(inv.ToNickname, "invitation-cancelled", data)
}

// matchEvent is the payload for match lifecycle events
type matchEvent struct {
	MatchID model.MatchID     `json:"match_id"`
	Status  model.MatchStatus `json:"status"`
}

// NotifyMatchStarted tells both players the match has moved to playing
func (b *Broadcaster) NotifyMatchStarted(match *model.Match) {
	data, ok := b.payload("match-started", matchEvent{MatchID: match.ID, Status: match.Status})
	if !ok {
		return
	}
	b.hub.SendTo(match.Player1Nickname, "match-started", data)
	b.hub.SendTo(match.Player2Nickname, "match-started", data)
}

// NotifyMatchEnded tells both players the match is over
func (b *Broadcaster) NotifyMatchEnded(match *model.Match) {
	data, ok := b.payload("match-ended", matchEvent{MatchID: match.ID, Status: model.MatchFinished})
	if !ok {
		return
	}
	b.hub.SendTo(match.Player1Nickname, "match-ended", data)
	b.hub.SendTo(match.Player2Nickname, "match-ended", data)
}

// guessEvent is the payload for opponent guess notifications
type guessEvent struct {
	Nickname string          `json:"nickname"`
	Feedback feedbackPayload `json:"feedback"`
	Won      bool            `json:"won"`
}

type feedbackPayload struct {
	Exact   int `json:"exact"`
	Partial int `json:"partial"`
}

// NotifyOpponentGuess tells a player their opponent submitted a guess
func (b *Broadcaster) NotifyOpponentGuess(toNickname, fromNickname string, feedback model.Feedback, won bool) {
	data, ok := b.payload("opponent-guess", guessEvent{
		Nickname: fromNickname,
		Feedback: feedbackPayload{Exact: feedback.Exact, Partial: feedback.Partial},
		Won:      won,
	})
	if !ok {
		return
	}
	b.hub.SendTo(toNickname, "opponent-guess", data)
}
