package handler

import (
	"net/http"

	"github.com/mmgame/mastermind-go/internal/api/middleware"
	"github.com/mmgame/mastermind-go/internal/events"
)

// EventsHandler serves the SSE stream for lobby and match events
type EventsHandler struct {
	hub *events.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/v1/multiplayer/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())
	events.ServeSSE(w, r, h.hub, sess.Nickname)
}
