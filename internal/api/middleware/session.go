package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmgame/mastermind-go/internal/api/apierr"
	"github.com/mmgame/mastermind-go/internal/model"
	"github.com/mmgame/mastermind-go/internal/services/multiplayer"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Session creates middleware requiring a valid lobby session. The
// resolved session lands in the request context and the player's
// activity timestamp is refreshed.
func Session(controller *multiplayer.Controller) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := extractSessionID(r)
			if id == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			sess, err := controller.GetSession(r.Context(), model.SessionID(id))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			controller.Touch(r.Context(), sess.SessionID)

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractSessionID pulls the session id from the request. The query
// parameter exists for EventSource, which cannot set headers.
func extractSessionID(r *http.Request) string {
	if id := r.Header.Get("X-Session-ID"); id != "" {
		return id
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return r.URL.Query().Get("session_id")
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *model.PlayerSession {
	sess, _ := ctx.Value(sessionContextKey).(*model.PlayerSession)
	return sess
}

// MustGetSession returns the session or panics
func MustGetSession(ctx context.Context) *model.PlayerSession {
	sess := GetSession(ctx)
	if sess == nil {
		panic("no session in context - session middleware not applied?")
	}
	return sess
}
