package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper/internal/config"
)

type CtxKey int

const (
	CtxSessionID CtxKey = iota
)

// bearerToken reads the session token from the Authorization header or,
// for clients that cannot set headers (browser websockets), from ?token=.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}

// Auth stores the session id of a valid token in the request context.
// Requests without a valid token pass through untouched; handlers decide
// whether they need one.
func Auth(log *slog.Logger, j *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				h.ServeHTTP(w, r)
				return
			}
			id, err := j.SessionID(token)
			if err != nil {
				log.Debug("rejected session token", slog.Any("error", err))
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionID, id)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
