package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/emonshikder007/chat-app/config"
	"github.com/emonshikder007/chat-app/pkg/errors"
	"github.com/emonshikder007/chat-app/pkg/utils"
)

type contextKey string

const actorKey contextKey = "actor"

// ActorFromContext returns the authenticated user id set by AuthMiddleware.
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorKey).(uuid.UUID)
	return id, ok
}

// WithActor is for tests that bypass the middleware.
func WithActor(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey, id)
}

func AuthMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				respondError(w, errors.Unauthorized("missing bearer token"))
				return
			}

			userID, err := utils.ParseJWTToken(token, cfg)
			if err != nil {
				respondError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), userID)))
		})
	}
}
