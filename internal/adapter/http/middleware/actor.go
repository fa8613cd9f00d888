package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ledgerlite/ledgerlite/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// Actor reads the authenticated caller's identity from the gateway
// headers. Authentication itself happens upstream; this service only
// trusts and threads the identity.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-User-ID")
		if id == "" {
			writeActorError(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}

		role := domain.Role(r.Header.Get("X-User-Role"))
		if role == "" {
			role = domain.RoleRegular
		}
		if !role.IsValid() {
			writeActorError(w, http.StatusBadRequest, "unknown X-User-Role")
			return
		}

		actor := domain.Actor{
			ID:    id,
			Email: r.Header.Get("X-User-Email"),
			Role:  role,
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor returns a context carrying the given actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the actor stored by the Actor middleware.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

func writeActorError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
