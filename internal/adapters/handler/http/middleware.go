package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type contextKey string

const (
	// UserIDKey holds the authenticated user's uuid.UUID.
	UserIDKey contextKey = "user_id"
	actorKey  contextKey = "actor"

	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

type Authenticator struct {
	authService ports.AuthService
}

func NewAuthenticator(authService ports.AuthService) *Authenticator {
	return &Authenticator{authService: authService}
}

// RequireSession rejects requests without a valid access token, read from the
// access_token cookie or a bearer Authorization header.
func (a *Authenticator) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := accessToken(r)
		if token == "" {
			writeError(w, r, domain.ErrUnauthorized)
			return
		}

		actor, err := a.authService.ParseAccessToken(token)
		if err != nil {
			writeError(w, r, domain.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, actor.UserID)
		ctx = context.WithValue(ctx, actorKey, *actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accessToken(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// ActorFromContext returns the caller stored by RequireSession.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
