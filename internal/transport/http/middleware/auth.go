package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"hrflow/internal/domain/auth"
	"hrflow/internal/requestctx"
	"hrflow/internal/transport/http/api"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.User, error)
}

// Session resolves the session cookie into a user. Requests without a valid
// session never reach next.
func Session(cookieName string, authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				api.Unauthorized(w)
				return
			}
			user, err := authenticator.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthenticated) {
					slog.Error("session lookup failed", "requestId", GetRequestID(r.Context()), "err", err)
				}
				api.Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithUser(r.Context(), user)))
		})
	}
}

func GetUser(ctx context.Context) (auth.User, bool) {
	return requestctx.GetUser(ctx)
}
