package middleware

import (
	"net/http"

	"petshop-be/internal/auth"
	"petshop-be/internal/logger"

	"go.uber.org/zap"
)

// TokenParser turns an access token into a session.
type TokenParser interface {
	Parse(token string) (auth.Session, error)
}

// AuthMiddleware attaches the session when a valid token is present.
// Requests without one pass through anonymously.
func AuthMiddleware(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := parser.Parse(token)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid access token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.WithSession(r.Context(), session)
			ctx = logger.WithFields(ctx, zap.String("user_id", session.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
