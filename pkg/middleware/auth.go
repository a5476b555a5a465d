package middleware

import (
	"net/http"
	"strings"

	"rental-store/pkg/utils"

	"go.uber.org/zap"
)

// AuthHeader carries the bearer credential.
const AuthHeader = "x-auth-token"

// Auth validates the x-auth-token header and puts the decoded identity in the request context.
func Auth(tokens utils.TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(AuthHeader))
			if token == "" {
				utils.ResponseUnauthorized(w, "Access denied. No token provided.")
				return
			}

			identity, err := tokens.Validate(token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
					zap.String("request_id", utils.GetRequestIDFromContext(r.Context())),
				)
				utils.ResponseUnauthorized(w, "Invalid token.")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin lets only admin identities through. Mount it after Auth.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Access denied. No token provided.")
				return
			}

			if !identity.IsAdmin {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", identity.UserID.Hex()),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Access denied.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
