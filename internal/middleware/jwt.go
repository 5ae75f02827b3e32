package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"inkpost/internal/logger"
	"inkpost/internal/reqctx"
	"inkpost/internal/utils"
	"inkpost/internal/utils/helpers"
)

// JWTAuth requires a valid Bearer access token signed with secret.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: missing access token")
				helpers.Error(w, http.StatusUnauthorized, "missing access token")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := utils.ParseToken(secret, tokenString)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: invalid or expired token", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := WithRole(r.Context(), claims.Role)
			ctx = reqctx.WithOperator(ctx, claims.Subject)
			if lrw, ok := w.(*loggingResponseWriter); ok {
				lrw.operator = claims.Subject
			}

			logger.WithCtx(ctx).Debug("JWTAuth: token valid",
				zap.String("operator", claims.Subject), zap.String("role", claims.Role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
