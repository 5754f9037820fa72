package middleware

import (
	"log/slog"
	"net/http"

	"github.com/freshcart/grocery-api/pkg/logger"
)

// RequestLogger builds a request-scoped logger enriched with correlation_id
// and user_id and stores it in context for logger.FromContext. Mount it after
// RequestLogging (correlation id) and Auth (user id).
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := UserIDFromContext(ctx); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
