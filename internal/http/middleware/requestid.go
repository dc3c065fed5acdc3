package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/chandrabharti/restaurant-api/internal/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with an identifier that flows through the
// context into structured log lines and back out in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), logger.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
