package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	apiContext "cardbridge/internal/api/context"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with a correlation id, honoring one supplied
// by the caller, and echoes it on the response.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(HeaderRequestID, id)

		ctx := context.WithValue(r.Context(), apiContext.RequestID, id)
		next(w, r.WithContext(ctx))
	}
}

// FromContext returns the request id set by RequestID, or "" when absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(apiContext.RequestID).(string); ok {
		return id
	}
	return ""
}
