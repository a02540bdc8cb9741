package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

const TraceIDHeader = "X-Trace-ID"

// TraceID echoes the caller's trace id, or a fresh one, on every response.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.NewString()
		}
		w.Header().Set(TraceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
