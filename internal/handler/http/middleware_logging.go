package http

import (
	"net/http"
	"time"

	"github.com/asifrahman/go-identity-api/internal/logger"
)

// withLogging emits one structured line per request once the handler chain
// has finished. Mounted inside withTraceID, so the line carries the trace id.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		method := r.Method
		uri := r.RequestURI
		ip := clientIP(r)

		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("method", method).
			Str("uri", uri).
			Str("client_ip", ip).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
