package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSlowRequestMs is used when Timing is given no threshold.
const DefaultSlowRequestMs = 200

// unmatchedRoute labels requests no route pattern claimed, so raw paths never become metric labels.
const unmatchedRoute = "unmatched"

// RequestIDHeader carries the per-request ID back to the client.
const RequestIDHeader = "X-Request-ID"

// RequestObserver receives one observation per timed request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

const routeContextKey contextKey = "route"

// routeSlot is filled in by RoutePattern after the mux matched.
type routeSlot struct{ pattern string }

// RoutePattern wraps the mux so the matched pattern reaches Timing.
// Middleware between the two replaces the request, so r.Pattern alone would be lost.
func RoutePattern(mux http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		if slot, ok := r.Context().Value(routeContextKey).(*routeSlot); ok && r.Pattern != "" {
			slot.pattern = r.Pattern
		}
	})
}

type recordingWriter struct {
	http.ResponseWriter
	status int
}

func (rw *recordingWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Timing logs every non-static request and reports it to observer.
// Requests at or above slowMs log at WARN, the rest at DEBUG.
// observer may be nil; slowMs <= 0 selects DefaultSlowRequestMs.
func Timing(observer RequestObserver, slowMs int) func(http.Handler) http.Handler {
	if slowMs <= 0 {
		slowMs = DefaultSlowRequestMs
	}
	slow := time.Duration(slowMs) * time.Millisecond

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)

			slot := &routeSlot{pattern: unmatchedRoute}
			rw := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), routeContextKey, slot)))

			elapsed := time.Since(start)
			level := slog.LevelDebug
			if elapsed >= slow {
				level = slog.LevelWarn
			}
			slog.Log(r.Context(), level, "http_event",
				"event", "request",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"route", slot.pattern,
				"status", rw.status,
				"duration_ms", float64(elapsed.Microseconds())/1000,
			)

			if observer != nil {
				observer.ObserveRequest(r.Method, slot.pattern, rw.status, elapsed)
			}
		})
	}
}
