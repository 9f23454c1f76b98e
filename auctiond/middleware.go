package main

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the status code written by a handler so the
// request log can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs one line per request with method, path, status,
// and duration.
func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start))
	})
}

// withRecovery converts handler panics into 500 responses so one bad
// request cannot take down the daemon.
func withRecovery(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("handler panic",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec)
				writeJSONError(w, http.StatusInternalServerError, "internal server error", "INTERNAL")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withCORS allows browser clients on any origin and answers preflight
// requests directly.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withWorkerLimit caps the number of in-flight requests. When the pool
// is exhausted the request is rejected immediately with 503 instead of
// queueing behind a live auction.
func withWorkerLimit(logger *slog.Logger, maxWorkers int, next http.Handler) http.Handler {
	workers := make(chan struct{}, maxWorkers)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case workers <- struct{}{}:
			defer func() { <-workers }()
			next.ServeHTTP(w, r)
		default:
			logger.Warn("worker pool exhausted, rejecting request",
				"method", r.Method,
				"path", r.URL.Path,
				"max_workers", maxWorkers)
			writeJSONError(w, http.StatusServiceUnavailable, "server busy", "BUSY")
		}
	})
}
