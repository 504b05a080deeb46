package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/amaumene/personal-backend/internal/auth"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	challengeHeader = "WWW-Authenticate"
	challengeBearer = "Bearer"
)

type contextKey int

const requestIDKey contextKey = iota

// RequireAPIKey rejects requests whose Authorization header does not carry
// the configured API key. Rejected requests never reach next.
func RequireAPIKey(gate *auth.Gate) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := gate.Check(r.Header.Get("Authorization")); err != nil {
				log.WithFields(log.Fields{
					"request_id": RequestIDFromContext(r.Context()),
					"remote":     r.RemoteAddr,
					"path":       r.URL.Path,
					"error":      err,
				}).Warn("rejected unauthenticated request")

				w.Header().Set(challengeHeader, challengeBearer)
				writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: detailInvalidAPIKey})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID propagates an inbound X-Request-ID or assigns a fresh UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// LogRequests emits one access log line per request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"component":  "http",
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start),
			"request_id": RequestIDFromContext(r.Context()),
		}).Info("request served")
	})
}
