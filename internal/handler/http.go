package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/amaumene/personal-backend/internal/auth"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	contentTypeJSON = "application/json"

	serviceName    = "Personal Backend API"
	serviceVersion = "1.0.0"
	healthMessage  = "Everything looks great!"

	detailInvalidAPIKey    = "Invalid API key"
	detailNotFound         = "Not Found"
	detailMethodNotAllowed = "Method Not Allowed"
)

type messageResponse struct {
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type HTTPHandler struct {
	gate   *auth.Gate
	router *mux.Router
}

func NewHTTPHandler(gate *auth.Gate) *HTTPHandler {
	return &HTTPHandler{gate: gate}
}

// RegisterRoutes mounts the public and key-protected routes on router.
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	h.router = router
	router.NotFoundHandler = http.HandlerFunc(h.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.handleMethodNotAllowed)

	router.HandleFunc("/", h.handleRoot).Methods(http.MethodGet)

	requireKey := RequireAPIKey(h.gate)
	router.Handle("/health", requireKey(http.HandlerFunc(h.handleHealth))).Methods(http.MethodGet)
}

func (h *HTTPHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{
		Message: serviceName,
		Version: serviceVersion,
	})
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	log.WithField("request_id", RequestIDFromContext(r.Context())).Info("health check endpoint accessed")
	writeJSON(w, http.StatusOK, messageResponse{Message: healthMessage})
}

func (h *HTTPHandler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if target, ok := h.slashRedirect(r); ok {
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		return
	}
	writeJSON(w, http.StatusNotFound, errorResponse{Detail: detailNotFound})
}

func (h *HTTPHandler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: detailMethodNotAllowed})
}

// slashRedirect returns the path without its trailing slash when that path
// names a registered route.
func (h *HTTPHandler) slashRedirect(r *http.Request) (string, bool) {
	path := r.URL.Path
	if h.router == nil || path == "/" || !strings.HasSuffix(path, "/") {
		return "", false
	}

	alt := r.Clone(r.Context())
	alt.URL.Path = strings.TrimSuffix(path, "/")
	alt.URL.RawPath = ""

	var match mux.RouteMatch
	if !h.router.Match(alt, &match) || match.MatchErr != nil {
		return "", false
	}

	target := alt.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return target, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithField("error", err).Error("failed to encode json response")
	}
}
