package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaumene/personal-backend/internal/auth"
	"github.com/amaumene/personal-backend/internal/config"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func newTestRouter() *mux.Router {
	cfg := &config.Config{APIKey: testAPIKey}
	router := mux.NewRouter()
	NewHTTPHandler(auth.NewGate(cfg)).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandleRoot(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "no credentials", headers: nil},
		{name: "valid credentials", headers: map[string]string{"Authorization": "Bearer " + testAPIKey}},
		{name: "invalid credentials", headers: map[string]string{"Authorization": "Bearer wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(router, http.MethodGet, "/", tt.headers)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, contentTypeJSON, rr.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"message":"Personal Backend API","version":"1.0.0"}`, rr.Body.String())
		})
	}
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantBody      string
		wantChallenge string
	}{
		{
			name:          "valid key",
			authorization: "Bearer " + testAPIKey,
			wantStatus:    http.StatusOK,
			wantBody:      `{"message":"Everything looks great!"}`,
		},
		{
			name:          "missing header",
			authorization: "",
			wantStatus:    http.StatusUnauthorized,
			wantBody:      `{"detail":"Invalid API key"}`,
			wantChallenge: "Bearer",
		},
		{
			name:          "wrong key",
			authorization: "Bearer not-the-key",
			wantStatus:    http.StatusUnauthorized,
			wantBody:      `{"detail":"Invalid API key"}`,
			wantChallenge: "Bearer",
		},
		{
			name:          "empty bearer",
			authorization: "Bearer ",
			wantStatus:    http.StatusUnauthorized,
			wantBody:      `{"detail":"Invalid API key"}`,
			wantChallenge: "Bearer",
		},
		{
			name:          "basic scheme",
			authorization: "Basic " + testAPIKey,
			wantStatus:    http.StatusUnauthorized,
			wantBody:      `{"detail":"Invalid API key"}`,
			wantChallenge: "Bearer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.authorization != "" {
				headers["Authorization"] = tt.authorization
			}
			rr := serve(router, http.MethodGet, "/health", headers)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, contentTypeJSON, rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, tt.wantChallenge, rr.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestRouting_Fallbacks(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unknown path",
			method:     http.MethodGet,
			target:     "/missing",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"Not Found"}`,
		},
		{
			name:       "post to root",
			method:     http.MethodPost,
			target:     "/",
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"detail":"Method Not Allowed"}`,
		},
		{
			name:       "delete health",
			method:     http.MethodDelete,
			target:     "/health",
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"detail":"Method Not Allowed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(router, tt.method, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestHandleHealth_LogsAccess(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	router := newTestRouter()
	rr := serve(RequestID(router), http.MethodGet, "/health", map[string]string{
		"Authorization": "Bearer " + testAPIKey,
		requestIDHeader: "req-health",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, "health check endpoint accessed", entry.Message)
	assert.Equal(t, "req-health", entry.Data["request_id"])
}

func TestHandleHealth_NoAccessLogWhenRejected(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	rr := serve(newTestRouter(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, "health check endpoint accessed", entry.Message)
	}
}

func TestRouting_TrailingSlash(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name         string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "health with slash redirects",
			target:       "/health/",
			wantStatus:   http.StatusTemporaryRedirect,
			wantLocation: "/health",
		},
		{
			name:         "query is kept",
			target:       "/health/?verbose=1",
			wantStatus:   http.StatusTemporaryRedirect,
			wantLocation: "/health?verbose=1",
		},
		{
			name:       "unknown path with slash",
			target:     "/missing/",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(router, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
		})
	}
}
