package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/notedeck/config"
	"github.com/jon4hz/notedeck/database"
	"github.com/jon4hz/notedeck/database/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:3000"

func testConfig(authEnabled bool) *config.Config {
	return &config.Config{
		Listen:    "127.0.0.1:0",
		StaticDir: "./public",
		Database:  &config.DatabaseConfig{Path: ":memory:"},
		CORS:      &config.CORSConfig{AllowedOrigins: []string{testOrigin}},
		Auth: &config.AuthConfig{
			Enabled:         authEnabled,
			AccessSecret:    "access-secret",
			RefreshSecret:   "refresh-secret",
			AccessTokenTTL:  900,
			RefreshTokenTTL: 604800,
		},
	}
}

func newTestServer(t *testing.T, authEnabled bool) (*Server, *mock.MockDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := mock.NewMockDB()
	server, err := New(testConfig(authEnabled), db, true)
	require.NoError(t, err)
	return server, db
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, mock.NewMockDB(), true)
	assert.Error(t, err)
}

func TestNewRequiresAllowedOrigins(t *testing.T) {
	cfg := testConfig(false)
	cfg.CORS = nil
	_, err := New(cfg, mock.NewMockDB(), true)
	assert.Error(t, err)

	cfg = testConfig(false)
	cfg.CORS.AllowedOrigins = nil
	_, err = New(cfg, mock.NewMockDB(), true)
	assert.Error(t, err)
}

func TestOriginAllowList(t *testing.T) {
	server, _ := newTestServer(t, false)

	tests := []struct {
		name     string
		origin   string
		expected int
	}{
		{name: "allowed origin", origin: testOrigin, expected: http.StatusBadRequest}, // empty DB: "No users found"
		{name: "unlisted origin", origin: "http://evil.example", expected: http.StatusForbidden},
		{name: "missing origin", origin: "", expected: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			server.router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestPreflightAllowsCredentials(t *testing.T) {
	server, _ := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestNoRouteContentNegotiation(t *testing.T) {
	server, _ := newTestServer(t, false)

	tests := []struct {
		name        string
		accept      string
		contentType string
		body        string
	}{
		{name: "html", accept: "text/html", contentType: "text/html; charset=utf-8", body: "<h1>404</h1>"},
		{name: "json", accept: "application/json", contentType: "application/json; charset=utf-8", body: `"404 Not Found"`},
		{name: "plain", accept: "text/plain", contentType: "text/plain; charset=utf-8", body: "404 Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
			req.Header.Set("Origin", testOrigin)
			req.Header.Set("Accept", tt.accept)
			w := httptest.NewRecorder()
			server.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestNoRouteServesStaticAtRoot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(false)
	cfg.StaticDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.StaticDir, "index.html"), []byte("<h1>welcome</h1>"), 0o644))

	server, err := New(cfg, mock.NewMockDB(), true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	req.Header.Set("Origin", testOrigin)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "welcome")

	// only existing files are served, anything else still 404s
	req = httptest.NewRequest(http.MethodGet, "/missing.html", nil)
	req.Header.Set("Origin", testOrigin)
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServerShutdown(t *testing.T) {
	server, _ := newTestServer(t, false)

	done := make(chan error, 1)
	go func() { done <- server.Run() }()

	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server, _ := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Origin", testOrigin)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRoutesMountedOnlyWhenEnabled(t *testing.T) {
	server, _ := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodPost, "/auth", nil)
	req.Header.Set("Origin", testOrigin)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOpenRoutesWhenAuthDisabled(t *testing.T) {
	server, db := newTestServer(t, false)

	user := &database.User{Username: "alice", Password: "hash", Roles: database.DefaultRoles(), Active: true}
	require.NoError(t, db.CreateUser(context.Background(), user))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", testOrigin)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}
