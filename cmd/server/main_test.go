package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"trip-tracker/internal/config"
	"trip-tracker/internal/handlers"
	"trip-tracker/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	// Relative paths for tests running in cmd/server
	h := handlers.NewHandlers(db, logger, "../../web/templates", false)
	router := setupRouter(h, "../../web/static")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "Trips page requires auth",
			method:     "GET",
			path:       "/",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Login page is public",
			method:     "GET",
			path:       "/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Signup page is public",
			method:     "GET",
			path:       "/signup",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Health check",
			method:     "GET",
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Trip detail requires auth",
			method:     "GET",
			path:       "/trip/1",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Static file access",
			method:     "GET",
			path:       "/static/style.css",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code,
				"%s %s returned unexpected status", tt.method, tt.path)
		})
	}
}

func testConfig(user, pass string) *config.Config {
	return &config.Config{AdminUser: user, AdminPassword: pass}
}

func TestBootstrapAdmin(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	cfg := testConfig("admin", "adminpass")
	require.NoError(t, bootstrapAdmin(db, cfg))

	user, err := db.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	// Second run is a no-op
	require.NoError(t, bootstrapAdmin(db, cfg))
	count, err := db.UserCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBootstrapAdmin_Unset(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, bootstrapAdmin(db, testConfig("", "")))

	count, err := db.UserCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}
