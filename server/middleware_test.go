package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSHeaders(t *testing.T) {
	router, _ := testRouter(&mockGenerator{})

	w := postJSON(t, router, "/api/text-to-image", map[string]string{"prompt": "x"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSPreflight(t *testing.T) {
	router, _ := testRouter(&mockGenerator{})

	// Preflight succeeds on any path, registered or not.
	for _, path := range []string{"/api/text-to-image", "/api/conversations/abc/messages", "/anything"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, w.Body.String(), path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), path)
	}
}

func TestNotFound(t *testing.T) {
	router, _ := testRouter(&mockGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())
	// Unmatched routes still carry the CORS headers.
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestColorizeStatus(t *testing.T) {
	// Recorder output has no terminal attached, so statuses render plain.
	require.False(t, enableColor)
	assert.Equal(t, "200", colorizeStatus(200))
	assert.Equal(t, "404", colorizeStatus(404))
	assert.Equal(t, "500", colorizeStatus(500))
}
