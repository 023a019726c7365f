//go:build unit || e2e

// Package httptest wraps net/http/httptest for handler tests: JSON request
// building, session header plumbing and response assertions.
package httptest

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"pod-booking-core/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// PerformRequest executes an HTTP request against the router, attaching the
// booking-session header when sessionID is non-empty.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, sessionID string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeResponseBody decodes the JSON response body into target.
func DecodeResponseBody(t *testing.T, body *bytes.Buffer, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(target), "Failed to decode response body")
}
