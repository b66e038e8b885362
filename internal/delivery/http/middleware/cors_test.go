package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name            string
		allowed         []string
		origin          string
		method          string
		wantStatus      int
		wantAllowOrigin string
		wantCredentials string
		nextCalled      bool
	}{
		{
			name:            "allowed origin simple request",
			allowed:         []string{"https://app.example.com/"},
			origin:          "https://app.example.com",
			method:          http.MethodGet,
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "https://app.example.com",
			wantCredentials: "true",
			nextCalled:      true,
		},
		{
			name:       "unknown origin passes through without headers",
			allowed:    []string{"https://app.example.com"},
			origin:     "https://evil.example.com",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			nextCalled: true,
		},
		{
			name:            "preflight for allowed origin",
			allowed:         []string{"https://app.example.com"},
			origin:          "https://app.example.com",
			method:          http.MethodOptions,
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "https://app.example.com",
			wantCredentials: "true",
		},
		{
			name:       "preflight for unknown origin",
			allowed:    []string{"https://app.example.com"},
			origin:     "https://evil.example.com",
			method:     http.MethodOptions,
			wantStatus: http.StatusNoContent,
		},
		{
			name:            "wildcard admits any origin without credentials",
			allowed:         []string{"*"},
			origin:          "https://anyone.example.com",
			method:          http.MethodGet,
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "https://anyone.example.com",
			nextCalled:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			handler := CORS(tt.allowed, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(tt.method, "http://test/api/events/published", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.nextCalled, nextCalled)
			assert.Equal(t, tt.wantAllowOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, rr.Header().Get("Access-Control-Allow-Credentials"))
			if tt.method == http.MethodOptions && tt.wantAllowOrigin != "" {
				assert.Equal(t, corsAllowMethods, rr.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
