package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://devevent.example/"}, next)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"preflight from allowed origin", http.MethodOptions, "https://devevent.example", http.StatusNoContent, "https://devevent.example"},
		{"preflight from unknown origin", http.MethodOptions, "https://evil.example", http.StatusNoContent, ""},
		{"get from allowed origin", http.MethodGet, "https://devevent.example", http.StatusOK, "https://devevent.example"},
		{"get without origin", http.MethodGet, "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/events", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.method == http.MethodOptions {
				assert.Empty(t, rr.Body.String())
			}
			if tt.wantAllow != "" {
				assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
				assert.Equal(t, "Origin", rr.Header().Get("Vary"))
			}
		})
	}
}

func TestCORS_AnyOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"*"}, next)

	req := httptest.NewRequest(http.MethodOptions, "/events", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://anywhere.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, corsAllowMethods, rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
}
