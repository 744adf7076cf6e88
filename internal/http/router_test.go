package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthfolio/internal/logger"
)

func TestRateLimit(t *testing.T) {
	h := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRequestLogger_AttachesLogger(t *testing.T) {
	var attached bool

	h := RequestLogger(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		attached = logger.FromContext(r.Context()) != slog.Default()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, attached)
}

func TestNew_Routes(t *testing.T) {
	denyAll := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}

	router := New(Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		RateLimit:      100,
		RateBurst:      100,
		Authenticate:   denyAll,
	}, Handlers{})

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{name: "health is public", method: http.MethodGet, path: "/healthz", want: http.StatusNoContent},
		{name: "api requires auth", method: http.MethodGet, path: "/api/v1/accounts", want: http.StatusUnauthorized},
		{name: "unknown path", method: http.MethodGet, path: "/nope", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestNew_CORSPreflight(t *testing.T) {
	router := New(Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		RateLimit:      100,
		RateBurst:      100,
		Authenticate:   func(next http.Handler) http.Handler { return next },
	}, Handlers{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/accounts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
