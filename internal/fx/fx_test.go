package fx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthfolio/internal/fx"
)

var fallback = decimal.NewFromInt(1400)

func TestClient_USDKRW(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{
			name:   "Live",
			status: http.StatusOK,
			body:   `{"amount":1.0,"base":"USD","date":"2025-03-14","rates":{"KRW":1452.37}}`,
			want:   "1452.37",
		},
		{
			name:    "ServerError",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			want:    "1400",
			wantErr: true,
		},
		{
			name:    "MissingRate",
			status:  http.StatusOK,
			body:    `{"amount":1.0,"base":"USD","rates":{"EUR":0.92}}`,
			want:    "1400",
			wantErr: true,
		},
		{
			name:    "Malformed",
			status:  http.StatusOK,
			body:    `{"rates":`,
			want:    "1400",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := fx.NewClient(srv.URL, fallback, time.Minute)

			_, err := c.Fetch(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			got := c.USDKRW(context.Background())
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestClient_USDKRW_Caches(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"base":"USD","rates":{"KRW":1390}}`))
	}))
	defer srv.Close()

	c := fx.NewClient(srv.URL, fallback, time.Minute)

	for range 3 {
		got := c.USDKRW(context.Background())
		require.True(t, decimal.NewFromInt(1390).Equal(got))
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_USDKRW_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := fx.NewClient(url, fallback, time.Minute)

	assert.True(t, fallback.Equal(c.USDKRW(context.Background())))
	assert.True(t, fallback.Equal(c.Fallback()))
}
