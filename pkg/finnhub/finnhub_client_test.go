package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_NextEarnings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calendar/earnings", r.URL.Path)
		require.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		require.Equal(t, "test-key", r.URL.Query().Get("token"))
		require.NotEmpty(t, r.URL.Query().Get("from"))
		require.NotEmpty(t, r.URL.Query().Get("to"))

		w.Write([]byte(`{"earningsCalendar":[
			{"date":"2024-07-25","epsEstimate":1.34},
			{"date":"2024-10-24"}
		]}`))
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL, ApiKey: "test-key"}
	info, err := client.NextEarnings(context.Background(), "AAPL")
	require.NoError(t, err)
	require.True(t, info.Available)
	require.NotNil(t, info.NextEarningsDate)
	require.Equal(t, "2024-07-25", *info.NextEarningsDate)
}

func TestClient_NextEarnings_EmptyCalendar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"earningsCalendar":[]}`))
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL, ApiKey: "test-key"}
	info, err := client.NextEarnings(context.Background(), "NOPE")
	require.NoError(t, err)
	require.False(t, info.Available)
	require.Nil(t, info.NextEarningsDate)
}

func TestClient_NextEarnings_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL, ApiKey: "test-key"}
	_, err := client.NextEarnings(context.Background(), "AAPL")
	require.ErrorIs(t, err, ErrRateLimited)
}
