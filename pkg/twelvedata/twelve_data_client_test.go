package twelvedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_DailyCloses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/time_series", r.URL.Path)
		require.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		require.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		// newest first, close as string - both quirks of the real API
		w.Write([]byte(`{"status":"ok","values":[
			{"datetime":"2024-06-07","close":"110.0"},
			{"datetime":"2024-06-06","close":105},
			{"datetime":"2024-06-05","close":"101.5"}
		]}`))
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL, ApiKey: "test-key"}
	history, err := client.DailyCloses(context.Background(), "AAPL", 30)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-06-05", "2024-06-06", "2024-06-07"}, history.Dates)
	require.Equal(t, []float64{101.5, 105, 110}, history.Closes)
}

func TestClient_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote", r.URL.Path)
		w.Write([]byte(`{"close":"110.0","previous_close":"100.0"}`))
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL, ApiKey: "test-key"}
	q, err := client.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, 110.0, q.CurrentPrice)
	require.Equal(t, 100.0, q.LastClose)
	require.InDelta(t, 10.0, q.ChangePct, 1e-9)
}

func TestClient_ApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"symbol not found"}`))
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL, ApiKey: "test-key"}
	_, err := client.DailyCloses(context.Background(), "NOPE", 30)
	require.Error(t, err)
	require.Contains(t, err.Error(), "symbol not found")
}
