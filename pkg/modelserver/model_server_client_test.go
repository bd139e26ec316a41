package modelserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "AAPL", body["ticker"])

		w.Write([]byte(`{"results":[
			{"model":"LSTM","predictions":[111,112,113],"confidence":[0.9,0.8,0.7]},
			{"model":"RF","preds":[110,111,112]}
		]}`))
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL}
	forecasts, err := client.Predict(context.Background(), "aapl", []string{"LSTM", "RF"})
	require.NoError(t, err)
	require.Len(t, forecasts, 2)
	require.Equal(t, []float64{111, 112, 113}, forecasts[0].Predictions)
	// legacy field name is normalized at the boundary
	require.Equal(t, []float64{110, 111, 112}, forecasts[1].Predictions)
}

func TestClient_BacktestHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/backtest", r.URL.Path)
		require.Equal(t, "AAPL", r.URL.Query().Get("ticker"))
		require.Equal(t, "LSTM", r.URL.Query().Get("models"))

		w.Write([]byte(`{"rows":[
			{"date":"2024-06-06","actual":105,"pred":{"LSTM":104.2}},
			{"date":"2024-06-07","actual":null,"predictions":{"LSTM":108.9}}
		]}`))
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL}
	rows, err := client.BacktestHistory(context.Background(), "AAPL", []string{"LSTM"}, 30)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 105.0, *rows[0].Actual)
	require.Nil(t, rows[1].Actual)
	require.Equal(t, 108.9, rows[1].Pred["LSTM"])
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL}
	_, err := client.Predict(context.Background(), "AAPL", []string{"LSTM"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}
