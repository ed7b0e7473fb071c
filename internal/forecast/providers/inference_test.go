package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-prediction/internal/forecast"
)

func testWindow() [][]float64 {
	w := make([][]float64, forecast.WindowSize)
	for i := range w {
		w[i] = []float64{30, 15, 0.1, 0, 0}
	}
	return w
}

func TestInferenceClientRun(t *testing.T) {
	var gotBody struct {
		Models []string    `json:"models"`
		Window [][]float64 `json:"window"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"predictions": {"rf": {"value": 41.2, "unit": "°F"}},
			"errors": {"gbr_tuned": "timeout"}
		}`))
	}))
	defer srv.Close()

	client := NewInferenceClient(srv.Client(), srv.URL)

	resp, err := client.Run(context.Background(), []string{"rf", "gbr_tuned"}, testWindow())
	require.NoError(t, err)

	assert.Equal(t, []string{"rf", "gbr_tuned"}, gotBody.Models)
	assert.Len(t, gotBody.Window, forecast.WindowSize)
	assert.Equal(t, forecast.PredictedValue{Value: 41.2, Unit: "°F"}, resp.Predictions["rf"])
	assert.Equal(t, "timeout", resp.Errors["gbr_tuned"])
}

func TestInferenceClientPrefersErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "model store offline"}`))
	}))
	defer srv.Close()

	client := NewInferenceClient(srv.Client(), srv.URL)

	_, err := client.Run(context.Background(), []string{"rf"}, testWindow())

	var terr *forecast.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "model store offline", terr.Message)
}

func TestInferenceClientGenericStatusMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream blew up"))
	}))
	defer srv.Close()

	client := NewInferenceClient(srv.Client(), srv.URL)

	_, err := client.Run(context.Background(), []string{"rf"}, testWindow())

	var terr *forecast.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "inference service returned status 502", terr.Message)
}

func TestInferenceClientConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewInferenceClient(&http.Client{Timeout: time.Second}, srv.URL)

	_, err := client.Run(context.Background(), []string{"rf"}, testWindow())

	var terr *forecast.TransportError
	require.ErrorAs(t, err, &terr)
}
