package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-prediction/internal/forecast"
	"github.com/i474232898/weather-prediction/internal/store"
)

type fixedGeocoder struct{}

func (fixedGeocoder) Lookup(ctx context.Context, name string) (forecast.Location, error) {
	return forecast.Location{Name: name, Latitude: 43.07, Longitude: -89.4}, nil
}

type fixedHistory struct{}

func (fixedHistory) FetchDaily(ctx context.Context, lat, lon float64, start, end time.Time) (forecast.DailyHistory, error) {
	h := forecast.DailyHistory{}
	for i := 0; i < forecast.WindowSize; i++ {
		h.Time = append(h.Time, start.AddDate(0, 0, i).Format("2006-01-02"))
		h.MaxTemp = append(h.MaxTemp, 35)
		h.MinTemp = append(h.MinTemp, 20)
	}
	return h, nil
}

type fixedInference struct{}

func (fixedInference) Run(ctx context.Context, models []string, window [][]float64) (forecast.InferenceResponse, error) {
	preds := make(map[string]forecast.PredictedValue, len(models))
	for _, id := range models {
		preds[id] = forecast.PredictedValue{Value: 41.2, Unit: "°F"}
	}
	return forecast.InferenceResponse{Predictions: preds}, nil
}

func newTestApp() *fiber.App {
	app := fiber.New()

	memStore := store.NewMemoryStore(10, time.Hour)
	svc := forecast.NewService(fixedGeocoder{}, fixedHistory{}, fixedInference{}, forecast.DefaultLinearModel(), memStore, time.Hour)
	RegisterRoutes(app, svc)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func validRows() []forecast.RawRow {
	rows := make([]forecast.RawRow, forecast.WindowSize)
	for i := range rows {
		rows[i] = forecast.RawRow{MaxTemp: "35", MinTemp: "20"}
	}
	return rows
}

// TestPredictionValidation verifies that malformed submissions are rejected
// before any prediction runs.
func TestPredictionValidation(t *testing.T) {
	app := newTestApp()

	// Too few rows should return 400.
	resp := postJSON(t, app, "/api/v1/predictions", map[string]any{
		"models": []string{"rf"},
		"rows":   validRows()[:10],
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Empty model selection should also return 400.
	resp = postJSON(t, app, "/api/v1/predictions", map[string]any{
		"models": []string{},
		"rows":   validRows(),
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestPredictionSuccess(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/predictions", map[string]any{
		"models": []string{"rf", "ridge_local"},
		"rows":   validRows(),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var payload struct {
		State    forecast.DisplayState                  `json:"state"`
		Outcomes map[string]forecast.PredictionOutcome `json:"outcomes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.State != forecast.StateResults {
		t.Fatalf("expected state %q, got %q", forecast.StateResults, payload.State)
	}
	if len(payload.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(payload.Outcomes))
	}
	if payload.Outcomes["rf"].Status != forecast.OutcomeSuccess {
		t.Fatalf("expected rf to succeed, got %+v", payload.Outcomes["rf"])
	}
}

func TestModelsEndpoint(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var payload struct {
		Models      []forecast.ModelSpec `json:"models"`
		Recommended []string             `json:"recommended"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Models) == 0 || len(payload.Recommended) == 0 {
		t.Fatalf("expected a non-empty catalog and recommended set")
	}
}

// TestLatestLifecycle walks the display state machine over HTTP: no result,
// then results after a prediction, then no result again after a reset.
func TestLatestLifecycle(t *testing.T) {
	app := newTestApp()

	get := func() forecast.Snapshot {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/predictions/latest", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var snap forecast.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			t.Fatalf("failed to decode snapshot: %v", err)
		}
		return snap
	}

	if snap := get(); snap.State != forecast.StateNoResult {
		t.Fatalf("expected initial state %q, got %q", forecast.StateNoResult, snap.State)
	}

	resp := postJSON(t, app, "/api/v1/predictions", map[string]any{
		"models": []string{"rf"},
		"rows":   validRows(),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	if snap := get(); snap.State != forecast.StateResults {
		t.Fatalf("expected state %q after prediction, got %q", forecast.StateResults, snap.State)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/predictions/latest", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap := get(); snap.State != forecast.StateNoResult {
		t.Fatalf("expected state %q after reset, got %q", forecast.StateNoResult, snap.State)
	}
}

func TestCityPredictionRequiresCity(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/predictions/city", map[string]any{
		"models": []string{"rf"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestCityPredictionSuccess(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/predictions/city", map[string]any{
		"city":   "Madison",
		"models": []string{"rf"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var payload struct {
		Location forecast.Location                      `json:"location"`
		Outcomes map[string]forecast.PredictionOutcome `json:"outcomes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Location.Name != "Madison" {
		t.Fatalf("expected resolved location Madison, got %+v", payload.Location)
	}
	if payload.Outcomes["rf"].Status != forecast.OutcomeSuccess {
		t.Fatalf("expected rf to succeed, got %+v", payload.Outcomes["rf"])
	}
}
