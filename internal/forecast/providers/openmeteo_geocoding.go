package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/weather-prediction/internal/forecast"
)

// OpenMeteoGeocoder resolves place names through the Open-Meteo geocoding
// API. It is the default geocoding boundary; no API key required.
type OpenMeteoGeocoder struct {
	baseURL string
	rc      *resilientClient
}

func NewOpenMeteoGeocoder(client *http.Client) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL: "https://geocoding-api.open-meteo.com/v1/search",
		rc:      newResilientClient(client, "openmeteo-geocoding", defaultBackoff),
	}
}

func (g *OpenMeteoGeocoder) Lookup(ctx context.Context, name string) (forecast.Location, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")
	values.Set("language", "en")
	values.Set("format", "json")

	resp, err := g.rc.get(ctx, g.baseURL+"?"+values.Encode())
	if err != nil {
		return forecast.Location{}, &forecast.TransportError{
			Message: fmt.Sprintf("geocoding request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.Location{}, &forecast.TransportError{
			Message: fmt.Sprintf("geocoding response malformed: %v", err),
		}
	}

	if len(payload.Results) == 0 {
		return forecast.Location{}, &forecast.ValidationError{
			Code:    forecast.CodeLocationNotFound,
			Message: fmt.Sprintf("no location found for %q", name),
		}
	}

	best := payload.Results[0]
	return forecast.Location{
		Name:      best.Name,
		Country:   best.Country,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
	}, nil
}
