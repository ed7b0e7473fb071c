package providers

import (
	"context"
	"fmt"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-prediction/internal/common"
	"github.com/i474232898/weather-prediction/internal/forecast"
)

// GoogleGeocoder resolves place names through the Google Geocoding API via
// kelvins/geocoder. Preferred over Open-Meteo when an API key is configured.
type GoogleGeocoder struct{}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

func (g *GoogleGeocoder) Lookup(ctx context.Context, name string) (forecast.Location, error) {
	loc, err := geocoder.Geocoding(geocoder.Address{City: name})
	if err != nil {
		if common.HasAny(err.Error(), "ZERO_RESULTS", "no results") {
			return forecast.Location{}, &forecast.ValidationError{
				Code:    forecast.CodeLocationNotFound,
				Message: fmt.Sprintf("no location found for %q", name),
			}
		}
		return forecast.Location{}, &forecast.TransportError{
			Message: fmt.Sprintf("geocoding request failed: %v", err),
		}
	}

	return forecast.Location{
		Name:      name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}, nil
}
