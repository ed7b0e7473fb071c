package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/weather-prediction/internal/forecast"
)

// OpenMeteoArchive fetches daily historical weather from the Open-Meteo
// archive API as day-indexed parallel arrays, ascending by date. Units are
// Fahrenheit and inches to match the catalog models' training data.
type OpenMeteoArchive struct {
	baseURL string
	rc      *resilientClient
}

func NewOpenMeteoArchive(client *http.Client) *OpenMeteoArchive {
	return &OpenMeteoArchive{
		baseURL: "https://archive-api.open-meteo.com/v1/archive",
		rc:      newResilientClient(client, "openmeteo-archive", defaultBackoff),
	}
}

func (p *OpenMeteoArchive) FetchDaily(ctx context.Context, lat, lon float64, start, end time.Time) (forecast.DailyHistory, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", lat))
	values.Set("longitude", fmt.Sprintf("%.4f", lon))
	values.Set("start_date", start.Format("2006-01-02"))
	values.Set("end_date", end.Format("2006-01-02"))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,snowfall_sum")
	values.Set("temperature_unit", "fahrenheit")
	values.Set("precipitation_unit", "inch")
	values.Set("timezone", "UTC")

	resp, err := p.rc.get(ctx, p.baseURL+"?"+values.Encode())
	if err != nil {
		return forecast.DailyHistory{}, &forecast.TransportError{
			Message: fmt.Sprintf("history request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			Time      []string  `json:"time"`
			TempMax   []float64 `json:"temperature_2m_max"`
			TempMin   []float64 `json:"temperature_2m_min"`
			Precip    []float64 `json:"precipitation_sum"`
			Snowfall  []float64 `json:"snowfall_sum"`
			SnowDepth []float64 `json:"snow_depth_max"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.DailyHistory{}, &forecast.TransportError{
			Message: fmt.Sprintf("history response malformed: %v", err),
		}
	}

	d := payload.Daily
	return forecast.DailyHistory{
		Time:          d.Time,
		MaxTemp:       d.TempMax,
		MinTemp:       d.TempMin,
		Precipitation: d.Precip,
		Snowfall:      d.Snowfall,
		SnowDepth:     d.SnowDepth,
	}, nil
}
