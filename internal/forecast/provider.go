package forecast

import (
	"context"
	"time"
)

// DailyHistory is a history provider's day-indexed response: one parallel
// array per field, ascending by date, with Time at least as long as each
// required field array. Optional arrays may be shorter or absent.
type DailyHistory struct {
	Time          []string
	MaxTemp       []float64
	MinTemp       []float64
	Precipitation []float64
	Snowfall      []float64
	SnowDepth     []float64
}

// Geocoder resolves a free-text place name to its best-match location.
type Geocoder interface {
	Lookup(ctx context.Context, name string) (Location, error)
}

// HistoryProvider fetches daily weather history for a coordinate over an
// explicit calendar range (inclusive).
type HistoryProvider interface {
	FetchDaily(ctx context.Context, lat, lon float64, start, end time.Time) (DailyHistory, error)
}

// PredictedValue is one model's successful result from the inference service.
type PredictedValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// InferenceResponse is the inference boundary's reply to one round-trip.
// Every dispatched id should appear in exactly one of the two maps; ids
// missing from both are treated as failed during reconciliation.
type InferenceResponse struct {
	Predictions map[string]PredictedValue `json:"predictions"`
	Errors      map[string]string         `json:"errors,omitempty"`
}

// InferenceRunner dispatches one batch of model ids against a feature window
// in a single logical round-trip; per-model fan-out happens remotely.
type InferenceRunner interface {
	Run(ctx context.Context, models []string, window [][]float64) (InferenceResponse, error)
}

// Store keeps completed prediction snapshots for display.
type Store interface {
	Save(snapshot Snapshot)
	Latest() (Snapshot, error)
	Recent(limit int) []Snapshot
	Clear()
}
