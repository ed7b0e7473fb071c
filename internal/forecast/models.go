package forecast

import (
	"time"
)

// WindowSize is the number of daily observations driving one prediction.
const WindowSize = 14

// RawRow carries one day's observations exactly as entered into the form.
// All fields are free text; parsing and defaulting happen in BuildMatrix.
type RawRow struct {
	MaxTemp       string `json:"maxTemp"`
	MinTemp       string `json:"minTemp"`
	Precipitation string `json:"precipitation"`
	Snowfall      string `json:"snowfall"`
	SnowDepth     string `json:"snowDepth"`
}

// MeasurementRow is one validated day of observations. Both temperatures are
// required; the remaining fields default to 0 when absent from the input.
type MeasurementRow struct {
	MaxTemp       float64 `json:"maxTemp"`
	MinTemp       float64 `json:"minTemp"`
	Precipitation float64 `json:"precipitation"`
	Snowfall      float64 `json:"snowfall"`
	SnowDepth     float64 `json:"snowDepth"`
}

// MeasurementMatrix is the canonical feature window: exactly WindowSize rows,
// index 0 the earliest day, index WindowSize-1 the most recent day before the
// prediction target. It is a value type; edits produce a new instance.
type MeasurementMatrix [WindowSize]MeasurementRow

// MinTemps returns the minimum-temperature column, earliest day first. This
// is the feature vector of the embedded linear model.
func (m MeasurementMatrix) MinTemps() []float64 {
	out := make([]float64, WindowSize)
	for i, row := range m {
		out[i] = row.MinTemp
	}
	return out
}

// Window returns the matrix in the inference wire format: WindowSize rows of
// five values each, in field order max, min, precipitation, snowfall, depth.
func (m MeasurementMatrix) Window() [][]float64 {
	out := make([][]float64, WindowSize)
	for i, row := range m {
		out[i] = []float64{row.MaxTemp, row.MinTemp, row.Precipitation, row.Snowfall, row.SnowDepth}
	}
	return out
}

// Location is a geocoded place.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OutcomeStatus tags the two PredictionOutcome variants.
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "failure"
)

// PredictionOutcome is one model's result within a completed request: either
// a predicted value with its unit, or a failure message. A model failure
// never affects the other models' outcomes.
type PredictionOutcome struct {
	Status  OutcomeStatus `json:"status"`
	Value   float64       `json:"value,omitempty"`
	Unit    string        `json:"unit,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Succeeded builds a success outcome.
func Succeeded(value float64, unit string) PredictionOutcome {
	return PredictionOutcome{Status: OutcomeSuccess, Value: value, Unit: unit}
}

// Failed builds a failure outcome.
func Failed(message string) PredictionOutcome {
	return PredictionOutcome{Status: OutcomeFailure, Message: message}
}

// DisplayState is the three-way presentation state derived from the most
// recent request: nothing to show, one request-level error, or a result set.
type DisplayState string

const (
	StateNoResult DisplayState = "no_result"
	StateError    DisplayState = "error"
	StateResults  DisplayState = "results"
)

// Snapshot captures one completed prediction request for display. The outcome
// map may mix successes and failures; that is an expected state, not an
// exceptional one.
type Snapshot struct {
	ID          string                       `json:"id"`
	RequestedAt time.Time                    `json:"requestedAt"`
	State       DisplayState                 `json:"state"`
	Message     string                       `json:"message,omitempty"`
	Outcomes    map[string]PredictionOutcome `json:"outcomes,omitempty"`
	Location    *Location                    `json:"location,omitempty"`
}
