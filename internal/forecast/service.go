package forecast

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// localUnit is the unit of the embedded model's output. History fetches use
// the same unit family (see the archive provider).
const localUnit = "°F"

// defaultWarmTTL bounds how long a warmed history matrix is served without a
// fresh fetch.
const defaultWarmTTL = 30 * time.Minute

// Service runs the prediction pipeline: validation of the model selection
// and matrix, one round-trip against the inference boundary for the remote
// models, local evaluation of the embedded model, and reconciliation of a
// per-model outcome map. The service holds no cross-request state beyond the
// display store and the warm history cache; resubmitting the same request is
// always safe and yields a fresh, independent outcome.
type Service struct {
	geocoder  Geocoder
	history   HistoryProvider
	inference InferenceRunner
	local     LinearModel
	store     Store

	warmTTL time.Duration

	mu     sync.Mutex
	warmed map[string]warmEntry
}

type warmEntry struct {
	matrix    MeasurementMatrix
	location  Location
	fetchedAt time.Time
}

// NewService creates a new Service. A warmTTL of zero or less falls back to
// the default.
func NewService(geocoder Geocoder, history HistoryProvider, inference InferenceRunner, local LinearModel, store Store, warmTTL time.Duration) *Service {
	if warmTTL <= 0 {
		warmTTL = defaultWarmTTL
	}
	return &Service{
		geocoder:  geocoder,
		history:   history,
		inference: inference,
		local:     local,
		store:     store,
		warmTTL:   warmTTL,
		warmed:    make(map[string]warmEntry),
	}
}

// Predict runs one prediction request over a manually entered matrix and
// records the resulting display snapshot. On success the returned map covers
// exactly the requested ids, each either a success or a failure; a non-nil
// error is a request-level failure and the map is empty.
func (s *Service) Predict(ctx context.Context, models []string, matrix MeasurementMatrix) (map[string]PredictionOutcome, error) {
	outcomes, err := s.predict(ctx, models, matrix)
	s.record(nil, outcomes, err)
	return outcomes, err
}

// PredictForCity resolves a free-text city name, builds the measurement
// window from provider history (served from the warm cache when fresh), and
// runs the same pipeline as Predict.
func (s *Service) PredictForCity(ctx context.Context, city string, models []string) (map[string]PredictionOutcome, Location, error) {
	// Selection errors should surface before any upstream round-trip.
	if _, _, err := partitionSelection(models); err != nil {
		s.record(nil, nil, err)
		return nil, Location{}, err
	}

	matrix, loc, err := s.matrixForCity(ctx, city)
	if err != nil {
		s.record(nil, nil, err)
		return nil, Location{}, err
	}

	outcomes, err := s.predict(ctx, models, matrix)
	s.record(&loc, outcomes, err)
	return outcomes, loc, err
}

func (s *Service) predict(ctx context.Context, models []string, matrix MeasurementMatrix) (map[string]PredictionOutcome, error) {
	local, remote, err := partitionSelection(models)
	if err != nil {
		return nil, err
	}
	if err := matrix.Validate(); err != nil {
		return nil, err
	}

	outcomes := make(map[string]PredictionOutcome, len(local)+len(remote))

	for _, id := range local {
		value, predictErr := s.local.Predict(matrix.MinTemps())
		if predictErr != nil {
			outcomes[id] = Failed(predictErr.Error())
			continue
		}
		outcomes[id] = Succeeded(value, localUnit)
	}

	if len(remote) > 0 {
		resp, runErr := s.inference.Run(ctx, remote, matrix.Window())
		if runErr != nil {
			return nil, runErr
		}

		for _, id := range remote {
			if p, ok := resp.Predictions[id]; ok {
				outcomes[id] = Succeeded(p.Value, p.Unit)
				continue
			}
			if msg, ok := resp.Errors[id]; ok {
				outcomes[id] = Failed(msg)
				continue
			}
			// Protocol violation: the boundary dropped the id entirely.
			outcomes[id] = Failed("no result returned for this model")
		}
	}

	return outcomes, nil
}

// partitionSelection de-duplicates the requested ids and splits them into
// locally evaluated and remotely dispatched models. Ids outside the catalog
// fail validation here and never reach the inference boundary.
func partitionSelection(models []string) (local, remote []string, err error) {
	if len(models) == 0 {
		return nil, nil, validationErrorf(CodeEmptySelection, "select at least one model")
	}

	seen := make(map[string]struct{}, len(models))
	for _, id := range models {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		spec, ok := LookupModel(id)
		if !ok {
			return nil, nil, validationErrorf(CodeUnknownModel, "unknown model %q", id)
		}
		if spec.Local {
			local = append(local, id)
		} else {
			remote = append(remote, id)
		}
	}
	return local, remote, nil
}

func (s *Service) matrixForCity(ctx context.Context, city string) (MeasurementMatrix, Location, error) {
	key := cityKey(city)

	s.mu.Lock()
	entry, ok := s.warmed[key]
	s.mu.Unlock()
	if ok && time.Since(entry.fetchedAt) < s.warmTTL {
		return entry.matrix, entry.location, nil
	}

	loc, err := s.geocoder.Lookup(ctx, city)
	if err != nil {
		return MeasurementMatrix{}, Location{}, err
	}

	start, end := HistoryRange(time.Now())
	hist, err := s.history.FetchDaily(ctx, loc.Latitude, loc.Longitude, start, end)
	if err != nil {
		return MeasurementMatrix{}, Location{}, err
	}

	matrix, err := MatrixFromHistory(hist)
	if err != nil {
		return MeasurementMatrix{}, Location{}, fmt.Errorf("history for %q: %w", city, err)
	}

	s.mu.Lock()
	s.warmed[key] = warmEntry{matrix: matrix, location: loc, fetchedAt: time.Now()}
	s.mu.Unlock()

	return matrix, loc, nil
}

// RefreshHistory forces a fresh history fetch for city and warms the cache
// with the result. Used by the background scheduler.
func (s *Service) RefreshHistory(ctx context.Context, city string) error {
	s.mu.Lock()
	delete(s.warmed, cityKey(city))
	s.mu.Unlock()

	_, _, err := s.matrixForCity(ctx, city)
	if err != nil {
		return err
	}
	log.Printf("forecast: warmed history window for %s", city)
	return nil
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func (s *Service) record(loc *Location, outcomes map[string]PredictionOutcome, err error) {
	snap := Snapshot{
		ID:          uuid.NewString(),
		RequestedAt: time.Now().UTC(),
		Location:    loc,
	}
	if err != nil {
		snap.State = StateError
		snap.Message = err.Error()
	} else {
		snap.State = StateResults
		snap.Outcomes = outcomes
	}
	s.store.Save(snap)
}

// Latest returns the display snapshot of the most recent request, or a
// no-result snapshot when nothing has been recorded since the last reset.
func (s *Service) Latest() Snapshot {
	snap, err := s.store.Latest()
	if err != nil {
		return Snapshot{State: StateNoResult}
	}
	return snap
}

// Recent lists up to limit recorded snapshots, newest first.
func (s *Service) Recent(limit int) []Snapshot {
	return s.store.Recent(limit)
}

// Reset clears all recorded snapshots, returning the display to no-result.
// It does not cancel network work already issued.
func (s *Service) Reset() {
	s.store.Clear()
}
