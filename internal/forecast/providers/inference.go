package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-prediction/internal/forecast"
)

// InferenceClient talks to the remote multi-model inference service. One
// logical call carries the full model-id list and the full feature window;
// the service fans out per model. The round-trip is never retried: a failure
// is surfaced once as a request-level error.
type InferenceClient struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewInferenceClient(client *http.Client, url string) *InferenceClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "inference",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &InferenceClient{url: url, client: client, breaker: cb}
}

type inferenceRequest struct {
	Models []string    `json:"models"`
	Window [][]float64 `json:"window"`
}

func (c *InferenceClient) Run(ctx context.Context, models []string, window [][]float64) (forecast.InferenceResponse, error) {
	body, err := json.Marshal(inferenceRequest{Models: models, Window: window})
	if err != nil {
		return forecast.InferenceResponse{}, &forecast.TransportError{
			Message: fmt.Sprintf("inference request encoding failed: %v", err),
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		resp, doErr := c.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		defer resp.Body.Close()

		raw, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, errors.New(statusMessage(resp.StatusCode, raw))
		}

		var decoded forecast.InferenceResponse
		if umErr := json.Unmarshal(raw, &decoded); umErr != nil {
			return nil, fmt.Errorf("inference response malformed: %v", umErr)
		}
		return decoded, nil
	})
	if err != nil {
		return forecast.InferenceResponse{}, &forecast.TransportError{Message: err.Error()}
	}

	return result.(forecast.InferenceResponse), nil
}

// statusMessage prefers the service's own structured error payload verbatim
// over a generic status line.
func statusMessage(status int, raw []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("inference service returned status %d", status)
}
