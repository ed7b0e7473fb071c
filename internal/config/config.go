package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-prediction/internal/common"
)

type AppConfig struct {
	// InferenceURL is the endpoint of the remote multi-model inference
	// service.
	InferenceURL string

	// GeocoderAPIKey enables the Google geocoding path when set; otherwise
	// Open-Meteo geocoding is used.
	GeocoderAPIKey string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// WarmCities are pre-warmed by the scheduler; WarmInterval controls how
	// often, and doubles as the freshness TTL of warmed history windows.
	WarmCities   []string
	WarmInterval time.Duration

	// In-memory snapshot store retention.
	StoreMaxHistory int           // max number of snapshots (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.InferenceURL = getenvDefault("INFERENCE_URL", "http://localhost:8000/predict")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.WarmCities = common.SplitAndTrim(os.Getenv("WARM_CITIES"))

	warmStr := getenvDefault("WARM_INTERVAL", "30m")
	warm, err := time.ParseDuration(warmStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = warm

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 50)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
