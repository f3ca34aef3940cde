package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/solar-yield-simulation/internal/solar"
)

type AppConfig struct {
	// Locations to serve and sample.
	Locations []string

	// ScaleFactor for the yield curve; 10000 gives a ~10 kW summer peak.
	ScaleFactor float64

	// SampleInterval controls how often the live feed samples each location.
	SampleInterval time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// GeocoderAPIKey enables coordinate enrichment when set.
	GeocoderAPIKey string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msgf("no .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Locations = splitLocations(getenvDefault("SOLAR_LOCATIONS", "didcot"))

	scale, err := getenvFloat("SOLAR_SCALE_FACTOR", solar.DefaultScaleFactor)
	if err != nil {
		return nil, fmt.Errorf("invalid SOLAR_SCALE_FACTOR: %w", err)
	}
	cfg.ScaleFactor = scale

	// Sampling interval: default matches the series step.
	intervalStr := getenvDefault("SAMPLE_INTERVAL", "5m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SAMPLE_INTERVAL: %w", err)
	}
	cfg.SampleInterval = interval

	// Store retention: two days of history at the default 5-minute step.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 576)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "48h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func splitLocations(s string) []string {
	var locs []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			locs = append(locs, part)
		}
	}
	return locs
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

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}
