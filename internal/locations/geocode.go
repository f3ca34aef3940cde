package locations

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

// backoffConfig controls exponential backoff behaviour for geocoder calls.
type backoffConfig struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

var errCircuitOpen = errors.New("circuit breaker open")

// geocodeClient wraps the geocoding API with retries, exponential backoff,
// and a circuit breaker, so a misbehaving upstream cannot stall startup.
type geocodeClient struct {
	circuit *gobreaker.CircuitBreaker
	backoff backoffConfig
}

func newGeocodeClient(apiKey string) *geocodeClient {
	geocoder.ApiKey = apiKey

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &geocodeClient{
		circuit: cb,
		backoff: backoffConfig{
			maxRetries:      3,
			initialInterval: 500 * time.Millisecond,
			maxInterval:     5 * time.Second,
		},
	}
}

// resolve looks up coordinates for a location name.
func (g *geocodeClient) resolve(name string) (lat, lon float64, err error) {
	var attempt int
	var lastErr error

	for {
		result, execErr := g.circuit.Execute(func() (interface{}, error) {
			loc, geoErr := geocoder.Geocoding(geocoder.Address{City: name})
			if geoErr != nil {
				return nil, geoErr
			}
			return loc, nil
		})

		if execErr == nil {
			loc, ok := result.(geocoder.Location)
			if !ok {
				return 0, 0, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return loc.Latitude, loc.Longitude, nil
		}

		// If circuit is open, propagate immediately.
		if errors.Is(execErr, gobreaker.ErrOpenState) || errors.Is(execErr, gobreaker.ErrTooManyRequests) {
			return 0, 0, fmt.Errorf("%w: %v", errCircuitOpen, execErr)
		}

		lastErr = execErr
		if attempt >= g.backoff.maxRetries {
			return 0, 0, lastErr
		}

		// Backoff with exponential delay.
		delay := g.backoff.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if g.backoff.maxInterval > 0 && delay > g.backoff.maxInterval {
			delay = g.backoff.maxInterval
		}
		time.Sleep(delay)
		attempt++
	}
}
