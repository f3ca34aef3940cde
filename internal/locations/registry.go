// Package locations tracks the set of locations the simulator serves.
// Coordinates are metadata only; they never influence the generated yield.
package locations

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Location is a registered place the simulator serves data for.
type Location struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// Registry is a concurrency-safe registry of locations. When geocoding is
// enabled, registration enriches entries with coordinates; otherwise entries
// carry only an ID and name.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Location
	geo    *geocodeClient
}

// Option configures a Registry.
type Option func(*Registry)

// WithGeocoding enables coordinate enrichment via the Google geocoding API.
func WithGeocoding(apiKey string) Option {
	return func(r *Registry) {
		r.geo = newGeocodeClient(apiKey)
	}
}

// NewRegistry creates a Registry. Geocoding is off unless configured.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byName: make(map[string]Location),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a location by name, assigning it a fresh ID. Registering an
// already-known name returns the existing entry. A failed geocoder lookup is
// logged and the entry kept without coordinates; registration never fails on
// enrichment.
func (r *Registry) Register(name string) Location {
	r.mu.Lock()
	defer r.mu.Unlock()

	if loc, ok := r.byName[name]; ok {
		return loc
	}

	loc := Location{
		ID:   uuid.New(),
		Name: name,
	}

	if r.geo != nil {
		lat, lon, err := r.geo.resolve(name)
		if err != nil {
			log.Warn().Err(err).Str("location", name).Msg("geocoding failed; registering without coordinates")
		} else {
			loc.Latitude = &lat
			loc.Longitude = &lon
		}
	}

	r.byName[name] = loc
	return loc
}

// Lookup returns the registered location for a name.
func (r *Registry) Lookup(name string) (Location, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loc, ok := r.byName[name]
	return loc, ok
}

// All returns every registered location, ordered by name.
func (r *Registry) All() []Location {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locs := make([]Location, 0, len(r.byName))
	for _, loc := range r.byName {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool {
		return locs[i].Name < locs[j].Name
	})
	return locs
}
