package solar

import (
	"time"
)

// YieldEstimate is the raw output of the yield curve at a single instant:
// a point estimate in kilowatts plus an asymmetric uncertainty band.
type YieldEstimate struct {
	YieldKW float64
	ErrLow  float64
	ErrHigh float64
}

// PredictedYield is a single point in a yield time series as served to
// consumers. Values are truncated to whole kilowatts. Actual (realized)
// yield series share the same shape.
type PredictedYield struct {
	TimeUnix int64 `json:"timeUnix"`
	YieldKW  int   `json:"yieldKW"`
	ErrLow   int   `json:"errLow"`
	ErrHigh  int   `json:"errHigh"`
}

// YieldSnapshot is a live sample of instantaneous generation for a location,
// produced by the sampling job rather than the series generator.
type YieldSnapshot struct {
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"` // always UTC
	YieldKW   float64   `json:"yieldKW"`
	ErrLow    float64   `json:"errLow"`
	ErrHigh   float64   `json:"errHigh"`
}
