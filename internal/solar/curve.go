package solar

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// DefaultScaleFactor scales the curve so a cloudless summer noon approaches
// a 10 kW peak (values are in watt-like units of the scale factor; 10000
// truncates to whole kilowatts downstream).
const DefaultScaleFactor = 10000

// Curve produces plausible solar yield estimates from a closed-form function
// of time: a 24-hour sinusoid modulated by a seasonal term, steepened to
// concentrate output around midday, with bounded deterministic-looking noise.
// It is safe for concurrent use.
type Curve struct {
	scale float64

	mu  sync.Mutex
	rng *rand.Rand
}

// CurveOption configures a Curve.
type CurveOption func(*Curve)

// WithScaleFactor overrides the default scale factor.
func WithScaleFactor(scale float64) CurveOption {
	return func(c *Curve) {
		c.scale = scale
	}
}

// WithSeed makes the curve's noise and error-bound draws reproducible.
func WithSeed(seed int64) CurveOption {
	return func(c *Curve) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides the random source directly. The curve serializes access,
// so the source does not need to be safe for concurrent use itself.
func WithRand(rng *rand.Rand) CurveOption {
	return func(c *Curve) {
		c.rng = rng
	}
}

// NewCurve creates a Curve with the default scale factor and a time-seeded
// random source.
func NewCurve(opts ...CurveOption) *Curve {
	c := &Curve{
		scale: DefaultScaleFactor,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// At computes the yield estimate for the given unix time.
//
// The calendar breakdown is deliberately in local time even though series
// windows are UTC-aligned; the shape of the output depends on it, so it is
// kept as-is. The hour term folds the day of the month in, which makes it
// continuous within a month but not across month boundaries, also by
// construction.
func (c *Curve) At(timeUnix int64) YieldEstimate {
	t := time.Unix(timeUnix, 0)
	hour := float64(t.Day())*24 + float64(t.Hour()) +
		float64(t.Minute())/60 + float64(t.Second())/3600

	// scaleX gives the base sinusoid a 24-hour period; translateX moves its
	// minimum to hour 0.
	scaleX := math.Pi / 12
	translateX := -math.Pi / 2
	// translateY modulates by month: +0.5 at the summer solstice, -0.5 at
	// the winter solstice.
	translateY := math.Sin(math.Pi/6*float64(t.Month())+translateX) / 2

	base := math.Sin(scaleX*hour+translateX) + translateY
	// No yield at night.
	base = math.Max(0, base)
	// Steepen; the divisor normalizes the summer peak to ~1.
	base = math.Pow(base, 4) / math.Pow(1.5, 4)

	// Noise is the product of a long and a short sine over the integer hour
	// of day, modulating with small amplitude around 1, then randomized to a
	// factor slightly below or above 1.
	noise := (math.Sin(math.Pi*float64(t.Hour()))/20)*math.Sin(math.Pi*float64(t.Hour())/3) + 1
	noise = noise*c.uniform()/20 + 0.97

	output := base * noise * c.scale

	var errLow, errHigh float64
	if output > 0 {
		errLow = output - c.uniform()*output/10
		errHigh = output + c.uniform()*output/10
	}

	est := YieldEstimate{
		YieldKW: output,
		ErrLow:  errLow,
		ErrHigh: errHigh,
	}
	if !isFinite(est) {
		panic(fmt.Sprintf("solar: non-finite yield estimate at t=%d: %+v", timeUnix, est))
	}
	return est
}

func (c *Curve) uniform() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64()
}

func isFinite(e YieldEstimate) bool {
	for _, v := range []float64{e.YieldKW, e.ErrLow, e.ErrHigh} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
