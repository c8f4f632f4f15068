package fourier

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Phase maps ts to radians relative to origin: one full turn per scaleSeconds
// of elapsed time. A null (zero) ts yields NaN.
func Phase(ts, origin time.Time, scaleSeconds float64) float64 {
	if ts.IsZero() {
		return math.NaN()
	}
	return 2 * math.Pi * ElapsedSeconds(ts, origin) / scaleSeconds
}

// ElapsedSeconds is ts minus origin in seconds. It splits the difference into
// whole seconds and nanoseconds, so it holds over any span time.Time can
// represent, unlike Sub or UnixNano.
func ElapsedSeconds(ts, origin time.Time) float64 {
	return float64(ts.Unix()-origin.Unix()) + float64(ts.Nanosecond()-origin.Nanosecond())/1e9
}

// Origin returns the earliest non-null timestamp, or false when there is none.
func Origin(times []time.Time) (time.Time, bool) {
	var origin time.Time
	for _, ts := range times {
		if ts.IsZero() {
			continue
		}
		if origin.IsZero() || ts.Before(origin) {
			origin = ts
		}
	}
	return origin, !origin.IsZero()
}

// Normalize turns elapsed seconds into phases in place, with the same
// arithmetic as Phase. NaN marks a null and stays NaN. It fails with a
// DegenerateScaleError when scaleSeconds is not positive.
func Normalize(elapsed []float64, scaleSeconds float64) error {
	if !(scaleSeconds > 0) {
		return &DegenerateScaleError{Scale: time.Duration(scaleSeconds * float64(time.Second))}
	}
	floats.Scale(2*math.Pi, elapsed)
	for i := range elapsed {
		elapsed[i] /= scaleSeconds
	}
	return nil
}
