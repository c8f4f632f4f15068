// Package summary describes the time index of a table: its span, its null
// count and the distribution of gaps between consecutive observations.
package summary

import (
	"fmt"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/aevon-lab/tsfeatures/internal/core/frame"
)

// Summary describes a time column. Gap statistics are computed over the
// non-null timestamps in ascending order.
type Summary struct {
	Rows       int           `json:"rows"`
	Nulls      int           `json:"nulls"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	DiffMin    time.Duration `json:"diff_min"`
	DiffQ25    time.Duration `json:"diff_q25"`
	DiffMedian time.Duration `json:"diff_median"`
	DiffMean   time.Duration `json:"diff_mean"`
	DiffQ75    time.Duration `json:"diff_q75"`
	DiffMax    time.Duration `json:"diff_max"`
}

// Estimator derives the characteristic time scale of a series.
type Estimator interface {
	// MedianGap returns the median gap between consecutive non-null
	// timestamps. Input need not be sorted.
	MedianGap(t *frame.Table, dateColumn string) (time.Duration, error)
}

// EstimatorFunc adapts a function to the Estimator interface.
type EstimatorFunc func(t *frame.Table, dateColumn string) (time.Duration, error)

func (f EstimatorFunc) MedianGap(t *frame.Table, dateColumn string) (time.Duration, error) {
	return f(t, dateColumn)
}

// Default estimates the scale from Summarize.
var Default Estimator = EstimatorFunc(MedianGap)

// MedianGap is the DiffMedian of Summarize.
func MedianGap(t *frame.Table, dateColumn string) (time.Duration, error) {
	s, err := Summarize(t, dateColumn)
	if err != nil {
		return 0, err
	}
	return s.DiffMedian, nil
}

// Summarize computes the Summary of a time column. Fewer than two non-null
// timestamps leave every gap statistic at zero.
func Summarize(t *frame.Table, dateColumn string) (Summary, error) {
	if t == nil {
		return Summary{}, frame.ErrNilData
	}
	if err := frame.CheckDateColumn(t, dateColumn); err != nil {
		return Summary{}, fmt.Errorf("summarize: %w", err)
	}
	col, _ := t.Column(dateColumn)

	s := Summary{Rows: col.Len()}
	stamps := make([]time.Time, 0, col.Len())
	for _, ts := range col.Times() {
		if ts.IsZero() {
			s.Nulls++
			continue
		}
		stamps = append(stamps, ts)
	}
	if len(stamps) == 0 {
		return s, nil
	}
	slices.SortFunc(stamps, time.Time.Compare)
	s.Start = stamps[0].UTC()
	s.End = stamps[len(stamps)-1].UTC()
	if len(stamps) < 2 {
		return s, nil
	}

	// Neighbour gaps stay exact outside the UnixNano range (1678-2262).
	gaps := make([]int64, len(stamps)-1)
	for i := 1; i < len(stamps); i++ {
		gaps[i-1] = int64(stamps[i].Sub(stamps[i-1]))
	}
	slices.Sort(gaps)

	weights := make([]float64, len(gaps))
	sorted := make([]float64, len(gaps))
	for i, g := range gaps {
		sorted[i] = float64(g)
		weights[i] = 1
	}

	s.DiffMin = time.Duration(gaps[0])
	s.DiffMax = time.Duration(gaps[len(gaps)-1])
	s.DiffMedian = median(gaps)
	s.DiffMean = time.Duration(stat.Mean(sorted, weights))
	s.DiffQ25 = time.Duration(stat.Quantile(0.25, stat.LinInterp, sorted, nil))
	s.DiffQ75 = time.Duration(stat.Quantile(0.75, stat.LinInterp, sorted, nil))
	return s, nil
}

// median of sorted gaps; an even count averages the two middle values.
func median(sorted []int64) time.Duration {
	n := len(sorted)
	if n%2 == 1 {
		return time.Duration(sorted[n/2])
	}
	a, b := sorted[n/2-1], sorted[n/2]
	return time.Duration(a + (b-a)/2)
}
