package fourier

import "github.com/aevon-lab/tsfeatures/internal/core/frame"

// rowEngine walks the table one row at a time and evaluates every planned
// term for that row before moving on.
type rowEngine struct{}

func (rowEngine) Name() string { return EngineRows }

func (rowEngine) Generate(t *frame.Table, job Job) ([]*frame.Column, error) {
	times, err := dateTimes(t, job.DateColumn)
	if err != nil {
		return nil, err
	}

	values := make([][]float64, len(job.Plan))
	for j := range job.Plan {
		values[j] = make([]float64, len(times))
	}

	for i, ts := range times {
		phase := Phase(ts, job.Origin, job.ScaleSeconds)
		for j, c := range job.Plan {
			values[j][i] = Value(phase, c.Period, c.Order, c.Kind)
		}
	}

	out := make([]*frame.Column, len(job.Plan))
	for j, c := range job.Plan {
		out[j] = frame.FloatColumn(c.Name, values[j])
	}
	return out, nil
}
