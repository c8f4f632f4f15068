package fourier

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/aevon-lab/tsfeatures/internal/core/frame"
)

// vectorEngine loads elapsed seconds into an Arrow array, normalizes the
// whole phase vector once and derives each term column with Term.
// Arithmetic follows the same operation order as rowEngine so both produce
// identical values.
type vectorEngine struct {
	mem memory.Allocator
}

func (vectorEngine) Name() string { return EngineVectorized }

func (e vectorEngine) Generate(t *frame.Table, job Job) ([]*frame.Column, error) {
	times, err := dateTimes(t, job.DateColumn)
	if err != nil {
		return nil, err
	}

	mem := e.mem
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	// Elapsed seconds rather than ns timestamps: an int64 ns axis cannot hold
	// spans beyond ~292 years.
	eb := array.NewFloat64Builder(mem)
	eb.Reserve(len(times))
	for _, ts := range times {
		if ts.IsZero() {
			eb.AppendNull()
			continue
		}
		eb.Append(ElapsedSeconds(ts, job.Origin))
	}
	elapsed := eb.NewFloat64Array()
	eb.Release()
	defer elapsed.Release()

	phase := make([]float64, elapsed.Len())
	for i := range phase {
		if elapsed.IsNull(i) {
			phase[i] = math.NaN()
			continue
		}
		phase[i] = elapsed.Value(i)
	}
	if err := Normalize(phase, job.ScaleSeconds); err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(job.Plan))
	arrays := make([]arrow.Array, len(job.Plan))
	for j, c := range job.Plan {
		b := array.NewFloat64Builder(mem)
		b.AppendValues(Term(phase, c.Period, c.Order, c.Kind), nil)
		arrays[j] = b.NewArray()
		b.Release()
		fields[j] = arrow.Field{Name: c.Name, Type: arrow.PrimitiveTypes.Float64}
	}

	rec := array.NewRecord(arrow.NewSchema(fields, nil), arrays, int64(len(phase)))
	for _, a := range arrays {
		a.Release()
	}
	defer rec.Release()

	out, err := frame.FromArrow(rec)
	if err != nil {
		return nil, fmt.Errorf("vectorized engine: %w", err)
	}
	return out.Columns(), nil
}
