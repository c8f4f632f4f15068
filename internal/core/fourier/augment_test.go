package fourier_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
	"github.com/aevon-lab/tsfeatures/internal/core/frame"
	fouriermocks "github.com/aevon-lab/tsfeatures/internal/mocks/fourier"
	summarymocks "github.com/aevon-lab/tsfeatures/internal/mocks/summary"
)

func daily(n int) []time.Time {
	base := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.AddDate(0, 0, i)
	}
	return out
}

func dailyTable(n int) *frame.Table {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i) * 1.5
	}
	return frame.MustNew(
		frame.TimeColumn("date", daily(n)),
		frame.FloatColumn("value", values),
	)
}

func floatsOf(t *testing.T, tbl *frame.Table, name string) []float64 {
	t.Helper()
	c, ok := tbl.Column(name)
	require.True(t, ok, "missing column %s", name)
	return c.Floats()
}

func TestAugment_WeeklyDailySeries(t *testing.T) {
	for _, engine := range fourier.EngineNames() {
		t.Run(engine, func(t *testing.T) {
			out, err := fourier.Augment(dailyTable(10), fourier.Options{
				DateColumn: "date",
				Periods:    fourier.Period(7),
				MaxOrder:   1,
				Engine:     engine,
			})
			require.NoError(t, err)
			require.Equal(t, []string{"date", "value", "date_sin_1_7", "date_cos_1_7"}, out.Names())

			sin := floatsOf(t, out, "date_sin_1_7")
			cos := floatsOf(t, out, "date_cos_1_7")
			require.Equal(t, 0.0, sin[0])
			require.Equal(t, 1.0, cos[0])
			for i := range sin {
				phase := 2 * math.Pi * float64(i)
				require.InDelta(t, math.Sin(2*math.Pi/7*phase), sin[i], 1e-9)
				require.InDelta(t, math.Cos(2*math.Pi/7*phase), cos[i], 1e-9)
			}
		})
	}
}

func TestAugment_RangeWithHarmonics(t *testing.T) {
	out, err := fourier.Augment(dailyTable(10), fourier.Options{
		DateColumn: "date",
		Periods:    fourier.PeriodRange(1, 3),
		MaxOrder:   2,
	})
	require.NoError(t, err)
	require.Equal(t, 2+12, out.NumCols())
	require.Equal(t, []string{
		"date", "value",
		"date_sin_1_1", "date_sin_1_2", "date_sin_1_3",
		"date_sin_2_1", "date_sin_2_2", "date_sin_2_3",
		"date_cos_1_1", "date_cos_1_2", "date_cos_1_3",
		"date_cos_2_1", "date_cos_2_2", "date_cos_2_3",
	}, out.Names())
}

func TestAugment_Defaults(t *testing.T) {
	out, err := fourier.Augment(dailyTable(3), fourier.Options{DateColumn: "date"})
	require.NoError(t, err)
	require.Equal(t, []string{"date", "value", "date_sin_1_1", "date_cos_1_1"}, out.Names())
}

func TestAugment_BoundedOutputs(t *testing.T) {
	out, err := fourier.Augment(dailyTable(40), fourier.Options{
		DateColumn: "date",
		Periods:    fourier.PeriodList(7, 30, 365),
		MaxOrder:   3,
	})
	require.NoError(t, err)
	for _, name := range out.Names()[2:] {
		for _, v := range floatsOf(t, out, name) {
			require.GreaterOrEqual(t, v, -1.0)
			require.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestAugment_SortsAndKeepsInput(t *testing.T) {
	times := daily(4)
	in := frame.MustNew(
		frame.TimeColumn("date", []time.Time{times[2], times[0], times[3], times[1]}),
		frame.StringColumn("id", []string{"c", "a", "d", "b"}),
	)

	out, err := fourier.Augment(in, fourier.Options{DateColumn: "date", Periods: fourier.Period(2)})
	require.NoError(t, err)

	id, _ := out.Column("id")
	require.Equal(t, []string{"a", "b", "c", "d"}, id.Strings())
	require.InDelta(t, math.Cos(math.Pi*2*math.Pi), floatsOf(t, out, "date_cos_1_2")[1], 1e-9)

	require.Equal(t, []string{"date", "id"}, in.Names())
	origID, _ := in.Column("id")
	require.Equal(t, []string{"c", "a", "d", "b"}, origID.Strings())
}

func TestAugment_NullTimestampsSortLastAsNaN(t *testing.T) {
	times := daily(3)
	in := frame.MustNew(frame.TimeColumn("date", []time.Time{times[1], {}, times[0], times[2]}))

	out, err := fourier.Augment(in, fourier.Options{DateColumn: "date"})
	require.NoError(t, err)

	date, _ := out.Column("date")
	require.True(t, date.Times()[3].IsZero())
	require.True(t, math.IsNaN(floatsOf(t, out, "date_sin_1_1")[3]))
	require.False(t, math.IsNaN(floatsOf(t, out, "date_sin_1_1")[0]))
}

func TestAugment_OverwritesCollidingColumns(t *testing.T) {
	in := frame.MustNew(
		frame.TimeColumn("date", daily(3)),
		frame.StringColumn("date_cos_1_7", []string{"x", "y", "z"}),
	)

	out, err := fourier.Augment(in, fourier.Options{DateColumn: "date", Periods: fourier.Period(7)})
	require.NoError(t, err)
	require.Equal(t, []string{"date", "date_cos_1_7", "date_sin_1_7"}, out.Names())
	require.Equal(t, 1.0, floatsOf(t, out, "date_cos_1_7")[0])
}

func TestAugment_GroupedUsesGlobalScale(t *testing.T) {
	times := daily(4)
	tbl := frame.MustNew(
		frame.StringColumn("id", []string{"b", "a", "b", "a"}),
		frame.TimeColumn("date", []time.Time{times[0], times[1], times[2], times[3]}),
	)
	g, err := frame.GroupBy(tbl, "id")
	require.NoError(t, err)

	out, err := fourier.Augment(g, fourier.Options{DateColumn: "date", Periods: fourier.Period(4)})
	require.NoError(t, err)
	require.Equal(t, []string{"id", "date", "date_sin_1_4", "date_cos_1_4"}, out.Names())

	id, _ := out.Column("id")
	require.Equal(t, []string{"b", "a", "b", "a"}, id.Strings())

	// Each group alone is spaced two days apart, the flattened table one day.
	sin := floatsOf(t, out, "date_sin_1_4")
	require.InDelta(t, 0.0, sin[0], 1e-9)
	require.InDelta(t, math.Sin(2*math.Pi/4*2*math.Pi), sin[1], 1e-9)
}

func TestAugment_Errors(t *testing.T) {
	times := daily(3)
	repeated := frame.MustNew(frame.TimeColumn("date", []time.Time{times[0], times[0], times[0], times[1]}))
	notTime := frame.MustNew(frame.StringColumn("date", []string{"2020-01-01"}))

	tests := []struct {
		name    string
		data    frame.Data
		opts    fourier.Options
		wantErr error
		target  interface{}
	}{
		{
			name:    "unsupported engine",
			data:    dailyTable(10),
			opts:    fourier.Options{DateColumn: "date", Engine: "spark"},
			wantErr: fourier.ErrUnsupportedEngine,
			target:  new(*fourier.UnsupportedEngineError),
		},
		{
			name:    "engine checked before data",
			data:    nil,
			opts:    fourier.Options{DateColumn: "date", Engine: "spark"},
			wantErr: fourier.ErrUnsupportedEngine,
		},
		{
			name:    "nil data",
			data:    nil,
			opts:    fourier.Options{DateColumn: "date"},
			wantErr: frame.ErrNilData,
		},
		{
			name:    "missing date column",
			data:    dailyTable(3),
			opts:    fourier.Options{DateColumn: "when"},
			wantErr: fourier.ErrInvalidColumn,
			target:  new(*fourier.InvalidColumnError),
		},
		{
			name:    "date column not a timestamp",
			data:    notTime,
			opts:    fourier.Options{DateColumn: "date"},
			wantErr: frame.ErrNotTimeColumn,
		},
		{
			name:    "invalid periods",
			data:    dailyTable(3),
			opts:    fourier.Options{DateColumn: "date", Periods: fourier.PeriodRange(5, 1)},
			wantErr: fourier.ErrInvalidPeriodSpec,
			target:  new(*fourier.InvalidPeriodSpecError),
		},
		{
			name:    "negative order",
			data:    dailyTable(3),
			opts:    fourier.Options{DateColumn: "date", MaxOrder: -1},
			wantErr: fourier.ErrInvalidOrder,
			target:  new(*fourier.InvalidOrderError),
		},
		{
			name:    "repeated timestamps",
			data:    repeated,
			opts:    fourier.Options{DateColumn: "date"},
			wantErr: fourier.ErrDegenerateScale,
			target:  new(*fourier.DegenerateScaleError),
		},
		{
			name:    "single row",
			data:    dailyTable(1),
			opts:    fourier.Options{DateColumn: "date"},
			wantErr: fourier.ErrDegenerateScale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := fourier.Augment(tt.data, tt.opts)
			require.Nil(t, out)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.target != nil {
				require.ErrorAs(t, err, tt.target)
			}
		})
	}
}

func TestAugment_UnsupportedEngineListsSupported(t *testing.T) {
	_, err := fourier.Augment(dailyTable(3), fourier.Options{DateColumn: "date", Engine: "spark"})

	var engineErr *fourier.UnsupportedEngineError
	require.ErrorAs(t, err, &engineErr)
	require.Equal(t, "spark", engineErr.Engine)
	require.Equal(t, []string{"rows", "vectorized"}, engineErr.Supported)
	require.Contains(t, err.Error(), "rows, vectorized")
}

func TestAugment_DegenerateScaleMessageIsActionable(t *testing.T) {
	times := daily(1)
	in := frame.MustNew(frame.TimeColumn("date", []time.Time{times[0], times[0]}))

	_, err := fourier.Augment(in, fourier.Options{DateColumn: "date"})
	require.ErrorContains(t, err, "arrange by groups first, then date")
}

func TestAugmenter_UsesEstimator(t *testing.T) {
	estimator := summarymocks.NewEstimator(t)
	estimator.EXPECT().
		MedianGap(mock.AnythingOfType("*frame.Table"), "date").
		Return(2*24*time.Hour, nil).
		Once()

	aug := fourier.NewAugmenter(fourier.WithEstimator(estimator))
	out, err := aug.Augment(dailyTable(3), fourier.Options{DateColumn: "date", Periods: fourier.Period(1)})
	require.NoError(t, err)

	// one day is half of the two day scale, a phase of π
	require.InDelta(t, math.Cos(2*math.Pi*math.Pi), floatsOf(t, out, "date_cos_1_1")[1], 1e-9)
}

func TestAugmenter_EstimatorError(t *testing.T) {
	boom := errors.New("boom")
	estimator := summarymocks.NewEstimator(t)
	estimator.EXPECT().MedianGap(mock.Anything, mock.Anything).Return(time.Duration(0), boom).Once()

	_, err := fourier.NewAugmenter(fourier.WithEstimator(estimator)).
		Augment(dailyTable(3), fourier.Options{DateColumn: "date"})
	require.ErrorIs(t, err, boom)
}

func TestAugmenter_CustomEngine(t *testing.T) {
	engine := fouriermocks.NewEngine(t)
	engine.EXPECT().
		Generate(mock.Anything, mock.MatchedBy(func(job fourier.Job) bool {
			return job.DateColumn == "date" &&
				job.ScaleSeconds == 86400 &&
				job.Origin.Equal(daily(1)[0]) &&
				len(job.Plan) == 2
		})).
		RunAndReturn(func(tbl *frame.Table, job fourier.Job) ([]*frame.Column, error) {
			cols := make([]*frame.Column, len(job.Plan))
			for i, c := range job.Plan {
				cols[i] = frame.FloatColumn(c.Name, make([]float64, tbl.NumRows()))
			}
			return cols, nil
		}).
		Once()

	aug := fourier.NewAugmenter(fourier.WithEngine("stub", engine))
	require.Equal(t, []string{"rows", "stub", "vectorized"}, aug.Engines())
	require.False(t, fourier.ValidEngine("stub"))

	out, err := aug.Augment(dailyTable(5), fourier.Options{DateColumn: "date", Engine: "stub"})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 0, 0}, floatsOf(t, out, "date_sin_1_1"))
}

func TestAugmenter_EngineColumnCountChecked(t *testing.T) {
	engine := fouriermocks.NewEngine(t)
	engine.EXPECT().Generate(mock.Anything, mock.Anything).Return(nil, nil).Once()

	_, err := fourier.NewAugmenter(fourier.WithEngine("broken", engine)).
		Augment(dailyTable(3), fourier.Options{DateColumn: "date", Engine: "broken"})
	require.ErrorContains(t, err, "generated 0 columns, planned 2")
}

func TestAugment_RepeatedCallsAreIdentical(t *testing.T) {
	tbl := dailyTable(40)
	opts := fourier.Options{DateColumn: "date", Periods: fourier.PeriodList(7, 30), MaxOrder: 3}

	for _, engine := range fourier.EngineNames() {
		t.Run(engine, func(t *testing.T) {
			opts.Engine = engine
			first, err := fourier.Augment(tbl, opts)
			require.NoError(t, err)
			second, err := fourier.Augment(tbl, opts)
			require.NoError(t, err)

			require.Equal(t, first.Names(), second.Names())
			for _, name := range first.Names()[2:] {
				require.Equal(t, floatsOf(t, first, name), floatsOf(t, second, name), name)
			}
		})
	}
}

func TestAugment_EnginesMatchOverCenturies(t *testing.T) {
	times := make([]time.Time, 0, 321)
	for year := 1700; year <= 2020; year++ {
		times = append(times, time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	}
	tbl := frame.MustNew(frame.TimeColumn("date", times))
	opts := fourier.Options{DateColumn: "date", Periods: fourier.Period(7), MaxOrder: 2}

	opts.Engine = fourier.EngineRows
	rows, err := fourier.Augment(tbl, opts)
	require.NoError(t, err)
	opts.Engine = fourier.EngineVectorized
	vec, err := fourier.Augment(tbl, opts)
	require.NoError(t, err)

	require.Equal(t, rows.Names(), vec.Names())
	for _, name := range rows.Names()[1:] {
		require.Equal(t, floatsOf(t, rows, name), floatsOf(t, vec, name), name)
	}

	sin := floatsOf(t, rows, "date_sin_1_7")
	require.NotEqual(t, sin[300], sin[320])
}

func TestAugmenter_CheckEngine(t *testing.T) {
	aug := fourier.NewAugmenter()
	require.NoError(t, aug.CheckEngine(""))
	require.NoError(t, aug.CheckEngine(fourier.EngineVectorized))

	err := aug.CheckEngine("spark")
	require.ErrorIs(t, err, fourier.ErrUnsupportedEngine)
	var engineErr *fourier.UnsupportedEngineError
	require.ErrorAs(t, err, &engineErr)
	require.Equal(t, []string{"rows", "vectorized"}, engineErr.Supported)
}
