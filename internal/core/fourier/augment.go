package fourier

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/aevon-lab/tsfeatures/internal/core/frame"
	"github.com/aevon-lab/tsfeatures/internal/core/summary"
)

// Options configures one augmentation.
type Options struct {
	DateColumn string
	Periods    PeriodSpec
	// MaxOrder is the highest harmonic generated per period. Zero means 1.
	MaxOrder int
	// Engine names a registered engine. Empty means DefaultEngine.
	Engine string
}

// Augmenter appends Fourier columns to tables. It holds no per-call state
// and is safe for concurrent use.
type Augmenter struct {
	engines   map[string]Engine
	estimator summary.Estimator
	logger    *slog.Logger
}

type Option func(*Augmenter)

// WithEstimator replaces the time scale estimator.
func WithEstimator(e summary.Estimator) Option {
	return func(a *Augmenter) { a.estimator = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Augmenter) { a.logger = l }
}

// WithEngine registers an additional engine for this augmenter only.
func WithEngine(name string, e Engine) Option {
	return func(a *Augmenter) { a.engines[name] = e }
}

func NewAugmenter(opts ...Option) *Augmenter {
	a := &Augmenter{
		engines:   maps.Clone(Engines),
		estimator: summary.Default,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Engines returns the engine names this augmenter accepts, sorted.
func (a *Augmenter) Engines() []string {
	return sortedKeys(a.engines)
}

// CheckEngine reports an UnsupportedEngineError when name is not one of
// Engines. An empty name selects DefaultEngine.
func (a *Augmenter) CheckEngine(name string) error {
	_, _, err := a.engine(name)
	return err
}

func (a *Augmenter) engine(name string) (string, Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	e, ok := a.engines[name]
	if !ok {
		return name, nil, &UnsupportedEngineError{Engine: name, Supported: a.Engines()}
	}
	return name, e, nil
}

func (a *Augmenter) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}

// Augment returns a copy of data, flattened if grouped and sorted by the date
// column, with 2·MaxOrder·len(periods) Fourier columns attached. Existing
// columns with a generated name are overwritten. data is never modified.
func (a *Augmenter) Augment(data frame.Data, opts Options) (*frame.Table, error) {
	name, engine, err := a.engine(opts.Engine)
	if err != nil {
		return nil, err
	}

	if err := frame.CheckDateColumn(data, opts.DateColumn); err != nil {
		return nil, &InvalidColumnError{Column: opts.DateColumn, Err: err}
	}

	periods, err := opts.Periods.Periods()
	if err != nil {
		return nil, err
	}

	maxOrder := opts.MaxOrder
	if maxOrder == 0 {
		maxOrder = 1
	}
	if maxOrder < 0 {
		return nil, &InvalidOrderError{MaxOrder: opts.MaxOrder}
	}

	flat, err := frame.Flatten(data)
	if err != nil {
		return nil, &InvalidColumnError{Column: opts.DateColumn, Err: err}
	}
	sorted, err := flat.SortByTime(opts.DateColumn)
	if err != nil {
		return nil, &InvalidColumnError{Column: opts.DateColumn, Err: err}
	}

	scale, err := a.estimator.MedianGap(sorted, opts.DateColumn)
	if err != nil {
		return nil, fmt.Errorf("estimate time scale: %w", err)
	}
	if scale <= 0 {
		return nil, &DegenerateScaleError{DateColumn: opts.DateColumn, Scale: scale}
	}

	date, _ := sorted.Column(opts.DateColumn)
	origin, _ := Origin(date.Times())

	plan := BuildPlan(opts.DateColumn, periods, maxOrder)
	if collisions := plan.Collisions(sorted); len(collisions) > 0 {
		a.log().Warn("[Augment] Overwriting existing columns", "columns", collisions)
	}

	cols, err := engine.Generate(sorted, Job{
		DateColumn:   opts.DateColumn,
		Origin:       origin,
		ScaleSeconds: scale.Seconds(),
		Plan:         plan,
	})
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", name, err)
	}
	if len(cols) != len(plan) {
		return nil, fmt.Errorf("engine %s: generated %d columns, planned %d", name, len(cols), len(plan))
	}
	for _, c := range cols {
		if err := sorted.SetColumn(c); err != nil {
			return nil, fmt.Errorf("engine %s: %w", name, err)
		}
	}

	a.log().Debug("[Augment] Fourier terms generated",
		"engine", name,
		"date_column", opts.DateColumn,
		"rows", sorted.NumRows(),
		"periods", periods,
		"max_order", maxOrder,
		"columns", len(plan),
		"scale_seconds", scale.Seconds())

	return sorted, nil
}

// Augment runs an augmentation with the default engines and estimator.
func Augment(data frame.Data, opts Options) (*frame.Table, error) {
	return NewAugmenter().Augment(data, opts)
}
