package fourier

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnsupportedEngine = errors.New("fourier: unsupported engine")
	ErrInvalidColumn     = errors.New("fourier: invalid date column")
	ErrInvalidPeriodSpec = errors.New("fourier: invalid periods specification")
	ErrDegenerateScale   = errors.New("fourier: degenerate time scale")
	ErrInvalidOrder      = errors.New("fourier: invalid max order")
)

// Detailer is implemented by errors that carry structured context for
// API responses.
type Detailer interface {
	Details() map[string]interface{}
}

// UnsupportedEngineError reports an engine name missing from the registry.
type UnsupportedEngineError struct {
	Engine    string
	Supported []string
}

func (e *UnsupportedEngineError) Error() string {
	return fmt.Sprintf("supported engines are %s, found %q", strings.Join(e.Supported, ", "), e.Engine)
}

func (e *UnsupportedEngineError) Unwrap() error { return ErrUnsupportedEngine }

func (e *UnsupportedEngineError) Details() map[string]interface{} {
	return map[string]interface{}{"engine": e.Engine, "supported": e.Supported}
}

// InvalidColumnError reports a missing or non-timestamp date column, or
// input that is not a table at all.
type InvalidColumnError struct {
	Column string
	Err    error
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("date column %q: %v", e.Column, e.Err)
}

func (e *InvalidColumnError) Unwrap() []error { return []error{ErrInvalidColumn, e.Err} }

func (e *InvalidColumnError) Details() map[string]interface{} {
	return map[string]interface{}{"date_column": e.Column, "reason": e.Err.Error()}
}

// InvalidPeriodSpecError reports a periods value that is neither a single
// positive period, an ordered inclusive range nor a non-empty list.
type InvalidPeriodSpecError struct {
	Spec   string
	Reason string
}

func (e *InvalidPeriodSpecError) Error() string {
	return fmt.Sprintf("periods %s: %s", e.Spec, e.Reason)
}

func (e *InvalidPeriodSpecError) Unwrap() error { return ErrInvalidPeriodSpec }

func (e *InvalidPeriodSpecError) Details() map[string]interface{} {
	return map[string]interface{}{"periods": e.Spec, "reason": e.Reason}
}

// InvalidOrderError reports a negative max order.
type InvalidOrderError struct {
	MaxOrder int
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("max order must be at least 1, found %d", e.MaxOrder)
}

func (e *InvalidOrderError) Unwrap() error { return ErrInvalidOrder }

func (e *InvalidOrderError) Details() map[string]interface{} {
	return map[string]interface{}{"max_order": e.MaxOrder}
}

// DegenerateScaleError reports a median gap of zero, usually caused by
// repeated timestamps from interleaved series.
type DegenerateScaleError struct {
	DateColumn string
	Scale      time.Duration
}

func (e *DegenerateScaleError) Error() string {
	return fmt.Sprintf("time difference between observations in %q is %s: arrange the data to have a positive time difference between observations; "+
		"if working with time series groups, arrange by groups first, then date", e.DateColumn, e.Scale)
}

func (e *DegenerateScaleError) Unwrap() error { return ErrDegenerateScale }

func (e *DegenerateScaleError) Details() map[string]interface{} {
	return map[string]interface{}{"date_column": e.DateColumn, "scale_seconds": e.Scale.Seconds()}
}
