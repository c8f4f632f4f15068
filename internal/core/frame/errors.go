package frame

import "errors"

var (
	ErrNilData         = errors.New("frame: data must be a table or a grouped table")
	ErrColumnNotFound  = errors.New("frame: column not found")
	ErrNotTimeColumn   = errors.New("frame: column is not a timestamp column")
	ErrLengthMismatch  = errors.New("frame: column length mismatch")
	ErrDuplicateColumn = errors.New("frame: duplicate column name")
	ErrNoGroupKeys     = errors.New("frame: at least one group key is required")
)
