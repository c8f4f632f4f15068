package frame

import (
	"math"
	"slices"
	"time"
)

// Type identifies the storage backing a Column.
type Type string

const (
	TypeTime   Type = "time"
	TypeFloat  Type = "float"
	TypeInt    Type = "int"
	TypeString Type = "string"
	TypeBool   Type = "bool"
)

// Column is a named, typed vector. Exactly one value slice is populated,
// selected by the column type. A zero time.Time in a time column is null.
type Column struct {
	name    string
	typ     Type
	times   []time.Time
	floats  []float64
	ints    []int64
	strings []string
	bools   []bool
}

func TimeColumn(name string, values []time.Time) *Column {
	return &Column{name: name, typ: TypeTime, times: values}
}

func FloatColumn(name string, values []float64) *Column {
	return &Column{name: name, typ: TypeFloat, floats: values}
}

func IntColumn(name string, values []int64) *Column {
	return &Column{name: name, typ: TypeInt, ints: values}
}

func StringColumn(name string, values []string) *Column {
	return &Column{name: name, typ: TypeString, strings: values}
}

func BoolColumn(name string, values []bool) *Column {
	return &Column{name: name, typ: TypeBool, bools: values}
}

func (c *Column) Name() string { return c.name }
func (c *Column) Type() Type   { return c.typ }

// Len returns the number of rows held by the column.
func (c *Column) Len() int {
	switch c.typ {
	case TypeTime:
		return len(c.times)
	case TypeFloat:
		return len(c.floats)
	case TypeInt:
		return len(c.ints)
	case TypeString:
		return len(c.strings)
	case TypeBool:
		return len(c.bools)
	}
	return 0
}

// The typed accessors return nil when the column holds another type.
// Callers must not modify the returned slices.

func (c *Column) Times() []time.Time { return c.times }
func (c *Column) Floats() []float64  { return c.floats }
func (c *Column) Ints() []int64      { return c.ints }
func (c *Column) Strings() []string  { return c.strings }
func (c *Column) Bools() []bool      { return c.bools }

// IsNull reports whether row i holds a missing value. Only time and float
// columns can hold one.
func (c *Column) IsNull(i int) bool {
	switch c.typ {
	case TypeTime:
		return c.times[i].IsZero()
	case TypeFloat:
		return math.IsNaN(c.floats[i])
	}
	return false
}

// Value returns the cell at row i boxed in an interface, or nil for nulls.
func (c *Column) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	switch c.typ {
	case TypeTime:
		return c.times[i]
	case TypeFloat:
		return c.floats[i]
	case TypeInt:
		return c.ints[i]
	case TypeString:
		return c.strings[i]
	case TypeBool:
		return c.bools[i]
	}
	return nil
}

func (c *Column) clone() *Column {
	return &Column{
		name:    c.name,
		typ:     c.typ,
		times:   slices.Clone(c.times),
		floats:  slices.Clone(c.floats),
		ints:    slices.Clone(c.ints),
		strings: slices.Clone(c.strings),
		bools:   slices.Clone(c.bools),
	}
}

func (c *Column) take(indices []int) *Column {
	out := &Column{name: c.name, typ: c.typ}
	switch c.typ {
	case TypeTime:
		out.times = gather(c.times, indices)
	case TypeFloat:
		out.floats = gather(c.floats, indices)
	case TypeInt:
		out.ints = gather(c.ints, indices)
	case TypeString:
		out.strings = gather(c.strings, indices)
	case TypeBool:
		out.bools = gather(c.bools, indices)
	}
	return out
}

func gather[T any](values []T, indices []int) []T {
	out := make([]T, len(indices))
	for i, idx := range indices {
		out[i] = values[idx]
	}
	return out
}

// compare orders two rows of the same column. Nulls sort after values.
func (c *Column) compare(a, b int) int {
	an, bn := c.IsNull(a), c.IsNull(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	switch c.typ {
	case TypeTime:
		return c.times[a].Compare(c.times[b])
	case TypeFloat:
		return cmpOrdered(c.floats[a], c.floats[b])
	case TypeInt:
		return cmpOrdered(c.ints[a], c.ints[b])
	case TypeString:
		return cmpOrdered(c.strings[a], c.strings[b])
	case TypeBool:
		switch {
		case c.bools[a] == c.bools[b]:
			return 0
		case c.bools[b]:
			return -1
		}
		return 1
	}
	return 0
}

func cmpOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
