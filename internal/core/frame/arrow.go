package frame

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// TimestampType is the Arrow type used for time columns.
var TimestampType = &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}

// Arrow builds an Arrow array holding the column values. Null timestamps
// become null slots; NaN floats stay NaN. The caller owns the result.
func (c *Column) Arrow(mem memory.Allocator) arrow.Array {
	switch c.typ {
	case TypeTime:
		b := array.NewTimestampBuilder(mem, TimestampType)
		defer b.Release()
		b.Reserve(len(c.times))
		for _, ts := range c.times {
			if ts.IsZero() {
				b.AppendNull()
				continue
			}
			b.Append(arrow.Timestamp(ts.UnixNano()))
		}
		return b.NewArray()
	case TypeFloat:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.AppendValues(c.floats, nil)
		return b.NewArray()
	case TypeInt:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(c.ints, nil)
		return b.NewArray()
	case TypeBool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		b.AppendValues(c.bools, nil)
		return b.NewArray()
	default:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.AppendValues(c.strings, nil)
		return b.NewArray()
	}
}

// ToArrow converts t to an Arrow record. The caller must Release it.
func ToArrow(t *Table, mem memory.Allocator) arrow.Record {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	fields := make([]arrow.Field, len(t.columns))
	arrays := make([]arrow.Array, len(t.columns))
	for i, c := range t.columns {
		arrays[i] = c.Arrow(mem)
		fields[i] = arrow.Field{Name: c.name, Type: arrays[i].DataType(), Nullable: true}
	}
	rec := array.NewRecord(arrow.NewSchema(fields, nil), arrays, int64(t.rows))
	for _, a := range arrays {
		a.Release()
	}
	return rec
}

// FromArrow copies an Arrow record into a table. Supported column types are
// timestamp, float64, int64, boolean and utf8.
func FromArrow(rec arrow.Record) (*Table, error) {
	fields := rec.Schema().Fields()
	cols := make([]*Column, 0, len(fields))
	for i, f := range fields {
		c, err := columnFromArrow(f.Name, rec.Column(i))
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

func columnFromArrow(name string, arr arrow.Array) (*Column, error) {
	n := arr.Len()
	switch a := arr.(type) {
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		out := make([]time.Time, n)
		for i := 0; i < n; i++ {
			if a.IsValid(i) {
				out[i] = a.Value(i).ToTime(unit)
			}
		}
		return TimeColumn(name, out), nil
	case *array.Float64:
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				out[i] = math.NaN()
				continue
			}
			out[i] = a.Value(i)
		}
		return FloatColumn(name, out), nil
	case *array.Int64:
		out := make([]int64, n)
		for i := 0; i < n; i++ {
			out[i] = a.Value(i)
		}
		return IntColumn(name, out), nil
	case *array.Boolean:
		out := make([]bool, n)
		for i := 0; i < n; i++ {
			out[i] = a.Value(i)
		}
		return BoolColumn(name, out), nil
	case *array.String:
		out := make([]string, n)
		for i := 0; i < n; i++ {
			out[i] = strings.Clone(a.Value(i))
		}
		return StringColumn(name, out), nil
	}
	return nil, fmt.Errorf("frame: column %q: unsupported arrow type %s", name, arr.DataType())
}
