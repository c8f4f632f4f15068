package frame

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordOptions controls how decoded JSON row objects become a table.
type RecordOptions struct {
	// Columns fixes column order. When empty, the sorted union of record keys is used.
	Columns []string
	// TimeColumns are parsed as timestamps; every other column is inferred.
	TimeColumns []string
	// TimeLayout parses string timestamps. Defaults to time.RFC3339Nano.
	TimeLayout string
}

// FromRecords builds a table from row objects. A non-time column becomes a
// bool column when every present value is a bool, a float column when every
// present value is numeric (numeric strings included), and a string column
// otherwise. Missing values become nulls (NaN, zero time, "" or false).
func FromRecords(records []map[string]interface{}, opts RecordOptions) (*Table, error) {
	layout := opts.TimeLayout
	if layout == "" {
		layout = time.RFC3339Nano
	}
	names := opts.Columns
	if len(names) == 0 {
		names = recordKeys(records)
	}

	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		values := make([]interface{}, len(records))
		for i, rec := range records {
			values[i] = rec[name]
		}
		var (
			col *Column
			err error
		)
		if slices.Contains(opts.TimeColumns, name) {
			col, err = timeFromValues(name, values, layout)
		} else {
			col = inferColumn(name, values)
		}
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

func recordKeys(records []map[string]interface{}) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func timeFromValues(name string, values []interface{}, layout string) (*Column, error) {
	out := make([]time.Time, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case nil:
		case string:
			if strings.TrimSpace(val) == "" {
				continue
			}
			ts, err := time.Parse(layout, val)
			if err != nil {
				return nil, fmt.Errorf("frame: column %q row %d: %w", name, i, err)
			}
			out[i] = ts
		case time.Time:
			out[i] = val
		default:
			d, ok := toDecimal(v)
			if !ok {
				return nil, fmt.Errorf("frame: column %q row %d: unsupported timestamp value %v", name, i, v)
			}
			out[i] = unixFromDecimal(d)
		}
	}
	return TimeColumn(name, out), nil
}

// unixFromDecimal interprets d as seconds since the Unix epoch.
func unixFromDecimal(d decimal.Decimal) time.Time {
	sec := d.IntPart()
	nsec := d.Sub(decimal.NewFromInt(sec)).Shift(9).IntPart()
	return time.Unix(sec, nsec).UTC()
}

func inferColumn(name string, values []interface{}) *Column {
	allBool, allNumeric := true, true
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, ok := v.(bool); !ok {
			allBool = false
		}
		if _, ok := toDecimal(v); !ok {
			allNumeric = false
		}
	}

	switch {
	case allBool && !allNumeric:
		out := make([]bool, len(values))
		for i, v := range values {
			out[i], _ = v.(bool)
		}
		return BoolColumn(name, out)
	case allNumeric:
		out := make([]float64, len(values))
		for i, v := range values {
			d, ok := toDecimal(v)
			if !ok {
				out[i] = math.NaN()
				continue
			}
			out[i], _ = d.Float64()
		}
		return FloatColumn(name, out)
	}
	out := make([]string, len(values))
	for i, v := range values {
		if v != nil {
			out[i] = fmt.Sprint(v)
		}
	}
	return StringColumn(name, out)
}

// toDecimal converts a decoded JSON cell to a decimal. JSON numbers decode to
// float64 by default; json.Number and numeric strings are parsed exactly.
func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case float32:
		return decimal.NewFromFloat32(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case int32:
		return decimal.NewFromInt32(val), true
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		return d, err == nil
	}
	return decimal.Zero, false
}

// Records converts t to row objects. Null cells and non-finite floats become
// nil; timestamps are formatted with layout (RFC3339Nano when empty).
func Records(t *Table, layout string) []map[string]interface{} {
	if layout == "" {
		layout = time.RFC3339Nano
	}
	out := make([]map[string]interface{}, t.rows)
	for i := range out {
		row := make(map[string]interface{}, len(t.columns))
		for _, c := range t.columns {
			row[c.name] = jsonCell(c, i, layout)
		}
		out[i] = row
	}
	return out
}

func jsonCell(c *Column, i int, layout string) interface{} {
	switch c.typ {
	case TypeTime:
		if c.times[i].IsZero() {
			return nil
		}
		return c.times[i].Format(layout)
	case TypeFloat:
		if f := c.floats[i]; math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	}
	return c.Value(i)
}
