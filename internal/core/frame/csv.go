package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// CSVOptions describes how timestamp columns are read and written.
type CSVOptions struct {
	TimeColumns []string
	// TimeLayout defaults to time.RFC3339Nano. Date-only data can use time.DateOnly.
	TimeLayout string
}

func (o CSVOptions) layout() string {
	if o.TimeLayout == "" {
		return time.RFC3339Nano
	}
	return o.TimeLayout
}

// ReadCSV loads a headed CSV document. Column types are detected by gota;
// TimeColumns are read as text and parsed with the configured layout.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	types := make(map[string]series.Type, len(opts.TimeColumns))
	for _, name := range opts.TimeColumns {
		types[name] = series.String
	}
	df := dataframe.ReadCSV(r, dataframe.WithTypes(types))
	if df.Err != nil {
		return nil, fmt.Errorf("frame: read csv: %w", df.Err)
	}
	return FromDataFrame(df, opts)
}

// FromDataFrame converts a gota DataFrame. Int series holding NaN cells fall
// back to float columns.
func FromDataFrame(df dataframe.DataFrame, opts CSVOptions) (*Table, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	cols := make([]*Column, 0, df.Ncol())
	for _, name := range df.Names() {
		s := df.Col(name)
		if slices.Contains(opts.TimeColumns, name) {
			c, err := parseTimes(name, s.Records(), opts.layout())
			if err != nil {
				return nil, err
			}
			cols = append(cols, c)
			continue
		}
		switch s.Type() {
		case series.Float:
			cols = append(cols, FloatColumn(name, s.Float()))
		case series.Int:
			ints, err := s.Int()
			if err != nil {
				cols = append(cols, FloatColumn(name, s.Float()))
				continue
			}
			vals := make([]int64, len(ints))
			for i, v := range ints {
				vals[i] = int64(v)
			}
			cols = append(cols, IntColumn(name, vals))
		case series.Bool:
			bools, err := s.Bool()
			if err != nil {
				cols = append(cols, StringColumn(name, s.Records()))
				continue
			}
			cols = append(cols, BoolColumn(name, bools))
		default:
			cols = append(cols, StringColumn(name, s.Records()))
		}
	}
	return New(cols...)
}

func parseTimes(name string, records []string, layout string) (*Column, error) {
	out := make([]time.Time, len(records))
	for i, raw := range records {
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "NaN" || raw == "NA" {
			continue
		}
		ts, err := time.Parse(layout, raw)
		if err != nil {
			return nil, fmt.Errorf("frame: column %q row %d: %w", name, i, err)
		}
		out[i] = ts
	}
	return TimeColumn(name, out), nil
}

// WriteCSV writes t with a header row. Floats are written in their shortest
// exact form and nulls as empty cells.
func WriteCSV(w io.Writer, t *Table, opts CSVOptions) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("frame: write csv header: %w", err)
	}
	record := make([]string, len(t.columns))
	for i := 0; i < t.rows; i++ {
		for j, c := range t.columns {
			record[j] = csvCell(c, i, opts.layout())
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("frame: write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvCell(c *Column, i int, layout string) string {
	switch c.typ {
	case TypeTime:
		if c.times[i].IsZero() {
			return ""
		}
		return c.times[i].Format(layout)
	case TypeFloat:
		if math.IsNaN(c.floats[i]) {
			return ""
		}
		return strconv.FormatFloat(c.floats[i], 'g', -1, 64)
	case TypeInt:
		return strconv.FormatInt(c.ints[i], 10)
	case TypeString:
		return c.strings[i]
	case TypeBool:
		return strconv.FormatBool(c.bools[i])
	}
	return ""
}
