package frame

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render draws the first limit rows of t as a text table. A non-positive
// limit renders every row.
func Render(t *Table, limit int, layout string) string {
	if layout == "" {
		layout = time.RFC3339
	}
	w := table.NewWriter()

	header := make(table.Row, 0, len(t.columns))
	for _, name := range t.Names() {
		header = append(header, name)
	}
	w.AppendHeader(header)

	n := t.rows
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		row := make(table.Row, 0, len(t.columns))
		for _, c := range t.columns {
			row = append(row, previewCell(c, i, layout))
		}
		w.AppendRow(row)
	}
	if n < t.rows {
		w.AppendFooter(table.Row{fmt.Sprintf("... %d more rows", t.rows-n)})
	}

	w.SetStyle(table.StyleLight)
	return w.Render()
}

func previewCell(c *Column, i int, layout string) string {
	switch c.typ {
	case TypeTime:
		if c.times[i].IsZero() {
			return "null"
		}
		return c.times[i].Format(layout)
	case TypeFloat:
		return strconv.FormatFloat(c.floats[i], 'f', 6, 64)
	}
	return fmt.Sprint(c.Value(i))
}
