package frame

import (
	"fmt"
	"slices"
)

// Table is an ordered set of equally long, uniquely named columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New assembles a table from columns. Column order is preserved.
func New(columns ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("frame: column %d is nil", i)
		}
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrLengthMismatch, c.name, c.Len(), t.rows)
		}
		t.index[c.name] = i
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// MustNew is like New but panics on error.
func MustNew(columns ...*Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) NumRows() int { return t.rows }
func (t *Table) NumCols() int { return len(t.columns) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// Columns returns the columns in table order.
func (t *Table) Columns() []*Column {
	return slices.Clone(t.columns)
}

func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Clone returns a deep copy that shares no storage with t.
func (t *Table) Clone() *Table {
	out := &Table{index: make(map[string]int, len(t.columns)), rows: t.rows}
	for i, c := range t.columns {
		out.columns = append(out.columns, c.clone())
		out.index[c.name] = i
	}
	return out
}

// Take returns a new table holding the rows at indices, in that order.
func (t *Table) Take(indices []int) *Table {
	out := &Table{index: make(map[string]int, len(t.columns)), rows: len(indices)}
	for i, c := range t.columns {
		out.columns = append(out.columns, c.take(indices))
		out.index[c.name] = i
	}
	return out
}

// SortByTime returns a copy of t stably sorted ascending by the named time
// column. Null timestamps sort last; every other column follows its row.
func (t *Table) SortByTime(name string) (*Table, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	if c.typ != TypeTime {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotTimeColumn, name, c.typ)
	}
	return t.Take(t.order(c)), nil
}

func (t *Table) order(keys ...*Column) []int {
	idx := make([]int, t.rows)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		for _, k := range keys {
			if c := k.compare(a, b); c != 0 {
				return c
			}
		}
		return 0
	})
	return idx
}

// SetColumn replaces the column with the same name in place, or appends c
// when no such column exists.
func (t *Table) SetColumn(c *Column) error {
	if c == nil {
		return fmt.Errorf("frame: column is nil")
	}
	if len(t.columns) > 0 && c.Len() != t.rows {
		return fmt.Errorf("%w: column %q has %d rows, want %d", ErrLengthMismatch, c.name, c.Len(), t.rows)
	}
	if len(t.columns) == 0 {
		t.rows = c.Len()
	}
	if i, ok := t.index[c.name]; ok {
		t.columns[i] = c
		return nil
	}
	t.index[c.name] = len(t.columns)
	t.columns = append(t.columns, c)
	return nil
}
