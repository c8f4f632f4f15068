package frame

import (
	"fmt"
	"slices"
)

// Data is either a *Table or a *Grouped table.
type Data interface {
	source() *Table
	flatten() *Table
}

// Grouped is a table partitioned by one or more key columns.
type Grouped struct {
	table *Table
	keys  []string
}

// GroupBy partitions t by the given key columns.
func GroupBy(t *Table, keys ...string) (*Grouped, error) {
	if t == nil {
		return nil, ErrNilData
	}
	if len(keys) == 0 {
		return nil, ErrNoGroupKeys
	}
	for _, k := range keys {
		if !t.Has(k) {
			return nil, fmt.Errorf("%w: group key %q", ErrColumnNotFound, k)
		}
	}
	return &Grouped{table: t, keys: slices.Clone(keys)}, nil
}

func (g *Grouped) Table() *Table  { return g.table }
func (g *Grouped) Keys() []string { return slices.Clone(g.keys) }

// NumGroups counts the distinct key tuples.
func (g *Grouped) NumGroups() int {
	if g.table.rows == 0 {
		return 0
	}
	keys := g.keyColumns()
	idx := g.table.order(keys...)
	n := 1
	for i := 1; i < len(idx); i++ {
		for _, k := range keys {
			if k.compare(idx[i-1], idx[i]) != 0 {
				n++
				break
			}
		}
	}
	return n
}

// Flatten returns an ungrouped copy with rows ordered by ascending key tuple
// and original order kept within each group. Key columns stay as ordinary
// columns.
func (g *Grouped) Flatten() *Table {
	return g.table.Take(g.table.order(g.keyColumns()...))
}

func (g *Grouped) keyColumns() []*Column {
	cols := make([]*Column, len(g.keys))
	for i, k := range g.keys {
		cols[i], _ = g.table.Column(k)
	}
	return cols
}

func (t *Table) source() *Table  { return t }
func (t *Table) flatten() *Table { return t.Clone() }

func (g *Grouped) source() *Table  { return g.table }
func (g *Grouped) flatten() *Table { return g.Flatten() }

// Flatten returns a fresh table for d that shares no storage with it.
func Flatten(d Data) (*Table, error) {
	if err := CheckData(d); err != nil {
		return nil, err
	}
	return d.flatten(), nil
}
