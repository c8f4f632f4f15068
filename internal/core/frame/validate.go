package frame

import "fmt"

// CheckData verifies that d is a usable table or grouped table.
func CheckData(d Data) error {
	switch v := d.(type) {
	case nil:
		return ErrNilData
	case *Table:
		if v == nil {
			return ErrNilData
		}
	case *Grouped:
		if v == nil || v.table == nil {
			return ErrNilData
		}
		for _, k := range v.keys {
			if !v.table.Has(k) {
				return fmt.Errorf("%w: group key %q", ErrColumnNotFound, k)
			}
		}
	}
	return nil
}

// CheckDateColumn verifies that name exists in d and holds timestamps.
func CheckDateColumn(d Data, name string) error {
	if err := CheckData(d); err != nil {
		return err
	}
	c, ok := d.source().Column(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	if c.typ != TypeTime {
		return fmt.Errorf("%w: %q has type %s", ErrNotTimeColumn, name, c.typ)
	}
	return nil
}
