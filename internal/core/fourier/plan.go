package fourier

import (
	"fmt"

	"github.com/aevon-lab/tsfeatures/internal/core/frame"
)

// Column describes one generated output column.
type Column struct {
	Name   string
	Kind   Kind
	Order  int
	Period int
}

// Frequency is the angular multiplier for this column's term.
func (c Column) Frequency() float64 { return Frequency(c.Period, c.Order) }

// ColumnName renders the output name {date}_{kind}_{order}_{period}.
func ColumnName(dateColumn string, kind Kind, order, period int) string {
	return fmt.Sprintf("%s_%s_%d_%d", dateColumn, kind, order, period)
}

// Plan is the ordered list of columns an augmentation produces.
type Plan []Column

// BuildPlan enumerates columns by kind (sin before cos), then order from 1 to
// maxOrder, then period in the given order.
func BuildPlan(dateColumn string, periods []int, maxOrder int) Plan {
	plan := make(Plan, 0, len(Kinds)*maxOrder*len(periods))
	for _, kind := range Kinds {
		for order := 1; order <= maxOrder; order++ {
			for _, period := range periods {
				plan = append(plan, Column{
					Name:   ColumnName(dateColumn, kind, order, period),
					Kind:   kind,
					Order:  order,
					Period: period,
				})
			}
		}
	}
	return plan
}

func (p Plan) Names() []string {
	names := make([]string, len(p))
	for i, c := range p {
		names[i] = c.Name
	}
	return names
}

// Collisions lists planned names that already exist in t.
func (p Plan) Collisions(t *frame.Table) []string {
	var out []string
	for _, c := range p {
		if t.Has(c.Name) {
			out = append(out, c.Name)
		}
	}
	return out
}
