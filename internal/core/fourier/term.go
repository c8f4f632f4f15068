package fourier

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Kind is the trigonometric function of a term.
type Kind string

const (
	Sin Kind = "sin"
	Cos Kind = "cos"
)

// Kinds lists the term kinds in column order.
var Kinds = []Kind{Sin, Cos}

func (k Kind) apply(x float64) float64 {
	if k == Cos {
		return math.Cos(x)
	}
	return math.Sin(x)
}

// Frequency is the angular multiplier 2π·order/period applied to a phase.
func Frequency(period, order int) float64 {
	return 2 * math.Pi * (float64(order) / float64(period))
}

// Value evaluates one term at a phase. NaN and infinite phases propagate.
func Value(phase float64, period, order int, kind Kind) float64 {
	return kind.apply(Frequency(period, order) * phase)
}

// Term evaluates one term over a phase vector.
func Term(phase []float64, period, order int, kind Kind) []float64 {
	out := make([]float64, len(phase))
	floats.ScaleTo(out, Frequency(period, order), phase)
	for i, x := range out {
		out[i] = kind.apply(x)
	}
	return out
}
