package fourier

import (
	"fmt"
	"sort"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/aevon-lab/tsfeatures/internal/core/frame"
)

const (
	EngineRows       = "rows"
	EngineVectorized = "vectorized"

	DefaultEngine = EngineRows
)

// Job is the resolved work an engine performs on a sorted table.
type Job struct {
	DateColumn   string
	Origin       time.Time
	ScaleSeconds float64
	Plan         Plan
}

// Engine evaluates a plan over a table and returns one float column per
// planned column, in plan order. Engines never modify the table.
// To add an engine: implement this interface and register it in Engines,
// or pass it to an Augmenter with WithEngine.
type Engine interface {
	Name() string
	Generate(t *frame.Table, job Job) ([]*frame.Column, error)
}

// Engines is the registry of built-in engines. Every entry produces the same
// values for the same job.
var Engines = map[string]Engine{
	EngineRows:       rowEngine{},
	EngineVectorized: vectorEngine{mem: memory.DefaultAllocator},
}

// ValidEngine reports whether name is a registered engine.
func ValidEngine(name string) bool {
	_, ok := Engines[name]
	return ok
}

// EngineNames returns the registered engine names, sorted.
func EngineNames() []string {
	return sortedKeys(Engines)
}

func sortedKeys(m map[string]Engine) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dateTimes(t *frame.Table, name string) ([]time.Time, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", frame.ErrColumnNotFound, name)
	}
	if c.Type() != frame.TypeTime {
		return nil, fmt.Errorf("%w: %q", frame.ErrNotTimeColumn, name)
	}
	return c.Times(), nil
}
