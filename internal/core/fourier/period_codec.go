package fourier

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// periodRangeDoc is the object form of a range: {"start": 1, "end": 3}.
type periodRangeDoc struct {
	Start *int `json:"start" yaml:"start"`
	End   *int `json:"end" yaml:"end"`
}

func (d periodRangeDoc) spec(raw string) (PeriodSpec, error) {
	if d.Start == nil || d.End == nil {
		return PeriodSpec{}, &InvalidPeriodSpecError{Spec: raw, Reason: "range requires both start and end"}
	}
	return PeriodRange(*d.Start, *d.End), nil
}

// UnmarshalJSON accepts a number, an array of numbers or a range object.
// null leaves the default.
func (s *PeriodSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	raw := string(trimmed)
	if len(trimmed) == 0 || raw == "null" {
		*s = PeriodSpec{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []int
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return &InvalidPeriodSpecError{Spec: raw, Reason: "list elements must be integers"}
		}
		*s = PeriodList(list...)
	case '{':
		var doc periodRangeDoc
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return &InvalidPeriodSpecError{Spec: raw, Reason: "range bounds must be integers"}
		}
		spec, err := doc.spec(raw)
		if err != nil {
			return err
		}
		*s = spec
	default:
		var p int
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return &InvalidPeriodSpecError{Spec: raw, Reason: "neither an integer, a range nor a list"}
		}
		*s = Period(p)
	}
	return nil
}

// MarshalJSON writes the form UnmarshalJSON reads.
func (s PeriodSpec) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case periodRange:
		return json.Marshal(periodRangeDoc{Start: &s.start, End: &s.end})
	case periodList:
		return json.Marshal(s.list)
	case periodSingle:
		return json.Marshal(s.start)
	}
	return []byte("1"), nil
}

// UnmarshalYAML accepts a scalar, a sequence or a start/end mapping.
func (s *PeriodSpec) UnmarshalYAML(node *yaml.Node) error {
	raw := fmt.Sprintf("at line %d", node.Line)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = PeriodSpec{}
			return nil
		}
		var p int
		if err := node.Decode(&p); err != nil {
			return &InvalidPeriodSpecError{Spec: node.Value, Reason: "neither an integer, a range nor a list"}
		}
		*s = Period(p)
	case yaml.SequenceNode:
		var list []int
		if err := node.Decode(&list); err != nil {
			return &InvalidPeriodSpecError{Spec: raw, Reason: "list elements must be integers"}
		}
		*s = PeriodList(list...)
	case yaml.MappingNode:
		var doc periodRangeDoc
		if err := node.Decode(&doc); err != nil {
			return &InvalidPeriodSpecError{Spec: raw, Reason: "range bounds must be integers"}
		}
		spec, err := doc.spec(raw)
		if err != nil {
			return err
		}
		*s = spec
	default:
		return &InvalidPeriodSpecError{Spec: raw, Reason: "neither an integer, a range nor a list"}
	}
	return nil
}
