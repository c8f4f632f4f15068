package fourier

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MaxRangeLen bounds the number of periods a PeriodRange may expand to.
const MaxRangeLen = 1 << 16

type periodKind uint8

const (
	periodDefault periodKind = iota
	periodSingle
	periodRange
	periodList
)

// PeriodSpec selects the seasonal periods to generate terms for, measured
// in multiples of the series time scale. The zero value means Period(1).
type PeriodSpec struct {
	kind       periodKind
	start, end int
	list       []int
}

// Period selects a single period.
func Period(p int) PeriodSpec {
	return PeriodSpec{kind: periodSingle, start: p, end: p}
}

// PeriodRange selects every integer period from start to end inclusive.
func PeriodRange(start, end int) PeriodSpec {
	return PeriodSpec{kind: periodRange, start: start, end: end}
}

// PeriodList selects an explicit list of periods.
func PeriodList(periods ...int) PeriodSpec {
	return PeriodSpec{kind: periodList, list: slices.Clone(periods)}
}

// IsZero reports whether s is the unset default.
func (s PeriodSpec) IsZero() bool { return s.kind == periodDefault }

// Periods expands s into distinct positive periods in first-seen order.
func (s PeriodSpec) Periods() ([]int, error) {
	var raw []int
	switch s.kind {
	case periodDefault:
		return []int{1}, nil
	case periodSingle:
		raw = []int{s.start}
	case periodRange:
		if s.start > s.end {
			return nil, s.invalid(fmt.Sprintf("range start %d is after end %d", s.start, s.end))
		}
		if s.start <= 0 {
			return nil, s.invalid(fmt.Sprintf("period %d must be positive", s.start))
		}
		if s.end-s.start >= MaxRangeLen {
			return nil, s.invalid(fmt.Sprintf("range spans more than %d periods", MaxRangeLen))
		}
		for p := s.start; p <= s.end; p++ {
			raw = append(raw, p)
		}
	case periodList:
		if len(s.list) == 0 {
			return nil, s.invalid("at least one period is required")
		}
		raw = s.list
	}

	out := make([]int, 0, len(raw))
	seen := make(map[int]struct{}, len(raw))
	for _, p := range raw {
		if p <= 0 {
			return nil, s.invalid(fmt.Sprintf("period %d must be positive", p))
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func (s PeriodSpec) String() string {
	switch s.kind {
	case periodSingle:
		return strconv.Itoa(s.start)
	case periodRange:
		return fmt.Sprintf("%d:%d", s.start, s.end)
	case periodList:
		parts := make([]string, len(s.list))
		for i, p := range s.list {
			parts[i] = strconv.Itoa(p)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	return "1"
}

func (s PeriodSpec) invalid(reason string) *InvalidPeriodSpecError {
	return &InvalidPeriodSpecError{Spec: s.String(), Reason: reason}
}

// ParsePeriodSpec reads the command-line form of a spec: "7" for a single
// period, "1:3" for an inclusive range and "1,7,30" for a list. The result
// is not checked; call Periods to validate it.
func ParsePeriodSpec(text string) (PeriodSpec, error) {
	text = strings.TrimSpace(text)
	invalid := func(reason string) error {
		return &InvalidPeriodSpecError{Spec: strconv.Quote(text), Reason: reason}
	}
	if text == "" {
		return PeriodSpec{}, invalid("empty value")
	}

	if lo, hi, ok := strings.Cut(text, ":"); ok {
		start, err1 := strconv.Atoi(strings.TrimSpace(lo))
		end, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil {
			return PeriodSpec{}, invalid("range bounds must be integers")
		}
		return PeriodRange(start, end), nil
	}

	if strings.Contains(text, ",") {
		fields := strings.Split(text, ",")
		list := make([]int, 0, len(fields))
		for _, f := range fields {
			p, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return PeriodSpec{}, invalid(fmt.Sprintf("list element %q is not an integer", f))
			}
			list = append(list, p)
		}
		return PeriodList(list...), nil
	}

	p, err := strconv.Atoi(text)
	if err != nil {
		return PeriodSpec{}, invalid("neither an integer, a range nor a list")
	}
	return Period(p), nil
}
