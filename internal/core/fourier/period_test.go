package fourier

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPeriodSpec_Periods(t *testing.T) {
	tests := []struct {
		name    string
		spec    PeriodSpec
		want    []int
		wantErr bool
	}{
		{name: "zero value", spec: PeriodSpec{}, want: []int{1}},
		{name: "single", spec: Period(7), want: []int{7}},
		{name: "inclusive range", spec: PeriodRange(1, 3), want: []int{1, 2, 3}},
		{name: "degenerate range", spec: PeriodRange(4, 4), want: []int{4}},
		{name: "list keeps order", spec: PeriodList(30, 7, 365), want: []int{30, 7, 365}},
		{name: "list drops duplicates", spec: PeriodList(7, 30, 7), want: []int{7, 30}},
		{name: "empty list", spec: PeriodList(), wantErr: true},
		{name: "reversed range", spec: PeriodRange(3, 1), wantErr: true},
		{name: "zero period", spec: Period(0), wantErr: true},
		{name: "negative in list", spec: PeriodList(7, -1), wantErr: true},
		{name: "range from zero", spec: PeriodRange(0, 3), wantErr: true},
		{name: "oversized range", spec: PeriodRange(1, MaxRangeLen+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Periods()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPeriodSpec)
				var specErr *InvalidPeriodSpecError
				require.ErrorAs(t, err, &specErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParsePeriodSpec(t *testing.T) {
	tests := []struct {
		input   string
		want    PeriodSpec
		wantErr bool
	}{
		{input: "7", want: Period(7)},
		{input: " 1:3 ", want: PeriodRange(1, 3)},
		{input: "1, 7,30", want: PeriodList(1, 7, 30)},
		{input: "", wantErr: true},
		{input: "weekly", wantErr: true},
		{input: "1:x", wantErr: true},
		{input: "1,,2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriodSpec(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPeriodSpec)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodSpec_JSON(t *testing.T) {
	tests := []struct {
		input   string
		want    PeriodSpec
		wantErr bool
	}{
		{input: `7`, want: Period(7)},
		{input: `[1, 7]`, want: PeriodList(1, 7)},
		{input: `{"start": 1, "end": 3}`, want: PeriodRange(1, 3)},
		{input: `null`, want: PeriodSpec{}},
		{input: `"weekly"`, wantErr: true},
		{input: `7.5`, wantErr: true},
		{input: `{"start": 1}`, wantErr: true},
		{input: `[1, "x"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var req struct {
				Periods PeriodSpec `json:"periods"`
			}
			err := json.Unmarshal([]byte(`{"periods": `+tt.input+`}`), &req)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPeriodSpec)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, req.Periods)
		})
	}
}

func TestPeriodSpec_JSONRoundTrip(t *testing.T) {
	for _, spec := range []PeriodSpec{Period(7), PeriodRange(2, 5), PeriodList(3, 1)} {
		data, err := json.Marshal(spec)
		require.NoError(t, err)

		var back PeriodSpec
		require.NoError(t, json.Unmarshal(data, &back))
		require.Equal(t, spec, back)
	}
}

func TestPeriodSpec_YAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PeriodSpec
		wantErr bool
	}{
		{name: "scalar", input: "periods: 12", want: Period(12)},
		{name: "sequence", input: "periods: [7, 30]", want: PeriodList(7, 30)},
		{name: "mapping", input: "periods:\n  start: 1\n  end: 4", want: PeriodRange(1, 4)},
		{name: "absent", input: "other: 1", want: PeriodSpec{}},
		{name: "text", input: "periods: weekly", wantErr: true},
		{name: "partial mapping", input: "periods:\n  end: 4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Periods PeriodSpec `yaml:"periods"`
			}
			err := yaml.Unmarshal([]byte(tt.input), &doc)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPeriodSpec)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, doc.Periods)
		})
	}
}
