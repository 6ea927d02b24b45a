package domain

import "fmt"

// MissingSentinel marks an absent meteorological reading. Any value at or
// below it counts as missing.
const MissingSentinel = -999.0

// Substitutes applied to missing meteorological readings.
const (
	DefaultAirTemp  = 20.0 // °C
	DefaultDewpoint = 10.0 // °C
)

// MetSeries is a column-oriented batch of meteorological drivers, one row
// per timestep. A nil column is absent and skipped by validation; columns
// the validator does not recognize ride along in Extra unchanged.
type MetSeries struct {
	AirTemp    []float64
	Dewpoint   []float64
	WindSpeed  []float64
	CloudCover []float64

	Extra map[string][]float64
}

// metRule is one vectorized mask-and-substitute pass over a single column.
type metRule struct {
	column     func(*MetSeries) []float64
	violate    func(float64) bool
	substitute float64
	warning    string // fmt verb receives the affected-row count
}

// metRules are applied in this order. Cloud cover's two rules are mutually
// exclusive per row and run negative-then-excessive.
var metRules = []metRule{
	{
		column:     func(s *MetSeries) []float64 { return s.AirTemp },
		violate:    func(v float64) bool { return v <= MissingSentinel },
		substitute: DefaultAirTemp,
		warning:    "Air temperature missing for %d timestep(s), set to 20°C",
	},
	{
		column:     func(s *MetSeries) []float64 { return s.Dewpoint },
		violate:    func(v float64) bool { return v <= MissingSentinel },
		substitute: DefaultDewpoint,
		warning:    "Dewpoint temperature missing for %d timestep(s), set to 10°C",
	},
	{
		column:     func(s *MetSeries) []float64 { return s.WindSpeed },
		violate:    func(v float64) bool { return v < 0 },
		substitute: 0.0,
		warning:    "Wind speed negative for %d timestep(s), set to zero",
	},
	{
		column:     func(s *MetSeries) []float64 { return s.CloudCover },
		violate:    func(v float64) bool { return v < 0 },
		substitute: 0.0,
		warning:    "Cloud cover negative for %d timestep(s), set to zero",
	},
	{
		column:     func(s *MetSeries) []float64 { return s.CloudCover },
		violate:    func(v float64) bool { return v > 1 },
		substitute: 1.0,
		warning:    "Cloud cover greater than one for %d timestep(s), set to one",
	},
}

// ValidateMetSeries corrects every data-quality issue in the batch and
// returns a corrected copy plus one aggregated warning per violated rule.
// It never fails: missing readings get documented substitutes, negative wind
// speed and out-of-range cloud cover are clamped. Rows with no issues pass
// through unchanged, and absent columns are skipped silently.
func ValidateMetSeries(series MetSeries) (MetSeries, []string) {
	validated := series.cloneColumns()

	var warnings []string
	for _, rule := range metRules {
		col := rule.column(&validated)
		if col == nil {
			continue
		}
		if n := maskSubstitute(col, rule.violate, rule.substitute); n > 0 {
			warnings = append(warnings, fmt.Sprintf(rule.warning, n))
		}
	}
	return validated, warnings
}

// maskSubstitute performs one batch pass over a column: evaluate the mask,
// substitute where it holds, and return the affected-row count.
func maskSubstitute(col []float64, violate func(float64) bool, substitute float64) int {
	count := 0
	for i, v := range col {
		if violate(v) {
			col[i] = substitute
			count++
		}
	}
	return count
}

// cloneColumns copies the recognized columns so substitutions never touch
// the caller's buffers. Extra columns are passed through by reference.
func (s MetSeries) cloneColumns() MetSeries {
	out := s
	for _, col := range []*[]float64{&out.AirTemp, &out.Dewpoint, &out.WindSpeed, &out.CloudCover} {
		if *col != nil {
			copied := make([]float64, len(*col))
			copy(copied, *col)
			*col = copied
		}
	}
	return out
}
