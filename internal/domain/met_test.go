package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMetSeries_MissingAirTemperature(t *testing.T) {
	series := MetSeries{AirTemp: []float64{20, -999, -1000}}

	validated, warnings := ValidateMetSeries(series)

	assert.Equal(t, []float64{20, 20, 20}, validated.AirTemp)
	assert.Equal(t, []string{"Air temperature missing for 2 timestep(s), set to 20°C"}, warnings)
}

func TestValidateMetSeries_MissingDewpoint(t *testing.T) {
	series := MetSeries{Dewpoint: []float64{-999, 8.5, -1200.5}}

	validated, warnings := ValidateMetSeries(series)

	assert.Equal(t, []float64{10, 8.5, 10}, validated.Dewpoint)
	assert.Equal(t, []string{"Dewpoint temperature missing for 2 timestep(s), set to 10°C"}, warnings)
}

func TestValidateMetSeries_NegativeWindSpeed(t *testing.T) {
	series := MetSeries{WindSpeed: []float64{3.2, -0.1, 0}}

	validated, warnings := ValidateMetSeries(series)

	assert.Equal(t, []float64{3.2, 0, 0}, validated.WindSpeed)
	assert.Equal(t, []string{"Wind speed negative for 1 timestep(s), set to zero"}, warnings)
}

func TestValidateMetSeries_CloudCoverClamped(t *testing.T) {
	t.Run("negative", func(t *testing.T) {
		series := MetSeries{CloudCover: []float64{-0.2, 0.5}}

		validated, warnings := ValidateMetSeries(series)

		assert.Equal(t, []float64{0, 0.5}, validated.CloudCover)
		assert.Equal(t, []string{"Cloud cover negative for 1 timestep(s), set to zero"}, warnings)
	})

	t.Run("excessive", func(t *testing.T) {
		series := MetSeries{CloudCover: []float64{1.3, 1.0}}

		validated, warnings := ValidateMetSeries(series)

		assert.Equal(t, []float64{1, 1}, validated.CloudCover)
		assert.Equal(t, []string{"Cloud cover greater than one for 1 timestep(s), set to one"}, warnings)
	})

	t.Run("negative and excessive rows warn separately, negative first", func(t *testing.T) {
		series := MetSeries{CloudCover: []float64{-0.5, 1.5, 0.4}}

		validated, warnings := ValidateMetSeries(series)

		assert.Equal(t, []float64{0, 1, 0.4}, validated.CloudCover)
		require.Len(t, warnings, 2)
		assert.Equal(t, "Cloud cover negative for 1 timestep(s), set to zero", warnings[0])
		assert.Equal(t, "Cloud cover greater than one for 1 timestep(s), set to one", warnings[1])
	})
}

func TestValidateMetSeries_CleanBatchUnchanged(t *testing.T) {
	series := MetSeries{
		AirTemp:    []float64{18.2, 21.0},
		Dewpoint:   []float64{9.1, 11.4},
		WindSpeed:  []float64{0, 4.2},
		CloudCover: []float64{0, 1},
	}

	validated, warnings := ValidateMetSeries(series)

	assert.Empty(t, warnings)
	assert.Equal(t, series.AirTemp, validated.AirTemp)
	assert.Equal(t, series.Dewpoint, validated.Dewpoint)
	assert.Equal(t, series.WindSpeed, validated.WindSpeed)
	assert.Equal(t, series.CloudCover, validated.CloudCover)
}

func TestValidateMetSeries_AbsentColumnsSkipped(t *testing.T) {
	series := MetSeries{AirTemp: []float64{-999}}

	validated, warnings := ValidateMetSeries(series)

	require.Len(t, warnings, 1)
	assert.Nil(t, validated.Dewpoint)
	assert.Nil(t, validated.WindSpeed)
	assert.Nil(t, validated.CloudCover)
}

func TestValidateMetSeries_MultipleColumnsAggregateSeparately(t *testing.T) {
	series := MetSeries{
		AirTemp:   []float64{-999, -999, 15},
		WindSpeed: []float64{-1, -2, 3},
	}

	validated, warnings := ValidateMetSeries(series)

	assert.Equal(t, []string{
		"Air temperature missing for 2 timestep(s), set to 20°C",
		"Wind speed negative for 2 timestep(s), set to zero",
	}, warnings)
	assert.Equal(t, []float64{20, 20, 15}, validated.AirTemp)
	assert.Equal(t, []float64{0, 0, 3}, validated.WindSpeed)
}

func TestValidateMetSeries_ExtraColumnsPassThrough(t *testing.T) {
	extra := []float64{101.3, 101.2}
	series := MetSeries{
		AirTemp: []float64{-999, 12},
		Extra:   map[string][]float64{"pressure": extra},
	}

	validated, _ := ValidateMetSeries(series)

	assert.Equal(t, extra, validated.Extra["pressure"])
}

func TestValidateMetSeries_DoesNotMutateInput(t *testing.T) {
	col := []float64{-999, 17}
	series := MetSeries{AirTemp: col}

	validated, _ := ValidateMetSeries(series)

	assert.Equal(t, []float64{-999, 17}, col, "caller's column must not change")
	assert.Equal(t, []float64{20, 17}, validated.AirTemp)
}

func TestMaskSubstitute(t *testing.T) {
	col := []float64{1, -5, 2, -3}

	n := maskSubstitute(col, func(v float64) bool { return v < 0 }, 0)

	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{1, 0, 2, 0}, col)
}
