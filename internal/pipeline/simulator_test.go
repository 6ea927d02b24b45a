package pipeline_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/clearbrook/stream-temp-sim/internal/domain"
	"github.com/clearbrook/stream-temp-sim/internal/engine"
	"github.com/clearbrook/stream-temp-sim/internal/observability"
	"github.com/clearbrook/stream-temp-sim/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine records the calls it receives and returns a fixed state.
type stubEngine struct {
	calls   []float64 // elapsedDays per call
	lastIn  domain.StepInput
	next    domain.State
	flux    float64
	stepErr error
}

func (s *stubEngine) Step(in domain.StepInput, _ domain.State, elapsedDays float64) (domain.State, float64, error) {
	s.calls = append(s.calls, elapsedDays)
	s.lastIn = in
	if s.stepErr != nil {
		return domain.State{}, 0, s.stepErr
	}
	return s.next, s.flux, nil
}

func stepPayload(t *testing.T, ts time.Time, overrides map[string]any) []byte {
	t.Helper()
	rec := map[string]any{
		"timestamp":               ts.Format(time.RFC3339),
		"air_temperature":         22.0,
		"dewpoint_temperature":    12.0,
		"wind_speed":              2.0,
		"cloud_cover":             0.5,
		"groundwater_temperature": 11.0,
	}
	for k, v := range overrides {
		rec[k] = v
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	return data
}

func decodeOutput(t *testing.T, msg domain.OutputMessage) domain.StepOutput {
	t.Helper()
	var out domain.StepOutput
	require.NoError(t, json.Unmarshal(msg.Value, &out))
	return out
}

func TestStepSimulator_FirstStepSeedsState(t *testing.T) {
	eng := &stubEngine{}
	sim := pipeline.NewSimulator(eng, slog.Default(), observability.NewMetricsForTesting())
	base := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

	msg, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base, nil)})
	require.NoError(t, err)

	out := decodeOutput(t, msg)
	assert.Equal(t, 17.0, out.WaterTemp, "midpoint of air and dewpoint")
	assert.Equal(t, 11.0, out.SedimentTemp, "groundwater temperature")
	assert.Equal(t, 0.0, out.ElapsedDays)
	assert.Empty(t, out.Warnings)
	assert.Empty(t, eng.calls, "engine must not run on the first step")
}

func TestStepSimulator_SecondStepRunsEngine(t *testing.T) {
	eng := &stubEngine{next: domain.State{WaterTemp: 16.2, SedimentTemp: 11.1}, flux: 3.5}
	sim := pipeline.NewSimulator(eng, slog.Default(), observability.NewMetricsForTesting())
	base := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

	_, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base, nil)})
	require.NoError(t, err)

	msg, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base.Add(time.Hour), nil)})
	require.NoError(t, err)

	out := decodeOutput(t, msg)
	require.Len(t, eng.calls, 1)
	assert.InDelta(t, 1.0/24, eng.calls[0], 1e-12)
	assert.InDelta(t, 1.0/24, out.ElapsedDays, 1e-12)
	assert.Equal(t, 16.2, out.WaterTemp)
	assert.Equal(t, 11.1, out.SedimentTemp)
	assert.Equal(t, 3.5, out.NetHeatFlux)
	assert.False(t, out.Skipped)
	assert.Empty(t, out.Warnings)
}

func TestStepSimulator_DuplicateStepSkipsUpdate(t *testing.T) {
	eng := &stubEngine{next: domain.State{WaterTemp: 99}}
	sim := pipeline.NewSimulator(eng, slog.Default(), observability.NewMetricsForTesting())
	base := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

	_, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base, nil)})
	require.NoError(t, err)

	msg, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base, nil)})
	require.NoError(t, err)

	out := decodeOutput(t, msg)
	assert.True(t, out.Skipped)
	assert.Equal(t, 17.0, out.WaterTemp, "state republished unchanged")
	assert.Equal(t, 0.0, out.ElapsedDays)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "duplicate")
	assert.Empty(t, eng.calls, "duplicate step must not integrate")
}

func TestStepSimulator_NegativeStepStillIntegrates(t *testing.T) {
	eng := &stubEngine{next: domain.State{WaterTemp: 15}}
	sim := pipeline.NewSimulator(eng, slog.Default(), observability.NewMetricsForTesting())
	base := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

	_, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base, nil)})
	require.NoError(t, err)

	msg, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base.Add(-time.Hour), nil)})
	require.NoError(t, err)

	out := decodeOutput(t, msg)
	require.Len(t, eng.calls, 1)
	assert.InDelta(t, -1.0/24, eng.calls[0], 1e-12)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "negative")
	assert.False(t, out.Skipped)
}

func TestStepSimulator_LargeStepAdvisory(t *testing.T) {
	eng := &stubEngine{}
	sim := pipeline.NewSimulator(eng, slog.Default(), observability.NewMetricsForTesting())
	base := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

	_, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base, nil)})
	require.NoError(t, err)

	msg, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base.Add(5*time.Hour), nil)})
	require.NoError(t, err)

	out := decodeOutput(t, msg)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "Large timestep detected")
	assert.Contains(t, out.Warnings[0], "5.00 hours")
	require.Len(t, eng.calls, 1, "advisory does not block integration")
}

func TestStepSimulator_CorrectsMetDataBeforeEngine(t *testing.T) {
	eng := &stubEngine{}
	sim := pipeline.NewSimulator(eng, slog.Default(), observability.NewMetricsForTesting())
	base := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

	_, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base, nil)})
	require.NoError(t, err)

	payload := stepPayload(t, base.Add(time.Hour), map[string]any{
		"air_temperature": -999.0,
		"wind_speed":      -3.0,
	})
	msg, err := sim.Simulate(context.Background(), domain.RawStep{Value: payload})
	require.NoError(t, err)

	assert.Equal(t, 20.0, eng.lastIn.AirTemp, "sentinel replaced before the engine runs")
	assert.Equal(t, 0.0, eng.lastIn.WindSpeed)

	out := decodeOutput(t, msg)
	assert.Equal(t, []string{
		"Air temperature missing for 1 timestep(s), set to 20°C",
		"Wind speed negative for 1 timestep(s), set to zero",
	}, out.Warnings)
}

func TestStepSimulator_UnparseableStepFails(t *testing.T) {
	sim := pipeline.NewSimulator(&stubEngine{}, slog.Default(), observability.NewMetricsForTesting())

	_, err := sim.Simulate(context.Background(), domain.RawStep{Value: []byte("not-json{{{")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse raw step")
}

func TestStepSimulator_EngineErrorPropagates(t *testing.T) {
	eng := &stubEngine{stepErr: fmt.Errorf("integrator diverged")}
	sim := pipeline.NewSimulator(eng, slog.Default(), observability.NewMetricsForTesting())
	base := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

	_, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base, nil)})
	require.NoError(t, err)

	_, err = sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base.Add(time.Hour), nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "integrator diverged")
}

func TestStepSimulator_WithRelaxationEngine(t *testing.T) {
	eng := engine.New(domain.SiteParams{})
	sim := pipeline.NewSimulator(eng, slog.Default(), observability.NewMetricsForTesting())
	base := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

	first, err := sim.Simulate(context.Background(), domain.RawStep{Value: stepPayload(t, base, nil)})
	require.NoError(t, err)
	firstOut := decodeOutput(t, first)

	// Warmer air over the next hour pulls the water temperature up.
	payload := stepPayload(t, base.Add(time.Hour), map[string]any{"air_temperature": 30.0})
	second, err := sim.Simulate(context.Background(), domain.RawStep{Value: payload})
	require.NoError(t, err)
	secondOut := decodeOutput(t, second)

	assert.Greater(t, secondOut.WaterTemp, firstOut.WaterTemp)
	assert.Positive(t, secondOut.NetHeatFlux)
}
