package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/clearbrook/stream-temp-sim/internal/domain"
	"github.com/clearbrook/stream-temp-sim/internal/observability"
)

// StepSimulator validates each incoming step, classifies the interval since
// the previous one, and drives the engine. It carries the integrated state
// and the previous step time between calls, so it is not safe for concurrent
// use; the pipeline invokes it sequentially.
type StepSimulator struct {
	engine  domain.Engine
	logger  *slog.Logger
	metrics *observability.Metrics

	state        domain.State
	prevStepTime time.Time
	initialized  bool
}

// NewSimulator creates a StepSimulator around the given engine.
func NewSimulator(engine domain.Engine, logger *slog.Logger, metrics *observability.Metrics) *StepSimulator {
	return &StepSimulator{
		engine:  engine,
		logger:  logger,
		metrics: metrics,
	}
}

// Simulate processes one raw step message into an output message.
func (s *StepSimulator) Simulate(_ context.Context, raw domain.RawStep) (domain.OutputMessage, error) {
	in, err := domain.ParseRawStep(raw)
	if err != nil {
		return domain.OutputMessage{}, err
	}

	validated, metWarnings := domain.ValidateMetSeries(in.MetRow())
	for _, w := range metWarnings {
		s.logger.Warn("meteorological data corrected", "warning", w, "step_time", in.Time)
		s.metrics.MetCorrections.Inc()
	}
	in = in.ApplyMetRow(validated)

	warnings := metWarnings

	if !s.initialized {
		// First call: seed the state from the drivers, nothing to integrate.
		s.state = domain.State{
			WaterTemp:    midpoint(in.AirTemp, in.Dewpoint),
			SedimentTemp: in.GroundwaterTemp,
		}
		s.initialized = true
		s.prevStepTime = in.Time
		return domain.SerializeStepOutput(domain.StepOutput{
			WaterTemp:    s.state.WaterTemp,
			SedimentTemp: s.state.SedimentTemp,
			StepTime:     in.Time,
			Warnings:     warnings,
		})
	}

	advisory, elapsedDays := domain.CheckTimestep(in.Time, s.prevStepTime)
	if advisory != "" {
		s.logger.Warn("timestep advisory", "warning", advisory,
			"elapsed_days", elapsedDays, "step_time", in.Time)
		s.metrics.TimestepAdvisories.WithLabelValues(timestepClass(elapsedDays)).Inc()
		warnings = append(warnings, advisory)
	}

	out := domain.StepOutput{
		StepTime:    in.Time,
		ElapsedDays: elapsedDays,
		Warnings:    warnings,
	}

	if elapsedDays == 0 {
		// Duplicate step: honor the advisory and republish the current
		// state without integrating.
		s.metrics.StepsSkipped.Inc()
		out.WaterTemp = s.state.WaterTemp
		out.SedimentTemp = s.state.SedimentTemp
		out.Skipped = true
		return domain.SerializeStepOutput(out)
	}

	next, flux, err := s.engine.Step(in, s.state, elapsedDays)
	if err != nil {
		return domain.OutputMessage{}, err
	}
	s.state = next
	s.prevStepTime = in.Time

	out.WaterTemp = next.WaterTemp
	out.SedimentTemp = next.SedimentTemp
	out.NetHeatFlux = flux
	return domain.SerializeStepOutput(out)
}

// timestepClass names the advisory branch for metric labels.
func timestepClass(elapsedDays float64) string {
	hours := elapsedDays * 24
	switch {
	case elapsedDays == 0:
		return "duplicate"
	case elapsedDays < 0:
		return "negative"
	case hours > 4:
		return "large"
	default:
		return "moderate"
	}
}

func midpoint(a, b float64) float64 { return (a + b) / 2 }
