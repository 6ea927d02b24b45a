// Package engine provides the reference heat-balance collaborator used when
// no external integrator is attached. It is deliberately simple: water
// temperature relaxes toward the air/dewpoint midpoint and sediment
// temperature toward groundwater, first-order in elapsed time. A production
// deployment replaces it with a full heat-flux model behind the same
// domain.Engine interface.
package engine

import (
	"errors"
	"math"

	"github.com/clearbrook/stream-temp-sim/internal/domain"
)

// Relaxation rates in 1/day.
const (
	defaultWaterRate    = 2.0
	defaultSedimentRate = 0.4
)

// Relaxation implements domain.Engine.
type Relaxation struct {
	waterRate    float64
	sedimentRate float64

	// shade scales the atmospheric pull on the water column; taken from
	// the validated site parameters when supplied.
	shade float64
}

// New creates a Relaxation engine from validated site parameters.
func New(params domain.SiteParams) *Relaxation {
	r := &Relaxation{
		waterRate:    defaultWaterRate,
		sedimentRate: defaultSedimentRate,
	}
	if params.EffectiveShade != nil {
		r.shade = *params.EffectiveShade
	}
	return r
}

// Step advances the state by elapsedDays. Negative elapsed time extrapolates
// backwards, matching the contract that advisories never block integration.
func (r *Relaxation) Step(in domain.StepInput, state domain.State, elapsedDays float64) (domain.State, float64, error) {
	if math.IsNaN(elapsedDays) {
		return state, 0, errors.New("elapsed time is NaN")
	}

	equilibrium := EquilibriumTemp(in.AirTemp, in.Dewpoint)

	// Shading reduces how hard the atmosphere pulls on the water column.
	pull := r.waterRate * (1 - r.shade)
	waterTemp := relax(state.WaterTemp, equilibrium, pull, elapsedDays)
	sedimentTemp := relax(state.SedimentTemp, in.GroundwaterTemp, r.sedimentRate, elapsedDays)

	// Sign convention: positive flux warms the water.
	flux := pull * (equilibrium - state.WaterTemp)

	return domain.State{WaterTemp: waterTemp, SedimentTemp: sedimentTemp}, flux, nil
}

// EquilibriumTemp is the midpoint of air and dewpoint temperature, the reset
// value advised after an oversized timestep.
func EquilibriumTemp(airTemp, dewpoint float64) float64 {
	return (airTemp + dewpoint) / 2
}

// relax moves current toward target with first-order rate k over dt days.
func relax(current, target, k, dt float64) float64 {
	return target + (current-target)*math.Exp(-k*dt)
}
