// Package domain models the inputs of a stream/reservoir temperature
// simulation and the data-quality rules that gate every simulation step.
//
// # Validation Layers
//
// Three independent, stateless checks run before the heat-balance engine:
//
//   - Site parameters (ValidateSiteParams): time-invariant scalars describing
//     the water body. Hard-bound violations make the configuration unusable
//     and fail with InvalidParameterError; soft violations are substituted
//     with documented defaults and surfaced as warnings.
//   - Meteorological series (ValidateMetSeries): time-varying drivers. Never
//     fails; every issue is substituted in a corrected copy and reported as
//     one aggregated warning per rule.
//   - Timestep (CheckTimestep): classifies the interval between consecutive
//     simulation calls and returns the elapsed time in days.
//
// # Site Parameter Bounds
//
// Hard bounds, checked in fixed order with first-failure semantics:
//
//	water depth              > 0
//	effective shade          in [0, 1]
//	wind height              > 0
//	effective wind factor    >= 0
//	groundwater temperature  >= 0
//
// Soft corrections, applied independently in field order:
//
//	groundwater inflow            < 0  -> 0.0
//	sediment thermal conductivity < 0  -> 0.0
//	sediment thermal diffusivity  <= 0 -> 0.0014 (water properties)
//	sediment thickness            <= 0 -> 10.0 cm
//	hyporheic exchange rate       < 0  -> 0.0
//
// Only fields present in the input are examined; absent fields and
// unrecognized extra fields pass through untouched.
//
// # Missing-Value Sentinel
//
// Meteorological input encodes missing readings as values <= -999 rather
// than a null marker. Missing air temperature is replaced with 20°C and
// missing dewpoint with 10°C; negative wind speed and out-of-range cloud
// cover are clamped. Each rule reports the count of affected rows in a
// single warning, not one warning per row.
//
// # Timestep Classes
//
// Evaluated top-down, first match wins:
//
//	elapsed == 0      duplicate step, advise skipping the temperature update
//	elapsed < 0       timestamps not monotonically increasing
//	elapsed > 4 h     large step, numerical stability at risk
//	2 h < elapsed <= 4 h  moderate step, potential accuracy issues
//
// The elapsed interval in days is always returned so the caller can still
// drive the integrator when an advisory fires. Advisories never force a
// skip; the orchestrating loop decides.
package domain
