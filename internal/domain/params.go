package domain

// SiteParams holds the time-invariant scalar configuration of the simulated
// water body. Every recognized field is optional: a nil pointer means the
// host did not supply the value and the validator leaves it unexamined.
// Unrecognized fields supplied by the host are carried in Extra untouched.
type SiteParams struct {
	WaterDepth            *float64 `yaml:"water_depth"`
	EffectiveShade        *float64 `yaml:"effective_shade"`
	WindHeight            *float64 `yaml:"wind_height"`
	EffectiveWindFactor   *float64 `yaml:"effective_wind_factor"`
	GroundwaterTemp       *float64 `yaml:"groundwater_temperature"`
	GroundwaterInflow     *float64 `yaml:"groundwater_inflow"`
	SedimentConductivity  *float64 `yaml:"sediment_thermal_conductivity"`
	SedimentDiffusivity   *float64 `yaml:"sediment_thermal_diffusivity"`
	SedimentThickness     *float64 `yaml:"sediment_thickness"`
	HyporheicExchangeRate *float64 `yaml:"hyporheic_exchange_rate"`

	Extra map[string]float64 `yaml:",inline"`
}

// Substitution values applied by the soft-correct rules.
const (
	// DefaultSedimentDiffusivity is the thermal diffusivity of water in
	// cm²/s, substituted when the sediment value is non-positive.
	DefaultSedimentDiffusivity = 0.0014

	// DefaultSedimentThickness is the substitute sediment layer thickness in cm.
	DefaultSedimentThickness = 10.0
)

// InvalidParameterError reports a hard-bound site parameter violation. The
// configuration is unusable until corrected; no substitution is attempted.
type InvalidParameterError struct {
	Field   string
	Message string
}

func (e *InvalidParameterError) Error() string { return e.Message }

// clone returns a deep copy so corrections never alias the caller's values.
func (p SiteParams) clone() SiteParams {
	out := p
	for _, f := range []**float64{
		&out.WaterDepth, &out.EffectiveShade, &out.WindHeight,
		&out.EffectiveWindFactor, &out.GroundwaterTemp, &out.GroundwaterInflow,
		&out.SedimentConductivity, &out.SedimentDiffusivity,
		&out.SedimentThickness, &out.HyporheicExchangeRate,
	} {
		if *f != nil {
			v := **f
			*f = &v
		}
	}
	if p.Extra != nil {
		out.Extra = make(map[string]float64, len(p.Extra))
		for k, v := range p.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// hardRule is one entry in the ordered hard-reject catalog.
type hardRule struct {
	field   string
	value   func(SiteParams) *float64
	violate func(float64) bool
	message string
}

// hardRules are checked in this exact order; the first violation fails the
// whole call and no further checks, hard or soft, run.
var hardRules = []hardRule{
	{
		field:   "water_depth",
		value:   func(p SiteParams) *float64 { return p.WaterDepth },
		violate: func(v float64) bool { return v <= 0 },
		message: "Water depth must be greater than zero",
	},
	{
		field:   "effective_shade",
		value:   func(p SiteParams) *float64 { return p.EffectiveShade },
		violate: func(v float64) bool { return v < 0 || v > 1 },
		message: "Effective shade must be between zero and one",
	},
	{
		field:   "wind_height",
		value:   func(p SiteParams) *float64 { return p.WindHeight },
		violate: func(v float64) bool { return v <= 0 },
		message: "Wind height must be greater than zero",
	},
	{
		field:   "effective_wind_factor",
		value:   func(p SiteParams) *float64 { return p.EffectiveWindFactor },
		violate: func(v float64) bool { return v < 0 },
		message: "Effective wind factor must be greater than or equal to zero",
	},
	{
		field:   "groundwater_temperature",
		value:   func(p SiteParams) *float64 { return p.GroundwaterTemp },
		violate: func(v float64) bool { return v < 0 },
		message: "Groundwater temperature must be greater than or equal to zero",
	},
}

// softRule is one entry in the soft-correct catalog.
type softRule struct {
	field      string
	value      func(*SiteParams) *float64
	violate    func(float64) bool
	substitute float64
	warning    string
}

// softRules run in field order; each violated rule substitutes its default
// and appends exactly one warning.
var softRules = []softRule{
	{
		field:      "groundwater_inflow",
		value:      func(p *SiteParams) *float64 { return p.GroundwaterInflow },
		violate:    func(v float64) bool { return v < 0 },
		substitute: 0.0,
		warning:    "Groundwater inflow was negative, set to zero",
	},
	{
		field:      "sediment_thermal_conductivity",
		value:      func(p *SiteParams) *float64 { return p.SedimentConductivity },
		violate:    func(v float64) bool { return v < 0 },
		substitute: 0.0,
		warning:    "Sediment thermal conductivity was negative, set to zero",
	},
	{
		field:      "sediment_thermal_diffusivity",
		value:      func(p *SiteParams) *float64 { return p.SedimentDiffusivity },
		violate:    func(v float64) bool { return v <= 0 },
		substitute: DefaultSedimentDiffusivity,
		warning:    "Sediment thermal diffusivity was non-positive, assumed equal to water properties",
	},
	{
		field:      "sediment_thickness",
		value:      func(p *SiteParams) *float64 { return p.SedimentThickness },
		violate:    func(v float64) bool { return v <= 0 },
		substitute: DefaultSedimentThickness,
		warning:    "Sediment thickness was non-positive, set to 10 cm",
	},
	{
		field:      "hyporheic_exchange_rate",
		value:      func(p *SiteParams) *float64 { return p.HyporheicExchangeRate },
		violate:    func(v float64) bool { return v < 0 },
		substitute: 0.0,
		warning:    "Hyporheic exchange rate was negative, set to zero",
	},
}

// ValidateSiteParams checks every supplied site parameter against its
// documented bound. A hard-bound violation returns an *InvalidParameterError
// immediately and short-circuits all remaining checks. Soft violations are
// substituted in the returned copy, one warning per corrected field, in
// field order. A fully valid input comes back unmodified with no warnings.
func ValidateSiteParams(params SiteParams) (SiteParams, []string, error) {
	for _, rule := range hardRules {
		v := rule.value(params)
		if v != nil && rule.violate(*v) {
			return SiteParams{}, nil, &InvalidParameterError{Field: rule.field, Message: rule.message}
		}
	}

	validated := params.clone()
	var warnings []string
	for _, rule := range softRules {
		v := rule.value(&validated)
		if v != nil && rule.violate(*v) {
			*v = rule.substitute
			warnings = append(warnings, rule.warning)
		}
	}
	return validated, warnings, nil
}
