package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawStep represents an unprocessed step-input message from the source topic.
type RawStep struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// StepRecord is the flat JSON structure the host adapter publishes once per
// simulated timestep: a timestamp plus thirteen named scalar drivers. The
// adapter performs no validation; every field arrives as supplied.
type StepRecord struct {
	Timestamp       string  `json:"timestamp"` // RFC 3339
	AirTemp         float64 `json:"air_temperature"`
	Dewpoint        float64 `json:"dewpoint_temperature"`
	WindSpeed       float64 `json:"wind_speed"`
	CloudCover      float64 `json:"cloud_cover"`
	SolarRadiation  float64 `json:"solar_radiation"`
	InflowTemp      float64 `json:"inflow_temperature"`
	FlowRate        float64 `json:"flow_rate"`
	WaterDepth      float64 `json:"water_depth"`
	GroundwaterIn   float64 `json:"groundwater_inflow"`
	GroundwaterTemp float64 `json:"groundwater_temperature"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Elevation       float64 `json:"elevation"`
}

// StepInput is the parsed form of a StepRecord with a resolved timestamp.
type StepInput struct {
	Time            time.Time
	AirTemp         float64
	Dewpoint        float64
	WindSpeed       float64
	CloudCover      float64
	SolarRadiation  float64
	InflowTemp      float64
	FlowRate        float64
	WaterDepth      float64
	GroundwaterIn   float64
	GroundwaterTemp float64
	Latitude        float64
	Longitude       float64
	Elevation       float64
}

// State carries the temperatures integrated between steps.
type State struct {
	WaterTemp    float64 `json:"water_temperature"`
	SedimentTemp float64 `json:"sediment_temperature"`
}

// StepOutput holds the three scalars returned to the host per step plus
// step bookkeeping for downstream consumers.
type StepOutput struct {
	WaterTemp    float64 `json:"water_temperature"`
	SedimentTemp float64 `json:"sediment_temperature"`
	NetHeatFlux  float64 `json:"net_heat_flux"`

	StepTime    time.Time `json:"step_time"`
	ElapsedDays float64   `json:"elapsed_days"`
	Skipped     bool      `json:"skipped,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputMessage is the serialized form destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// ParseRawStep deserializes a RawStep's value into a StepInput.
func ParseRawStep(raw RawStep) (StepInput, error) {
	var rec StepRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return StepInput{}, fmt.Errorf("parse raw step: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, rec.Timestamp)
	if err != nil {
		return StepInput{}, fmt.Errorf("parse raw step timestamp: %w", err)
	}

	return StepInput{
		Time:            ts,
		AirTemp:         rec.AirTemp,
		Dewpoint:        rec.Dewpoint,
		WindSpeed:       rec.WindSpeed,
		CloudCover:      rec.CloudCover,
		SolarRadiation:  rec.SolarRadiation,
		InflowTemp:      rec.InflowTemp,
		FlowRate:        rec.FlowRate,
		WaterDepth:      rec.WaterDepth,
		GroundwaterIn:   rec.GroundwaterIn,
		GroundwaterTemp: rec.GroundwaterTemp,
		Latitude:        rec.Latitude,
		Longitude:       rec.Longitude,
		Elevation:       rec.Elevation,
	}, nil
}

// MetRow builds a single-row meteorological series from the step's drivers
// so the batch validator can run its per-column rules on one timestep.
func (in StepInput) MetRow() MetSeries {
	return MetSeries{
		AirTemp:    []float64{in.AirTemp},
		Dewpoint:   []float64{in.Dewpoint},
		WindSpeed:  []float64{in.WindSpeed},
		CloudCover: []float64{in.CloudCover},
	}
}

// ApplyMetRow writes a validated single-row series back onto the input.
func (in StepInput) ApplyMetRow(series MetSeries) StepInput {
	in.AirTemp = series.AirTemp[0]
	in.Dewpoint = series.Dewpoint[0]
	in.WindSpeed = series.WindSpeed[0]
	in.CloudCover = series.CloudCover[0]
	return in
}

// SerializeStepOutput marshals a StepOutput into an output message. The key
// is the step time so downstream compaction keeps the latest result per step.
func SerializeStepOutput(out StepOutput) (OutputMessage, error) {
	out.ProcessedAt = clock.Now().UTC()

	data, err := json.Marshal(out)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize step output: %w", err)
	}
	return OutputMessage{
		Key:   []byte(out.StepTime.UTC().Format(time.RFC3339)),
		Value: data,
		Headers: map[string]string{
			"step_time":    out.StepTime.UTC().Format(time.RFC3339),
			"processed_at": out.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
