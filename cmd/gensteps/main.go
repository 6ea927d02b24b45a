// Command gensteps generates a synthetic day of step-input records for local
// testing and integration fixtures. It emits one JSON object per line, in the
// exact shape the host adapter publishes to the source topic, with a
// configurable fraction of data-quality defects (missing-value sentinels,
// negative wind, out-of-range cloud cover) so the validation layer has
// something to correct.
//
// Usage:
//
//	go run ./cmd/gensteps -steps 96 -interval 15m -defect-rate 0.1 -out data/mock/steps.jsonl
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/clearbrook/stream-temp-sim/internal/domain"
)

var baseDate = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	steps := flag.Int("steps", 96, "number of timesteps to generate")
	interval := flag.Duration("interval", 15*time.Minute, "interval between timesteps")
	defectRate := flag.Float64("defect-rate", 0.1, "fraction of rows given a data-quality defect")
	seed := flag.Int64("seed", 1, "random seed for reproducible fixtures")
	out := flag.String("out", "", "output path (stdout when empty)")
	flag.Parse()

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	rng := rand.New(rand.NewSource(*seed))
	enc := json.NewEncoder(w)

	for i := 0; i < *steps; i++ {
		ts := baseDate.Add(time.Duration(i) * *interval)
		rec := syntheticRecord(ts, rng)
		if rng.Float64() < *defectRate {
			injectDefect(&rec, rng)
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	return nil
}

// syntheticRecord produces a plausible mid-latitude summer day: temperature
// and solar radiation follow a sine over the day, wind picks up in the
// afternoon.
func syntheticRecord(ts time.Time, rng *rand.Rand) domain.StepRecord {
	dayFrac := float64(ts.Hour())/24 + float64(ts.Minute())/1440
	diurnal := math.Sin(2 * math.Pi * (dayFrac - 0.25)) // peaks mid-afternoon

	return domain.StepRecord{
		Timestamp:       ts.Format(time.RFC3339),
		AirTemp:         18 + 8*diurnal + rng.Float64(),
		Dewpoint:        10 + 2*diurnal + rng.Float64(),
		WindSpeed:       math.Max(0, 2+3*diurnal+rng.Float64()),
		CloudCover:      0.3 + 0.2*rng.Float64(),
		SolarRadiation:  math.Max(0, 800*diurnal),
		InflowTemp:      14 + 2*diurnal,
		FlowRate:        2.5 + 0.2*rng.Float64(),
		WaterDepth:      1.2,
		GroundwaterIn:   0.05,
		GroundwaterTemp: 11,
		Latitude:        44.05,
		Longitude:       -121.31,
		Elevation:       1100,
	}
}

// injectDefect corrupts one driver so the validator has work to do.
func injectDefect(rec *domain.StepRecord, rng *rand.Rand) {
	switch rng.Intn(4) {
	case 0:
		rec.AirTemp = -9999
	case 1:
		rec.Dewpoint = -999
	case 2:
		rec.WindSpeed = -rec.WindSpeed - 1
	case 3:
		rec.CloudCover = 1 + rng.Float64()
	}
}
