package detectors

import (
	"fmt"
	"math"

	"gomood/domain/core"
	"gomood/domain/emotion"
	"gomood/domain/pattern"
)

// StabilityDetector finds maximal runs of consecutive samples whose step
// distance stays within a threshold. A sample without dimensions always ends
// the current run.
type StabilityDetector struct {
	threshold float64
	minRun    int
}

func NewStabilityDetector(cfg Config) *StabilityDetector {
	return &StabilityDetector{
		threshold: cfg.StabilityThreshold,
		minRun:    cfg.StabilityMinRun,
	}
}

func (d *StabilityDetector) Name() string {
	return string(pattern.TypeStability)
}

func (d *StabilityDetector) Description() string {
	return "Detects maximal runs of low sample-to-sample change"
}

// stableRun accumulates one candidate run. start is an index into the samples.
type stableRun struct {
	start     int
	dims      []emotion.Dimensions
	changeSum float64
}

func (r *stableRun) length() int { return len(r.dims) }

func (r *stableRun) averageChange() float64 {
	if len(r.dims) < 2 {
		return 0
	}
	return r.changeSum / float64(len(r.dims)-1)
}

func (d *StabilityDetector) Detect(samples []emotion.DimensionalMap) []pattern.Pattern {
	var out []pattern.Pattern
	var run *stableRun

	flush := func() {
		if run != nil && run.length() >= d.minRun {
			last := run.start + run.length() - 1
			out = append(out, pattern.Pattern{
				Type:         pattern.TypeStability,
				TimeRange:    core.NewTimeRange(samples[run.start].Timestamp, samples[last].Timestamp),
				Description:  fmt.Sprintf("Stable emotional state over %d data points", run.length()),
				Dimensions:   run.dims,
				Confidence:   math.Max(0, 1-2*run.averageChange()),
				Significance: float64(run.length()),
			})
		}
		run = nil
	}

	for i, s := range samples {
		curr, ok := s.Dimensions.Get()
		if !ok {
			flush()
			continue
		}
		if run == nil {
			run = &stableRun{start: i, dims: []emotion.Dimensions{curr}}
			continue
		}

		// A live run is contiguous, so samples[i-1] is its last element.
		prev := run.dims[len(run.dims)-1]
		step := Distance(prev, curr)
		if step <= d.threshold {
			run.dims = append(run.dims, curr)
			run.changeSum += step
			continue
		}

		flush()
		run = &stableRun{start: i, dims: []emotion.Dimensions{curr}}
	}
	flush()

	return out
}
