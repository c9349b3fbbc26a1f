package detectors

import (
	"fmt"
	"math"

	"gomood/domain/core"
	"gomood/domain/emotion"
	"gomood/domain/pattern"
)

// CycleDetector sweeps candidate periods and scores each by lag correlation of
// the averaged VAD signal.
type CycleDetector struct {
	minPeriod int
	threshold float64
	metric    CycleMetric
}

func NewCycleDetector(cfg Config) *CycleDetector {
	metric := cfg.CycleMetric
	if metric == "" {
		metric = CycleMetricRaw
	}
	return &CycleDetector{
		minPeriod: cfg.CycleMinPeriod,
		threshold: cfg.CycleCorrelationThreshold,
		metric:    metric,
	}
}

func (d *CycleDetector) Name() string {
	return string(pattern.TypeCycle)
}

func (d *CycleDetector) Description() string {
	return "Detects periodic repetition by lag autocorrelation of the averaged VAD signal"
}

func (d *CycleDetector) correlation(values []float64, present []bool, lag int) float64 {
	if d.metric == CycleMetricNormalized {
		return NormalizedAutocorrelation(values, present, lag)
	}
	return Autocorrelation(values, present, lag)
}

func (d *CycleDetector) Detect(samples []emotion.DimensionalMap) []pattern.Pattern {
	n := len(samples)
	maxPeriod := n / 3
	if n == 0 || maxPeriod < d.minPeriod {
		return nil
	}

	values, present := averagedSignal(samples)
	span := core.NewTimeRange(samples[0].Timestamp, samples[n-1].Timestamp)

	var out []pattern.Pattern
	for period := d.minPeriod; period <= maxPeriod; period++ {
		corr := d.correlation(values, present, period)
		if corr <= d.threshold {
			continue
		}
		out = append(out, pattern.Pattern{
			Type:         pattern.TypeCycle,
			TimeRange:    span,
			Description:  fmt.Sprintf("Cyclical pattern with period of %d data points", period),
			Dimensions:   presentDimensions(samples),
			Confidence:   math.Min(corr, 1),
			Significance: corr,
		})
	}
	return out
}
