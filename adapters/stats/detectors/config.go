package detectors

// CycleMetric selects how lag correlation is scored by the cycle detector.
type CycleMetric string

const (
	// CycleMetricRaw is the mean of lagged products, not divided by variance.
	// Its scale depends on the magnitude of the data.
	CycleMetricRaw CycleMetric = "raw"
	// CycleMetricNormalized removes the mean and divides by the population variance.
	CycleMetricNormalized CycleMetric = "normalized"
)

// Config holds detector thresholds.
type Config struct {
	TrendMinWindow      int
	TrendMaxWindow      int
	TrendSlopeThreshold float64

	CycleMinPeriod            int
	CycleCorrelationThreshold float64
	CycleMetric               CycleMetric

	ShiftChangeThreshold float64
	ShiftSustainRatio    float64
	ShiftDeltaThreshold  float64

	StabilityThreshold float64
	StabilityMinRun    int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		TrendMinWindow:      3,
		TrendMaxWindow:      10,
		TrendSlopeThreshold: 0.1,

		CycleMinPeriod:            4,
		CycleCorrelationThreshold: 0.6,
		CycleMetric:               CycleMetricRaw,

		ShiftChangeThreshold: 0.5,
		ShiftSustainRatio:    0.5,
		ShiftDeltaThreshold:  0.3,

		StabilityThreshold: 0.2,
		StabilityMinRun:    5,
	}
}
