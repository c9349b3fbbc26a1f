package detectors

import (
	"math"

	"gomood/domain/core"
	"gomood/domain/emotion"
	"gomood/domain/pattern"
)

// TrendDetector finds windows of sustained monotonic movement via sliding-window
// least-squares regression on each VAD axis.
//
// Windows that contain a sample without dimensions are skipped, so a reported
// slope always spans exactly the wall-clock range of its window.
type TrendDetector struct {
	minWindow int
	maxWindow int
	threshold float64
}

func NewTrendDetector(cfg Config) *TrendDetector {
	return &TrendDetector{
		minWindow: cfg.TrendMinWindow,
		maxWindow: cfg.TrendMaxWindow,
		threshold: cfg.TrendSlopeThreshold,
	}
}

func (d *TrendDetector) Name() string {
	return string(pattern.TypeTrend)
}

func (d *TrendDetector) Description() string {
	return "Detects sustained movement in valence, arousal or dominance with sliding-window regression"
}

// WindowSize is min(maxWindow, n/3).
func (d *TrendDetector) WindowSize(n int) int {
	w := n / 3
	if w > d.maxWindow {
		w = d.maxWindow
	}
	return w
}

func (d *TrendDetector) Detect(samples []emotion.DimensionalMap) []pattern.Pattern {
	n := len(samples)
	window := d.WindowSize(n)
	if window < d.minWindow {
		return nil
	}

	var out []pattern.Pattern
	for start := 0; start+window <= n; start++ {
		win := samples[start : start+window]
		dims := presentDimensions(win)
		if len(dims) != len(win) {
			continue
		}

		slopes := axisSlopes(dims)
		strongest := math.Max(math.Abs(slopes.Valence), math.Max(math.Abs(slopes.Arousal), math.Abs(slopes.Dominance)))
		if strongest <= d.threshold {
			continue
		}

		averaged := make([]float64, len(dims))
		for i, dim := range dims {
			averaged[i] = dim.Average()
		}

		out = append(out, pattern.Pattern{
			Type:         pattern.TypeTrend,
			TimeRange:    core.NewTimeRange(win[0].Timestamp, win[len(win)-1].Timestamp),
			Description:  trendPhrases.describe(slopes, d.threshold),
			Dimensions:   dims,
			Confidence:   FitQuality(averaged),
			Significance: strongest,
		})
	}
	return out
}

// axisSlopes regresses each axis against sample position.
func axisSlopes(dims []emotion.Dimensions) emotion.Dimensions {
	valence := make([]float64, len(dims))
	arousal := make([]float64, len(dims))
	dominance := make([]float64, len(dims))
	for i, d := range dims {
		valence[i] = d.Valence
		arousal[i] = d.Arousal
		dominance[i] = d.Dominance
	}
	return emotion.Dimensions{
		Valence:   IndexSlope(valence),
		Arousal:   IndexSlope(arousal),
		Dominance: IndexSlope(dominance),
	}
}
