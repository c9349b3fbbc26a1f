package detectors

import (
	"math"

	"gomood/domain/core"
	"gomood/domain/emotion"
	"gomood/domain/pattern"
)

// ShiftDetector finds abrupt jumps between neighbouring samples that hold on the
// following sample.
type ShiftDetector struct {
	changeThreshold float64
	sustainRatio    float64
	deltaThreshold  float64
}

func NewShiftDetector(cfg Config) *ShiftDetector {
	return &ShiftDetector{
		changeThreshold: cfg.ShiftChangeThreshold,
		sustainRatio:    cfg.ShiftSustainRatio,
		deltaThreshold:  cfg.ShiftDeltaThreshold,
	}
}

func (d *ShiftDetector) Name() string {
	return string(pattern.TypeShift)
}

func (d *ShiftDetector) Description() string {
	return "Detects abrupt, sustained changes between adjacent samples"
}

func (d *ShiftDetector) Detect(samples []emotion.DimensionalMap) []pattern.Pattern {
	var out []pattern.Pattern
	for i := 1; i+1 < len(samples); i++ {
		prev, okPrev := samples[i-1].Dimensions.Get()
		curr, okCurr := samples[i].Dimensions.Get()
		next, okNext := samples[i+1].Dimensions.Get()
		if !okPrev || !okCurr || !okNext {
			continue
		}

		change := Distance(prev, curr)
		following := Distance(curr, next)
		sustained := following < change*d.sustainRatio
		if change <= d.changeThreshold || !sustained {
			continue
		}

		out = append(out, pattern.Pattern{
			Type:         pattern.TypeShift,
			TimeRange:    core.NewTimeRange(samples[i-1].Timestamp, samples[i+1].Timestamp),
			Description:  shiftPhrases.describe(curr.Sub(prev), d.deltaThreshold),
			Dimensions:   []emotion.Dimensions{prev, curr, next},
			Confidence:   math.Min(change/d.changeThreshold, 1),
			Significance: change,
		})
	}
	return out
}
