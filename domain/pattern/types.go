// Package pattern defines the records emitted by temporal pattern detection.
package pattern

import (
	"gomood/domain/core"
	"gomood/domain/emotion"
)

// Type tags the kind of temporal pattern
type Type string

const (
	TypeTrend     Type = "trend"
	TypeCycle     Type = "cycle"
	TypeShift     Type = "shift"
	TypeStability Type = "stability"
)

// Pattern is one detected multidimensional pattern.
//
// Confidence is a trust score in [0, 1]. Significance is an unbounded magnitude
// that is only meaningful for ranking patterns of the same Type against each other.
type Pattern struct {
	ID           core.PatternID       `json:"id"`
	Type         Type                 `json:"type"`
	TimeRange    core.TimeRange       `json:"time_range"`
	Description  string               `json:"description"`
	Dimensions   []emotion.Dimensions `json:"dimensions"`
	Confidence   float64              `json:"confidence"`
	Significance float64              `json:"significance"`
}

// MinConfidenceFloor is the lowest confidence floor an analysis may apply.
// Every reported pattern has confidence strictly above it.
const MinConfidenceFloor = 0.5

// FilterByConfidence keeps patterns whose confidence is strictly above floor.
// The input slice is not modified.
func FilterByConfidence(patterns []Pattern, floor float64) []Pattern {
	kept := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Confidence > floor {
			kept = append(kept, p)
		}
	}
	return kept
}

// CountByType tallies patterns per type.
func CountByType(patterns []Pattern) map[Type]int {
	counts := make(map[Type]int, 4)
	for _, p := range patterns {
		counts[p.Type]++
	}
	return counts
}
