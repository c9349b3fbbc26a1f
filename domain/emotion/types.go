// Package emotion holds the VAD affect types consumed by the pattern engine.
package emotion

import (
	"bytes"
	"encoding/json"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Dimensions is a point in valence/arousal/dominance space. The engine does
// not enforce a range; producers conventionally normalise to [-1, 1] or [0, 1].
type Dimensions struct {
	Valence   float64 `json:"valence"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

// Vector returns the dimensions as a slice in valence, arousal, dominance order.
func (d Dimensions) Vector() []float64 {
	return []float64{d.Valence, d.Arousal, d.Dominance}
}

// Average is the mean of the three components.
func (d Dimensions) Average() float64 {
	return (d.Valence + d.Arousal + d.Dominance) / 3
}

// Sub returns d - o component-wise.
func (d Dimensions) Sub(o Dimensions) Dimensions {
	return Dimensions{
		Valence:   d.Valence - o.Valence,
		Arousal:   d.Arousal - o.Arousal,
		Dominance: d.Dominance - o.Dominance,
	}
}

// Distance is the Euclidean distance between two points.
func (d Dimensions) Distance(o Dimensions) float64 {
	return floats.Distance(d.Vector(), o.Vector(), 2)
}

// OptionalDimensions carries dimensions that may be absent (a data gap).
// The zero value is absent.
type OptionalDimensions struct {
	value   Dimensions
	present bool
}

// Some wraps present dimensions.
func Some(d Dimensions) OptionalDimensions {
	return OptionalDimensions{value: d, present: true}
}

// None is the absent value.
func None() OptionalDimensions {
	return OptionalDimensions{}
}

// Get returns the dimensions and whether they are present.
func (o OptionalDimensions) Get() (Dimensions, bool) {
	return o.value, o.present
}

// IsPresent reports whether dimensions are present.
func (o OptionalDimensions) IsPresent() bool {
	return o.present
}

var jsonNull = []byte("null")

// MarshalJSON encodes an absent value as null.
func (o OptionalDimensions) MarshalJSON() ([]byte, error) {
	if !o.present {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON treats null as absent.
func (o *OptionalDimensions) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = None()
		return nil
	}
	var d Dimensions
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*o = Some(d)
	return nil
}

// DimensionalMap is one timestamped VAD sample, possibly missing its dimensions.
type DimensionalMap struct {
	Timestamp  time.Time          `json:"timestamp"`
	Dimensions OptionalDimensions `json:"dimensions"`
}

// NewDimensionalMap creates a sample with present dimensions.
func NewDimensionalMap(ts time.Time, d Dimensions) DimensionalMap {
	return DimensionalMap{Timestamp: ts, Dimensions: Some(d)}
}

// NewGap creates a sample with no dimensions.
func NewGap(ts time.Time) DimensionalMap {
	return DimensionalMap{Timestamp: ts, Dimensions: None()}
}

// EmotionScore is one labelled emotion with its detector score.
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analysis is an emotion-analysis record produced upstream for one utterance or time bucket.
type Analysis struct {
	ID              string             `json:"id,omitempty"`
	Timestamp       time.Time          `json:"timestamp"`
	Emotions        []EmotionScore     `json:"emotions,omitempty"`
	DominantEmotion string             `json:"dominant_emotion,omitempty"`
	Dimensions      OptionalDimensions `json:"dimensions"`
}

// DimensionalMap projects the record onto its timestamped dimensions.
func (a Analysis) DimensionalMap() DimensionalMap {
	return DimensionalMap{Timestamp: a.Timestamp, Dimensions: a.Dimensions}
}

// Statistics aggregates a sequence of analyses.
type Statistics struct {
	Mean       Dimensions `json:"mean"`
	Variance   Dimensions `json:"variance"`
	Trend      Dimensions `json:"trend"`
	Stability  float64    `json:"stability"`
	Volatility float64    `json:"volatility"`
}
