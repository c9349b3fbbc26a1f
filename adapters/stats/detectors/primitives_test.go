package detectors

import (
	"math"
	"testing"

	"gomood/domain/emotion"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	a := emotion.Dimensions{Valence: 1, Arousal: 2, Dominance: 2}
	assert.InDelta(t, 3.0, Distance(emotion.Dimensions{}, a), 1e-12)
	assert.Zero(t, Distance(a, a))
}

func TestIndexSlope(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"rising", []float64{1, 3, 5}, 2},
		{"falling", []float64{0.5, 0.25, 0, -0.25}, -0.25},
		{"flat", []float64{0.4, 0.4, 0.4}, 0},
		{"single point", []float64{1}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, IndexSlope(tt.values), 1e-9)
		})
	}
}

func TestSlope_NoSpreadInX(t *testing.T) {
	assert.Zero(t, Slope([]float64{2, 2, 2}, []float64{1, 5, 9}))
	assert.Zero(t, Slope([]float64{1, 2}, []float64{1}))
}

func TestFitQuality(t *testing.T) {
	assert.InDelta(t, 1.0, FitQuality([]float64{0.1, 0.2, 0.3, 0.4}), 1e-9, "perfect line")
	assert.Zero(t, FitQuality([]float64{0.3, 0.3, 0.3}), "zero total variance")

	zigzag := FitQuality([]float64{0, 1, 0, 1, 0, 1})
	assert.GreaterOrEqual(t, zigzag, 0.0)
	assert.Less(t, zigzag, 0.5)
}

func TestAutocorrelation(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	all := []bool{true, true, true, true}

	assert.InDelta(t, 20.0/3.0, Autocorrelation(values, all, 1), 1e-12)
	assert.InDelta(t, (3.0+8.0)/2.0, Autocorrelation(values, all, 2), 1e-12)

	// Missing pairs are skipped but the divisor stays n-lag.
	gapped := []bool{true, false, true, true}
	assert.InDelta(t, 12.0/3.0, Autocorrelation(values, gapped, 1), 1e-12)

	assert.Zero(t, Autocorrelation(values, all, 0))
	assert.Zero(t, Autocorrelation(values, all, 4))
}

func TestNormalizedAutocorrelation(t *testing.T) {
	n, period := 18, 6
	values := make([]float64, n)
	present := make([]bool, n)
	for i := range values {
		values[i] = 5 + math.Sin(2*math.Pi*float64(i)/float64(period))
		present[i] = true
	}

	assert.InDelta(t, 1.0, NormalizedAutocorrelation(values, present, period), 1e-9)
	assert.Less(t, NormalizedAutocorrelation(values, present, 4), 0.0)
	assert.Less(t, NormalizedAutocorrelation(values, present, 5), 0.6)

	flat := []float64{2, 2, 2, 2, 2}
	assert.Zero(t, NormalizedAutocorrelation(flat, []bool{true, true, true, true, true}, 1))
}
