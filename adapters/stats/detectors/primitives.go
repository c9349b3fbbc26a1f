package detectors

import (
	"math"

	"gomood/domain/emotion"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// varianceEpsilon treats a sum of squares this small as zero spread.
const varianceEpsilon = 1e-12

// Distance is the Euclidean distance between two VAD points.
func Distance(a, b emotion.Dimensions) float64 {
	return a.Distance(b)
}

// Slope is the ordinary least-squares slope of ys against xs. It returns 0 when
// fewer than two points are given or the xs have no spread.
func Slope(xs, ys []float64) float64 {
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0
	}
	if stat.Variance(xs, nil) < varianceEpsilon {
		return 0
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta
}

// IndexSlope is the least-squares slope of values against their position.
func IndexSlope(values []float64) float64 {
	return Slope(positions(len(values)), values)
}

// FitQuality is max(0, 1 - SSres/SStot) of the least-squares line through
// values against position. It is 0 when values have no spread.
func FitQuality(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	if stat.Variance(values, nil) < varianceEpsilon {
		return 0
	}
	xs := positions(len(values))
	alpha, beta := stat.LinearRegression(xs, values, nil, false)
	r2 := stat.RSquared(xs, values, nil, alpha, beta)
	if math.IsNaN(r2) {
		return 0
	}
	return math.Min(1, math.Max(0, r2))
}

// Autocorrelation is the raw lag product (1/(n-lag)) * Σ v[i]*v[i+lag] over
// pairs where both values are present. Missing pairs are skipped, not zero-filled,
// but still count toward the n-lag divisor.
func Autocorrelation(values []float64, present []bool, lag int) float64 {
	n := len(values)
	if lag <= 0 || lag >= n {
		return 0
	}
	sum := 0.0
	for i := 0; i+lag < n; i++ {
		if present[i] && present[i+lag] {
			sum += values[i] * values[i+lag]
		}
	}
	return sum / float64(n-lag)
}

// NormalizedAutocorrelation is the lag covariance divided by the population
// variance of the present values.
func NormalizedAutocorrelation(values []float64, present []bool, lag int) float64 {
	n := len(values)
	if lag <= 0 || lag >= n {
		return 0
	}
	observed := make(stats.Float64Data, 0, n)
	for i, v := range values {
		if present[i] {
			observed = append(observed, v)
		}
	}
	mean, err := stats.Mean(observed)
	if err != nil {
		return 0
	}
	variance, err := stats.PopulationVariance(observed)
	if err != nil || variance < varianceEpsilon {
		return 0
	}
	sum := 0.0
	for i := 0; i+lag < n; i++ {
		if present[i] && present[i+lag] {
			sum += (values[i] - mean) * (values[i+lag] - mean)
		}
	}
	return sum / float64(n-lag) / variance
}

// averagedSignal returns the per-sample mean of the three dimensions with a
// presence mask.
func averagedSignal(samples []emotion.DimensionalMap) ([]float64, []bool) {
	values := make([]float64, len(samples))
	present := make([]bool, len(samples))
	for i, s := range samples {
		if d, ok := s.Dimensions.Get(); ok {
			values[i] = d.Average()
			present[i] = true
		}
	}
	return values, present
}

// presentDimensions collects the dimensions of every sample that has them.
func presentDimensions(samples []emotion.DimensionalMap) []emotion.Dimensions {
	out := make([]emotion.Dimensions, 0, len(samples))
	for _, s := range samples {
		if d, ok := s.Dimensions.Get(); ok {
			out = append(out, d)
		}
	}
	return out
}

func positions(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}
