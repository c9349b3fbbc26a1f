package analysis

import (
	"fmt"
	"sort"

	"gomood/domain/emotion"
	"gomood/internal"
	"gomood/internal/errors"

	"github.com/montanaflynn/stats"
)

// StatisticsCalculator aggregates an emotion-analysis history. It is independent
// of pattern detection.
type StatisticsCalculator struct {
	logger *internal.Logger
}

// NewStatisticsCalculator creates a calculator logging to logger, or to the
// default logger when nil.
func NewStatisticsCalculator(logger *internal.Logger) *StatisticsCalculator {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &StatisticsCalculator{logger: logger}
}

// CalculateEmotionStatistics computes per-axis mean and population variance,
// the last-quarter minus first-quarter trend, a stability index and volatility.
// Records are taken in timestamp order; the caller's slice is not reordered.
//
// It fails with errors.ErrEmptyInput for an empty history and with
// errors.ErrNoValidDimensions when no record carries dimensions.
func (c *StatisticsCalculator) CalculateEmotionStatistics(history []emotion.Analysis) (emotion.Statistics, error) {
	if len(history) == 0 {
		return emotion.Statistics{}, errors.EmptyInput("cannot calculate statistics for an empty analysis history")
	}

	dims := make([]emotion.Dimensions, 0, len(history))
	for _, a := range sortAnalysesByTimestamp(history) {
		if d, ok := a.Dimensions.Get(); ok {
			dims = append(dims, d)
		}
	}
	if len(dims) == 0 {
		return emotion.Statistics{}, errors.NoValidDimensions(
			fmt.Sprintf("none of the %d analyses carry dimension data", len(history)))
	}

	mean, variance, err := axisMoments(dims)
	if err != nil {
		return emotion.Statistics{}, errors.Wrap(err, "failed to compute dimension moments")
	}

	trend, err := quarterTrend(dims)
	if err != nil {
		return emotion.Statistics{}, errors.Wrap(err, "failed to compute dimension trend")
	}

	averageVariance := (variance.Valence + variance.Arousal + variance.Dominance) / 3
	result := emotion.Statistics{
		Mean:       mean,
		Variance:   variance,
		Trend:      trend,
		Stability:  1 / (1 + averageVariance),
		Volatility: volatility(dims),
	}

	c.logger.Debug("statistics over %d of %d analyses: stability=%.3f volatility=%.3f",
		len(dims), len(history), result.Stability, result.Volatility)
	return result, nil
}

// sortAnalysesByTimestamp returns a copy of history in ascending timestamp order.
// Records with equal timestamps keep their relative order.
func sortAnalysesByTimestamp(history []emotion.Analysis) []emotion.Analysis {
	sorted := make([]emotion.Analysis, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// axisMoments returns per-axis mean and population variance.
func axisMoments(dims []emotion.Dimensions) (emotion.Dimensions, emotion.Dimensions, error) {
	axes := splitAxes(dims)
	var mean, variance [3]float64
	for i, axis := range axes {
		m, err := stats.Mean(axis)
		if err != nil {
			return emotion.Dimensions{}, emotion.Dimensions{}, err
		}
		v, err := stats.PopulationVariance(axis)
		if err != nil {
			return emotion.Dimensions{}, emotion.Dimensions{}, err
		}
		mean[i], variance[i] = m, v
	}
	return fromArray(mean), fromArray(variance), nil
}

// quarterTrend is mean(last quarter) - mean(first quarter), zero when there
// are fewer than four samples.
func quarterTrend(dims []emotion.Dimensions) (emotion.Dimensions, error) {
	q := len(dims) / 4
	if q == 0 {
		return emotion.Dimensions{}, nil
	}
	first, _, err := axisMoments(dims[:q])
	if err != nil {
		return emotion.Dimensions{}, err
	}
	last, _, err := axisMoments(dims[len(dims)-q:])
	if err != nil {
		return emotion.Dimensions{}, err
	}
	return last.Sub(first), nil
}

// volatility is the mean Euclidean step between consecutive samples.
func volatility(dims []emotion.Dimensions) float64 {
	if len(dims) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(dims); i++ {
		total += dims[i-1].Distance(dims[i])
	}
	return total / float64(len(dims)-1)
}

func splitAxes(dims []emotion.Dimensions) [3]stats.Float64Data {
	var axes [3]stats.Float64Data
	for i := range axes {
		axes[i] = make(stats.Float64Data, len(dims))
	}
	for i, d := range dims {
		axes[0][i] = d.Valence
		axes[1][i] = d.Arousal
		axes[2][i] = d.Dominance
	}
	return axes
}

func fromArray(v [3]float64) emotion.Dimensions {
	return emotion.Dimensions{Valence: v[0], Arousal: v[1], Dominance: v[2]}
}
